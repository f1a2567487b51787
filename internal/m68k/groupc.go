package m68k

type exgKind int

const (
	exgDataData exgKind = iota
	exgAddrAddr
	exgDataAddr
)

// executeGroupC handles the 1100 line: AND, MULU, MULS, ABCD, and EXG.
func (c *CPU) executeGroupC(instr uint16) uint32 {
	if instr&0xF1F8 == 0xC100 || instr&0xF1F8 == 0xC108 {
		return c.executeABCD(instr)
	}
	if instr&0xF1F8 == 0xC140 {
		return c.executeEXG(instr, exgDataData)
	}
	if instr&0xF1F8 == 0xC148 {
		return c.executeEXG(instr, exgAddrAddr)
	}
	if instr&0xF1F8 == 0xC188 {
		return c.executeEXG(instr, exgDataAddr)
	}

	reg := (instr >> 9) & 7
	opmode := (instr >> 6) & 7
	mode := (instr >> 3) & 7
	eaReg := instr & 7

	if opmode == 3 {
		return c.executeMULU(reg, mode, eaReg)
	}
	if opmode == 7 {
		return c.executeMULS(reg, mode, eaReg)
	}

	size := uint8(1 << (opmode & 3))
	eaToReg := opmode < 4
	ea := c.decodeOperand(mode, eaReg, size)
	if eaToReg {
		a := c.D[reg]
		b := c.readOperand(ea, size)
		result := maskToSize(a&b, size)
		c.D[reg] = mergeSize(c.D[reg], result, size)
		c.setLogicalFlags(result, size)
	} else {
		a := c.readOperand(ea, size)
		b := c.D[reg]
		result := a & b
		c.writeOperand(ea, size, result)
		c.setLogicalFlags(result, size)
	}
	return 0
}

func (c *CPU) executeABCD(instr uint16) uint32 {
	rx := (instr >> 9) & 7
	ry := instr & 7
	memoryForm := instr&0x0008 != 0

	if memoryForm {
		c.A[ry] -= 1
		c.A[rx] -= 1
		b := c.Mem.Read8(c.A[ry])
		a := c.Mem.Read8(c.A[rx])
		result, carry := bcdAdd(uint32(a), uint32(b), c.flag(srExtend))
		c.Mem.Write8(c.A[rx], uint8(result))
		c.setFlag(srExtend, carry)
		c.setFlag(srCarry, carry)
		if result != 0 {
			c.setFlag(srZero, false)
		}
	} else {
		result, carry := bcdAdd(c.D[rx], c.D[ry], c.flag(srExtend))
		c.D[rx] = mergeSize(c.D[rx], result, sizeByte)
		c.setFlag(srExtend, carry)
		c.setFlag(srCarry, carry)
		if result != 0 {
			c.setFlag(srZero, false)
		}
	}
	return 0
}

func (c *CPU) executeEXG(instr uint16, kind exgKind) uint32 {
	rx := (instr >> 9) & 7
	ry := instr & 7

	switch kind {
	case exgDataData:
		c.D[rx], c.D[ry] = c.D[ry], c.D[rx]
	case exgAddrAddr:
		c.A[rx], c.A[ry] = c.A[ry], c.A[rx]
	case exgDataAddr:
		c.D[rx], c.A[ry] = c.A[ry], c.D[rx]
	}
	return 0
}

func (c *CPU) executeMULU(reg, mode, eaReg uint16) uint32 {
	src := c.decodeOperand(mode, eaReg, sizeWord)
	a := c.readOperand(src, sizeWord)
	b := c.D[reg] & 0xFFFF
	result := a * b
	c.D[reg] = result
	c.setLogicalFlags(result, sizeLong)
	return 0
}

func (c *CPU) executeMULS(reg, mode, eaReg uint16) uint32 {
	src := c.decodeOperand(mode, eaReg, sizeWord)
	a := int32(int16(c.readOperand(src, sizeWord)))
	b := int32(int16(c.D[reg]))
	result := uint32(a * b)
	c.D[reg] = result
	c.setLogicalFlags(result, sizeLong)
	return 0
}
