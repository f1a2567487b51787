package m68k

// executeGroup8 handles the 1000 line: OR, DIVU, DIVS, and SBCD (which
// reuses OR's opmode-100-byte encoding space when both operands address
// registers directly or via predecrement, the same kind of encoding-space
// reuse as EXT within the MOVEM range).
func (c *CPU) executeGroup8(instr uint16) uint32 {
	if instr&0xF1F8 == 0x8100 || instr&0xF1F8 == 0x8108 {
		return c.executeSBCD(instr)
	}

	reg := (instr >> 9) & 7
	opmode := (instr >> 6) & 7
	mode := (instr >> 3) & 7
	eaReg := instr & 7

	switch opmode {
	case 3: // DIVU.W
		return c.executeDIVU(instr, reg, mode, eaReg)
	case 7: // DIVS.W
		return c.executeDIVS(instr, reg, mode, eaReg)
	}

	return c.executeORLine(instr, reg, opmode, mode, eaReg)
}

func (c *CPU) executeORLine(instr uint16, reg, opmode, mode, eaReg uint16) uint32 {
	size := uint8(1 << (opmode & 3))
	eaToReg := opmode < 4

	ea := c.decodeOperand(mode, eaReg, size)
	if eaToReg {
		a := c.D[reg]
		b := c.readOperand(ea, size)
		result := maskToSize(a|b, size)
		c.D[reg] = mergeSize(c.D[reg], result, size)
		c.setLogicalFlags(result, size)
	} else {
		a := c.readOperand(ea, size)
		b := c.D[reg]
		result := a | b
		c.writeOperand(ea, size, result)
		c.setLogicalFlags(result, size)
	}
	return 0
}

func (c *CPU) executeSBCD(instr uint16) uint32 {
	rx := (instr >> 9) & 7
	ry := instr & 7
	memoryForm := instr&0x0008 != 0

	if memoryForm {
		c.A[rx] -= 1
		c.A[ry] -= 1
		b := c.Mem.Read8(c.A[ry])
		a := c.Mem.Read8(c.A[rx])
		result, borrow := bcdSubtract(uint32(a), uint32(b), c.flag(srExtend))
		c.Mem.Write8(c.A[rx], uint8(result))
		c.setFlag(srExtend, borrow)
		c.setFlag(srCarry, borrow)
		if result != 0 {
			c.setFlag(srZero, false)
		}
	} else {
		result, borrow := bcdSubtract(c.D[rx], c.D[ry], c.flag(srExtend))
		c.D[rx] = mergeSize(c.D[rx], result, sizeByte)
		c.setFlag(srExtend, borrow)
		c.setFlag(srCarry, borrow)
		if result != 0 {
			c.setFlag(srZero, false)
		}
	}
	return 0
}

// executeDIVU performs an unsigned 32/16 divide, storing a 16-bit quotient
// in the low word and remainder in the high word of Dn. Division by zero
// raises the zero-divide exception rather than returning a result.
func (c *CPU) executeDIVU(instr uint16, reg, mode, eaReg uint16) uint32 {
	src := c.decodeOperand(mode, eaReg, sizeWord)
	divisor := c.readOperand(src, sizeWord)
	if divisor == 0 {
		c.raiseException(vectorZeroDivide, false)
		return 0
	}
	dividend := c.D[reg]
	quotient := dividend / divisor
	remainder := dividend % divisor

	if quotient > 0xFFFF {
		c.setFlag(srOverflow, true)
		return 0
	}
	c.setFlag(srOverflow, false)
	c.setFlag(srCarry, false)
	c.D[reg] = (remainder << 16) | (quotient & 0xFFFF)
	c.setNZ(quotient, sizeWord)
	return 0
}

// executeDIVS performs a signed 32/16 divide with the same register layout
// as DIVU.
func (c *CPU) executeDIVS(instr uint16, reg, mode, eaReg uint16) uint32 {
	src := c.decodeOperand(mode, eaReg, sizeWord)
	divisor := int32(int16(c.readOperand(src, sizeWord)))
	if divisor == 0 {
		c.raiseException(vectorZeroDivide, false)
		return 0
	}
	dividend := int32(c.D[reg])
	quotient := dividend / divisor
	remainder := dividend % divisor

	if quotient > 0x7FFF || quotient < -0x8000 {
		c.setFlag(srOverflow, true)
		return 0
	}
	c.setFlag(srOverflow, false)
	c.setFlag(srCarry, false)
	c.D[reg] = (uint32(uint16(remainder)) << 16) | uint32(uint16(quotient))
	c.setNZ(uint32(uint16(quotient)), sizeWord)
	return 0
}
