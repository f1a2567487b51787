package m68k

// executeGroup9OrD handles the 1001 (SUB/SUBA/SUBX) and 1101 (ADD/ADDA/ADDX)
// lines, which share an identical opmode layout and differ only in the
// arithmetic performed — hence one shared handler parameterized by isAdd.
func (c *CPU) executeGroup9OrD(instr uint16, isAdd bool) uint32 {
	reg := (instr >> 9) & 7
	opmode := (instr >> 6) & 7
	mode := (instr >> 3) & 7
	eaReg := instr & 7

	if opmode == 3 || opmode == 7 {
		size := uint8(sizeWord)
		if opmode == 7 {
			size = sizeLong
		}
		src := c.decodeOperand(mode, eaReg, size)
		value := c.readOperandSigned(src, size)
		if isAdd {
			c.A[reg] += uint32(value)
		} else {
			c.A[reg] -= uint32(value)
		}
		return 0
	}

	if opmode >= 4 && mode < 2 {
		size := uint8(1 << (opmode - 4))
		return c.executeX(reg, mode, eaReg, size, isAdd)
	}

	size := uint8(1 << (opmode & 3))
	eaToReg := opmode < 4

	ea := c.decodeOperand(mode, eaReg, size)
	if eaToReg {
		a := c.D[reg]
		b := c.readOperand(ea, size)
		var result uint32
		if isAdd {
			result = a + b
			c.setNZVCAdd(a, b, result, size)
		} else {
			result = a - b
			c.setNZVCSub(a, b, result, size)
		}
		c.D[reg] = mergeSize(c.D[reg], result, size)
	} else {
		a := c.readOperand(ea, size)
		b := c.D[reg]
		var result uint32
		if isAdd {
			result = a + b
			c.setNZVCAdd(a, b, result, size)
		} else {
			result = a - b
			c.setNZVCSub(a, b, result, size)
		}
		c.writeOperand(ea, size, result)
	}
	return 0
}

// executeX handles ADDX/SUBX, in both the Dn,Dn and -(Ay),-(Ax) forms:
// opmode 100/101/110 with an ea-mode field of 0 or 1 is reused by Motorola
// for this rather than a regular memory destination.
func (c *CPU) executeX(rx, mode, ry uint16, size uint8, isAdd bool) uint32 {
	var a, b uint32
	var dest operand
	if mode == 1 {
		c.A[ry] -= uint32(stackAdjustedSize(size, int(ry)))
		c.A[rx] -= uint32(stackAdjustedSize(size, int(rx)))
		dest = operand{kind: operandMemory, addr: c.A[rx]}
		a = c.readOperand(dest, size)
		b = c.readOperand(operand{kind: operandMemory, addr: c.A[ry]}, size)
	} else {
		dest = operand{kind: operandDataReg, reg: int(rx)}
		a = c.D[rx]
		b = c.D[ry]
	}

	extend := uint32(0)
	if c.flag(srExtend) {
		extend = 1
	}

	var result uint32
	if isAdd {
		result = a + b + extend
		c.setNZVCAdd(a, b+extend, result, size)
	} else {
		result = a - b - extend
		c.setNZVCSub(a, b+extend, result, size)
	}
	if maskToSize(result, size) != 0 {
		c.setFlag(srZero, false)
	}
	c.writeOperand(dest, size, result)
	return 0
}
