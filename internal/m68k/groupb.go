package m68k

// executeGroupB handles the 1011 line: CMP, CMPA, EOR, and CMPM (which
// reuses EOR's "mode field == An direct" slot, an invalid EOR destination
// on real hardware, for its own post-increment compare form).
func (c *CPU) executeGroupB(instr uint16) uint32 {
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
		value := uint32(c.readOperandSigned(src, size))
		a := c.A[reg]
		result := a - value
		c.setCMPFlags(a, value, result, sizeLong)
		return 0
	}

	if opmode >= 4 && mode == 1 {
		size := uint8(1 << (opmode - 4))
		return c.executeCMPM(reg, eaReg, size)
	}

	size := uint8(1 << (opmode & 3))
	ea := c.decodeOperand(mode, eaReg, size)
	if opmode < 4 {
		a := c.D[reg]
		b := c.readOperand(ea, size)
		result := a - b
		c.setCMPFlags(a, b, result, size)
	} else {
		a := c.readOperand(ea, size)
		b := c.D[reg]
		result := a ^ b
		c.writeOperand(ea, size, result)
		c.setLogicalFlags(result, size)
	}
	return 0
}

func (c *CPU) executeCMPM(rx, ry uint16, size uint8) uint32 {
	srcAddr := c.A[ry]
	b := c.readSizedAt(srcAddr, size)
	c.A[ry] += uint32(stackAdjustedSize(size, int(ry)))

	destAddr := c.A[rx]
	a := c.readSizedAt(destAddr, size)
	c.A[rx] += uint32(stackAdjustedSize(size, int(rx)))

	result := a - b
	c.setCMPFlags(a, b, result, size)
	return 0
}

func (c *CPU) readSizedAt(addr uint32, size uint8) uint32 {
	switch size {
	case sizeByte:
		return uint32(c.Mem.Read8(addr))
	case sizeWord:
		return uint32(c.Mem.Read16(addr))
	default:
		return c.Mem.Read32(addr)
	}
}
