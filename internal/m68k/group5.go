package m68k

// executeGroup5 handles the 0101 line: ADDQ/SUBQ (when the size field is
// 00/01/10) and Scc/DBcc (when the size field is 11 — reused by Motorola
// as a condition-code selector instead, since a quick-immediate of "any
// size 11" doesn't exist).
func (c *CPU) executeGroup5(instr uint16) uint32 {
	size := (instr >> 6) & 3
	if size == 3 {
		cond := (instr >> 8) & 0xF
		mode := (instr >> 3) & 7
		reg := instr & 7
		if mode == 1 {
			return c.executeDBcc(instr, cond, reg)
		}
		return c.executeScc(instr, cond, mode, reg)
	}

	data := (instr >> 9) & 7
	if data == 0 {
		data = 8
	}
	isSub := instr&0x0100 != 0
	mode := (instr >> 3) & 7
	reg := instr & 7
	opSize := uint8(1 << size)

	dest := c.decodeOperand(mode, reg, opSize)
	a := c.readOperand(dest, opSize)
	b := uint32(data)

	var result uint32
	if isSub {
		result = a - b
		if mode != 1 {
			c.setNZVCSub(a, b, result, opSize)
		}
	} else {
		result = a + b
		if mode != 1 {
			c.setNZVCAdd(a, b, result, opSize)
		}
	}
	// ADDQ/SUBQ to an address register leaves flags untouched and always
	// operates on the full 32-bit register, regardless of the encoded size.
	if mode == 1 {
		if isSub {
			c.A[reg] -= b
		} else {
			c.A[reg] += b
		}
		return 0
	}
	c.writeOperand(dest, opSize, result)
	return 0
}

func (c *CPU) executeScc(instr uint16, cond, mode, reg uint16) uint32 {
	dest := c.decodeOperand(mode, reg, sizeByte)
	var value uint32
	if c.condition(cond) {
		value = 0xFF
	}
	c.writeOperand(dest, sizeByte, value)
	return 0
}

func (c *CPU) executeDBcc(instr uint16, cond, reg uint16) uint32 {
	disp := int16(c.fetch16())
	branchBase := c.PC - 2

	if c.condition(cond) {
		return 0
	}
	counter := int16(c.D[reg])
	counter--
	c.D[reg] = mergeSize(c.D[reg], uint32(uint16(counter)), sizeWord)
	if counter != -1 {
		c.PC = uint32(int32(branchBase) + int32(disp))
	}
	return 0
}
