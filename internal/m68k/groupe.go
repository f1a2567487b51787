package m68k

// executeGroupE handles the 1110 line: the shift/rotate family (ASL/ASR,
// LSL/LSR, ROL/ROR, ROXL/ROXR), in both the register (count or immediate,
// Dn operand) and memory (implicit count of 1, word-sized) forms. The two
// forms share the 1110 prefix but are told apart by the size field: size
// 11 never occurs in the register form (sizes there are byte/word/long =
// 00/01/10), so Motorola reused it to mean "memory operand, word, count 1".
func (c *CPU) executeGroupE(instr uint16) uint32 {
	if (instr>>6)&3 == 3 {
		typ := (instr >> 9) & 3
		direction := (instr >> 8) & 1
		mode := (instr >> 3) & 7
		eaReg := instr & 7
		dest := c.decodeOperand(mode, eaReg, sizeWord)
		return c.executeShiftRotate(typ, direction, 1, sizeWord, dest)
	}

	countOrReg := (instr >> 9) & 7
	direction := (instr >> 8) & 1
	size := uint8(1 << ((instr >> 6) & 3))
	useRegisterCount := (instr>>5)&1 != 0
	typ := (instr >> 3) & 3
	reg := instr & 7

	var count uint32
	if useRegisterCount {
		count = c.D[countOrReg] & 63
	} else {
		count = uint32(countOrReg)
		if count == 0 {
			count = 8
		}
	}

	dest := operand{kind: operandDataReg, reg: int(reg)}
	return c.executeShiftRotate(typ, direction, count, size, dest)
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// shiftOnce performs a single shift/rotate step of the given width (in
// bits), returning the new value, the bit shifted out (carry), and the new
// extend-flag value.
func shiftOnce(value uint32, width uint, typ, direction uint16, extend bool) (result uint32, carryOut, extendOut bool) {
	msb := uint32(1) << (width - 1)
	mask := (uint32(1) << width) - 1

	if direction == 1 { // left
		carryOut = value&msb != 0
		switch typ {
		case 0, 1: // ASL, LSL
			result = (value << 1) & mask
			extendOut = carryOut
		case 2: // ROXL
			result = ((value << 1) | boolToUint32(extend)) & mask
			extendOut = carryOut
		default: // ROL
			result = ((value << 1) | boolToUint32(carryOut)) & mask
			extendOut = extend
		}
		return
	}

	carryOut = value&1 != 0
	switch typ {
	case 0: // ASR: sign-extending right shift
		result = (value >> 1) & mask
		if value&msb != 0 {
			result |= msb
		}
		extendOut = carryOut
	case 1: // LSR
		result = (value >> 1) & mask
		extendOut = carryOut
	case 2: // ROXR
		result = ((value >> 1) | (boolToUint32(extend) << (width - 1))) & mask
		extendOut = carryOut
	default: // ROR
		result = ((value >> 1) | (boolToUint32(carryOut) << (width - 1))) & mask
		extendOut = extend
	}
	return
}

// executeShiftRotate applies count shift/rotate steps to dest and sets
// flags. Overflow is only ever set by ASL (type 0, direction left), per the
// 68000's documented behavior: it tracks whether the sign bit changed value
// at any point during the shift, not just at the end.
func (c *CPU) executeShiftRotate(typ, direction uint16, count uint32, size uint8, dest operand) uint32 {
	width := uint(size) * 8
	value := c.readOperand(dest, size)
	extend := c.flag(srExtend)
	carry := extend

	if count == 0 {
		c.setFlag(srCarry, false)
		c.setFlag(srOverflow, false)
		c.setNZ(value, size)
		return 0
	}

	origSign := value&(uint32(1)<<(width-1)) != 0
	signChanged := false

	for i := uint32(0); i < count; i++ {
		result, carryOut, extendOut := shiftOnce(value, width, typ, direction, extend)
		if typ == 0 && direction == 1 {
			newSign := result&(uint32(1)<<(width-1)) != 0
			if newSign != origSign {
				signChanged = true
			}
		}
		value = result
		carry = carryOut
		extend = extendOut
	}

	c.writeOperand(dest, size, value)
	c.setNZ(value, size)
	c.setFlag(srCarry, carry)
	c.setFlag(srExtend, extend)
	c.setFlag(srOverflow, typ == 0 && direction == 1 && signChanged)
	return 0
}
