package m68k

// executeGroup4 handles the 0100 line: the "miscellaneous" opcode group.
// This covers NEGX/CLR/NEG/NOT, MOVE to/from SR/CCR, NBCD, SWAP, PEA, EXT,
// MOVEM, LEA, TAS, TST, TRAP, LINK, UNLK, MOVE USP, RESET, STOP, RTE, RTS,
// TRAPV, RTR, JSR, JMP and CHK.
func (c *CPU) executeGroup4(instr uint16) uint32 {
	switch instr {
	case 0x4E70:
		return c.executeRESET()
	case 0x4E71:
		return 0 // NOP
	case 0x4E72:
		return c.executeSTOP()
	case 0x4E73:
		return c.executeRTE()
	case 0x4E75:
		return c.executeRTS()
	case 0x4E76:
		return c.executeTRAPV()
	case 0x4E77:
		return c.executeRTR()
	case 0x4AFC:
		return c.illegal()
	}

	if instr&0xFFF8 == 0x4E50 {
		return c.executeLINK(instr)
	}
	if instr&0xFFF8 == 0x4E58 {
		return c.executeUNLK(instr)
	}
	if instr&0xFFF0 == 0x4E60 {
		return c.executeMoveUSP(instr)
	}
	if instr&0xFFF0 == 0x4E40 {
		return c.executeTRAP(instr)
	}
	if instr&0xFFC0 == 0x4E80 {
		return c.executeJSR(instr)
	}
	if instr&0xFFC0 == 0x4EC0 {
		return c.executeJMP(instr)
	}
	if instr&0xF1C0 == 0x41C0 {
		return c.executeLEA(instr)
	}
	if instr&0xF1C0 == 0x4180 {
		return c.executeCHK(instr)
	}

	if instr&0xFFC0 == 0x4840 {
		mode := (instr >> 3) & 7
		if mode == 0 {
			return c.executeSWAP(instr)
		}
		return c.executePEA(instr)
	}
	if instr&0xFFF8 == 0x4880 {
		return c.executeEXT(instr, sizeWord)
	}
	if instr&0xFFF8 == 0x48C0 {
		return c.executeEXT(instr, sizeLong)
	}
	if instr&0xFFC0 == 0x4880 || instr&0xFFC0 == 0x48C0 {
		return c.executeMOVEM(instr, true, instr&0x0040 != 0)
	}
	if instr&0xFF80 == 0x4C80 {
		return c.executeMOVEM(instr, false, instr&0x0040 != 0)
	}

	if instr&0xFFC0 == 0x4800 {
		return c.executeNBCD(instr)
	}

	top8 := instr & 0xFF00
	size := (instr >> 6) & 3
	switch top8 {
	case 0x4000:
		if size == 3 {
			return c.executeMoveFromSR(instr)
		}
		return c.executeUnaryArith(instr, uint8(1<<size), unaryNEGX)
	case 0x4200:
		if size == 3 {
			return c.executeMoveFromCCR(instr)
		}
		return c.executeUnaryArith(instr, uint8(1<<size), unaryCLR)
	case 0x4400:
		if size == 3 {
			return c.executeMoveToCCR(instr)
		}
		return c.executeUnaryArith(instr, uint8(1<<size), unaryNEG)
	case 0x4600:
		if size == 3 {
			return c.executeMoveToSR(instr)
		}
		return c.executeUnaryArith(instr, uint8(1<<size), unaryNOT)
	case 0x4A00:
		if size == 3 {
			return c.executeTAS(instr)
		}
		return c.executeTST(instr, uint8(1<<size))
	}

	return c.illegal()
}

type unaryOp int

const (
	unaryNEGX unaryOp = iota
	unaryCLR
	unaryNEG
	unaryNOT
)

func (c *CPU) executeUnaryArith(instr uint16, size uint8, op unaryOp) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	dest := c.decodeOperand(mode, reg, size)
	a := c.readOperand(dest, size)

	var result uint32
	switch op {
	case unaryNEGX:
		borrow := uint32(0)
		if c.flag(srExtend) {
			borrow = 1
		}
		zeroBefore := c.flag(srZero)
		result = 0 - a - borrow
		c.setNZVCSub(0, a, result, size)
		c.setFlag(srZero, zeroBefore && maskToSize(result, size) == 0)
	case unaryCLR:
		result = 0
		c.setLogicalFlags(result, size)
	case unaryNEG:
		result = 0 - a
		c.setNZVCSub(0, a, result, size)
	case unaryNOT:
		result = ^a
		c.setLogicalFlags(result, size)
	}
	c.writeOperand(dest, size, result)
	return 0
}

func (c *CPU) executeMoveFromSR(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	dest := c.decodeOperand(mode, reg, sizeWord)
	c.writeOperand(dest, sizeWord, uint32(c.SR))
	return 0
}

func (c *CPU) executeMoveFromCCR(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	dest := c.decodeOperand(mode, reg, sizeWord)
	c.writeOperand(dest, sizeWord, uint32(c.SR&0xFF))
	return 0
}

func (c *CPU) executeMoveToCCR(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	src := c.decodeOperand(mode, reg, sizeWord)
	v := c.readOperand(src, sizeWord)
	c.SR = (c.SR &^ 0xFF) | uint16(v&0xFF)
	return 0
}

func (c *CPU) executeMoveToSR(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	src := c.decodeOperand(mode, reg, sizeWord)
	v := c.readOperand(src, sizeWord)
	c.setSupervisor(v&srSupervisor != 0)
	c.SR = uint16(v)
	return 0
}

func (c *CPU) executeNBCD(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	dest := c.decodeOperand(mode, reg, sizeByte)
	a := c.readOperand(dest, sizeByte)
	result, extend := bcdSubtract(0, a, c.flag(srExtend))
	c.writeOperand(dest, sizeByte, result)
	c.setFlag(srExtend, extend)
	c.setFlag(srCarry, extend)
	if result != 0 {
		c.setFlag(srZero, false)
	}
	return 0
}

func (c *CPU) executeSWAP(instr uint16) uint32 {
	reg := instr & 7
	v := c.D[reg]
	result := (v << 16) | (v >> 16)
	c.D[reg] = result
	c.setLogicalFlags(result, sizeLong)
	return 0
}

func (c *CPU) executePEA(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	src := c.decodeOperand(mode, reg, sizeLong)
	c.push32(src.addr)
	return 0
}

func (c *CPU) executeEXT(instr uint16, size uint8) uint32 {
	reg := instr & 7
	var result uint32
	if size == sizeWord {
		result = mergeSize(c.D[reg], uint32(int32(int8(c.D[reg]))), sizeWord)
	} else {
		result = uint32(int32(int16(c.D[reg])))
	}
	c.D[reg] = result
	c.setLogicalFlags(result, size)
	return 0
}

func (c *CPU) executeLEA(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	areg := (instr >> 9) & 7
	src := c.decodeOperand(mode, reg, sizeLong)
	c.A[areg] = src.addr
	return 0
}

func (c *CPU) executeCHK(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	areg := (instr >> 9) & 7
	src := c.decodeOperand(mode, reg, sizeWord)
	bound := int16(c.readOperand(src, sizeWord))
	v := int16(c.D[areg])
	if v < 0 {
		c.setFlag(srNegative, true)
		c.raiseException(vectorCHKInstr, false)
	} else if v > bound {
		c.setFlag(srNegative, false)
		c.raiseException(vectorCHKInstr, false)
	}
	return 0
}

func (c *CPU) executeTAS(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	dest := c.decodeOperand(mode, reg, sizeByte)
	v := c.readOperand(dest, sizeByte)
	c.setNZ(v, sizeByte)
	c.setFlag(srOverflow, false)
	c.setFlag(srCarry, false)
	c.writeOperand(dest, sizeByte, v|0x80)
	return 0
}

func (c *CPU) executeTST(instr uint16, size uint8) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	src := c.decodeOperand(mode, reg, size)
	v := c.readOperand(src, size)
	c.setLogicalFlags(v, size)
	return 0
}

func (c *CPU) executeTRAP(instr uint16) uint32 {
	vector := instr & 0xF
	c.raiseException(vectorTrap0+uint32(vector), false)
	return 0
}

func (c *CPU) executeLINK(instr uint16) uint32 {
	reg := instr & 7
	disp := int16(c.fetch16())
	c.push32(c.A[reg])
	c.A[reg] = c.A[7]
	c.A[7] = uint32(int32(c.A[7]) + int32(disp))
	return 0
}

func (c *CPU) executeUNLK(instr uint16) uint32 {
	reg := instr & 7
	c.A[7] = c.A[reg]
	c.A[reg] = c.pop32()
	return 0
}

func (c *CPU) executeMoveUSP(instr uint16) uint32 {
	reg := instr & 7
	toUSP := instr&0x0008 == 0
	if toUSP {
		c.usp = c.A[reg]
	} else {
		c.A[reg] = c.usp
	}
	return 0
}

func (c *CPU) executeJSR(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	src := c.decodeOperand(mode, reg, sizeLong)
	c.push32(c.PC)
	c.PC = src.addr
	return 0
}

func (c *CPU) executeJMP(instr uint16) uint32 {
	mode := (instr >> 3) & 7
	reg := instr & 7
	src := c.decodeOperand(mode, reg, sizeLong)
	c.PC = src.addr
	return 0
}

// executeMOVEM transfers a register mask to or from memory. toMemory
// selects direction. Mask bit i names D0-D7 for i < 8 and A0-A7 for i >= 8.
// With a predecrement destination the mask is walked from bit 15 down to
// bit 0, each transfer first decrementing A[reg]; every other mode walks it
// from bit 0 up.
func (c *CPU) executeMOVEM(instr uint16, toMemory bool, isLong bool) uint32 {
	mask := c.fetch16()
	mode := (instr >> 3) & 7
	reg := instr & 7
	size := uint8(sizeWord)
	if isLong {
		size = sizeLong
	}

	predecrement := mode == 4
	regOrder := make([]int, 0, 16)
	if predecrement {
		for i := 15; i >= 0; i-- {
			if mask&(1<<uint(i)) != 0 {
				regOrder = append(regOrder, i)
			}
		}
	} else {
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) != 0 {
				regOrder = append(regOrder, i)
			}
		}
	}

	regValue := func(i int) uint32 {
		if i < 8 {
			return c.D[i]
		}
		return c.A[i-8]
	}
	setReg := func(i int, v uint32) {
		if i < 8 {
			c.D[i] = v
		} else {
			c.A[i-8] = v
		}
	}

	if mode == 3 || mode == 4 {
		// Post-increment / pre-decrement: the addressing mode itself
		// advances A[reg] once per access, so address it directly rather
		// than through decodeOperand (which would only step once).
		for _, i := range regOrder {
			if predecrement {
				c.A[reg] -= uint32(size)
				if toMemory {
					writeMem(c, c.A[reg], size, regValue(i))
				} else {
					setReg(i, readMemSigned(c, c.A[reg], size))
				}
			} else {
				addr := c.A[reg]
				if toMemory {
					writeMem(c, addr, size, regValue(i))
				} else {
					setReg(i, readMemSigned(c, addr, size))
				}
				c.A[reg] += uint32(size)
			}
		}
		return 0
	}

	addr := c.decodeOperand(mode, reg, sizeLong).addr
	for _, i := range regOrder {
		if toMemory {
			writeMem(c, addr, size, regValue(i))
		} else {
			setReg(i, readMemSigned(c, addr, size))
		}
		addr += uint32(size)
	}
	return 0
}

func writeMem(c *CPU, addr uint32, size uint8, value uint32) {
	switch size {
	case sizeWord:
		c.Mem.Write16(addr, uint16(value))
	default:
		c.Mem.Write32(addr, value)
	}
}

// readMemSigned sign-extends word-sized MOVEM loads to 32 bits, per the
// documented behavior for register loads (unlike ordinary word operand
// reads, which leave the register's upper half untouched).
func readMemSigned(c *CPU, addr uint32, size uint8) uint32 {
	if size == sizeWord {
		return uint32(int32(int16(c.Mem.Read16(addr))))
	}
	return c.Mem.Read32(addr)
}

func (c *CPU) executeRESET() uint32 {
	// External-device reset line: this core has no peripheral bus to
	// pulse, so RESET is a no-op beyond consuming its documented cycles.
	return 0
}

func (c *CPU) executeSTOP() uint32 {
	sr := c.fetch16()
	c.setSupervisor(sr&srSupervisor != 0)
	c.SR = sr
	c.stopped = true
	return 0
}

func (c *CPU) executeRTE() uint32 {
	sr := c.pop16()
	pc := c.pop32()
	c.setSupervisor(sr&srSupervisor != 0)
	c.SR = sr
	c.PC = pc
	return 0
}

func (c *CPU) executeRTS() uint32 {
	c.PC = c.pop32()
	return 0
}

func (c *CPU) executeTRAPV() uint32 {
	if c.flag(srOverflow) {
		c.raiseException(vectorTRAPVInstr, false)
	}
	return 0
}

func (c *CPU) executeRTR() uint32 {
	ccr := c.pop16()
	pc := c.pop32()
	c.SR = (c.SR &^ 0xFF) | (ccr & 0xFF)
	c.PC = pc
	return 0
}
