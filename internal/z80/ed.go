package z80

// executeED runs the ED-prefixed table: 16-bit ADC/SBC, extended loads,
// interrupt-mode/refresh-register instructions, and the block
// transfer/search/IO instruction family. Undocumented ED opcodes outside
// the documented table (x=0 or x=3) behave as an 8-cycle no-op, matching
// commonly documented real-hardware behavior closely enough for a sound
// driver that never deliberately executes them.
func (c *CPU) executeED(opcode uint8) uint32 {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 1:
		return c.executeEDx1(y, z, p, q)
	case 2:
		return c.executeEDBlock(y, z)
	default:
		return 8
	}
}

func (c *CPU) executeEDx1(y, z, p, q uint8) uint32 {
	switch z {
	case 0:
		var v uint8
		if c.IO != nil {
			v = c.IO.In(c.C)
		}
		if y != 6 {
			c.writeReg8(y, v)
		}
		c.setFlag(flagS, v&0x80 != 0)
		c.setFlag(flagZ, v == 0)
		c.setFlag(flagH, false)
		c.setFlag(flagN, false)
		c.setFlag(flagPV, parityEven(v))
		return 0
	case 1:
		v := uint8(0)
		if y != 6 {
			v = c.readReg8(y)
		}
		if c.IO != nil {
			c.IO.Out(c.C, v)
		}
		return 0
	case 2:
		if q == 0 {
			c.setHL(c.sbc16(c.hl(), c.readRP(p)))
		} else {
			c.setHL(c.adc16(c.hl(), c.readRP(p)))
		}
		return 0
	case 3:
		addr := c.fetch16()
		if q == 0 {
			v := c.readRP(p)
			c.Mem.WriteZ80(addr, uint8(v))
			c.Mem.WriteZ80(addr+1, uint8(v>>8))
		} else {
			lo := c.Mem.ReadZ80(addr)
			hi := c.Mem.ReadZ80(addr + 1)
			c.writeRP(p, uint16(hi)<<8|uint16(lo))
		}
		return 0
	case 4:
		c.neg()
		return 0
	case 5:
		// RETN (y!=1) and RETI (y==1) both restore IFF1 from IFF2 and pop PC;
		// the distinction only matters to external daisy-chain interrupt
		// controllers the Mega Drive doesn't have.
		c.IFF1 = c.IFF2
		c.PC = c.pop16()
		return 0
	case 6:
		switch y % 4 {
		case 0, 1:
			c.IM = 0
		case 2:
			c.IM = 1
		default:
			c.IM = 2
		}
		return 0
	default:
		switch y {
		case 0:
			c.I = c.A
		case 1:
			c.R = c.A
		case 2:
			c.A = c.I
			c.setSZXY(c.A)
			c.setFlag(flagH, false)
			c.setFlag(flagN, false)
			c.setFlag(flagPV, c.IFF2)
		case 3:
			c.A = c.R
			c.setSZXY(c.A)
			c.setFlag(flagH, false)
			c.setFlag(flagN, false)
			c.setFlag(flagPV, c.IFF2)
		case 4:
			c.rrd()
		case 5:
			c.rld()
		}
		return 0
	}
}

// rrd/rld rotate a BCD-style digit between the accumulator's low nibble and
// the byte at (HL), a pair of instructions Mega Drive sound drivers use for
// BCD display routines.
func (c *CPU) rrd() {
	addr := c.hl()
	m := c.Mem.ReadZ80(addr)
	newA := (c.A & 0xF0) | (m & 0x0F)
	newM := (c.A&0x0F)<<4 | (m >> 4)
	c.Mem.WriteZ80(addr, newM)
	c.A = newA
	c.setSZXY(c.A)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagPV, parityEven(c.A))
}

func (c *CPU) rld() {
	addr := c.hl()
	m := c.Mem.ReadZ80(addr)
	newA := (c.A & 0xF0) | (m >> 4)
	newM := (m&0x0F)<<4 | (c.A & 0x0F)
	c.Mem.WriteZ80(addr, newM)
	c.A = newA
	c.setSZXY(c.A)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagPV, parityEven(c.A))
}

// executeEDBlock implements the sixteen LDxx/CPxx/INxx/OUTxx block
// instructions, keyed by y (4=single step, 5..7 select which direction/
// repeat combination) and z (0=LD,1=CP,2=IN,3=OUT).
func (c *CPU) executeEDBlock(y, z uint8) uint32 {
	if y < 4 {
		return 8
	}
	decrement := y == 5 || y == 7
	repeat := y == 6 || y == 7

	for {
		switch z {
		case 0:
			c.blockLD(decrement)
		case 1:
			c.blockCP(decrement)
		case 2:
			c.blockIN(decrement)
		default:
			c.blockOUT(decrement)
		}
		done := c.bc() == 0
		if z >= 2 {
			// The IN/OUT forms count with B alone.
			done = c.B == 0
		}
		if !repeat || done {
			break
		}
		if z == 1 && (c.F&flagZ != 0) {
			break
		}
	}
	return 0
}

func (c *CPU) blockLD(decrement bool) {
	v := c.Mem.ReadZ80(c.hl())
	c.Mem.WriteZ80(c.de(), v)
	if decrement {
		c.setHL(c.hl() - 1)
		c.setDE(c.de() - 1)
	} else {
		c.setHL(c.hl() + 1)
		c.setDE(c.de() + 1)
	}
	c.setBC(c.bc() - 1)
	n := v + c.A
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagPV, c.bc() != 0)
	c.setFlag(flagX, n&0x02 != 0)
	c.setFlag(flagY, n&0x08 != 0)
}

func (c *CPU) blockCP(decrement bool) {
	v := c.Mem.ReadZ80(c.hl())
	result := c.A - v
	if decrement {
		c.setHL(c.hl() - 1)
	} else {
		c.setHL(c.hl() + 1)
	}
	c.setBC(c.bc() - 1)
	c.setFlag(flagS, result&0x80 != 0)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagH, (c.A&0xF) < (v&0xF))
	c.setFlag(flagN, true)
	c.setFlag(flagPV, c.bc() != 0)
	n := result
	if c.flag(flagH) {
		n--
	}
	c.setFlag(flagX, n&0x02 != 0)
	c.setFlag(flagY, n&0x08 != 0)
}

func (c *CPU) blockIN(decrement bool) {
	var v uint8
	if c.IO != nil {
		v = c.IO.In(c.C)
	}
	c.Mem.WriteZ80(c.hl(), v)
	if decrement {
		c.setHL(c.hl() - 1)
	} else {
		c.setHL(c.hl() + 1)
	}
	c.B--
	c.setFlag(flagZ, c.B == 0)
	c.setFlag(flagN, true)
}

func (c *CPU) blockOUT(decrement bool) {
	v := c.Mem.ReadZ80(c.hl())
	if c.IO != nil {
		c.IO.Out(c.C, v)
	}
	if decrement {
		c.setHL(c.hl() - 1)
	} else {
		c.setHL(c.hl() + 1)
	}
	c.B--
	c.setFlag(flagZ, c.B == 0)
	c.setFlag(flagN, true)
}
