package z80

// execute decodes and runs one instruction, returning its cycle cost (0
// means "use the default"). Dispatch follows the standard x/y/z/p/q
// decomposition of a Z80 opcode byte (x=bits7-6, y=bits5-3, z=bits2-0,
// p=y>>1, q=y&1), the same decomposition used throughout the public
// documentation of the Z80's instruction encoding, generalized from
// m68k.CPU.execute's top-level dispatch shape to this CPU's opcode map.
func (c *CPU) execute(opcode uint8) uint32 {
	switch opcode {
	case 0xCB:
		return c.executeCB(c.fetch8())
	case 0xED:
		return c.executeED(c.fetch8())
	case 0xDD:
		return c.executeIndexed(&c.IX)
	case 0xFD:
		return c.executeIndexed(&c.IY)
	}
	return c.executeMain(opcode, c.hl, c.setHL, func() uint16 { return c.hl() })
}

var aluOps = []func(c *CPU, a, b uint8) uint8{
	(*CPU).add8,
	(*CPU).adc8,
	(*CPU).sub8,
	(*CPU).sbc8,
	(*CPU).and8,
	(*CPU).xor8,
	(*CPU).or8,
	func(c *CPU, a, b uint8) uint8 { c.cp8(a, b); return a },
}

// executeMain runs the unprefixed opcode table, with hlGet/hlSet/hlAddr
// parameterized so executeIndexed can reuse this exact table with IX/IY
// substituted for HL (mirroring how the real DD/FD prefixes work: almost
// every opcode that references HL or (HL) is reinterpreted, everything
// else behaves identically).
func (c *CPU) executeMain(opcode uint8, hlGet func() uint16, hlSet func(uint16), hlAddr func() uint16) uint32 {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.executeX0(opcode, y, z, p, q, hlGet, hlSet, hlAddr)
	case 1:
		if y == 6 && z == 6 {
			c.halted = true
			return 4
		}
		c.writeReg8HL(y, c.readReg8HL(z, hlAddr), hlAddr)
		return 0
	case 2:
		c.A = aluOps[y](c, c.A, c.readReg8HL(z, hlAddr))
		return 0
	default:
		return c.executeX3(opcode, y, z, p, q, hlGet, hlSet, hlAddr)
	}
}

// readReg8HL/writeReg8HL are readReg8/writeReg8 but route register 6
// through hlAddr instead of always c.hl(), so the same code serves both
// the HL and IX/IY-indexed opcode tables.
func (c *CPU) readReg8HL(r uint8, hlAddr func() uint16) uint8 {
	if r&7 == 6 {
		return c.Mem.ReadZ80(hlAddr())
	}
	return c.readReg8(r)
}

func (c *CPU) writeReg8HL(r uint8, v uint8, hlAddr func() uint16) {
	if r&7 == 6 {
		c.Mem.WriteZ80(hlAddr(), v)
		return
	}
	c.writeReg8(r, v)
}

func (c *CPU) executeX0(opcode, y, z, p, q uint8, hlGet func() uint16, hlSet func(uint16), hlAddr func() uint16) uint32 {
	switch z {
	case 0:
		switch y {
		case 0:
			return 0 // NOP
		case 1:
			c.A, c.altA = c.altA, c.A
			c.F, c.altF = c.altF, c.F
			return 0
		case 2:
			c.B--
			d := int8(c.fetch8())
			if c.B != 0 {
				c.PC = uint16(int32(c.PC) + int32(d))
			}
			return 0
		case 3:
			d := int8(c.fetch8())
			c.PC = uint16(int32(c.PC) + int32(d))
			return 0
		default:
			d := int8(c.fetch8())
			if c.condition(y - 4) {
				c.PC = uint16(int32(c.PC) + int32(d))
			}
			return 0
		}
	case 1:
		if q == 0 {
			c.writeRP(p, c.fetch16())
		} else {
			hlSet(c.add16(hlGet(), c.readRP(p)))
		}
		return 0
	case 2:
		switch {
		case q == 0 && p == 0:
			c.Mem.WriteZ80(c.bc(), c.A)
		case q == 0 && p == 1:
			c.Mem.WriteZ80(c.de(), c.A)
		case q == 0 && p == 2:
			addr := c.fetch16()
			v := hlGet()
			c.Mem.WriteZ80(addr, uint8(v))
			c.Mem.WriteZ80(addr+1, uint8(v>>8))
		case q == 0 && p == 3:
			c.Mem.WriteZ80(c.fetch16(), c.A)
		case q == 1 && p == 0:
			c.A = c.Mem.ReadZ80(c.bc())
		case q == 1 && p == 1:
			c.A = c.Mem.ReadZ80(c.de())
		case q == 1 && p == 2:
			addr := c.fetch16()
			lo := c.Mem.ReadZ80(addr)
			hi := c.Mem.ReadZ80(addr + 1)
			hlSet(uint16(hi)<<8 | uint16(lo))
		default:
			c.A = c.Mem.ReadZ80(c.fetch16())
		}
		return 0
	case 3:
		if q == 0 {
			c.writeRP(p, c.readRP(p)+1)
		} else {
			c.writeRP(p, c.readRP(p)-1)
		}
		return 0
	case 4:
		c.writeReg8HL(y, c.inc8(c.readReg8HL(y, hlAddr)), hlAddr)
		return 0
	case 5:
		c.writeReg8HL(y, c.dec8(c.readReg8HL(y, hlAddr)), hlAddr)
		return 0
	case 6:
		c.writeReg8HL(y, c.fetch8(), hlAddr)
		return 0
	default:
		switch y {
		case 0:
			c.A = c.rlc(c.A)
			c.setFlag(flagH, false)
			c.setFlag(flagN, false)
			c.setFlag(flagX, c.A&flagX != 0)
			c.setFlag(flagY, c.A&flagY != 0)
		case 1:
			c.A = c.rrc(c.A)
			c.setFlag(flagH, false)
			c.setFlag(flagN, false)
			c.setFlag(flagX, c.A&flagX != 0)
			c.setFlag(flagY, c.A&flagY != 0)
		case 2:
			c.A = c.rl(c.A)
			c.setFlag(flagH, false)
			c.setFlag(flagN, false)
			c.setFlag(flagX, c.A&flagX != 0)
			c.setFlag(flagY, c.A&flagY != 0)
		case 3:
			c.A = c.rr(c.A)
			c.setFlag(flagH, false)
			c.setFlag(flagN, false)
			c.setFlag(flagX, c.A&flagX != 0)
			c.setFlag(flagY, c.A&flagY != 0)
		case 4:
			c.daa()
		case 5:
			c.cpl()
		case 6:
			c.setFlag(flagC, true)
			c.setFlag(flagH, false)
			c.setFlag(flagN, false)
		case 7:
			carry := c.flag(flagC)
			c.setFlag(flagH, carry)
			c.setFlag(flagC, !carry)
			c.setFlag(flagN, false)
		}
		return 0
	}
}

func (c *CPU) executeX3(opcode, y, z, p, q uint8, hlGet func() uint16, hlSet func(uint16), hlAddr func() uint16) uint32 {
	switch z {
	case 0:
		if c.condition(y) {
			c.PC = c.pop16()
		}
		return 0
	case 1:
		switch {
		case q == 0:
			c.writeRP2(p, c.pop16())
		case p == 0:
			c.PC = c.pop16()
		case p == 1:
			c.B, c.altB = c.altB, c.B
			c.C, c.altC = c.altC, c.C
			c.D, c.altD = c.altD, c.D
			c.E, c.altE = c.altE, c.E
			c.H, c.altH = c.altH, c.H
			c.L, c.altL = c.altL, c.L
		case p == 2:
			c.PC = hlGet()
		default:
			c.SP = hlGet()
		}
		return 0
	case 2:
		if c.condition(y) {
			c.PC = c.fetch16()
		} else {
			c.fetch16()
		}
		return 0
	case 3:
		switch y {
		case 0:
			c.PC = c.fetch16()
		case 2:
			port := c.fetch8()
			if c.IO != nil {
				c.IO.Out(port, c.A)
			}
		case 3:
			port := c.fetch8()
			if c.IO != nil {
				c.A = c.IO.In(port)
			}
		case 4:
			spv := c.Mem.ReadZ80(c.SP)
			spv2 := c.Mem.ReadZ80(c.SP + 1)
			old := hlGet()
			c.Mem.WriteZ80(c.SP, uint8(old))
			c.Mem.WriteZ80(c.SP+1, uint8(old>>8))
			hlSet(uint16(spv2)<<8 | uint16(spv))
		case 5:
			c.D, c.H = c.H, c.D
			c.E, c.L = c.L, c.E
		case 6:
			c.IFF1, c.IFF2 = false, false
			c.eiDelay = 0
		default:
			c.eiDelay = 2
		}
		return 0
	case 4:
		addr := c.fetch16()
		if c.condition(y) {
			c.push16(c.PC)
			c.PC = addr
		}
		return 0
	case 5:
		switch {
		case q == 0:
			c.push16(c.readRP2(p))
		case p == 0:
			addr := c.fetch16()
			c.push16(c.PC)
			c.PC = addr
		}
		return 0
	case 6:
		c.A = aluOps[y](c, c.A, c.fetch8())
		return 0
	default:
		c.push16(c.PC)
		c.PC = uint16(y) * 8
		return 0
	}
}
