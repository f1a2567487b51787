package z80

// rotOps is indexed by the CB-prefixed table's y field when x==0: RLC, RRC,
// RL, RR, SLA, SRA, SLL (undocumented), SRL.
var rotOps = []func(c *CPU, v uint8) uint8{
	(*CPU).rlc,
	(*CPU).rrc,
	(*CPU).rl,
	(*CPU).rr,
	(*CPU).sla,
	(*CPU).sra,
	(*CPU).sll,
	(*CPU).srl,
}

// executeCB runs the CB-prefixed table against HL-addressed (or plain
// register) operands: rotate/shift (x=0), BIT (x=1), RES (x=2), SET (x=3).
func (c *CPU) executeCB(opcode uint8) uint32 {
	return c.executeCBOn(opcode, func() uint16 { return c.hl() })
}

// executeCBOn is factored out so the DD CB/FD CB double-prefix forms
// (operating on (IX+d)/(IY+d) instead of (HL)) can reuse the same table.
func (c *CPU) executeCBOn(opcode uint8, addr func() uint16) uint32 {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	read := func() uint8 {
		if z == 6 {
			return c.Mem.ReadZ80(addr())
		}
		return c.readReg8(z)
	}
	write := func(v uint8) {
		if z == 6 {
			c.Mem.WriteZ80(addr(), v)
			return
		}
		c.writeReg8(z, v)
	}

	v := read()
	switch x {
	case 0:
		result := rotOps[y](c, v)
		c.setFlag(flagH, false)
		c.setFlag(flagN, false)
		c.setFlag(flagPV, parityEven(result))
		c.setSZXY(result)
		write(result)
	case 1:
		c.bit(y, v)
		if z == 6 {
			hi := uint8(addr() >> 8)
			c.setFlag(flagX, hi&flagX != 0)
			c.setFlag(flagY, hi&flagY != 0)
		}
	case 2:
		write(v &^ (1 << y))
	default:
		write(v | (1 << y))
	}
	return 0
}
