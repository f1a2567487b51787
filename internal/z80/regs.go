package z80

// readReg8/writeReg8 decode a 3-bit register field: 0=B,1=C,2=D,3=E,4=H,
// 5=L,6=(HL),7=A — the standard Z80 opcode table register encoding.
func (c *CPU) readReg8(r uint8) uint8 {
	switch r & 7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.Mem.ReadZ80(c.hl())
	default:
		return c.A
	}
}

func (c *CPU) writeReg8(r uint8, v uint8) {
	switch r & 7 {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.Mem.WriteZ80(c.hl(), v)
	default:
		c.A = v
	}
}

// readRP/writeRP decode a 2-bit register-pair field for general use:
// 0=BC,1=DE,2=HL,3=SP.
func (c *CPU) readRP(p uint8) uint16 {
	switch p & 3 {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	default:
		return c.SP
	}
}

func (c *CPU) writeRP(p uint8, v uint16) {
	switch p & 3 {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.SP = v
	}
}

// readRP2/writeRP2 decode the PUSH/POP register-pair field, which uses AF
// in place of SP: 0=BC,1=DE,2=HL,3=AF.
func (c *CPU) readRP2(p uint8) uint16 {
	switch p & 3 {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	default:
		return uint16(c.A)<<8 | uint16(c.F)
	}
}

func (c *CPU) writeRP2(p uint8, v uint16) {
	switch p & 3 {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.A, c.F = uint8(v>>8), uint8(v)
	}
}

// condition decodes the 3-bit condition-code field used by conditional
// jumps, calls, and returns.
func (c *CPU) condition(cc uint8) bool {
	switch cc & 7 {
	case 0:
		return !c.flag(flagZ)
	case 1:
		return c.flag(flagZ)
	case 2:
		return !c.flag(flagC)
	case 3:
		return c.flag(flagC)
	case 4:
		return !c.flag(flagPV)
	case 5:
		return c.flag(flagPV)
	case 6:
		return !c.flag(flagS)
	default:
		return c.flag(flagS)
	}
}
