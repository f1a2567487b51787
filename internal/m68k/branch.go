package m68k

// executeBranch handles the 0110 line: BRA (cond 0), BSR (cond 1), and the
// fourteen conditional Bcc forms. An 8-bit displacement of zero means the
// real displacement follows as a 16-bit extension word.
func (c *CPU) executeBranch(instr uint16) uint32 {
	cond := (instr >> 8) & 0xF
	branchBase := c.PC
	disp8 := int8(instr & 0xFF)

	var disp int32
	if disp8 == 0 {
		disp = int32(int16(c.fetch16()))
	} else {
		disp = int32(disp8)
	}
	target := uint32(int32(branchBase) + disp)

	switch cond {
	case 0x0: // BRA
		c.PC = target
	case 0x1: // BSR
		c.push32(c.PC)
		c.PC = target
	default:
		if c.condition(cond) {
			c.PC = target
		}
	}
	return 0
}
