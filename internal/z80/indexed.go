package z80

// executeIndexed runs the DD/FD-prefixed table, substituting the indexed
// register (IX or IY, passed by pointer so writes stick) for HL. Real Z80
// hardware reinterprets every HL/(HL)-referencing opcode this way and lets
// everything else (register-only ALU ops, jumps, non-HL loads, and so on)
// execute exactly as the unprefixed form after wasting the prefix's extra
// fetch; that fallback is implemented by just calling executeMain with the
// indexed register wired in, since (HL) never comes up for those opcodes.
func (c *CPU) executeIndexed(reg *uint16) uint32 {
	opcode := c.fetch8()
	if opcode == 0xCB {
		d := int8(c.fetch8())
		cbOp := c.fetch8()
		addr := uint16(int32(*reg) + int32(d))
		return c.executeCBOn(cbOp, func() uint16 { return addr })
	}

	hlGet := func() uint16 { return *reg }
	hlSet := func(v uint16) { *reg = v }

	// Only opcodes whose z field is 6 (the (HL) memory operand slot) need a
	// displacement byte, and only when x is 0 or the op is a register/memory
	// load or ALU-against-memory form; fetch it up front for those and reuse
	// executeMain's HL-parameterized dispatch with an addr func closing over
	// the already-fetched displacement.
	x := opcode >> 6
	z := opcode & 7
	y := (opcode >> 3) & 7
	var needsDisplacement bool
	switch {
	case opcode == 0x76: // HALT: the y==6,z==6 slot, never a real (HL) operand
		needsDisplacement = false
	case x == 0:
		needsDisplacement = y == 6 && (z == 4 || z == 5 || z == 6)
	case x == 1:
		needsDisplacement = y == 6 || z == 6
	case x == 2:
		needsDisplacement = z == 6
	}

	var addr uint16
	if needsDisplacement {
		d := int8(c.fetch8())
		addr = uint16(int32(*reg) + int32(d))
	}
	addrFn := func() uint16 { return addr }

	return c.executeMain(opcode, hlGet, hlSet, addrFn)
}
