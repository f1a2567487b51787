package z80

// State is the Z80's complete architectural state, exported as a plain
// struct for host-level save-state serialization, mirroring
// m68k.CPU.State's reasoning for keeping the shadow register set and
// interrupt bookkeeping out of the CPU struct's exported surface day to
// day.
type State struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	AltA, AltF uint8
	AltB, AltC uint8
	AltD, AltE uint8
	AltH, AltL uint8

	IX, IY uint16
	SP, PC uint16
	I, R   uint8

	IFF1, IFF2 bool
	IM         uint8

	EIDelay uint8
	Halted  bool

	PendingNMI bool
	PendingIRQ bool
	IRQData    uint8

	Cycles uint64
}

// State captures the CPU's current architectural state.
func (c *CPU) State() State {
	return State{
		A: c.A, F: c.F,
		B: c.B, C: c.C,
		D: c.D, E: c.E,
		H: c.H, L: c.L,
		AltA: c.altA, AltF: c.altF,
		AltB: c.altB, AltC: c.altC,
		AltD: c.altD, AltE: c.altE,
		AltH: c.altH, AltL: c.altL,
		IX: c.IX, IY: c.IY,
		SP: c.SP, PC: c.PC,
		I: c.I, R: c.R,
		IFF1: c.IFF1, IFF2: c.IFF2, IM: c.IM,
		EIDelay:    c.eiDelay,
		Halted:     c.halted,
		PendingNMI: c.pendingNMI,
		PendingIRQ: c.pendingIRQ,
		IRQData:    c.irqData,
		Cycles:     c.Cycles,
	}
}

// SetState restores a previously captured architectural state, leaving Mem,
// IO, and Log untouched.
func (c *CPU) SetState(s State) {
	c.A, c.F = s.A, s.F
	c.B, c.C = s.B, s.C
	c.D, c.E = s.D, s.E
	c.H, c.L = s.H, s.L
	c.altA, c.altF = s.AltA, s.AltF
	c.altB, c.altC = s.AltB, s.AltC
	c.altD, c.altE = s.AltD, s.AltE
	c.altH, c.altL = s.AltH, s.AltL
	c.IX, c.IY = s.IX, s.IY
	c.SP, c.PC = s.SP, s.PC
	c.I, c.R = s.I, s.R
	c.IFF1, c.IFF2, c.IM = s.IFF1, s.IFF2, s.IM
	c.eiDelay = s.EIDelay
	c.halted = s.Halted
	c.pendingNMI = s.PendingNMI
	c.pendingIRQ = s.PendingIRQ
	c.irqData = s.IRQData
	c.Cycles = s.Cycles
}
