package m68k

// State is the 68000's complete architectural state, exported as a plain
// struct so a host-level save-state mechanism can serialize it without
// reaching into the CPU's unexported bookkeeping fields (the inactive
// stack pointer, the pending-interrupt latch, the STOP flag).
type State struct {
	D [8]uint32
	A [8]uint32

	PC uint32
	SR uint16

	USP uint32
	SSP uint32

	Cycles uint64

	PendingInterruptLevel uint8
	Stopped               bool
}

// State captures the CPU's current architectural state.
func (c *CPU) State() State {
	return State{
		D:                     c.D,
		A:                     c.A,
		PC:                    c.PC,
		SR:                    c.SR,
		USP:                   c.usp,
		SSP:                   c.ssp,
		Cycles:                c.Cycles,
		PendingInterruptLevel: c.pendingInterruptLevel,
		Stopped:               c.stopped,
	}
}

// SetState restores a previously captured architectural state, leaving Mem
// and Log untouched.
func (c *CPU) SetState(s State) {
	c.D = s.D
	c.A = s.A
	c.PC = s.PC
	c.SR = s.SR
	c.usp = s.USP
	c.ssp = s.SSP
	c.Cycles = s.Cycles
	c.pendingInterruptLevel = s.PendingInterruptLevel
	c.stopped = s.Stopped
}
