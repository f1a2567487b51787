package controller

// PortBank implements the 68k I/O window at 0xA10000-0xA1001F: the version
// register plus the three duplicated control-port register sets (data,
// control, and serial, unused here) for controller port 1, port 2, and the
// expansion port.
type PortBank struct {
	Port1, Port2, PortEXT *Controller

	ctrl1, ctrl2, ctrlEXT   uint8 // direction registers: 1 = output bit
	latch1, latch2, latchEXT uint8 // last value written to the data register's output bits

	// Version register: bit 7 set = overseas (export) model, bit 6 set =
	// PAL, bit 5 set = no expansion unit attached; bits 0-3 (hardware
	// version) read 0. internal/core's SetRegion writes 0x00 (Japan), 0xC0
	// (Europe) or 0xA0 (Americas, also the power-on value), so only the
	// Americas value sets bit 5.
	VersionRegister uint8

	microsecondsSinceLastAccess uint16
}

// NewPortBank creates the three-port controller I/O window. port1/port2 may
// be nil if nothing is plugged in; a nil controller reads as all buttons
// released.
func NewPortBank(port1, port2 *Controller) *PortBank {
	return &PortBank{Port1: port1, Port2: port2, VersionRegister: 0xA0}
}

// AdvanceMicroseconds accumulates elapsed time so the next register access
// can decay the strobe counters of ports that haven't been touched.
func (p *PortBank) AdvanceMicroseconds(microseconds uint16) {
	p.microsecondsSinceLastAccess += microseconds
}

func (p *PortBank) takeElapsed() uint16 {
	elapsed := p.microsecondsSinceLastAccess
	p.microsecondsSinceLastAccess = 0
	return elapsed
}

// PortBankState is the port bank's own register state, excluding the
// plugged-in controllers (saved separately via Controller.State).
type PortBankState struct {
	Ctrl1, Ctrl2, CtrlEXT       uint8
	Latch1, Latch2, LatchEXT    uint8
	VersionRegister             uint8
	MicrosecondsSinceLastAccess uint16
}

// State captures the port bank's current register state.
func (p *PortBank) State() PortBankState {
	return PortBankState{
		Ctrl1: p.ctrl1, Ctrl2: p.ctrl2, CtrlEXT: p.ctrlEXT,
		Latch1: p.latch1, Latch2: p.latch2, LatchEXT: p.latchEXT,
		VersionRegister:             p.VersionRegister,
		MicrosecondsSinceLastAccess: p.microsecondsSinceLastAccess,
	}
}

// SetState restores a previously captured register state, leaving the
// plugged-in Port1/Port2/PortEXT collaborators untouched.
func (p *PortBank) SetState(s PortBankState) {
	p.ctrl1, p.ctrl2, p.ctrlEXT = s.Ctrl1, s.Ctrl2, s.CtrlEXT
	p.latch1, p.latch2, p.latchEXT = s.Latch1, s.Latch2, s.LatchEXT
	p.VersionRegister = s.VersionRegister
	p.microsecondsSinceLastAccess = s.MicrosecondsSinceLastAccess
}

// Read8 reads one byte of the port-bank window.
func (p *PortBank) Read8(offset uint32) uint8 {
	elapsed := p.takeElapsed()

	switch offset {
	case 0x00, 0x01:
		return p.VersionRegister
	case 0x02, 0x03:
		return p.readData(p.Port1, p.ctrl1, p.latch1, elapsed)
	case 0x04, 0x05:
		return p.readData(p.Port2, p.ctrl2, p.latch2, elapsed)
	case 0x06, 0x07:
		return p.readData(p.PortEXT, p.ctrlEXT, p.latchEXT, elapsed)
	case 0x08, 0x09:
		return p.ctrl1
	case 0x0A, 0x0B:
		return p.ctrl2
	case 0x0C, 0x0D:
		return p.ctrlEXT
	default:
		return 0xFF
	}
}

func (p *PortBank) readData(c *Controller, ctrl uint8, latch uint8, elapsed uint16) uint8 {
	if c == nil {
		return 0xFF
	}
	value := c.Read(elapsed)
	// Bits set as output in the direction register read back the last
	// value written, not the controller's own signal.
	return (value &^ ctrl) | (latch & ctrl)
}

// Write8 writes one byte of the port-bank window.
func (p *PortBank) Write8(offset uint32, value uint8) {
	elapsed := p.takeElapsed()

	switch offset {
	case 0x02, 0x03:
		p.latch1 = value
		if p.Port1 != nil {
			p.Port1.Write(value, elapsed)
		}
	case 0x04, 0x05:
		p.latch2 = value
		if p.Port2 != nil {
			p.Port2.Write(value, elapsed)
		}
	case 0x06, 0x07:
		p.latchEXT = value
		if p.PortEXT != nil {
			p.PortEXT.Write(value, elapsed)
		}
	case 0x08, 0x09:
		p.ctrl1 = value
	case 0x0A, 0x0B:
		p.ctrl2 = value
	case 0x0C, 0x0D:
		p.ctrlEXT = value
	}
}
