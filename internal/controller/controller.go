// Package controller implements the Mega Drive's 6-button controller
// protocol: a TH-line-driven strobe counter that multiplexes up to eight
// logical buttons over a 6-bit data port.
//
// Grounded on original_source/controller.c.
package controller

import "genesis-core-dx/internal/debug"

// Button identifies one physical button, matching the bit layout the
// hardware protocol itself is built from.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonC
	ButtonStart
	ButtonX
	ButtonY
	ButtonZ
	ButtonMode
	buttonCount
)

// strobeResetMicroseconds is how long the strobe counter holds its value
// after the last TH-line write before decaying back to 0.
const strobeResetMicroseconds = 1500

// Controller emulates one 6-button Mega Drive pad (or a plain 3-button pad,
// which simply never receives a third TH toggle and so never reaches
// strobe 3).
type Controller struct {
	pressed [buttonCount]bool

	thBit     bool
	strobes   uint8
	countdown uint16

	logger *debug.Logger
}

// New creates a controller with no buttons held.
func New() *Controller {
	return &Controller{}
}

// SetLogger attaches a debug logger.
func (c *Controller) SetLogger(logger *debug.Logger) {
	c.logger = logger
}

// SetButtonState sets whether a button is currently held down.
func (c *Controller) SetButtonState(button Button, pressed bool) {
	c.pressed[button] = pressed
}

// Reset returns the controller to its power-on state.
func (c *Controller) Reset() {
	c.thBit = false
	c.strobes = 0
	c.countdown = 0
}

// State is the controller's strobe-protocol state. Button-held state is
// intentionally excluded: it's live host input the frontend reapplies via
// SetButtonState every frame, not part of the emulated machine's state.
type State struct {
	THBit     bool
	Strobes   uint8
	Countdown uint16
}

// State captures the controller's current strobe-protocol state.
func (c *Controller) State() State {
	return State{THBit: c.thBit, Strobes: c.strobes, Countdown: c.countdown}
}

// SetState restores a previously captured strobe-protocol state.
func (c *Controller) SetState(s State) {
	c.thBit = s.THBit
	c.strobes = s.Strobes
	c.countdown = s.Countdown
}

func (c *Controller) advance(microseconds uint16) {
	if c.countdown >= microseconds {
		c.countdown -= microseconds
	} else {
		c.countdown = 0
		c.strobes = 0
	}
}

// buttonBit returns the active-low bit value for a button: 0 when held,
// 1 when released, matching the hardware's open-collector wiring.
func (c *Controller) buttonBit(button Button) uint8 {
	if c.pressed[button] {
		return 0
	}
	return 1
}

// Read returns the 6-bit data port value for the controller's current
// strobe phase. microseconds is the elapsed time since the last Read or
// Write, used to decay the strobe counter back to 0 after 1.5ms of
// inactivity.
func (c *Controller) Read(microseconds uint16) uint8 {
	c.advance(microseconds)

	if c.thBit {
		switch c.strobes {
		case 3:
			return c.buttonBit(ButtonC)<<5 | c.buttonBit(ButtonB)<<4 |
				c.buttonBit(ButtonMode)<<3 | c.buttonBit(ButtonX)<<2 |
				c.buttonBit(ButtonY)<<1 | c.buttonBit(ButtonZ)<<0
		default:
			return c.buttonBit(ButtonC)<<5 | c.buttonBit(ButtonB)<<4 |
				c.buttonBit(ButtonRight)<<3 | c.buttonBit(ButtonLeft)<<2 |
				c.buttonBit(ButtonDown)<<1 | c.buttonBit(ButtonUp)<<0
		}
	}

	switch c.strobes {
	case 2:
		return c.buttonBit(ButtonStart)<<5 | c.buttonBit(ButtonA)<<4
	case 3:
		return c.buttonBit(ButtonStart)<<5 | c.buttonBit(ButtonA)<<4 | 0xF
	default:
		return c.buttonBit(ButtonStart)<<5 | c.buttonBit(ButtonA)<<4 |
			c.buttonBit(ButtonDown)<<1 | c.buttonBit(ButtonUp)<<0
	}
}

// Write drives the TH line. A 0->1 transition advances the strobe counter
// mod 4 and resets the inactivity countdown; microseconds is elapsed time
// since the last Read or Write, applied before the edge is evaluated.
func (c *Controller) Write(value uint8, microseconds uint16) {
	newTH := value&0x40 != 0

	c.advance(microseconds)

	if newTH && !c.thBit {
		c.strobes = (c.strobes + 1) % 4
		c.countdown = strobeResetMicroseconds

		if c.logger != nil {
			c.logger.LogController(debug.LogLevelTrace, "TH strobe advanced", map[string]interface{}{"strobes": c.strobes})
		}
	}

	c.thBit = newTH
}
