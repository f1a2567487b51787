// Package psg wires the Mega Drive's SN76489-compatible programmable sound
// generator behind the narrow IOHandler interface internal/bus and
// internal/scheduler expect, using github.com/user-none/go-chip-sn76489 as
// the concrete chip implementation.
package psg

import sn76489 "github.com/user-none/go-chip-sn76489"

// ClockHz is the PSG's input clock: the same 3.58MHz (NTSC) derived clock
// the YM2612 and Z80 share, divided down further internally by the chip
// (divide-by-16) rather than by the scheduler.
const ClockHz = 3579545

// Chip adapts go-chip-sn76489's SN76489 to this core's single-cycle-at-a-
// time driving style: the scheduler calls Clock() once per PSG cycle
// (MCLK/15/16) and pulls a Sample() whenever the resampler needs one,
// rather than using the library's own internal buffering.
type Chip struct {
	sn *sn76489.SN76489
}

// New creates a PSG chip using the Sega variant (16-bit LFSR, tap mask
// 0x0009, tone-register-zero-as-1), matching Mega Drive hardware rather
// than the original TI SN76489 datasheet part.
func New() *Chip {
	return &Chip{sn: sn76489.New(ClockHz, ClockHz, 1, sn76489.Sega)}
}

// Reset returns the chip to power-on defaults.
func (c *Chip) Reset() {
	c.sn.Reset()
}

// Clock advances the chip by one PSG input clock.
func (c *Chip) Clock() {
	c.sn.Clock()
}

// Sample returns the instantaneous mixed output (sum of the three tone
// channels and the noise channel, each gated by its 4-bit volume), scaled
// by the chip's gain.
func (c *Chip) Sample() float32 {
	return c.sn.Sample()
}

// SetGain sets the chip's output gain, used to balance the PSG against the
// YM2612 in the final mix.
func (c *Chip) SetGain(gain float32) {
	c.sn.SetGain(gain)
}

// Read8 reads the PSG's (write-only, per real hardware) port; reads return
// the open-bus value of 0xFF.
func (c *Chip) Read8(uint32) uint8 {
	return 0xFF
}

// Write8 writes the PSG's single control/data port.
func (c *Chip) Write8(_ uint32, value uint8) {
	c.sn.Write(value)
}
