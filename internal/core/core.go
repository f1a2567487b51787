// Package core wires the Mega Drive's component interpreters (68000, Z80,
// YM2612, PSG, controller ports) together behind one top-level struct, the
// way internal/emulator/emulator.go wires its own CPU/Bus/PPU/APU/Input
// collaborators — generalized from that struct's fixed 10MHz/44.1kHz single
// clock domain to internal/scheduler's per-component divided clocks, and
// from its Running/Paused/FPS-tracking fields to a headless, host-driven
// Iterate-one-field-at-a-time call shape (frame pacing and presentation are
// the host's job, not this core's).
package core

import (
	"genesis-core-dx/internal/audio"
	"genesis-core-dx/internal/bus"
	"genesis-core-dx/internal/controller"
	"genesis-core-dx/internal/debug"
	"genesis-core-dx/internal/fm"
	"genesis-core-dx/internal/m68k"
	"genesis-core-dx/internal/psg"
	"genesis-core-dx/internal/scheduler"
	"genesis-core-dx/internal/z80"
)

// Region selects the cartridge region byte the controller port bank's
// version register reports, and the TV standard a cartridge without its
// own region override would naturally run at.
type Region int

const (
	RegionJapan Region = iota
	RegionAmericas
	RegionEurope
)

// VideoOut is the narrow collaborator interface a host implements to
// receive rendered scanlines. Left as an interface stub per spec: the VDP
// itself is out of this core's hard scope, but Iterate still needs
// somewhere to hand scanline-boundary timing to.
type VideoOut interface {
	RenderScanline(line int)
}

// AudioOut is the narrow collaborator interface a host implements to
// receive mixed stereo audio, one field's worth of interleaved int16
// frames at a time.
type AudioOut interface {
	PushAudio(frames []int16)
}

// These mirror internal/scheduler's unexported timing constants: both
// packages need them (scheduler to divide its own cycle deficits, core to
// derive the FM/PSG chips' native sample rates for internal/audio.Mixer and
// a scanline's real-world duration for the controller port bank's
// strobe-decay timer), and scheduler doesn't export them, so they're
// restated here rather than widening scheduler's API for one caller.
const (
	scanlineMasterCycles = 3420
	masterClockNTSC      = 53693175
	fmDivider            = 144
	psgDivider           = 15 * 16
)

// Core is the top-level Mega Drive emulation core: every component
// interpreter, the bus wiring connecting them, and the host-facing
// lifecycle (ROM loading, field iteration, save states).
type Core struct {
	CPU    *m68k.CPU
	Z80    *z80.CPU
	Bus    *bus.Bus
	Z80Bus *bus.Z80Bridge
	Cart   *bus.Cartridge
	FM     *fm.Chip
	PSG    *psg.Chip
	Ports  *controller.PortBank
	Pad1   *controller.Controller
	Pad2   *controller.Controller

	Scheduler *scheduler.Scheduler
	Mixer     *audio.Mixer

	// Debugger is nil until EnableDebugger attaches one. Breakpoints set on
	// it are checked at every 68k instruction boundary once attached.
	Debugger    *debug.Debugger
	cycleLogger *debug.CycleLogger

	region Region

	videoOut VideoOut
	audioOut AudioOut

	Running bool
	Paused  bool
}

// New creates a fully wired, reset core with no ROM loaded. outputRate is
// the host's audio sample rate (e.g. 44100).
func New(outputRate uint64) *Core {
	cart := bus.NewCartridge()
	b := bus.NewBus(cart)
	z80Bus := bus.NewZ80Bridge()
	z80Bus.Parent68k = b
	b.Z80 = z80Bus

	pad1 := controller.New()
	pad2 := controller.New()
	ports := controller.NewPortBank(pad1, pad2)
	b.Controller = ports

	fmChip := fm.New()
	psgChip := psg.New()
	z80Bus.FM = fmChip
	z80Bus.PSG = psgChip

	cpu := m68k.New(b)
	zcpu := z80.New(z80Bus)

	sched := scheduler.New(cpu, zcpu, fmChip, psgChip)
	mixer := audio.NewMixer(masterClockNTSC/fmDivider, masterClockNTSC/psgDivider, outputRate)

	c := &Core{
		CPU:       cpu,
		Z80:       zcpu,
		Bus:       b,
		Z80Bus:    z80Bus,
		Cart:      cart,
		FM:        fmChip,
		PSG:       psgChip,
		Ports:     ports,
		Pad1:      pad1,
		Pad2:      pad2,
		Scheduler: sched,
		Mixer:     mixer,
		region:    RegionAmericas,
	}

	sched.SetScanlineCallback(c.onScanline)
	sched.SetAudioCallback(c.onAudio)
	return c
}

// LoadROM loads a raw cartridge image and resets the core so the 68000
// begins executing at the ROM's own reset vector.
func (c *Core) LoadROM(data []uint8) error {
	if err := c.Cart.LoadROM(data); err != nil {
		return err
	}
	c.Reset()
	return nil
}

// Reset resets every component. The 68000 and Z80 pick up their entry
// points directly from the cartridge's reset vector and RAM contents
// respectively, the same way real hardware boots.
func (c *Core) Reset() {
	c.CPU.Reset()
	c.Z80.Reset()
	c.FM.Reset()
	c.PSG.Reset()
	c.Pad1.Reset()
	c.Pad2.Reset()
	c.Scheduler.Reset()
}

// SetRegion sets the cartridge region reported through the controller port
// bank's version register, and the TV standard region implies unless a
// later SetTVStandard call overrides it.
func (c *Core) SetRegion(region Region) {
	c.region = region
	switch region {
	case RegionJapan:
		c.Ports.VersionRegister = 0x00
		c.Scheduler.SetTVStandard(scheduler.TVStandardNTSC)
	case RegionEurope:
		c.Ports.VersionRegister = 0xC0
		c.Scheduler.SetTVStandard(scheduler.TVStandardPAL)
	default:
		c.Ports.VersionRegister = 0xA0
		c.Scheduler.SetTVStandard(scheduler.TVStandardNTSC)
	}
}

// SetTVStandard overrides the scheduler's field geometry independently of
// SetRegion, for cartridges that run 60Hz on PAL hardware or vice versa.
func (c *Core) SetTVStandard(standard scheduler.TVStandard) {
	c.Scheduler.SetTVStandard(standard)
}

// SetVideoOut installs the host's scanline-rendering collaborator.
func (c *Core) SetVideoOut(v VideoOut) {
	c.videoOut = v
}

// SetAudioOut installs the host's audio-sink collaborator.
func (c *Core) SetAudioOut(a AudioOut) {
	c.audioOut = a
}

// SetButtonState sets whether a button is held on one of the two
// controller ports (1 or 2; any other value is ignored).
func (c *Core) SetButtonState(port int, button controller.Button, pressed bool) {
	switch port {
	case 1:
		c.Pad1.SetButtonState(button, pressed)
	case 2:
		c.Pad2.SetButtonState(button, pressed)
	}
}

// Iterate runs exactly one video field (one call to the scheduler's
// Iterate), delivering rendered scanlines and mixed audio to the host
// collaborators installed via SetVideoOut/SetAudioOut as it goes.
func (c *Core) Iterate() {
	c.Scheduler.Iterate()
}

func (c *Core) onScanline(line int) {
	microsecondsPerScanline := uint16(scanlineMasterCycles * 1_000_000 / c.Scheduler.MasterClockHz())
	c.Ports.AdvanceMicroseconds(microsecondsPerScanline)
	if c.videoOut != nil {
		c.videoOut.RenderScanline(line)
	}
}

func (c *Core) onAudio(fmSamples []int32, psgSamples []float32) {
	if c.audioOut == nil {
		return
	}
	c.Mixer.Mix(fmSamples, psgSamples, c.audioOut.PushAudio)
}
