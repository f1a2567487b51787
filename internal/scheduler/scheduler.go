// Package scheduler drives one video field (one iterate() call) worth of
// 68k, Z80, FM, and PSG execution from a single master clock, the way
// internal/clock/scheduler.go's MasterClock drives CPU/PPU/APU — but
// generalized from a flat per-cycle loop to per-scanline stepping with
// VBlank/HBlank interrupt injection, and from a fixed 10MHz/44.1kHz pair to
// the real Mega Drive's NTSC/PAL master clock and MCLK/7, MCLK/15, MCLK/144,
// MCLK/15/16 dividers.
package scheduler

// TVStandard selects the master clock rate and field geometry.
type TVStandard int

const (
	TVStandardNTSC TVStandard = iota
	TVStandardPAL
)

const (
	masterClockNTSC uint64 = 53693175
	masterClockPAL  uint64 = 53203424

	// A Mega Drive scanline is 3420 master clock cycles regardless of TV
	// standard; only the number of scanlines per field differs. This is a
	// hardware timing constant, not something transcribed from the pack —
	// documented here since no example repo carries it.
	masterCyclesPerScanline uint64 = 3420

	linesNTSC = 262
	linesPAL  = 313

	// VERTICAL_RESOLUTION: the active (rendered) scanline count in the
	// default 224-line display mode, the same on NTSC and PAL.
	activeLines = 224

	m68kDivisor = 7
	z80Divisor  = 15
	fmDivisor   = 144
	psgDivisor  = 15 * 16

	vblankInterruptLevel = 6
	hblankInterruptLevel = 4
)

// CPU68k is the narrow interface the scheduler drives the 68k through.
type CPU68k interface {
	RunCycles(cycles uint64) uint64
	Interrupt(level uint8)
}

// Z80CPU is the narrow interface the scheduler drives the Z80 through.
type Z80CPU interface {
	RunCycles(cycles uint64) uint64
}

// FMChip is the narrow interface the scheduler drives the YM2612 through.
// Clock returns one stereo sample pair, already panned per channel by the
// chip's own register 0xB4 state.
type FMChip interface {
	Clock() (left, right int32)
}

// PSGChip is the narrow interface the scheduler drives the PSG through.
type PSGChip interface {
	Clock()
	Sample() float32
}

// ScanlineFunc is invoked once per active scanline, after that scanline's
// 68k/Z80 cycles have run, so the host's VDP collaborator can render it.
type ScanlineFunc func(scanline int)

// AudioFunc is invoked exactly once per field, after the scanline loop, with
// the field's accumulated FM and PSG samples for the host's Mixer to drain.
// fmSamples is interleaved left/right pairs (twice the sample count, already
// panned per channel); psgSamples is mono, one sample per element.
type AudioFunc func(fmSamples []int32, psgSamples []float32)

// Scheduler coordinates one field of 68k/Z80/FM/PSG execution.
type Scheduler struct {
	tvStandard  TVStandard
	m68kDeficit uint64
	z80Deficit  uint64
	fmDeficit   uint64
	psgDeficit  uint64

	m68k CPU68k
	z80  Z80CPU
	fm   FMChip
	psg  PSGChip

	onScanline ScanlineFunc
	onAudio    AudioFunc

	fmBuffer  []int32
	psgBuffer []float32

	frameCounter uint64
	currentLine  int
}

// New creates a scheduler wired to the four components it drives.
func New(m68k CPU68k, z80 Z80CPU, fm FMChip, psg PSGChip) *Scheduler {
	return &Scheduler{
		tvStandard: TVStandardNTSC,
		m68k:       m68k,
		z80:        z80,
		fm:         fm,
		psg:        psg,
	}
}

// SetTVStandard selects NTSC or PAL field geometry.
func (s *Scheduler) SetTVStandard(standard TVStandard) {
	s.tvStandard = standard
}

// SetScanlineCallback installs the per-scanline VDP collaborator hook.
func (s *Scheduler) SetScanlineCallback(fn ScanlineFunc) {
	s.onScanline = fn
}

// SetAudioCallback installs the end-of-field Mixer hook.
func (s *Scheduler) SetAudioCallback(fn AudioFunc) {
	s.onAudio = fn
}

func (s *Scheduler) totalLines() int {
	if s.tvStandard == TVStandardPAL {
		return linesPAL
	}
	return linesNTSC
}

// MasterClockHz returns the master clock rate for the current TV standard.
func (s *Scheduler) MasterClockHz() uint64 {
	if s.tvStandard == TVStandardPAL {
		return masterClockPAL
	}
	return masterClockNTSC
}

// FrameCounter returns the number of fields iterated so far.
func (s *Scheduler) FrameCounter() uint64 {
	return s.frameCounter
}

// Scanline returns the scanline Iterate is currently stepping, for trace
// tooling that needs to correlate CPU state with video timing.
func (s *Scheduler) Scanline() int {
	return s.currentLine
}

// CycleInScanline always reads 0: this scheduler steps a whole scanline's
// worth of master clock cycles per stepComponents call rather than cycle by
// cycle, so no finer-grained position within a scanline is ever tracked.
func (s *Scheduler) CycleInScanline() int {
	return 0
}

// VBlank reports whether the scanline Iterate is currently stepping falls
// in the vertical blanking region.
func (s *Scheduler) VBlank() bool {
	return s.currentLine >= activeLines
}

// Iterate produces exactly one video field: it steps every scanline's worth
// of 68k/Z80 cycles, invokes the scanline callback for each active line,
// raises VBlank/HBlank at the correct boundaries, and finally delivers one
// field's worth of accumulated FM+PSG samples to the audio callback.
//
// Cancellation: none. Iterate always completes a whole field; the host
// simply chooses not to call it while paused.
func (s *Scheduler) Iterate() {
	total := s.totalLines()

	for line := 0; line < total; line++ {
		s.currentLine = line
		s.stepComponents(masterCyclesPerScanline)

		if line == activeLines {
			s.m68k.Interrupt(vblankInterruptLevel)
		}
		if line < activeLines {
			// HBlank fires every active line in this core: the real
			// VDP's programmable H-interrupt counter (register 0x0A)
			// can skip lines, but that register lives in the VDP
			// collaborator, out of this core's hard scope.
			s.m68k.Interrupt(hblankInterruptLevel)
			if s.onScanline != nil {
				s.onScanline(line)
			}
		}
	}

	if s.onAudio != nil {
		s.onAudio(s.fmBuffer, s.psgBuffer)
	}
	s.fmBuffer = s.fmBuffer[:0]
	s.psgBuffer = s.psgBuffer[:0]
	s.frameCounter++
}

func (s *Scheduler) stepComponents(mclkCycles uint64) {
	s.m68kDeficit += mclkCycles
	if m68kCycles := s.m68kDeficit / m68kDivisor; m68kCycles > 0 {
		s.m68kDeficit %= m68kDivisor
		s.m68k.RunCycles(m68kCycles)
	}

	s.z80Deficit += mclkCycles
	if z80Cycles := s.z80Deficit / z80Divisor; z80Cycles > 0 {
		s.z80Deficit %= z80Divisor
		s.z80.RunCycles(z80Cycles)
	}

	s.fmDeficit += mclkCycles
	if fmCycles := s.fmDeficit / fmDivisor; fmCycles > 0 {
		s.fmDeficit %= fmDivisor
		for i := uint64(0); i < fmCycles; i++ {
			left, right := s.fm.Clock()
			s.fmBuffer = append(s.fmBuffer, left, right)
		}
	}

	s.psgDeficit += mclkCycles
	if psgCycles := s.psgDeficit / psgDivisor; psgCycles > 0 {
		s.psgDeficit %= psgDivisor
		for i := uint64(0); i < psgCycles; i++ {
			s.psg.Clock()
			s.psgBuffer = append(s.psgBuffer, s.psg.Sample())
		}
	}
}

// Reset clears all deficit counters and the frame counter. The driven
// components' own Reset methods are the host's responsibility.
func (s *Scheduler) Reset() {
	s.m68kDeficit = 0
	s.z80Deficit = 0
	s.fmDeficit = 0
	s.psgDeficit = 0
	s.frameCounter = 0
	s.currentLine = 0
	s.fmBuffer = s.fmBuffer[:0]
	s.psgBuffer = s.psgBuffer[:0]
}
