package scheduler

import "testing"

type fake68k struct {
	cyclesRun       uint64
	interruptLevels []uint8
}

func (f *fake68k) RunCycles(cycles uint64) uint64 {
	f.cyclesRun += cycles
	return cycles
}

func (f *fake68k) Interrupt(level uint8) {
	f.interruptLevels = append(f.interruptLevels, level)
}

type fakeZ80 struct {
	cyclesRun uint64
}

func (f *fakeZ80) RunCycles(cycles uint64) uint64 {
	f.cyclesRun += cycles
	return cycles
}

type fakeFM struct {
	clocks int
}

func (f *fakeFM) Clock() (left, right int32) {
	f.clocks++
	return int32(f.clocks), int32(f.clocks)
}

type fakePSG struct {
	clocks int
}

func (f *fakePSG) Clock() {
	f.clocks++
}

func (f *fakePSG) Sample() float32 {
	return float32(f.clocks)
}

func TestIterateRunsOneField(t *testing.T) {
	m68k := &fake68k{}
	z80 := &fakeZ80{}
	fm := &fakeFM{}
	psg := &fakePSG{}

	s := New(m68k, z80, fm, psg)

	scanlinesSeen := 0
	s.SetScanlineCallback(func(line int) {
		scanlinesSeen++
	})

	var gotFM []int32
	var gotPSG []float32
	s.SetAudioCallback(func(fmSamples []int32, psgSamples []float32) {
		gotFM = append([]int32(nil), fmSamples...)
		gotPSG = append([]float32(nil), psgSamples...)
	})

	s.Iterate()

	if scanlinesSeen != activeLines {
		t.Fatalf("expected %d active scanlines, got %d", activeLines, scanlinesSeen)
	}
	if m68k.cyclesRun == 0 {
		t.Fatalf("expected 68k to have run cycles")
	}
	if z80.cyclesRun == 0 {
		t.Fatalf("expected Z80 to have run cycles")
	}
	if len(gotFM) == 0 {
		t.Fatalf("expected FM samples to be delivered at end of field")
	}
	if len(gotPSG) == 0 {
		t.Fatalf("expected PSG samples to be delivered at end of field")
	}

	foundVBlank := false
	for _, level := range m68k.interruptLevels {
		if level == vblankInterruptLevel {
			foundVBlank = true
		}
	}
	if !foundVBlank {
		t.Fatalf("expected a level-6 VBlank interrupt to be raised during the field")
	}

	if s.FrameCounter() != 1 {
		t.Fatalf("expected frame counter to be 1 after one Iterate, got %d", s.FrameCounter())
	}
}

func TestPALHasMoreScanlinesThanNTSC(t *testing.T) {
	s := New(&fake68k{}, &fakeZ80{}, &fakeFM{}, &fakePSG{})
	s.SetTVStandard(TVStandardPAL)
	if s.totalLines() != linesPAL {
		t.Fatalf("expected PAL total lines %d, got %d", linesPAL, s.totalLines())
	}
}
