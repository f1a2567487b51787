package core

import (
	"bytes"
	"encoding/gob"
	"testing"

	"genesis-core-dx/internal/controller"
)

// minimalROM builds a 0x400-byte cartridge image (LoadROM accepts anything
// from 0x200 bytes up): a 512-byte vector area holding only the reset SP/PC,
// then 0x200 bytes of NOPs (0x4E71) so the 68000 has something harmless to
// run.
func minimalROM(resetPC uint32) []uint8 {
	rom := make([]uint8, 0x400)
	putLong := func(off uint32, v uint32) {
		rom[off] = uint8(v >> 24)
		rom[off+1] = uint8(v >> 16)
		rom[off+2] = uint8(v >> 8)
		rom[off+3] = uint8(v)
	}
	putLong(0, 0x00FFFFFE) // initial SSP
	putLong(4, resetPC)    // initial PC
	for i := uint32(0x200); i < uint32(len(rom)); i += 2 {
		rom[i] = 0x4E
		rom[i+1] = 0x71 // NOP
	}
	return rom
}

func TestNewWiresAllComponents(t *testing.T) {
	c := New(44100)
	if c.CPU == nil || c.Z80 == nil || c.Bus == nil || c.Z80Bus == nil {
		t.Fatal("New left a core component nil")
	}
	if c.Scheduler == nil || c.Mixer == nil {
		t.Fatal("New left scheduler or mixer nil")
	}
	if c.Bus.Z80 != c.Z80Bus {
		t.Error("bus does not reference the same Z80 bridge the core holds")
	}
	if c.Bus.Controller != c.Ports {
		t.Error("bus does not reference the same port bank the core holds")
	}
}

func TestLoadROMSetsResetVector(t *testing.T) {
	c := New(44100)
	if err := c.LoadROM(minimalROM(0x200)); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	if c.CPU.PC != 0x200 {
		t.Errorf("PC after LoadROM = 0x%X, want 0x200", c.CPU.PC)
	}
}

func TestIterateAdvancesWithoutPanicking(t *testing.T) {
	c := New(44100)
	if err := c.LoadROM(minimalROM(0x200)); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}

	scanlines := 0
	c.SetVideoOut(videoOutFunc(func(int) { scanlines++ }))

	audioFields := 0
	c.SetAudioOut(audioOutFunc(func([]int16) { audioFields++ }))

	for i := 0; i < 5; i++ {
		c.Iterate()
	}

	if scanlines == 0 {
		t.Error("Iterate produced no scanline callbacks across 5 fields")
	}
}

func TestSetRegionSetsVersionRegisterAndTVStandard(t *testing.T) {
	c := New(44100)

	c.SetRegion(RegionJapan)
	if c.Ports.VersionRegister != 0x00 {
		t.Errorf("Japan version register = 0x%02X, want 0x00", c.Ports.VersionRegister)
	}
	if hz := c.Scheduler.MasterClockHz(); hz != 53693175 {
		t.Errorf("Japan master clock = %d Hz, want NTSC 53693175", hz)
	}

	c.SetRegion(RegionEurope)
	if c.Ports.VersionRegister != 0xC0 {
		t.Errorf("Europe version register = 0x%02X, want 0xC0", c.Ports.VersionRegister)
	}
	if hz := c.Scheduler.MasterClockHz(); hz != 53203424 {
		t.Errorf("Europe master clock = %d Hz, want PAL 53203424", hz)
	}

	c.SetRegion(RegionAmericas)
	if c.Ports.VersionRegister != 0xA0 {
		t.Errorf("Americas version register = 0x%02X, want 0xA0", c.Ports.VersionRegister)
	}
	if hz := c.Scheduler.MasterClockHz(); hz != 53693175 {
		t.Errorf("Americas master clock = %d Hz, want NTSC 53693175", hz)
	}
}

func TestSaveStateRoundTripsCPUAndRAM(t *testing.T) {
	c := New(44100)
	if err := c.LoadROM(minimalROM(0x200)); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}

	c.CPU.D[0] = 0xDEADBEEF
	c.Bus.WorkRAM[0x1000] = 0xAB
	c.Z80Bus.RAM[0x10] = 0x42
	c.SetButtonState(1, controller.ButtonStart, true)
	c.Pad1.Write(0x40, 0) // strobe TH high once, advancing the strobe counter

	saved, err := c.SaveState()
	if err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	c.CPU.D[0] = 0
	c.Bus.WorkRAM[0x1000] = 0
	c.Z80Bus.RAM[0x10] = 0
	c.Pad1.Reset()

	if err := c.LoadState(saved); err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}

	if c.CPU.D[0] != 0xDEADBEEF {
		t.Errorf("D0 not restored: got 0x%X", c.CPU.D[0])
	}
	if c.Bus.WorkRAM[0x1000] != 0xAB {
		t.Errorf("WorkRAM[0x1000] not restored: got 0x%02X", c.Bus.WorkRAM[0x1000])
	}
	if c.Z80Bus.RAM[0x10] != 0x42 {
		t.Errorf("Z80 RAM[0x10] not restored: got 0x%02X", c.Z80Bus.RAM[0x10])
	}
	if c.Pad1.State().Strobes == 0 {
		t.Error("controller strobe state not restored")
	}
}

func TestSaveStateRejectsMismatchedVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(SaveState{Version: saveStateVersion + 1}); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	c := New(44100)
	if err := c.LoadState(buf.Bytes()); err == nil {
		t.Error("LoadState accepted a save state with the wrong version")
	}
}

type videoOutFunc func(line int)

func (f videoOutFunc) RenderScanline(line int) { f(line) }

type audioOutFunc func(frames []int16)

func (f audioOutFunc) PushAudio(frames []int16) { f(frames) }
