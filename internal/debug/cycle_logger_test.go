package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeBus struct{}

func (fakeBus) Read8(address uint32) uint8 { return 0 }

type fakeScheduler struct {
	scanline int
	frame    uint32
	vblank   bool
}

func (f *fakeScheduler) Scanline() int        { return f.scanline }
func (f *fakeScheduler) CycleInScanline() int { return 0 }
func (f *fakeScheduler) VBlank() bool         { return f.vblank }
func (f *fakeScheduler) FrameCounter() uint32 { return f.frame }

func TestCycleLoggerLogsSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	sch := &fakeScheduler{scanline: 10, frame: 3}

	logger, err := NewCycleLogger(path, 0, 0, fakeBus{}, sch)
	if err != nil {
		t.Fatalf("NewCycleLogger: %v", err)
	}

	logger.LogStep(&M68KStateSnapshot{PC: 0x1234, SR: 0x2700})
	sch.scanline = 11
	logger.LogStep(&M68KStateSnapshot{PC: 0x1236, SR: 0x2700})

	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	contents := string(data)
	if !strings.Contains(contents, "PC:00001234") {
		t.Fatalf("expected first logged PC in file, got:\n%s", contents)
	}
	if !strings.Contains(contents, "PC:00001236") {
		t.Fatalf("expected second logged PC in file, got:\n%s", contents)
	}
	if !strings.Contains(contents, "SL:0010") {
		t.Fatalf("expected first scanline recorded, got:\n%s", contents)
	}
	if !strings.Contains(contents, "Frame:3") {
		t.Fatalf("expected frame counter recorded, got:\n%s", contents)
	}
}

func TestCycleLoggerStartCycleDelaysLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	logger, err := NewCycleLogger(path, 0, 3, fakeBus{}, &fakeScheduler{})
	if err != nil {
		t.Fatalf("NewCycleLogger: %v", err)
	}

	for i := 0; i < 2; i++ {
		logger.LogStep(&M68KStateSnapshot{PC: uint32(i)})
	}
	logger.LogStep(&M68KStateSnapshot{PC: 0xDEAD})
	logger.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "PC:00000000") {
		t.Fatalf("expected steps before startCycle to be skipped, got:\n%s", data)
	}
	if !strings.Contains(string(data), "PC:0000DEAD") {
		t.Fatalf("expected the step at the start offset to be logged, got:\n%s", data)
	}
}

func TestCycleLoggerMaxCyclesStopsLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	logger, err := NewCycleLogger(path, 1, 0, fakeBus{}, &fakeScheduler{})
	if err != nil {
		t.Fatalf("NewCycleLogger: %v", err)
	}

	logger.LogStep(&M68KStateSnapshot{PC: 0x1})
	logger.LogStep(&M68KStateSnapshot{PC: 0x2})
	logger.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "PC:00000002") {
		t.Fatalf("expected logging to stop once maxCycles steps were recorded, got:\n%s", data)
	}
	if !strings.Contains(string(data), "PC:00000001") {
		t.Fatalf("expected the one allowed step to be logged, got:\n%s", data)
	}
}

func TestCycleLoggerToggleAndSetEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	logger, err := NewCycleLogger(path, 0, 0, fakeBus{}, &fakeScheduler{})
	if err != nil {
		t.Fatalf("NewCycleLogger: %v", err)
	}
	defer logger.Close()

	if !logger.IsEnabled() {
		t.Fatalf("expected logger to start enabled")
	}

	logger.Toggle()
	if logger.IsEnabled() {
		t.Fatalf("expected Toggle to disable an enabled logger")
	}
	logger.LogStep(&M68KStateSnapshot{PC: 0xFF})

	logger.SetEnabled(true)
	if !logger.IsEnabled() {
		t.Fatalf("expected SetEnabled(true) to re-enable logging")
	}

	enabled, current, total, max := logger.GetStatus()
	if !enabled || max != 0 {
		t.Fatalf("unexpected status: enabled=%v current=%d total=%d max=%d", enabled, current, total, max)
	}
}
