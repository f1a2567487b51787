package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableDebuggerCountsBreakpointHits(t *testing.T) {
	c := New(44100)
	if err := c.LoadROM(minimalROM(0x200)); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}

	dbg := c.EnableDebugger()
	if dbg == nil || c.Debugger != dbg {
		t.Fatalf("EnableDebugger did not attach a debugger to the core")
	}
	if c.CPU.Log == nil {
		t.Fatalf("expected EnableDebugger to install a Logger on the CPU")
	}

	key := dbg.SetBreakpoint(0x200)
	for i := 0; i < 3; i++ {
		c.Iterate()
	}

	bp, ok := dbg.GetBreakpoint(key)
	if !ok {
		t.Fatalf("expected breakpoint to still exist")
	}
	if bp.HitCount == 0 {
		t.Fatalf("expected the reset vector breakpoint to be hit at least once across 3 fields")
	}

	c.DisableDebugger()
	if c.Debugger != nil {
		t.Fatalf("expected DisableDebugger to clear Core.Debugger")
	}
	if c.CPU.Log != nil {
		t.Fatalf("expected DisableDebugger to clear CPU.Log when no cycle trace is active")
	}
}

func TestEnableCycleTraceWritesInstructionLog(t *testing.T) {
	c := New(44100)
	if err := c.LoadROM(minimalROM(0x200)); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "trace.log")
	if err := c.EnableCycleTrace(path, 0, 0); err != nil {
		t.Fatalf("EnableCycleTrace failed: %v", err)
	}
	if c.CPU.Log == nil {
		t.Fatalf("expected EnableCycleTrace to install a Logger on the CPU")
	}

	c.Iterate()

	if err := c.DisableCycleTrace(); err != nil {
		t.Fatalf("DisableCycleTrace failed: %v", err)
	}
	if c.CPU.Log != nil {
		t.Fatalf("expected DisableCycleTrace to clear CPU.Log when no debugger is active")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading trace file: %v", err)
	}
	if !strings.Contains(string(data), "PC:00000200") {
		t.Fatalf("expected the reset PC to appear in the trace log, got:\n%s", data)
	}
}

func TestDebuggerAndCycleTraceCoexist(t *testing.T) {
	c := New(44100)
	if err := c.LoadROM(minimalROM(0x200)); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "trace.log")
	if err := c.EnableCycleTrace(path, 0, 0); err != nil {
		t.Fatalf("EnableCycleTrace failed: %v", err)
	}
	dbg := c.EnableDebugger()
	dbg.SetBreakpoint(0x200)

	c.Iterate()

	if err := c.DisableCycleTrace(); err != nil {
		t.Fatalf("DisableCycleTrace failed: %v", err)
	}
	if c.CPU.Log == nil {
		t.Fatalf("expected CPU.Log to remain installed while the debugger is still attached")
	}

	c.DisableDebugger()
	if c.CPU.Log != nil {
		t.Fatalf("expected CPU.Log to clear once both collaborators are detached")
	}
}
