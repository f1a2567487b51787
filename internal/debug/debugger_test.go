package debug

import "testing"

func TestBreakpointSetCheckRemove(t *testing.T) {
	d := NewDebugger()

	key := d.SetBreakpoint(0x1000)
	if key == "" {
		t.Fatalf("expected non-empty breakpoint key")
	}

	bp, ok := d.GetBreakpoint(key)
	if !ok || bp.Address != 0x1000 || !bp.Enabled {
		t.Fatalf("expected enabled breakpoint at 0x1000, got %+v ok=%v", bp, ok)
	}

	if !d.CheckBreakpoint(0x1000) {
		t.Fatalf("expected CheckBreakpoint to report a hit")
	}
	if bp.HitCount != 1 {
		t.Fatalf("expected hit count 1, got %d", bp.HitCount)
	}
	if d.CheckBreakpoint(0x2000) {
		t.Fatalf("expected no hit at an address with no breakpoint")
	}

	d.DisableBreakpoint(key)
	if d.CheckBreakpoint(0x1000) {
		t.Fatalf("expected a disabled breakpoint to never hit")
	}
	d.EnableBreakpoint(key)
	if !d.CheckBreakpoint(0x1000) {
		t.Fatalf("expected a re-enabled breakpoint to hit again")
	}

	all := d.GetAllBreakpoints()
	if len(all) != 1 {
		t.Fatalf("expected 1 breakpoint, got %d", len(all))
	}

	if !d.RemoveBreakpoint(key) {
		t.Fatalf("expected RemoveBreakpoint to succeed")
	}
	if _, ok := d.GetBreakpoint(key); ok {
		t.Fatalf("expected breakpoint to be gone after removal")
	}
}

func TestClearBreakpoints(t *testing.T) {
	d := NewDebugger()
	d.SetBreakpoint(0x1000)
	d.SetBreakpoint(0x2000)
	d.ClearBreakpoints()
	if len(d.GetAllBreakpoints()) != 0 {
		t.Fatalf("expected no breakpoints after ClearBreakpoints")
	}
}

func TestWatchExpressions(t *testing.T) {
	d := NewDebugger()
	d.AddWatch("D0")
	d.AddWatch("A7")

	watches := d.GetWatches()
	if len(watches) != 2 || watches[0].Expression != "D0" || watches[1].Expression != "A7" {
		t.Fatalf("unexpected watches: %+v", watches)
	}

	if !d.RemoveWatch(0) {
		t.Fatalf("expected RemoveWatch to succeed")
	}
	watches = d.GetWatches()
	if len(watches) != 1 || watches[0].Expression != "A7" {
		t.Fatalf("expected only A7 to remain, got %+v", watches)
	}

	if d.RemoveWatch(5) {
		t.Fatalf("expected RemoveWatch on an out-of-range index to fail")
	}

	d.ClearWatches()
	if len(d.GetWatches()) != 0 {
		t.Fatalf("expected no watches after ClearWatches")
	}
}

func TestPauseResumeStepAndShouldBreak(t *testing.T) {
	d := NewDebugger()

	if d.IsPaused() {
		t.Fatalf("expected debugger to start unpaused")
	}

	d.Pause()
	if !d.IsPaused() {
		t.Fatalf("expected IsPaused after Pause")
	}

	d.Resume()
	if d.IsPaused() {
		t.Fatalf("expected !IsPaused after Resume")
	}

	d.Step(2)
	if !d.ShouldBreak(0x100) {
		t.Fatalf("expected first ShouldBreak call during a 2-step to return true")
	}
	if d.IsPaused() {
		t.Fatalf("expected debugger to still be stepping after the first of 2 steps")
	}
	if !d.ShouldBreak(0x104) {
		t.Fatalf("expected second ShouldBreak call during a 2-step to return true")
	}
	if !d.IsPaused() {
		t.Fatalf("expected debugger to auto-pause once the step count is exhausted")
	}

	d.Resume()
	if d.ShouldBreak(0x108) {
		t.Fatalf("expected ShouldBreak to return false with no breakpoint and no stepping active")
	}

	d.SetBreakpoint(0x200)
	if !d.ShouldBreak(0x200) {
		t.Fatalf("expected ShouldBreak to report a plain breakpoint hit")
	}
}

func TestCallStackPushPop(t *testing.T) {
	d := NewDebugger()

	if frame := d.PopCallFrame(); frame != nil {
		t.Fatalf("expected nil pop from an empty call stack, got %+v", frame)
	}

	d.PushCallFrame(0x1000, "main")
	d.PushCallFrame(0x2000, "subroutine")

	stack := d.GetCallStack()
	if len(stack) != 2 || stack[0].FunctionName != "main" || stack[1].FunctionName != "subroutine" {
		t.Fatalf("unexpected call stack: %+v", stack)
	}

	frame := d.PopCallFrame()
	if frame == nil || frame.FunctionName != "subroutine" {
		t.Fatalf("expected to pop the subroutine frame, got %+v", frame)
	}
	if len(d.GetCallStack()) != 1 {
		t.Fatalf("expected 1 frame remaining after pop")
	}
}

func TestVariableTracking(t *testing.T) {
	d := NewDebugger()

	d.SetVariable("playerX", VariableInfo{Name: "playerX", Type: "uint16", Value: uint16(42), Location: "memory", Address: 0xFF1000})
	info, ok := d.GetVariable("playerX")
	if !ok || info.Value != uint16(42) {
		t.Fatalf("expected playerX=42, got %+v ok=%v", info, ok)
	}

	if _, ok := d.GetVariable("missing"); ok {
		t.Fatalf("expected no variable named 'missing'")
	}

	all := d.GetAllVariables()
	if len(all) != 1 {
		t.Fatalf("expected 1 tracked variable, got %d", len(all))
	}

	d.ClearVariables()
	if len(d.GetAllVariables()) != 0 {
		t.Fatalf("expected no variables after ClearVariables")
	}
}
