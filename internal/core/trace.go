package core

import "genesis-core-dx/internal/debug"

// cpuTraceAdapter is the single m68k.Logger installed on Core.CPU once
// either a cycle-by-cycle trace or a debugger is enabled. It fans the
// per-instruction hook the 68k interpreter already calls unconditionally
// (internal/m68k/cpu.go's step) out to whichever of the two collaborators
// is attached, rather than making CPU.Log a multi-listener broadcast type.
type cpuTraceAdapter struct {
	cycleLogger *debug.CycleLogger
	debugger    *debug.Debugger
}

func (a *cpuTraceAdapter) LogM68K(pc uint32, instruction uint16, d [8]uint32, regA [8]uint32, sr uint16) {
	if a.cycleLogger != nil {
		a.cycleLogger.LogStep(&debug.M68KStateSnapshot{D: d, A: regA, PC: pc, SR: sr})
	}
	if a.debugger != nil {
		// ShouldBreak both counts breakpoint hits and advances single-step
		// mode. Neither actually suspends the 68k here: this core runs the
		// 68k in cycle-deficit batches (RunCycles), not one instruction at a
		// time, so there is no safe mid-batch point to pause from an
		// instruction-boundary hook. A hit only increments the breakpoint's
		// HitCount (readable through GetBreakpoint after each Iterate);
		// IsPaused turns true only through Pause or an exhausted Step count.
		a.debugger.ShouldBreak(pc)
	}
}

// schedulerTrace adapts *scheduler.Scheduler to debug.SchedulerStateReader,
// which can't import internal/scheduler directly without creating an
// import cycle (internal/scheduler has no reason to know about
// internal/debug).
type schedulerTrace struct {
	sched interface {
		Scanline() int
		CycleInScanline() int
		VBlank() bool
		FrameCounter() uint64
	}
}

func (s schedulerTrace) Scanline() int        { return s.sched.Scanline() }
func (s schedulerTrace) CycleInScanline() int { return s.sched.CycleInScanline() }
func (s schedulerTrace) VBlank() bool         { return s.sched.VBlank() }
func (s schedulerTrace) FrameCounter() uint32 { return uint32(s.sched.FrameCounter()) }

// installTraceAdapter lazily (re)builds the CPU's Logger from whichever of
// cycleLogger/debugger are currently attached, or clears it if neither is.
func (c *Core) installTraceAdapter() {
	if c.cycleLogger == nil && c.Debugger == nil {
		c.CPU.Log = nil
		return
	}
	c.CPU.Log = &cpuTraceAdapter{cycleLogger: c.cycleLogger, debugger: c.Debugger}
}

// EnableDebugger attaches a fresh debugger (breakpoints, watches, call
// stack, variable tracking) to the core and returns it for the host to
// drive directly.
func (c *Core) EnableDebugger() *debug.Debugger {
	c.Debugger = debug.NewDebugger()
	c.installTraceAdapter()
	return c.Debugger
}

// DisableDebugger detaches the debugger.
func (c *Core) DisableDebugger() {
	c.Debugger = nil
	c.installTraceAdapter()
}

// EnableCycleTrace starts logging every 68k instruction's register and
// scanline-timing state to filename, for diffing traces against a reference
// emulator. maxCycles limits how many steps are logged (0 = unlimited);
// logging begins with step number startCycle, counting from 1 (0 or 1 =
// start immediately).
func (c *Core) EnableCycleTrace(filename string, maxCycles, startCycle uint64) error {
	logger, err := debug.NewCycleLogger(filename, maxCycles, startCycle, c.Bus, schedulerTrace{sched: c.Scheduler})
	if err != nil {
		return err
	}
	c.cycleLogger = logger
	c.installTraceAdapter()
	return nil
}

// DisableCycleTrace stops and closes the active cycle trace, if any.
func (c *Core) DisableCycleTrace() error {
	if c.cycleLogger == nil {
		return nil
	}
	err := c.cycleLogger.Close()
	c.cycleLogger = nil
	c.installTraceAdapter()
	return err
}
