package debug

import (
	"fmt"
	"os"
	"sync"
)

// MemoryReader reads the 68k bus (to avoid import cycles with internal/bus)
type MemoryReader interface {
	Read8(address uint32) uint8
}

// SchedulerStateReader reads frame/scanline timing state (to avoid import
// cycles with internal/scheduler)
type SchedulerStateReader interface {
	Scanline() int
	CycleInScanline() int
	VBlank() bool
	FrameCounter() uint32
}

// M68KStateSnapshot captures 68000 register state for a single logged step
type M68KStateSnapshot struct {
	D       [8]uint32
	A       [8]uint32
	PC      uint32
	SR      uint16
	Cycles  uint64
}

// CycleLogger logs CPU register and scheduler state once per stepped
// instruction. Useful for diffing traces against a reference emulator when
// tracking down timing-sensitive bugs.
type CycleLogger struct {
	file         *os.File
	maxCycles    uint64
	startCycle   uint64
	currentCycle uint64
	totalCycles  uint64
	enabled      bool
	mu           sync.Mutex

	bus MemoryReader
	sch SchedulerStateReader
}

// NewCycleLogger creates a new cycle logger.
// maxCycles: maximum number of steps to log (0 = unlimited).
// startCycle: the first step number logged, counting from 1 (0 or 1 = start immediately).
func NewCycleLogger(filename string, maxCycles uint64, startCycle uint64, bus MemoryReader, sch SchedulerStateReader) (*CycleLogger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create cycle log file: %w", err)
	}

	logger := &CycleLogger{
		file:       file,
		maxCycles:  maxCycles,
		startCycle: startCycle,
		enabled:    true,
		bus:        bus,
		sch:        sch,
	}

	fmt.Fprintf(file, "Cycle-by-cycle debug log\n========================\n\n")
	if startCycle > 0 {
		fmt.Fprintf(file, "Start step offset: %d\n", startCycle)
	}
	if maxCycles > 0 {
		fmt.Fprintf(file, "Max steps to log: %d\n", maxCycles)
	}
	fmt.Fprintf(file, "\nFormat: Step | PC | D0-D7 | A0-A7 | SR | Scanline/Cycle/VBlank/Frame\n\n")

	return logger, nil
}

// LogStep logs the 68k register state and scheduler timing for one step
func (c *CycleLogger) LogStep(snap *M68KStateSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}

	c.totalCycles++

	if c.totalCycles < c.startCycle {
		return
	}
	if c.maxCycles > 0 && c.currentCycle >= c.maxCycles {
		c.enabled = false
		return
	}
	c.currentCycle++

	scanline, cycleInLine, vblank, frame := -1, -1, false, uint32(0)
	if c.sch != nil {
		scanline = c.sch.Scanline()
		cycleInLine = c.sch.CycleInScanline()
		vblank = c.sch.VBlank()
		frame = c.sch.FrameCounter()
	}

	fmt.Fprintf(c.file, "Step %8d | PC:%08X | ", c.totalCycles, snap.PC)
	for i, d := range snap.D {
		fmt.Fprintf(c.file, "D%d:%08X ", i, d)
	}
	for i, a := range snap.A {
		fmt.Fprintf(c.file, "A%d:%08X ", i, a)
	}
	fmt.Fprintf(c.file, "| SR:%04X | SL:%04d Cyc:%04d VB:%v Frame:%d\n",
		snap.SR, scanline, cycleInLine, vblank, frame)
}

// SetEnabled enables or disables logging
func (c *CycleLogger) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Toggle toggles logging on/off
func (c *CycleLogger) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
}

// Close closes the log file
func (c *CycleLogger) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enabled = false

	if c.file != nil {
		fmt.Fprintf(c.file, "\n\nLog complete. Total steps logged: %d\n", c.currentCycle)
		err := c.file.Close()
		c.file = nil
		return err
	}
	return nil
}

// IsEnabled returns whether logging is enabled
func (c *CycleLogger) IsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && (c.maxCycles == 0 || c.currentCycle < c.maxCycles)
}

// GetStatus returns the current logging status
func (c *CycleLogger) GetStatus() (enabled bool, currentCycle uint64, totalCycles uint64, maxCycles uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled, c.currentCycle, c.totalCycles, c.maxCycles
}
