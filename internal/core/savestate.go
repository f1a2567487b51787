package core

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"genesis-core-dx/internal/controller"
	"genesis-core-dx/internal/m68k"
	"genesis-core-dx/internal/z80"
)

func init() {
	gob.Register(SaveState{})
	gob.Register(m68k.State{})
	gob.Register(z80.State{})
	gob.Register(controller.State{})
	gob.Register(controller.PortBankState{})
}

// saveStateVersion is bumped whenever SaveState's shape changes in a way
// that breaks compatibility with previously saved data.
const saveStateVersion = 1

// SaveState is a complete snapshot of the core's emulated state, excluding
// the loaded ROM image (the host is expected to already have it) and the
// FM/PSG chips' internal oscillator state, which isn't preserved: see
// the DESIGN.md entry for this package.
type SaveState struct {
	Version uint16

	CPU m68k.State
	Z80 z80.State

	WorkRAM [65536]uint8
	Z80RAM  [0x2000]uint8

	Pad1     controller.State
	Pad2     controller.State
	PortBank controller.PortBankState

	Region Region

	Running bool
	Paused  bool
}

// SaveState serializes the core's current state to a byte slice.
func (c *Core) SaveState() ([]byte, error) {
	state := SaveState{
		Version:  saveStateVersion,
		CPU:      c.CPU.State(),
		Z80:      c.Z80.State(),
		WorkRAM:  c.Bus.WorkRAM,
		Z80RAM:   c.Z80Bus.RAM,
		Pad1:     c.Pad1.State(),
		Pad2:     c.Pad2.State(),
		PortBank: c.Ports.State(),
		Region:   c.region,
		Running:  c.Running,
		Paused:   c.Paused,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("failed to encode save state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a previously captured state. The core must already
// have the same ROM loaded: LoadState does not touch Cart.
func (c *Core) LoadState(data []byte) error {
	var state SaveState
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&state); err != nil {
		return fmt.Errorf("failed to decode save state: %w", err)
	}
	if state.Version != saveStateVersion {
		return fmt.Errorf("unsupported save state version: %d (expected %d)", state.Version, saveStateVersion)
	}

	c.CPU.SetState(state.CPU)
	c.Z80.SetState(state.Z80)
	c.Bus.WorkRAM = state.WorkRAM
	c.Z80Bus.RAM = state.Z80RAM
	c.Pad1.SetState(state.Pad1)
	c.Pad2.SetState(state.Pad2)
	c.Ports.SetState(state.PortBank)
	c.region = state.Region
	c.Running = state.Running
	c.Paused = state.Paused

	return nil
}

// SaveStateToFile writes a save state to disk.
func (c *Core) SaveStateToFile(filename string) error {
	data, err := c.SaveState()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadStateFromFile restores a save state previously written by
// SaveStateToFile.
func (c *Core) LoadStateFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read save state file: %w", err)
	}
	return c.LoadState(data)
}
