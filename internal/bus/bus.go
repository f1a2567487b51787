// Package bus implements the Mega Drive's two independent address spaces:
// the 68000's 24-bit bus (ROM, work RAM, the Z80 bus window, VDP/PSG ports,
// controller I/O) and the Z80's own 16-bit bus (its 8K sound RAM, a mirror
// window into the 68k's bank-selected ROM/RAM, and direct YM2612 ports).
package bus

import (
	"fmt"

	"genesis-core-dx/internal/debug"
)

// IOHandler is the narrow interface every memory-mapped device on either
// bus is reached through. Offsets are already relative to the device's own
// window, not the absolute bus address.
type IOHandler interface {
	Read8(offset uint32) uint8
	Write8(offset uint32, value uint8)
}

// Bus is the 68000's view of Mega Drive memory.
type Bus struct {
	Cartridge *Cartridge

	// 64KB of work RAM, mirrored across 0xE00000-0xFFFFFF.
	WorkRAM [65536]uint8

	VDP        IOHandler // 0xC00000-0xC0001F window (data/control/HV counter)
	Controller IOHandler // 0xA10000-0xA1001F window (version reg + 3 ports)
	Z80        *Z80Bridge

	logger *debug.Logger
}

// NewBus creates a 68k bus over the given cartridge.
func NewBus(cart *Cartridge) *Bus {
	return &Bus{Cartridge: cart}
}

// SetLogger attaches a debug logger.
func (b *Bus) SetLogger(logger *debug.Logger) {
	b.logger = logger
}

// Read8 reads a byte from 68k address space.
func (b *Bus) Read8(address uint32) uint8 {
	address &= 0xFFFFFF

	switch {
	case address < 0x400000:
		if b.Cartridge != nil {
			return b.Cartridge.Read8(address)
		}
		return 0xFF

	case address >= 0xA00000 && address < 0xA10000:
		if b.Z80 != nil {
			return b.Z80.ReadFrom68k(address - 0xA00000)
		}
		return 0xFF

	case address&0xFFFF00 == 0xA11100:
		if b.Z80 != nil {
			return b.Z80.ReadBusRequest()
		}
		return 0xFF

	case address&0xFFFF00 == 0xA11200:
		return 0xFF

	case address >= 0xA10000 && address < 0xA10020:
		if b.Controller != nil {
			return b.Controller.Read8(address - 0xA10000)
		}
		return 0xFF

	case address >= 0xC00000 && address < 0xC00020:
		if b.VDP != nil {
			return b.VDP.Read8(address - 0xC00000)
		}
		return 0

	case address >= 0xE00000:
		return b.WorkRAM[address&0xFFFF]

	default:
		if b.logger != nil {
			b.logger.LogBus(debug.LogLevelTrace, fmt.Sprintf("read from unmapped address 0x%06X", address), nil)
		}
		return 0xFF
	}
}

// Write8 writes a byte to 68k address space.
func (b *Bus) Write8(address uint32, value uint8) {
	address &= 0xFFFFFF

	switch {
	case address < 0x400000:
		// ROM is read-only; writes are ignored.

	case address >= 0xA00000 && address < 0xA10000:
		if b.Z80 != nil {
			b.Z80.WriteFrom68k(address-0xA00000, value)
		}

	case address&0xFFFF00 == 0xA11100:
		if b.Z80 != nil {
			b.Z80.WriteBusRequest(value)
		}

	case address&0xFFFF00 == 0xA11200:
		if b.Z80 != nil {
			b.Z80.WriteReset(value)
		}

	case address >= 0xA10000 && address < 0xA10020:
		if b.Controller != nil {
			b.Controller.Write8(address-0xA10000, value)
		}

	case address >= 0xC00000 && address < 0xC00020:
		if b.VDP != nil {
			b.VDP.Write8(address-0xC00000, value)
		}

	case address >= 0xE00000:
		b.WorkRAM[address&0xFFFF] = value

	default:
		if b.logger != nil {
			b.logger.LogBus(debug.LogLevelTrace, fmt.Sprintf("write to unmapped address 0x%06X = 0x%02X", address, value), nil)
		}
	}
}

// Read16 reads a big-endian word. The 68000 requires word/long accesses to
// be aligned; callers are expected to mask odd addresses before calling.
func (b *Bus) Read16(address uint32) uint16 {
	hi := b.Read8(address)
	lo := b.Read8(address + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 writes a big-endian word.
func (b *Bus) Write16(address uint32, value uint16) {
	b.Write8(address, uint8(value>>8))
	b.Write8(address+1, uint8(value))
}

// Read32 reads a big-endian longword.
func (b *Bus) Read32(address uint32) uint32 {
	return uint32(b.Read16(address))<<16 | uint32(b.Read16(address+2))
}

// Write32 writes a big-endian longword.
func (b *Bus) Write32(address uint32, value uint32) {
	b.Write16(address, uint16(value>>16))
	b.Write16(address+2, uint16(value))
}
