package bus

import "fmt"

// Cartridge holds a raw Mega Drive ROM image: 68k machine code and data,
// big-endian, with no emulator-specific header. The reset vector (the ROM's
// own entry point) lives at the fixed Mega Drive convention addresses
// 0x000000 (initial SSP) / 0x000004 (initial PC), not in any side-channel
// metadata — unlike the teacher's custom "RMCF" header format, a real
// cartridge image is self-describing only through that vector table.
type Cartridge struct {
	ROM []uint8
}

// NewCartridge creates an empty cartridge.
func NewCartridge() *Cartridge {
	return &Cartridge{ROM: make([]uint8, 0)}
}

// LoadROM loads a raw ROM image, copied at its exact size; images shorter
// than 0x200 bytes are rejected. No magic number or header is expected or
// consumed.
func (c *Cartridge) LoadROM(data []uint8) error {
	if len(data) < 0x200 {
		return fmt.Errorf("ROM too small to contain a vector table: %d bytes", len(data))
	}
	c.ROM = make([]uint8, len(data))
	copy(c.ROM, data)
	return nil
}

// HasROM reports whether a ROM image is loaded.
func (c *Cartridge) HasROM() bool {
	return len(c.ROM) > 0
}

// Read8 reads a byte from ROM space, mirroring the image across the 4MB
// cartridge window if it is smaller than that.
func (c *Cartridge) Read8(address uint32) uint8 {
	if len(c.ROM) == 0 {
		return 0
	}
	return c.ROM[address%uint32(len(c.ROM))]
}

// EntryPoint returns the initial supervisor stack pointer and program
// counter taken from the cartridge's reset vector (big-endian longwords at
// 0x000000 and 0x000004), per the Mega Drive boot convention.
func (c *Cartridge) EntryPoint() (initialSP, initialPC uint32, err error) {
	if len(c.ROM) < 8 {
		return 0, 0, fmt.Errorf("ROM too small to contain a reset vector")
	}
	read32 := func(off uint32) uint32 {
		return uint32(c.Read8(off))<<24 | uint32(c.Read8(off+1))<<16 |
			uint32(c.Read8(off+2))<<8 | uint32(c.Read8(off+3))
	}
	return read32(0), read32(4), nil
}
