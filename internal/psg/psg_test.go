package psg

import "testing"

func TestWriteLatchesToneAndVolume(t *testing.T) {
	c := New()

	// Latch channel 0 tone low nibble to 0x5, then high 6 bits to 0x01.
	c.Write8(0, 0x85)
	c.Write8(0, 0x01)

	// Latch channel 0 volume to 0 (max volume).
	c.Write8(0, 0x90)

	for i := 0; i < 1000; i++ {
		c.Clock()
	}

	if s := c.Sample(); s == 0 {
		t.Fatalf("expected nonzero sample with tone active and volume at max, got %v", s)
	}
}

func TestReadIsOpenBus(t *testing.T) {
	c := New()
	if got := c.Read8(0); got != 0xFF {
		t.Fatalf("expected open-bus 0xFF on PSG read, got 0x%02X", got)
	}
}
