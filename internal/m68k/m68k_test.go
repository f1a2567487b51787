package m68k

import "testing"

// flatMemory is a simple byte-addressable RAM implementing Memory, for
// tests — there's no bus/cartridge wiring needed to exercise the
// interpreter in isolation.
type flatMemory struct {
	ram [1 << 20]byte
}

func (m *flatMemory) Read8(addr uint32) uint8 { return m.ram[addr&0xFFFFF] }
func (m *flatMemory) Write8(addr uint32, v uint8) { m.ram[addr&0xFFFFF] = v }

func (m *flatMemory) Read16(addr uint32) uint16 {
	return uint16(m.Read8(addr))<<8 | uint16(m.Read8(addr+1))
}
func (m *flatMemory) Write16(addr uint32, v uint16) {
	m.Write8(addr, uint8(v>>8))
	m.Write8(addr+1, uint8(v))
}

func (m *flatMemory) Read32(addr uint32) uint32 {
	return uint32(m.Read16(addr))<<16 | uint32(m.Read16(addr+2))
}
func (m *flatMemory) Write32(addr uint32, v uint32) {
	m.Write16(addr, uint16(v>>16))
	m.Write16(addr+2, uint16(v))
}

func newTestCPU() (*CPU, *flatMemory) {
	mem := &flatMemory{}
	// Reset vector: SSP=0x10000, PC=0x2000.
	mem.Write32(0, 0x10000)
	mem.Write32(4, 0x2000)
	cpu := New(mem)
	cpu.Reset()
	return cpu, mem
}

func (m *flatMemory) loadProgram(addr uint32, words ...uint16) {
	for _, w := range words {
		m.Write16(addr, w)
		addr += 2
	}
}

func TestResetReadsVectorTable(t *testing.T) {
	cpu, _ := newTestCPU()
	if cpu.A[7] != 0x10000 {
		t.Fatalf("SSP = %#x, want 0x10000", cpu.A[7])
	}
	if cpu.PC != 0x2000 {
		t.Fatalf("PC = %#x, want 0x2000", cpu.PC)
	}
	if !cpu.supervisor() {
		t.Fatal("expected supervisor mode after reset")
	}
}

func TestMoveWordSetsZeroFlag(t *testing.T) {
	cpu, mem := newTestCPU()
	// MOVE.W #0,D0 -> opcode 0011 000 000 111100, then imm 0x0000.
	mem.loadProgram(0x2000, 0x303C, 0x0000)
	cpu.RunCycles(1)
	if cpu.D[0] != 0 {
		t.Fatalf("D0 = %#x, want 0", cpu.D[0])
	}
	if !cpu.flag(srZero) {
		t.Fatal("expected Z flag set after MOVE.W #0,D0")
	}
}

func TestAddWordSetsCarryAndZero(t *testing.T) {
	cpu, mem := newTestCPU()
	cpu.D[0] = 0xFFFF
	cpu.D[1] = 1
	// ADD.W D1,D0 -> 1101 000 001 000 001: reg=D0(000), opmode=001 (word,
	// ea->Dn), mode=000(Dn), eaReg=D1(001).
	mem.loadProgram(0x2000, 0xD041)
	cpu.RunCycles(1)
	if cpu.D[0] != 0 {
		t.Fatalf("D0 = %#x, want 0 (0xFFFF+1 wraps)", cpu.D[0])
	}
	if !cpu.flag(srCarry) || !cpu.flag(srExtend) {
		t.Fatal("expected carry and extend set on overflowing ADD.W")
	}
	if !cpu.flag(srZero) {
		t.Fatal("expected zero flag set")
	}
}

func TestSubLongSetsNegativeFlag(t *testing.T) {
	cpu, mem := newTestCPU()
	cpu.D[0] = 5
	cpu.D[1] = 10
	// SUB.L D1,D0 -> 1001 000 010 000 001.
	mem.loadProgram(0x2000, 0x9081)
	cpu.RunCycles(1)
	if int32(cpu.D[0]) != -5 {
		t.Fatalf("D0 = %d, want -5", int32(cpu.D[0]))
	}
	if !cpu.flag(srNegative) {
		t.Fatal("expected negative flag set")
	}
}

func TestCmpDoesNotTouchExtendFlag(t *testing.T) {
	cpu, mem := newTestCPU()
	cpu.SR |= srExtend
	cpu.D[0] = 5
	cpu.D[1] = 5
	// CMP.W D1,D0 -> 1011 000 001 000 001.
	mem.loadProgram(0x2000, 0xB041)
	cpu.RunCycles(1)
	if !cpu.flag(srZero) {
		t.Fatal("expected zero flag set for equal operands")
	}
	if !cpu.flag(srExtend) {
		t.Fatal("CMP must not clear extend")
	}
}

func TestDivuByZeroRaisesException(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(vectorZeroDivide*4, 0x3000)
	cpu.D[0] = 100
	cpu.D[1] = 0
	// DIVU.W D1,D0 -> 1000 000 011 000 001.
	mem.loadProgram(0x2000, 0x80C1)
	cpu.RunCycles(1)
	if cpu.PC != 0x3000 {
		t.Fatalf("PC = %#x, want 0x3000 (zero-divide handler)", cpu.PC)
	}
}

func TestBccBranchesWhenConditionMet(t *testing.T) {
	cpu, mem := newTestCPU()
	cpu.SR |= srZero
	// BEQ.S +4 -> 0110 0111 00000100.
	mem.loadProgram(0x2000, 0x6704)
	cpu.RunCycles(1)
	if cpu.PC != 0x2006 {
		t.Fatalf("PC = %#x, want 0x2006", cpu.PC)
	}
}

func TestDbccLoopsUntilCounterExpires(t *testing.T) {
	cpu, mem := newTestCPU()
	cpu.D[0] = 2
	// DBRA D0,<self> -> 0101 0001 11001 000, displacement -2 (branch back
	// to the same instruction) so it executes until D0 wraps to -1.
	mem.loadProgram(0x2000, 0x51C8, 0xFFFE)
	// Three passes through the loop, each instruction costing the default
	// 4-cycle accounting; RunCycles stops once the budget is exhausted,
	// which lands exactly on the loop's exit after the third iteration.
	cpu.RunCycles(12)
	if int16(cpu.D[0]) != -1 {
		t.Fatalf("D0 = %d, want -1 after DBRA exhausts its count", int16(cpu.D[0]))
	}
	if cpu.PC != 0x2004 {
		t.Fatalf("PC = %#x, want 0x2004 (fell through after final iteration)", cpu.PC)
	}
}

func TestInterruptServicedAtInstructionBoundary(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32((24+4)*4, 0x4000) // level-4 autovector handler
	mem.loadProgram(0x2000, 0x4E71, 0x4E71, 0x4E71)

	// Reset leaves the interrupt priority mask at 7 (all maskable levels
	// blocked); lower it so a level-4 request is actually eligible to fire.
	cpu.SR &^= srIPMMask
	cpu.Interrupt(4)
	cpu.RunCycles(1)

	if cpu.PC != 0x4000 {
		t.Fatalf("PC = %#x, want 0x4000 (interrupt handler entered)", cpu.PC)
	}
	if !cpu.supervisor() {
		t.Fatal("expected supervisor mode while servicing interrupt")
	}
}

func TestMoveqSignExtends(t *testing.T) {
	cpu, mem := newTestCPU()
	// MOVEQ #-1,D3 -> 0111 011 0 11111111.
	mem.loadProgram(0x2000, 0x76FF)
	cpu.RunCycles(1)
	if int32(cpu.D[3]) != -1 {
		t.Fatalf("D3 = %#x, want -1 sign-extended", cpu.D[3])
	}
}
