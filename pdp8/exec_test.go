package pdp8

import "testing"

// Scenario 1 (spec.md §8): TAD direct, current page.
func TestTADDirect(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 01201) // TAD 0201
	cpu.Mem.Write(00201, 00003)
	cpu.Regs.SetLAC(00005)
	cpu.BootAt(00200)

	reason := cpu.Step()
	assert(t, reason == StopNone, "unexpected stop: %s", reason)
	assert(t, cpu.Regs.PC == 00201, "PC = %04o, want 00201", cpu.Regs.PC)
	assert(t, cpu.Regs.LAC == 00010, "LAC = %05o, want 00010", cpu.Regs.LAC)
}

// Scenario 2 (spec.md §8): DCA preserves L, clears AC.
func TestDCA(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 03202) // DCA 0202
	cpu.Regs.SetLAC(0123 | 010000)
	cpu.BootAt(00200)

	reason := cpu.Step()
	assert(t, reason == StopNone, "unexpected stop: %s", reason)
	assert(t, cpu.Mem.Read(00202) == 0123, "M[0202] = %04o, want 0123", cpu.Mem.Read(00202))
	assert(t, cpu.Regs.AC() == 0, "AC = %04o, want 0", cpu.Regs.AC())
	assert(t, cpu.Regs.L(), "L should remain set")
	assert(t, cpu.Regs.PC == 00201, "PC = %04o, want 00201", cpu.Regs.PC)
}

// Scenario 3 (spec.md §8): self-JMP with ION off is a hard stop.
func TestInfiniteLoop(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 05200) // JMP 0200
	cpu.BootAt(00200)

	reason := cpu.Step()
	assert(t, reason == StopInfiniteLoop, "reason = %s, want infinite loop", reason)
}

// Scenario 4 (spec.md §8): indirect TAD through an auto-increment
// location increments the pointer before use; TAD then adds the word
// at the incremented address.
func TestAutoIncrement(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00010, 01234)
	cpu.Mem.Write(01235, 00042) // operand at the incremented pointer
	cpu.Mem.Write(00200, 01410) // TAD I 0010
	cpu.BootAt(00200)

	reason := cpu.Step()
	assert(t, reason == StopNone, "unexpected stop: %s", reason)
	assert(t, cpu.Mem.Read(00010) == 01235, "M[0010] = %04o, want 01235", cpu.Mem.Read(00010))
	assert(t, cpu.Regs.LAC == 00042, "LAC = %05o, want 00042", cpu.Regs.LAC)
	assert(t, cpu.Regs.PC == 00201, "PC = %04o, want 00201", cpu.Regs.PC)
}

// ISZ wraps 07777 to 0 and takes the skip (spec.md §8 boundary case).
func TestISZWraps(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 02202) // ISZ 0202
	cpu.Mem.Write(00202, 07777)
	cpu.BootAt(00200)

	reason := cpu.Step()
	assert(t, reason == StopNone, "unexpected stop: %s", reason)
	assert(t, cpu.Mem.Read(00202) == 0, "M[0202] = %04o, want 0", cpu.Mem.Read(00202))
	assert(t, cpu.Regs.PC == 00202, "PC = %04o, want 00202 (skip taken)", cpu.Regs.PC)
}

// TAD with carry: LAC=017777 + 00001 = 000000 (link carried, AC zero).
func TestTADCarry(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 01201) // TAD 0201
	cpu.Mem.Write(00201, 00001)
	cpu.Regs.SetLAC(017777)
	cpu.BootAt(00200)

	reason := cpu.Step()
	assert(t, reason == StopNone, "unexpected stop: %s", reason)
	assert(t, cpu.Regs.LAC == 0, "LAC = %05o, want 0", cpu.Regs.LAC)
}

// AND leaves L untouched.
func TestAND(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 00201) // AND 0201
	cpu.Mem.Write(00201, 00017)
	cpu.Regs.SetLAC(00377 | 010000)
	cpu.BootAt(00200)

	cpu.Step()
	assert(t, cpu.Regs.AC() == 00017, "AC = %04o, want 00017", cpu.Regs.AC())
	assert(t, cpu.Regs.L(), "L should remain set")
}

// Direct JMP, current page: target = PC's page base + the
// instruction's 7-bit offset.
func TestJMPCurrentPage(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00400, 05250) // JMP 0450 (current page, bit 0200 set)
	cpu.BootAt(00400)
	cpu.Intr.ION = true // avoid the infinite-loop fingerprint entirely

	cpu.Step()
	assert(t, cpu.Regs.PC == 00450, "PC = %04o, want 00450", cpu.Regs.PC)
}

// OPR Group 1: CLA CLL.
func TestOPR1CLACLL(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 07300) // CLA CLL
	cpu.Regs.SetLAC(07777 | 010000)
	cpu.BootAt(00200)

	cpu.Step()
	assert(t, cpu.Regs.LAC == 0, "LAC = %05o, want 0", cpu.Regs.LAC)
}

func TestOPR1RAL(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 07004) // RAL
	cpu.Regs.SetLAC(04001)      // L=0, AC=04001 (bit 11 set)
	cpu.BootAt(00200)

	cpu.Step()
	// 04001 << 1 = 010002, L bit (bit12) now set, AC = 0002.
	assert(t, cpu.Regs.L(), "L should be set after rotating AC bit 11 in")
	assert(t, cpu.Regs.AC() == 00002, "AC = %04o, want 00002", cpu.Regs.AC())
}

// Undefined rotate encodings reproduced byte-for-byte (spec.md §9).
func TestOPR1UndefinedRotates(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 07014) // undefined "AND path"
	cpu.Regs.SetLAC(07777 | 010000)
	cpu.BootAt(00200)
	cpu.Step()
	want := uint16(07777|010000) & (07014 | 010000)
	assert(t, cpu.Regs.LAC == want, "LAC = %05o, want %05o", cpu.Regs.LAC, want)
}

// OPR Group 2: SZA skip.
func TestOPR2SZA(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 07440) // SZA
	cpu.Regs.SetAC(0)
	cpu.BootAt(00200)

	cpu.Step()
	assert(t, cpu.Regs.PC == 00202, "PC = %04o, want 00202 (skip taken)", cpu.Regs.PC)
}

// OPR Group 2: HLT stops the interpreter.
func TestOPR2HLT(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 07402) // HLT
	cpu.BootAt(00200)

	reason := cpu.Step()
	assert(t, reason == StopHalt, "reason = %s, want halt", reason)
}

// OPR Group 2: HLT in user mode traps instead of halting.
func TestOPR2HLTUserMode(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.Mem.Write(00200, 07402) // HLT
	cpu.BootAt(00200)
	cpu.Regs.UF = true

	reason := cpu.Step()
	assert(t, reason == StopNone, "reason = %s, want no stop (trapped)", reason)
	assert(t, cpu.Intr.UserViolation, "user-violation flag should be set")
}

// Memory writes beyond the configured size are silently dropped.
func TestMemoryBoundsDropped(t *testing.T) {
	m := NewMemory(4096)
	m.Write(4096, 01234)
	assert(t, m.Read(4096) == 0, "out-of-range read should be 0")
}
