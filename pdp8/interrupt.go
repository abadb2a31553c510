package pdp8

// InterruptState is the packed interrupt register described in
// spec.md §3/§9: ION, the two one-instruction admission delays, per-
// device enable/done bits, the user-mode violation flag, and
// power-fail. Kept as a single struct (not split booleans living on
// CPU directly) because Admit and several IOTs test several of these
// bits together — spec.md §9 calls out that splitting them invites
// ordering bugs.
type InterruptState struct {
	ION        bool
	IonPending bool // ION-pending: sequencer just executed ION, admission waits one instruction
	CifPending bool // CIF-pending: a field-change IOT ran, admission waits for the gated JMP/JMS

	Enable [NumDevices]bool
	Done   [NumDevices]bool

	UserViolation bool
	PowerFail     bool
	TSCRequest    bool
}

// NumDevices is the width of the six-bit device number space.
const NumDevices = 64

// AnyRequested reports whether any enabled device is currently done,
// i.e. asserting an interrupt request, or the user-violation,
// power-fail or TSC request flag is set.
func (s *InterruptState) AnyRequested() bool {
	for d := 0; d < NumDevices; d++ {
		if s.Enable[d] && s.Done[d] {
			return true
		}
	}
	if s.UserViolation || s.PowerFail || s.TSCRequest {
		return true
	}
	return false
}

// Admissible reports whether an interrupt may be taken at the next
// FETCH boundary (spec.md §3 invariant, §4.9 step 0).
func (s *InterruptState) Admissible() bool {
	return s.ION && !s.IonPending && !s.CifPending && s.AnyRequested()
}

// Admit performs the six-step interrupt-entry sequence of spec.md
// §4.9 unconditionally; callers must have already checked Admissible.
func (s *InterruptState) Admit(r *Registers, m *Memory, pcq *PCQ) {
	s.ION = false
	r.SF = r.packSF()
	pcq.Push(r.IF | r.PC)
	r.IF, r.IB, r.DF = 0, 0, 0
	r.UF, r.UB = false, false
	m.Write(0, r.PC)
	r.PC = 1
}

// CAF performs device-000 pulse 7 (spec.md §4.8): clears GTF/EMODE
// state, the done register, restores the default enable mask, zeros
// LAC, and resets interrupt-inhibit state other than CIF-pending
// (matching the original's `int_req & INT_NO_CIF_PENDING`, i.e. CAF
// does not itself clear a pending CIF delay).
func (s *InterruptState) CAF(r *Registers) {
	cif := s.CifPending
	*s = InterruptState{CifPending: cif}
	r.GTF = false
	r.EMODE = false
	r.SetLAC(0)
}
