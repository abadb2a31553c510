package pdp8

import "context"

// Phase names the major-state machine position (spec.md §4.2).
type Phase int

const (
	PhaseFetch Phase = iota
	PhaseDefer
	PhaseExecute
)

// BreakKind distinguishes the two breakpoint poll points of spec.md
// §7: testing the about-to-be-fetched address, versus testing the
// instruction word once IR has been loaded.
type BreakKind int

const (
	BreakAddr BreakKind = iota
	BreakInstr
)

// BreakHook is polled at the two points spec.md §7 names. It is owned
// and populated by the external shell, never by the core itself. A
// nil hook (the default) means no breakpoints are configured.
type BreakHook func(value uint16, kind BreakKind) bool

// TSCTrap records the privileged-instruction trap state captured by
// the optional TSC8-75 time-sharing control unit (spec.md GLOSSARY,
// §4.4, §4.8).
type TSCTrap struct {
	Enabled bool
	IR      uint16
	PC      uint16
	CDF     bool
}

// CPU bundles all components an instruction cycle touches: the
// register file, memory, interrupt controller, device table, history
// ring, and the handful of knobs spec.md §6 calls "SET CPU".
type CPU struct {
	Regs   Registers
	Mem    *Memory
	Intr   InterruptState
	Devs   *DeviceTable
	Hist   *HistoryRing
	PCQ    PCQ
	Config Config
	TSC    TSCTrap

	BreakHook BreakHook
	IdleHook  IdleHook

	major   Phase
	histIdx int // slot of the in-flight instruction's history entry, -1 if none
}

// NewCPU builds a CPU from Config with a fresh DeviceTable holding the
// given user devices. The built-in devices (CPU control, power-fail,
// memory-extension) are not table entries: their numbers are reserved
// and execIOT handles them directly.
func NewCPU(cfg Config, devices ...Device) (*CPU, error) {
	table, err := newDeviceTable(devices...)
	if err != nil {
		return nil, err
	}

	c := &CPU{
		Mem:    NewMemory(cfg.MemoryWords),
		Devs:   table,
		Hist:   NewHistoryRing(cfg.HistoryCapacity),
		Config: cfg,
		TSC:    TSCTrap{Enabled: cfg.TSCEnabled},
	}
	c.Reset()
	return c, nil
}

// Reset restores cold-reset register state: FETCH at PC=0, IB
// initialized equal to IF at every boot-PC assignment (spec.md §9's
// "IB initialization" note — this removes the original's
// uninitialized-IB guard by construction instead of reproducing it).
func (c *CPU) Reset() {
	c.Regs = Registers{}
	c.Regs.IB = c.Regs.IF
	c.Intr = InterruptState{}
	c.PCQ = PCQ{}
	c.major = PhaseFetch
	c.TSC = TSCTrap{Enabled: c.TSC.Enabled}
}

// BootAt sets PC (and IB, per the cold-reset rule above) to addr
// without otherwise disturbing register state; used by a shell's
// loader to start execution at a given address.
func (c *CPU) BootAt(addr uint16) {
	c.Regs.PC = addr
	c.Regs.IB = c.Regs.IF
	c.major = PhaseFetch
}

// Run executes instructions until a stop condition is reached or ctx
// is cancelled, the idiomatic-Go rendering of spec.md §5's polled
// asynchronous stop request.
func (c *CPU) Run(ctx context.Context) StopReason {
	for {
		select {
		case <-ctx.Done():
			return StopControl
		default:
		}

		if reason := c.Step(); reason != StopNone {
			return reason
		}
	}
}

// Step runs exactly one complete instruction cycle (FETCH, chained
// through DEFER/EXECUTE as the decoded instruction requires) and then,
// at that instruction-boundary, admits a pending interrupt if one is
// admissible (spec.md §4.9: the original checks int_req only once a
// full instruction cycle has completed and the next major state is
// FETCH, never mid-instruction).
func (c *CPU) Step() StopReason {
	reason := c.fetch()
	if reason != StopNone {
		return reason
	}

	if c.Intr.Admissible() {
		c.Intr.Admit(&c.Regs, c.Mem, &c.PCQ)
	}
	return StopNone
}
