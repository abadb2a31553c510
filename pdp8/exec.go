package pdp8

// opcode extracts IR<0:2>, the three-bit operation code.
func opcode(ir uint16) uint16 { return (ir >> 9) & 07 }

// IdleHook is called when the interpreter recognizes a yield-eligible
// idle pattern (spec.md §5, §9: "JMP *" with ION on but nothing
// pending, or "JMP *-1" followed by KSF). The core never blocks on its
// own; it only notifies — the external clock service decides what to
// do with the wall-clock time. A nil hook means idle yields are not
// reported (the hard-stop case, self-jump with ION off, is reported
// via StopInfiniteLoop regardless of this hook whenever Config.Idle is
// on; with Config.Idle off no pattern is checked).
type IdleHook func()

// fetch runs the FETCH major state (spec.md §4.2) and, for
// memory-reference instructions, chains directly into DEFER/EXECUTE
// so that one Step call always completes exactly one instruction.
func (c *CPU) fetch() StopReason {
	r := &c.Regs
	addr := r.IF | r.PC

	if c.BreakHook != nil && c.BreakHook(addr, BreakAddr) {
		return StopBreakpoint
	}

	ir := c.Mem.Read(addr)
	r.PC = (r.PC + 1) & 07777
	c.Intr.IonPending = false // every FETCH clears the one-instruction ION delay

	r.IR = ir
	r.MB = ir

	if c.BreakHook != nil && c.BreakHook(ir, BreakInstr) {
		return StopBreakpoint
	}

	c.histIdx = c.Hist.begin(addr, ir, r.LAC, r.MQ)

	op := opcode(ir)
	var reason StopReason
	switch {
	case op <= 5:
		reason = c.fetchMRI(addr, ir, op)
	case op == 6:
		reason = c.execIOT(ir)
	default: // op == 7
		reason = c.execOPR(ir)
	}

	c.major = PhaseFetch
	return reason
}

// fetchMRI computes the page-relative address for opcodes 0-5
// (spec.md §4.1) and dispatches into DEFER or EXECUTE. fetchAddr is
// the (IF|PC) the instruction itself was fetched from, before PC's
// increment in fetch().
func (c *CPU) fetchMRI(fetchAddr, ir, op uint16) StopReason {
	r := &c.Regs

	var ea uint16
	if ir&0200 != 0 {
		ea = (fetchAddr & 07600) | (ir & 0177) // current page: high bits of PC at fetch time
	} else {
		ea = ir & 0177 // page zero
	}
	r.MA = ea

	switch op {
	case 5: // JMP
		return c.jmp(fetchAddr, ir, ea)
	case 4: // JMS
		c.PCQ.Push(fetchAddr)
		if ir&0400 != 0 {
			c.major = PhaseDefer
			return c.deferState(ir, ea)
		}
		return c.jms(ea)
	default: // AND/TAD/ISZ/DCA
		if ir&0400 != 0 {
			c.major = PhaseDefer
			return c.deferState(ir, ea)
		}
		// Direct (non-indirect) reference stays within the current
		// instruction field; DF only prefixes the indirect case.
		return c.execMRI(op, r.IF|ea)
	}
}

// deferState is the DEFER major state (spec.md §4.2): resolves one
// level of indirection, honoring auto-increment, then either
// transitions to EXECUTE (MRI, JMS) or completes the transfer (JMP).
func (c *CPU) deferState(ir uint16, pointerEA uint16) StopReason {
	r := &c.Regs
	ptr := r.IF | pointerEA
	target := c.Mem.ReadIndirect(ptr)
	r.MA = target

	op := opcode(ir)
	switch op {
	case 5: // indirect JMP — no idle-pattern check (the original only checks direct JMP)
		return c.jmpFieldTransfer(target)
	case 4: // indirect JMS
		return c.jms(target)
	default: // indirect AND/TAD/ISZ/DCA
		return c.execMRI(op, r.DF|target)
	}
}

// execMRI performs the EXECUTE major state for AND/TAD/ISZ/DCA
// (spec.md §4.3).
func (c *CPU) execMRI(op uint16, ea uint16) StopReason {
	r := &c.Regs

	var operand uint16
	switch op {
	case 0: // AND
		operand = c.Mem.Read(ea)
		r.SetAC(r.AC() & operand)
	case 1: // TAD
		operand = c.Mem.Read(ea)
		r.SetLAC((r.LAC + operand) & 017777)
	case 2: // ISZ
		v := (c.Mem.Read(ea) + 1) & 07777
		c.Mem.Write(ea, v)
		operand = v
		if v == 0 {
			r.PC = (r.PC + 1) & 07777
		}
	case 3: // DCA
		operand = r.AC()
		c.Mem.Write(ea, operand)
		r.SetAC(0)
	}
	c.Hist.recordOperand(c.histIdx, ea, operand)

	return StopNone
}

// jms performs JMS's EXECUTE-equivalent effect (spec.md §4.3 row JMS,
// §4.4): commit the field/user transfer and store the return address
// using the POST-transfer IF, unless a TSC trap (user mode with the
// TSC8-75 enabled) suppresses both. PC always advances past the
// target, trapped or not.
func (c *CPU) jms(ea uint16) StopReason {
	r := &c.Regs
	if !c.tscTrap() {
		r.IF = r.IB
		r.UF = r.UB
		c.Intr.CifPending = false
		c.Mem.Write(r.IF|ea, r.PC)
	}
	r.PC = (ea + 1) & 07777
	return StopNone
}

// jmp computes idle/infinite-loop recognition (direct JMP only,
// spec.md §9) and then performs the field transfer.
func (c *CPU) jmp(fetchAddr, ir, ea uint16) StopReason {
	r := &c.Regs

	if ir&0400 != 0 { // indirect JMP: resolve pointer first, no idle check
		c.major = PhaseDefer
		return c.deferState(ir, ea)
	}

	if c.Config.Idle && r.IF == r.IB {
		selfAddr := fetchAddr & 07777
		switch ea {
		case (selfAddr - 1) & 07777: // JMP *-1: target word itself must be KSF
			next := c.Mem.Read(r.IB | ea)
			if !c.Intr.ION && !c.Intr.Done[ttyKeyboardDevice] && next == opKSF && c.IdleHook != nil {
				c.IdleHook()
			}
		case selfAddr: // JMP *
			if !c.Intr.ION {
				return StopInfiniteLoop
			}
			if !c.Intr.AnyRequested() && c.IdleHook != nil {
				c.IdleHook()
			}
		}
	}

	return c.jmpFieldTransfer(ea)
}

// opKSF is the KSF (skip on teletype keyboard flag) instruction word,
// the idle fingerprint's companion instruction (spec.md §9). It
// decodes to device 003, pulse 1 — the conventional teletype keyboard
// device number, hence ttyKeyboardDevice below.
const (
	opKSF             = 06031
	ttyKeyboardDevice = 03
)

// jmpFieldTransfer completes a JMP's field/user transfer. Unlike JMS,
// JMP always commits the transfer: the TSC trap (when UF is set) is
// purely an additional side effect, never a suppression, matching the
// original source exactly.
func (c *CPU) jmpFieldTransfer(ea uint16) StopReason {
	r := &c.Regs
	if r.UF {
		c.tscTrap()
	}
	r.IF = r.IB
	r.UF = r.UB
	c.Intr.CifPending = false
	r.PC = ea
	return StopNone
}

// tscTrap records the TSC8-75 privileged-transfer trap state
// (spec.md §4.4 step 3, GLOSSARY) and reports whether it fired.
func (c *CPU) tscTrap() bool {
	r := &c.Regs
	if !r.UF {
		return false
	}
	c.TSC.IR = r.IR
	c.TSC.CDF = false
	if c.TSC.Enabled {
		c.TSC.PC = (r.PC - 1) & 07777
		c.Intr.TSCRequest = true
	}
	return c.TSC.Enabled
}
