package pdp8

// IOT control-pulse bits a user Device can return via the skip/reason
// pair (spec.md §6's "handler receives ... and returns ... a
// skip-next bit and a reason code").
const (
	// IOTReasonNone means the device did not request a stop.
	IOTReasonNone uint8 = 0
)

// execIOT runs opcode 6 (spec.md §4.8): device 000 CPU control,
// device 010 power-fail, devices 020-027 memory extension, and the
// general Device Dispatch Table for everything else. User-mode IOT
// is trapped rather than executed.
func (c *CPU) execIOT(ir uint16) StopReason {
	r := &c.Regs

	if r.UF {
		c.Intr.UserViolation = true
		c.TSC.IR = ir
		c.TSC.CDF = (ir & 07707) == 06201 // matches the 062x1 fingerprint
		return StopNone
	}

	device := uint8((ir >> 3) & 077)
	pulse := ir & 07

	switch {
	case device == 0:
		return c.iotCPUControl(pulse)
	case device == 010:
		return c.iotPowerFail(pulse)
	case device >= 020 && device <= 027:
		return c.iotMemoryExtension(device, pulse)
	default:
		return c.iotDispatch(device, ir)
	}
}

// iotCPUControl implements device 000's eight pulses (spec.md §4.8,
// §9; exact GTF/RTF bit layout from SPEC_FULL.md's supplemented-
// feature note 4).
func (c *CPU) iotCPUControl(pulse uint16) StopReason {
	r := &c.Regs
	switch pulse {
	case 0: // SKON
		if c.Intr.ION {
			r.PC = (r.PC + 1) & 07777
		}
		c.Intr.ION = false
	case 1: // ION
		c.Intr.ION = true
		c.Intr.IonPending = true
	case 2: // IOF
		c.Intr.ION = false
	case 3: // SRQ
		if c.Intr.AnyRequested() {
			r.PC = (r.PC + 1) & 07777
		}
	case 4: // GTF
		l := uint16(0)
		if r.L() {
			l = 1
		}
		gtf := uint16(0)
		if r.GTF {
			gtf = 1
		}
		ionActive := uint16(0)
		if c.Intr.ION {
			ionActive = 1
		}
		anyReq := uint16(0)
		if c.Intr.AnyRequested() {
			anyReq = 1
		}
		r.LAC = (l << 12) | (l << 11) | (gtf << 10) | (anyReq << 9) | (ionActive << 7) | uint16(r.SF)
	case 5: // RTF
		r.GTF = r.LAC&02000 != 0
		r.UB = r.LAC&0100 != 0
		r.IB = (r.LAC & 0070) << 9
		r.DF = (r.LAC & 0007) << 12
		r.LAC = ((r.LAC & 04000) << 1) | r.AC()
		c.Intr.ION = true
		c.Intr.CifPending = true
	case 6: // SGT
		if r.GTF {
			r.PC = (r.PC + 1) & 07777
		}
	case 7: // CAF
		c.Intr.CAF(r)
		if c.Devs != nil {
			c.Devs.resetAll()
		}
	}
	return StopNone
}

// iotPowerFail implements device 010 (spec.md §4.8).
func (c *CPU) iotPowerFail(pulse uint16) StopReason {
	r := &c.Regs
	switch pulse {
	case 1: // SBE
	case 2: // SPL
		if c.Intr.PowerFail {
			r.PC = (r.PC + 1) & 07777
		}
	case 3: // CAL
		c.Intr.PowerFail = false
	default:
		if c.Config.StopOnIllegal {
			return StopIllegalInstruction
		}
	}
	return StopNone
}

// iotMemoryExtension implements devices 020-027 (spec.md §4.8): CDF,
// CIF, CDF+CIF, and (pulse 4) the eight CINT/RDF/RIF/RIB/RMF/SINT/
// CUF/SUF sub-functions keyed on the low three bits of the device
// number.
func (c *CPU) iotMemoryExtension(device uint8, pulse uint16) StopReason {
	r := &c.Regs
	field := (uint16(device) & 07) << 12

	switch pulse {
	case 1: // CDF
		r.DF = field
	case 2: // CIF
		r.IB = field
		c.Intr.CifPending = true
	case 3: // CDF CIF
		r.DF = field
		r.IB = field
		c.Intr.CifPending = true
	case 4:
		switch device & 07 {
		case 0: // CINT
			c.Intr.UserViolation = false
		case 1: // RDF
			r.LAC |= r.DF >> 9
		case 2: // RIF
			r.LAC |= r.IF >> 9
		case 3: // RIB
			r.LAC |= uint16(r.SF)
		case 4: // RMF
			r.UB = r.SF&0100 != 0
			r.IB = (uint16(r.SF) & 0070) << 9
			r.DF = (uint16(r.SF) & 0007) << 12
			c.Intr.CifPending = true
		case 5: // SINT
			if c.Intr.UserViolation {
				r.PC = (r.PC + 1) & 07777
			}
		case 6: // CUF
			r.UB = false
			c.Intr.CifPending = true
		case 7: // SUF
			r.UB = true
			c.Intr.CifPending = true
		}
	default:
		if c.Config.StopOnIllegal {
			return StopIllegalInstruction
		}
	}
	return StopNone
}

// iotDispatch runs a user-supplied Device (spec.md §4.8's "all other
// device numbers" bullet, §6's handler contract).
func (c *CPU) iotDispatch(device uint8, ir uint16) StopReason {
	r := &c.Regs
	dev := c.Devs.Lookup(device)
	if dev == nil {
		if c.Config.StopOnIllegal {
			return StopIllegalInstruction
		}
		return StopNone
	}

	out, skip, reason := dev.Handle(ir, r.AC())
	r.SetAC(out & 07777)
	if skip {
		r.PC = (r.PC + 1) & 07777
	}
	if reason != IOTReasonNone {
		return StopIO
	}
	return StopNone
}
