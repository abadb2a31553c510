package pdp8

// execOPR dispatches opcode 7 (spec.md §4.5-§4.7): IR<3>=0 selects
// group 1, IR<3>=1,IR<11>=0 selects group 2, otherwise group 3 (EAE).
func (c *CPU) execOPR(ir uint16) StopReason {
	switch {
	case ir&00400 == 0:
		c.opr1(ir)
	case ir&00001 == 0:
		return c.opr2(ir)
	default:
		return c.opr3(ir)
	}
	return StopNone
}

// opr1 runs Operate Group 1's four fixed sequences (spec.md §4.5).
func (c *CPU) opr1(ir uint16) {
	r := &c.Regs

	// Sequence 1: CLA, CLL.
	if ir&0200 != 0 {
		r.LAC &= 010000
	}
	if ir&0100 != 0 {
		r.LAC &= 007777
	}
	// Sequence 2: CMA, CML.
	if ir&0040 != 0 {
		r.LAC ^= 007777
	}
	if ir&0020 != 0 {
		r.LAC ^= 010000
	}
	// Sequence 3: IAC.
	if ir&0001 != 0 {
		r.LAC = (r.LAC + 1) & 017777
	}
	// Sequence 4: rotates, decoded on IR & 00016.
	c.opr1Rotate(ir)
}

// opr1Rotate implements the bit-8..10 rotate family, including the two
// undefined encodings 0014/0016 reproduced byte-for-byte per spec.md
// §9/§4.5 (see SPEC_FULL.md "Open Questions — decisions").
func (c *CPU) opr1Rotate(ir uint16) {
	r := &c.Regs
	switch ir & 00016 {
	case 0000:
		// no rotate
	case 0002: // BSW
		r.LAC = (r.LAC & 010000) | ((r.LAC >> 6) & 077) | ((r.LAC & 077) << 6)
	case 0004: // RAL
		r.LAC = ((r.LAC << 1) | (r.LAC >> 12)) & 017777
	case 0006: // RTL
		r.LAC = ((r.LAC << 2) | (r.LAC >> 11)) & 017777
	case 0010: // RAR
		r.LAC = ((r.LAC >> 1) | (r.LAC << 12)) & 017777
	case 0012: // RTR
		r.LAC = ((r.LAC >> 2) | (r.LAC << 11)) & 017777
	case 0014: // undefined: "AND path"
		r.LAC = r.LAC & (ir | 010000)
	case 0016: // undefined: "address path"
		r.LAC = (r.LAC & 010000) | (r.MA & 07600) | (ir & 0177)
	}
}

// opr2 runs Operate Group 2 (spec.md §4.6): skip test, CLA, HLT/OSR.
func (c *CPU) opr2(ir uint16) StopReason {
	r := &c.Regs

	// Sequence 1: skip test, mask 00170 selects {SMA,SZA,SNL}, bit
	// 0010 reverses the sense of the OR of the selected conditions.
	any := false
	if ir&0100 != 0 && r.LAC&04000 != 0 { // SMA: AC<0
		any = true
	}
	if ir&0040 != 0 && r.AC() == 0 { // SZA
		any = true
	}
	if ir&0020 != 0 && r.L() { // SNL
		any = true
	}
	reverse := ir&0010 != 0
	if reverse != any {
		r.PC = (r.PC + 1) & 07777
	}

	// Sequence 2: CLA.
	if ir&0200 != 0 {
		r.LAC &= 010000
	}

	// Sequence 3: HLT, OSR.
	if ir&0006 != 0 {
		if r.UF {
			c.Intr.UserViolation = true
			c.TSC.IR = ir
			c.TSC.CDF = false
			return StopNone
		}
		if ir&0002 != 0 { // HLT
			return StopHalt
		}
		r.SetAC(r.AC() | r.SR) // OSR
	}
	return StopNone
}
