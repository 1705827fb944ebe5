package cpu

import "testing"

func TestBranchTakenAndNotTaken(t *testing.T) {
	c := New()
	c.setReg(1, 5)
	c.setReg(2, 5)
	// BEQ x1, x2, +8
	d := decoded{opcode: opBranch, rs1: 1, rs2: 2, funct3: 0, immB: 8}
	if err := c.execBranch(d, RAMBase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.pc != RAMBase+8 {
		t.Fatalf("taken branch: got pc %#x, want %#x", c.pc, RAMBase+8)
	}

	c2 := New()
	c2.setReg(1, 5)
	c2.setReg(2, 6)
	prevPC := c2.pc
	if err := c2.execBranch(d, RAMBase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c2.pc != prevPC {
		t.Fatalf("not-taken branch should not touch pc: got %#x, want %#x", c2.pc, prevPC)
	}
}

func TestStoreHalfwordLittleEndian(t *testing.T) {
	mem := newFakeMemory()
	c := New()
	c.setReg(1, RAMBase)
	c.setReg(2, 0xABCD)
	d := decoded{opcode: opStore, rs1: 1, rs2: 2, funct3: 1, immS: 0} // SH
	if err := c.execStore(d, mem); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lo, _ := mem.ReadByte(RAMBase)
	hi, _ := mem.ReadByte(RAMBase + 1)
	if lo != 0xCD || hi != 0xAB {
		t.Fatalf("got lo=%#x hi=%#x, want lo=0xcd hi=0xab", lo, hi)
	}
}

func TestCSRRWSwapsOldValueIntoRd(t *testing.T) {
	c := New()
	c.csr.mtvec = 0x1234
	c.setReg(1, 0x5678)
	d := decoded{raw: csrMtvec << 20, rd: 2, rs1: 1, funct3: 1} // CSRRW x2, mtvec, x1
	c.execCSRReg(d)
	if c.Reg(2) != 0x1234 {
		t.Fatalf("got old value %#x, want 0x1234", c.Reg(2))
	}
	if c.csr.mtvec != 0x5678 {
		t.Fatalf("got new mtvec %#x, want 0x5678", c.csr.mtvec)
	}
}

func TestCSRRSIWithImmediate(t *testing.T) {
	c := New()
	c.csr.mie = 0x1
	d := decoded{raw: csrMie << 20, rd: 0, rs1: 0x2, funct3: 6} // CSRRSI x0, mie, 2
	c.execCSRImm(d)
	if c.csr.mie != 0x3 {
		t.Fatalf("got mie %#x, want 0x3", c.csr.mie)
	}
}

func TestUnknownCSRReadsZeroWriteDropped(t *testing.T) {
	c := New()
	if c.CSR(0x999) != 0 {
		t.Fatalf("unimplemented CSR should read zero")
	}
	c.csr.write(0x999, 0xFFFFFFFF)
	if c.CSR(0x999) != 0 {
		t.Fatalf("write to unimplemented CSR must be dropped")
	}
}

func TestMretReturnsToMepc(t *testing.T) {
	c := New()
	c.csr.mepc = 0x80000100
	c.mret()
	if c.pc != 0x80000100 {
		t.Fatalf("got pc %#x, want 0x80000100", c.pc)
	}
}

func TestMhartidReadOnlyZero(t *testing.T) {
	c := New()
	c.csr.write(csrMhartid, 42)
	if c.CSR(csrMhartid) != 0 {
		t.Fatalf("mhartid must read zero regardless of writes")
	}
}

func TestFenceIsNoop(t *testing.T) {
	mem := newFakeMemory()
	mem.load(RAMBase, 0x0000000F) // FENCE
	c := New()
	prevPC := c.pc
	if !c.Step(mem) {
		t.Fatalf("FENCE should not be fatal")
	}
	if c.pc != prevPC+4 {
		t.Fatalf("FENCE should just advance pc by 4")
	}
}
