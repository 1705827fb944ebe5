package cpu

/*
 * rv32iss - Opcode dispatch and instruction semantics
 *
 * Copyright 2026, RV32I ISS Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import "log/slog"

// execute dispatches a decoded instruction by opcode group. The
// instruction's own PC (needed by AUIPC/JAL/branches, all of which
// reference the *pre-advance* PC) is c.pc-4, since fetch already
// advanced pc by 4.
func (c *CPU) execute(d decoded, mem Memory) error {
	instrPC := c.pc - 4

	switch d.opcode {
	case opImm:
		c.execOpImm(d)
	case opOp:
		c.execOp(d)
	case opLUI:
		c.setReg(int(d.rd), uint32(d.immU))
	case opAUIPC:
		c.setReg(int(d.rd), instrPC+uint32(d.immU))
	case opLoad:
		return c.execLoad(d, mem)
	case opStore:
		return c.execStore(d, mem)
	case opBranch:
		return c.execBranch(d, instrPC)
	case opJAL:
		c.setReg(int(d.rd), c.pc)
		c.pc = uint32(int64(instrPC) + int64(d.immJ))
	case opJALR:
		target := (c.Reg(int(d.rs1)) + uint32(d.immI)) &^ 1
		c.setReg(int(d.rd), c.pc)
		c.pc = target
	case opMiscMem:
		// FENCE / FENCE.I: no-ops in this single-threaded model.
	case opSystem:
		return c.execSystem(d, instrPC)
	default:
		return &DecodeError{PC: instrPC, Word: d.raw, Reason: "unknown opcode"}
	}
	return nil
}

func (c *CPU) execOpImm(d decoded) {
	a := int32(c.Reg(int(d.rs1)))
	imm := d.immI
	var result uint32
	switch d.funct3 {
	case 0x0: // ADDI
		result = uint32(a + imm)
	case 0x2: // SLTI
		result = boolToWord(a < imm)
	case 0x3: // SLTIU
		result = boolToWord(uint32(a) < uint32(imm))
	case 0x4: // XORI
		result = uint32(a) ^ uint32(imm)
	case 0x6: // ORI
		result = uint32(a) | uint32(imm)
	case 0x7: // ANDI
		result = uint32(a) & uint32(imm)
	case 0x1: // SLLI
		result = uint32(a) << (uint32(imm) & 0x1F)
	case 0x5: // SRLI / SRAI, disambiguated by funct7 == 0x20
		shamt := uint32(imm) & 0x1F
		if d.funct7 == 0x20 {
			result = uint32(a >> shamt)
		} else {
			result = uint32(a) >> shamt
		}
	}
	c.setReg(int(d.rd), result)
}

func (c *CPU) execOp(d decoded) {
	a := c.Reg(int(d.rs1))
	b := c.Reg(int(d.rs2))
	sa, sb := int32(a), int32(b)
	var result uint32
	switch d.funct3 {
	case 0x0: // ADD / SUB
		if d.funct7 == 0x20 {
			result = a - b
		} else {
			result = a + b
		}
	case 0x1: // SLL
		result = a << (b & 0x1F)
	case 0x2: // SLT
		result = boolToWord(sa < sb)
	case 0x3: // SLTU
		result = boolToWord(a < b)
	case 0x4: // XOR
		result = a ^ b
	case 0x5: // SRL / SRA
		shamt := b & 0x1F
		if d.funct7 == 0x20 {
			result = uint32(sa >> shamt)
		} else {
			result = a >> shamt
		}
	case 0x6: // OR
		result = a | b
	case 0x7: // AND
		result = a & b
	}
	c.setReg(int(d.rd), result)
}

func (c *CPU) execLoad(d decoded, mem Memory) error {
	addr := c.Reg(int(d.rs1)) + uint32(d.immI)
	var value uint32
	switch d.funct3 {
	case 0x0: // LB
		b, ok := mem.ReadByte(addr)
		if !ok {
			slog.Warn("cpu: LB out of range", "addr", addr)
		}
		value = uint32(int32(int8(b)))
	case 0x1: // LH
		lo, _ := mem.ReadByte(addr)
		hi, ok := mem.ReadByte(addr + 1)
		if !ok {
			slog.Warn("cpu: LH out of range", "addr", addr)
		}
		half := uint16(lo) | uint16(hi)<<8
		value = uint32(int32(int16(half)))
	case 0x2: // LW
		w, ok := mem.ReadWord(addr)
		if !ok {
			slog.Warn("cpu: LW out of range", "addr", addr)
		}
		value = w
	case 0x4: // LBU
		b, ok := mem.ReadByte(addr)
		if !ok {
			slog.Warn("cpu: LBU out of range", "addr", addr)
		}
		value = uint32(b)
	case 0x5: // LHU
		lo, _ := mem.ReadByte(addr)
		hi, ok := mem.ReadByte(addr + 1)
		if !ok {
			slog.Warn("cpu: LHU out of range", "addr", addr)
		}
		value = uint32(lo) | uint32(hi)<<8
	default:
		return &DecodeError{PC: c.pc - 4, Word: d.raw, Reason: "unknown LOAD funct3"}
	}
	if d.rd != 0 {
		c.setReg(int(d.rd), value)
	}
	return nil
}

func (c *CPU) execStore(d decoded, mem Memory) error {
	addr := c.Reg(int(d.rs1)) + uint32(d.immS)
	v := c.Reg(int(d.rs2))
	switch d.funct3 {
	case 0x0: // SB
		mem.WriteByte(addr, byte(v))
	case 0x1: // SH
		mem.WriteByte(addr, byte(v))
		mem.WriteByte(addr+1, byte(v>>8))
	case 0x2: // SW
		mem.WriteWord(addr, v)
	default:
		return &DecodeError{PC: c.pc - 4, Word: d.raw, Reason: "unknown STORE funct3"}
	}
	return nil
}

func (c *CPU) execBranch(d decoded, instrPC uint32) error {
	a := c.Reg(int(d.rs1))
	b := c.Reg(int(d.rs2))
	sa, sb := int32(a), int32(b)
	var taken bool
	switch d.funct3 {
	case 0x0: // BEQ
		taken = a == b
	case 0x1: // BNE
		taken = a != b
	case 0x4: // BLT
		taken = sa < sb
	case 0x5: // BGE
		taken = sa >= sb
	case 0x6: // BLTU
		taken = a < b
	case 0x7: // BGEU
		taken = a >= b
	default:
		return &DecodeError{PC: instrPC, Word: d.raw, Reason: "unknown BRANCH funct3"}
	}
	if taken {
		c.pc = uint32(int64(instrPC) + int64(d.immB))
	}
	return nil
}

const (
	sysECALL = 0x00000073
	sysMRET  = 0x30200073
)

func (c *CPU) execSystem(d decoded, instrPC uint32) error {
	switch {
	case d.funct3 == 0:
		switch d.raw {
		case sysECALL:
			c.enterTrap(instrPC, causeEnvCallFromM)
		case sysMRET:
			c.mret()
		default:
			// Includes EBREAK (0x00100073): fatal per spec, not a trap.
			return &DecodeError{PC: instrPC, Word: d.raw, Reason: "unrecognized SYSTEM encoding"}
		}
	case d.funct3 >= 1 && d.funct3 <= 3:
		c.execCSRReg(d)
	case d.funct3 >= 5 && d.funct3 <= 7:
		c.execCSRImm(d)
	default:
		return &DecodeError{PC: instrPC, Word: d.raw, Reason: "unknown SYSTEM funct3"}
	}
	return nil
}

func (c *CPU) execCSRReg(d decoded) {
	csrNum := d.raw >> 20
	old := c.csr.read(csrNum)
	src := c.Reg(int(d.rs1))
	var next uint32
	switch d.funct3 {
	case 1: // CSRRW
		next = src
	case 2: // CSRRS
		next = old | src
	case 3: // CSRRC
		next = old &^ src
	}
	// CSRRS/CSRRC should skip the write when rs1==0 under a strict
	// implementation; this core's CSR set has no write-triggered
	// behavior, so the unconditional write is observationally identical
	// and is kept for simplicity.
	c.csr.write(csrNum, next)
	c.setReg(int(d.rd), old)
}

func (c *CPU) execCSRImm(d decoded) {
	csrNum := d.raw >> 20
	old := c.csr.read(csrNum)
	imm := d.rs1 // zext(rs1 field, 5)
	var next uint32
	switch d.funct3 {
	case 5: // CSRRWI
		next = imm
	case 6: // CSRRSI
		next = old | imm
	case 7: // CSRRCI
		next = old &^ imm
	}
	c.csr.write(csrNum, next)
	c.setReg(int(d.rd), old)
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
