package cpu

/*
 * rv32iss - Instruction field and immediate decode
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

// Opcode values dispatched on in execute.go.
const (
	opLoad     = 0x03
	opMiscMem  = 0x0F
	opImm      = 0x13
	opAUIPC    = 0x17
	opStore    = 0x23
	opOp       = 0x33
	opLUI      = 0x37
	opBranch   = 0x63
	opJALR     = 0x67
	opJAL      = 0x6F
	opSystem   = 0x73
)

// decoded holds the fields every instruction word decomposes into.
// Not every field is meaningful for every opcode; callers read only the
// ones their group needs.
type decoded struct {
	raw     uint32
	opcode  uint32
	rd      uint32
	funct3  uint32
	rs1     uint32
	rs2     uint32
	funct7  uint32
	immI    int32
	immS    int32
	immB    int32
	immU    int32
	immJ    int32
}

func decode(word uint32) decoded {
	d := decoded{
		raw:    word,
		opcode: word & 0x7F,
		rd:     (word >> 7) & 0x1F,
		funct3: (word >> 12) & 0x7,
		rs1:    (word >> 15) & 0x1F,
		rs2:    (word >> 20) & 0x1F,
		funct7: (word >> 25) & 0x7F,
	}
	d.immI = signExtend(word>>20, 12)
	d.immS = signExtend(((word>>25)<<5)|((word>>7)&0x1F), 12)
	d.immB = signExtend(
		((word>>31)<<12)|(((word>>7)&0x1)<<11)|(((word>>25)&0x3F)<<5)|(((word>>8)&0xF)<<1),
		13)
	d.immU = int32(word & 0xFFFFF000)
	d.immJ = signExtend(
		((word>>31)<<20)|(((word>>12)&0xFF)<<12)|(((word>>20)&0x1)<<11)|(((word>>21)&0x3FF)<<1),
		21)
	return d
}

// signExtend sign-extends the low `bits` bits of v, treating bit
// (bits-1) as the sign bit.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
