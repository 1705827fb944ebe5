package cpu

/*
 * rv32iss - CSR file
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

// CSR numbers implemented by this core. Any number not listed here reads
// as zero and discards writes.
const (
	csrMstatus  = 0x300
	csrMedeleg  = 0x302
	csrMideleg  = 0x303
	csrMie      = 0x304
	csrMtvec    = 0x305
	csrMepc     = 0x341
	csrMcause   = 0x342
	csrSatp     = 0x180
	csrPmpcfg0  = 0x3A0
	csrPmpaddr0 = 0x3B0
	csrMhartid  = 0xF14
)

// csrFile is plain storage; none of these registers has read or write
// side effects beyond what trap.go does explicitly for mepc/mcause
// on trap entry and return.
type csrFile struct {
	mstatus  uint32
	medeleg  uint32
	mideleg  uint32
	mie      uint32
	mtvec    uint32
	mepc     uint32
	mcause   uint32
	satp     uint32
	pmpcfg0  uint32
	pmpaddr0 uint32
}

func (c *csrFile) reset() {
	*c = csrFile{}
}

func (c *csrFile) read(num uint32) uint32 {
	switch num {
	case csrMstatus:
		return c.mstatus
	case csrMedeleg:
		return c.medeleg
	case csrMideleg:
		return c.mideleg
	case csrMie:
		return c.mie
	case csrMtvec:
		return c.mtvec
	case csrMepc:
		return c.mepc
	case csrMcause:
		return c.mcause
	case csrSatp:
		return c.satp
	case csrPmpcfg0:
		return c.pmpcfg0
	case csrPmpaddr0:
		return c.pmpaddr0
	case csrMhartid:
		return 0
	default:
		return 0
	}
}

func (c *csrFile) write(num, value uint32) {
	switch num {
	case csrMstatus:
		c.mstatus = value
	case csrMedeleg:
		c.medeleg = value
	case csrMideleg:
		c.mideleg = value
	case csrMie:
		c.mie = value
	case csrMtvec:
		c.mtvec = value
	case csrMepc:
		c.mepc = value
	case csrMcause:
		c.mcause = value
	case csrSatp:
		c.satp = value
	case csrPmpcfg0:
		c.pmpcfg0 = value
	case csrPmpaddr0:
		c.pmpaddr0 = value
	case csrMhartid:
		// read-only, write dropped
	default:
		// unknown CSR, write dropped
	}
}
