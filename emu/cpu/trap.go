package cpu

/*
 * rv32iss - Synchronous trap entry and return
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

// causeEnvCallFromM is the mcause value for ECALL from machine mode.
// This core never runs in any other privilege level, so it is the only
// cause this implementation ever produces.
const causeEnvCallFromM = 11

// enterTrap saves the PC of the trapping instruction to mepc, records
// the cause, and vectors to mtvec. There is no mstatus stacking: with
// interrupts and privilege levels unmodeled, none is needed.
func (c *CPU) enterTrap(pcOfFault uint32, cause uint32) {
	c.csr.mepc = pcOfFault
	c.csr.mcause = cause
	c.pc = c.csr.mtvec
	c.trapCount++
}

// mret transfers control back to mepc. mstatus.MPIE -> MIE is not
// restored; safe only because interrupts and privilege levels are
// unmodeled by this core.
func (c *CPU) mret() {
	c.pc = c.csr.mepc
}
