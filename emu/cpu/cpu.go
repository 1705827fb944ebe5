package cpu

/*
 * rv32iss - Register file and run loop
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

import (
	"fmt"
	"log/slog"
)

// RAMBase is the CPU's reset PC, matching the bus's RAM base. Defined
// here (not imported from emu/bus) to keep the CPU free of any direct
// memory reference; it reaches memory only through the Memory interface.
const RAMBase = 0x8000_0000

// Memory is everything the CPU needs from the bus. It is satisfied by
// *bus.Bus; the CPU never holds a reference to RAM or the host device
// directly.
type Memory interface {
	ReadByte(addr uint32) (byte, bool)
	WriteByte(addr uint32, data byte) bool
	ReadWord(addr uint32) (uint32, bool)
	WriteWord(addr uint32, data uint32) bool
	HaltRequested() bool
	TestResult() uint32
}

// DecodeError is fatal: an unknown opcode, an unknown funct3 within a
// known opcode, or a SYSTEM encoding that is neither ECALL nor MRET.
// Any of these indicates a simulator bug or a non-RV32I binary, and the
// run loop stops rather than pressing on.
type DecodeError struct {
	PC     uint32
	Word   uint32
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at pc=%#08x word=%#08x: %s", e.PC, e.Word, e.Reason)
}

// Outcome classifies how a run ended.
type Outcome int

const (
	OutcomeHaltPass Outcome = iota
	OutcomeHaltFail
	OutcomeTimeout
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHaltPass:
		return "HALT-PASS"
	case OutcomeHaltFail:
		return "HALT-FAIL"
	case OutcomeTimeout:
		return "TIMEOUT"
	case OutcomeFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// CPU is the register file, program counter, CSR file and run-loop
// state for one RV32I hart. Every test run gets a fresh CPU.
type CPU struct {
	regs    [32]uint32
	pc      uint32
	csr     csrFile
	running bool
	cycle   int

	// trapCount counts synchronous traps entered this run (ECALL is the
	// only trap source this core has). Used to tell an ECALL-reached
	// halt apart from a direct tohost write in the diagnostic report.
	trapCount int

	// Debug enables per-instruction tracing via slog.Debug.
	Debug bool

	fatalErr error
}

// New returns a CPU at its reset state.
func New() *CPU {
	c := &CPU{}
	c.Reset()
	return c
}

// Reset re-initializes registers, PC and CSRs. Register 0 is always
// zero; PC starts at the RAM base.
func (c *CPU) Reset() {
	c.regs = [32]uint32{}
	c.pc = RAMBase
	c.csr.reset()
	c.running = true
	c.cycle = 0
	c.trapCount = 0
	c.fatalErr = nil
}

// PC returns the current program counter.
func (c *CPU) PC() uint32 { return c.pc }

// SetPC overrides the program counter, e.g. for a test harness that
// wants to start execution somewhere other than the RAM base.
func (c *CPU) SetPC(pc uint32) { c.pc = pc }

// Cycle returns the number of instructions executed so far this run.
func (c *CPU) Cycle() int { return c.cycle }

// Reg reads general register i. Register 0 always reads as zero.
func (c *CPU) Reg(i int) uint32 {
	if i == 0 {
		return 0
	}
	return c.regs[i&0x1F]
}

// setReg writes general register i. Writes to register 0 are no-ops.
func (c *CPU) setReg(i int, v uint32) {
	if i == 0 {
		return
	}
	c.regs[i&0x1F] = v
}

// CSR reads CSR number num for diagnostics.
func (c *CPU) CSR(num uint32) uint32 { return c.csr.read(num) }

// FatalError returns the decode error that stopped the run, if any.
func (c *CPU) FatalError() error { return c.fatalErr }

// TrapCount returns the number of synchronous traps entered this run.
func (c *CPU) TrapCount() int { return c.trapCount }

// fetch reads one word from memory at pc and advances pc by 4. The
// post-increment convention means every immediate-relative target
// computed by execute() uses (pc-4)+imm.
func (c *CPU) fetch(mem Memory) uint32 {
	word, ok := mem.ReadWord(c.pc)
	if !ok {
		// A fetch that misses every device reads as zero and presses on,
		// the same fail-soft treatment data accesses get. The fetched
		// zero word decodes as an unknown opcode a moment later, which
		// is the fatal path.
		word = 0
	}
	c.pc += 4
	return word
}

// Step executes exactly one instruction: fetch, decode, dispatch. It
// returns false (and records FatalError) if the instruction's opcode,
// funct3, or SYSTEM encoding is not recognized.
func (c *CPU) Step(mem Memory) bool {
	word := c.fetch(mem)
	d := decode(word)

	if c.Debug {
		slog.Debug("step", "pc", c.pc-4, "word", word, "opcode", d.opcode)
	}

	if err := c.execute(d, mem); err != nil {
		c.running = false
		c.fatalErr = err
		return false
	}

	// Idempotent guard: register 0 is always rewired to zero, regardless
	// of what the instruction just executed wrote to it.
	c.regs[0] = 0
	return true
}

// Run executes instructions until the host device halts, a fatal decode
// error occurs, or maxCycles is exhausted. It returns the classified
// outcome.
func (c *CPU) Run(mem Memory, maxCycles int) Outcome {
	for c.running && c.cycle < maxCycles && !mem.HaltRequested() {
		if !c.Step(mem) {
			return OutcomeFatal
		}
		c.cycle++
	}

	if mem.HaltRequested() {
		if mem.TestResult() == 1 {
			return OutcomeHaltPass
		}
		return OutcomeHaltFail
	}
	if !c.running {
		return OutcomeFatal
	}
	return OutcomeTimeout
}
