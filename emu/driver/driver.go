package driver

/*
 * rv32iss - Compliance test driver
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
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rcornwell/rv32iss/command/parser"
	"github.com/rcornwell/rv32iss/emu/bus"
	"github.com/rcornwell/rv32iss/emu/cpu"
	"github.com/rcornwell/rv32iss/emu/hostdevice"
	"github.com/rcornwell/rv32iss/emu/loader"
	"github.com/rcornwell/rv32iss/emu/ram"
)

// TimeoutResult is the synthetic tohost value the driver reports for a
// TIMEOUT classification. The CPU itself never produces this value.
const TimeoutResult = 0xFFFFFFFF

// HaltVia classifies how a test reached its halt, distinct from
// Outcome (which classifies what the halt meant).
type HaltVia string

const (
	// ViaECALLTrap means the hart took at least one ECALL trap before
	// the host device latched a result — the compliance-test trap
	// handler wrote tohost from the trap vector.
	ViaECALLTrap HaltVia = "ecall-trap"
	// ViaDirectTohost means tohost was written without any trap having
	// been taken — the test wrote it directly from normal flow.
	ViaDirectTohost HaltVia = "direct-tohost"
	// ViaTimeout means the run never halted before the cycle budget
	// expired.
	ViaTimeout HaltVia = "timeout"
	// ViaNone applies to a FATAL run: it never reached a halt at all.
	ViaNone HaltVia = "n/a"
)

// csrReportOrder fixes the iteration order of the CSR dump; map order
// is otherwise unspecified.
var csrReportOrder = []string{"mstatus", "mepc", "mcause", "mtvec", "mie"}

// Result holds the outcome of a single test run, independent of the
// hardware that produced it, so it can be logged or summarized after
// the hardware is torn down.
type Result struct {
	Name    string
	Cycles  int
	Outcome cpu.Outcome
	HaltVia HaltVia
	PC      uint32
	Result  uint32
	Regs    [32]uint32
	CSRs    map[string]uint32
	Err     error
}

// Report renders the full diagnostic dump for a failed or timed-out
// run: name, cycle count, halt classification, final PC, every general
// register in hex/signed-decimal/ABI-name form, and the trap CSRs.
func (res Result) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s: %s (via %s, %d cycles, result=%#x) ===\n",
		res.Name, res.Outcome, res.HaltVia, res.Cycles, res.Result)
	fmt.Fprintf(&b, "pc = %#010x\n", res.PC)
	for i := 0; i < 32; i++ {
		v := res.Regs[i]
		fmt.Fprintf(&b, "x%-2d %-5s = %#010x (%d)\n", i, cpu.ABIName(i), v, int32(v))
	}
	for _, name := range csrReportOrder {
		fmt.Fprintf(&b, "%-8s = %#010x\n", name, res.CSRs[name])
	}
	return b.String()
}

// Summary tallies outcomes across a directory of tests.
type Summary struct {
	Total   int
	Pass    int
	Fail    int
	Timeout int
	Fatal   int
}

// RunDir enumerates *.hex files in dir in lexical order, runs each
// through a freshly constructed hardware stack, and returns one Result
// per file plus the aggregate Summary. maxCycles bounds each run
// independently; onResult, if non-nil, is invoked after each test so a
// caller can react immediately (e.g. drop into an interactive console
// on failure) instead of waiting for the whole directory to finish.
func RunDir(dir string, maxCycles int, debug bool, onResult func(Result)) ([]Result, Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Summary{}, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".hex" {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	var results []Result
	var sum Summary
	for _, name := range files {
		res := RunFile(filepath.Join(dir, name), name, maxCycles, debug)
		results = append(results, res)
		sum.Total++
		switch res.Outcome {
		case cpu.OutcomeHaltPass:
			sum.Pass++
		case cpu.OutcomeHaltFail:
			sum.Fail++
		case cpu.OutcomeTimeout:
			sum.Timeout++
		case cpu.OutcomeFatal:
			sum.Fatal++
		}
		if onResult != nil {
			onResult(res)
		}
	}
	return results, sum, nil
}

// RunFile constructs a fresh RAM, host device, bus and CPU so no state
// leaks between test runs, loads path, and executes it to completion or
// maxCycles.
func RunFile(path, name string, maxCycles int, debug bool) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Name: name, Outcome: cpu.OutcomeFatal, HaltVia: ViaNone, Err: err}
	}
	defer f.Close()

	r := ram.New()
	h := hostdevice.New()
	b := bus.New(r, h)

	if err := loader.Load(f, b, cpu.RAMBase); err != nil {
		return Result{Name: name, Outcome: cpu.OutcomeFatal, HaltVia: ViaNone, Err: err}
	}

	c := cpu.New()
	c.Debug = debug
	outcome := c.Run(b, maxCycles)

	res := Result{
		Name:    name,
		Cycles:  c.Cycle(),
		Outcome: outcome,
		PC:      c.PC(),
		Err:     c.FatalError(),
	}
	for i := 0; i < 32; i++ {
		res.Regs[i] = c.Reg(i)
	}
	res.CSRs = map[string]uint32{
		"mstatus": c.CSR(0x300),
		"mepc":    c.CSR(0x341),
		"mcause":  c.CSR(0x342),
		"mtvec":   c.CSR(0x305),
		"mie":     c.CSR(0x304),
	}

	switch outcome {
	case cpu.OutcomeHaltPass, cpu.OutcomeHaltFail:
		res.Result = b.TestResult()
		if c.TrapCount() > 0 {
			res.HaltVia = ViaECALLTrap
		} else {
			res.HaltVia = ViaDirectTohost
		}
	case cpu.OutcomeTimeout:
		res.Result = TimeoutResult
		res.HaltVia = ViaTimeout
	case cpu.OutcomeFatal:
		res.HaltVia = ViaNone
	}

	logOutcome(res)
	return res
}

// NewSession builds a fresh hardware stack, loads the program read from
// r, and returns a parser.Session over it without running it — the
// caller steps or continues it interactively from the reset PC.
func NewSession(src io.Reader) *parser.Session {
	r := ram.New()
	host := hostdevice.New()
	b := bus.New(r, host)
	if err := loader.Load(src, b, cpu.RAMBase); err != nil {
		slog.Error("driver: failed to reload program for console session", "err", err)
		return nil
	}
	return &parser.Session{CPU: cpu.New(), Bus: b}
}

func logOutcome(res Result) {
	switch res.Outcome {
	case cpu.OutcomeHaltPass:
		slog.Info("test PASS", "name", res.Name, "cycles", res.Cycles)
	case cpu.OutcomeHaltFail:
		slog.Warn("test FAIL", "name", res.Name, "cycles", res.Cycles, "result", res.Result, "via", res.HaltVia)
		fmt.Print(res.Report())
	case cpu.OutcomeTimeout:
		slog.Warn("test TIMEOUT", "name", res.Name, "cycles", res.Cycles)
		fmt.Print(res.Report())
	case cpu.OutcomeFatal:
		slog.Error("test FATAL", "name", res.Name, "err", res.Err)
		fmt.Print(res.Report())
	}
}
