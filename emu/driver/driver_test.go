package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcornwell/rv32iss/emu/cpu"
)

// writeHex writes a minimal hex program to dir/name and returns its path.
func writeHex(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// passProgram: LUI loads the host base into x3, ADDI puts 1 in x5, and
// SW writes x5 through x3 to the host device's tohost word.
const passProgram = "" +
	"800011B7\n" + // LUI x3, 0x80001      -> x3 = 0x80001000
	"00100293\n" + // ADDI x5, x0, 1       -> x5 = 1
	"0051A023\n" // SW x5, 0(x3)         -> tohost = 1, PASS

const failProgram = "" +
	"800011B7\n" + // LUI x3, 0x80001
	"00200293\n" + // ADDI x5, x0, 2      -> x5 = 2
	"0051A023\n" // SW x5, 0(x3)        -> tohost = 2, FAIL

const timeoutProgram = "" +
	"0000006F\n" // JAL x0, 0  -> infinite self-loop

// ecallTrapProgram sets mtvec to the handler below, then traps via
// ECALL instead of writing tohost directly, so the halt is reached
// through the trap vector: the HaltVia this run reports must come out
// as "ecall-trap", not "direct-tohost".
const ecallTrapProgram = "" +
	"800011B7\n" + // LUI x3, 0x80001        -> x3 = 0x80001000
	"00100293\n" + // ADDI x5, x0, 1         -> x5 = 1
	"00000097\n" + // AUIPC x1, 0            -> x1 = pc (0x80000008)
	"01008093\n" + // ADDI x1, x1, 0x10      -> x1 = handler addr (0x80000018)
	"30509073\n" + // CSRRW x0, mtvec, x1    -> mtvec = handler addr
	"00000073\n" + // ECALL                  -> traps to mtvec
	"0051A023\n" // SW x5, 0(x3)            -> tohost = 1, PASS (via trap)

func TestRunFilePass(t *testing.T) {
	dir := t.TempDir()
	path := writeHex(t, dir, "pass.hex", passProgram)
	res := RunFile(path, "pass.hex", 1000, false)
	if res.Outcome != cpu.OutcomeHaltPass {
		t.Fatalf("expected HALT-PASS, got %v (err=%v)", res.Outcome, res.Err)
	}
	if res.Result != 1 {
		t.Fatalf("expected result 1, got %#x", res.Result)
	}
	if res.HaltVia != ViaDirectTohost {
		t.Fatalf("expected direct-tohost classification, got %v", res.HaltVia)
	}
}

func TestRunFileECALLTrap(t *testing.T) {
	dir := t.TempDir()
	path := writeHex(t, dir, "ecall.hex", ecallTrapProgram)
	res := RunFile(path, "ecall.hex", 1000, false)
	if res.Outcome != cpu.OutcomeHaltPass {
		t.Fatalf("expected HALT-PASS, got %v (err=%v)", res.Outcome, res.Err)
	}
	if res.HaltVia != ViaECALLTrap {
		t.Fatalf("expected ecall-trap classification, got %v", res.HaltVia)
	}
	if res.CSRs["mcause"] != 11 {
		t.Fatalf("expected mcause=11 from the ECALL trap, got %d", res.CSRs["mcause"])
	}
	report := res.Report()
	if !strings.Contains(report, "via ecall-trap") {
		t.Fatalf("report missing halt classification: %s", report)
	}
	if !strings.Contains(report, "a0 ") {
		t.Fatalf("report missing ABI register names: %s", report)
	}
}

func TestRunFileFail(t *testing.T) {
	dir := t.TempDir()
	path := writeHex(t, dir, "fail.hex", failProgram)
	res := RunFile(path, "fail.hex", 1000, false)
	if res.Outcome != cpu.OutcomeHaltFail {
		t.Fatalf("expected HALT-FAIL, got %v (err=%v)", res.Outcome, res.Err)
	}
	if res.Result != 2 {
		t.Fatalf("expected result 2, got %#x", res.Result)
	}
	if res.HaltVia != ViaDirectTohost {
		t.Fatalf("expected direct-tohost classification, got %v", res.HaltVia)
	}
}

func TestRunFileTimeout(t *testing.T) {
	dir := t.TempDir()
	path := writeHex(t, dir, "loop.hex", timeoutProgram)
	res := RunFile(path, "loop.hex", 50, false)
	if res.Outcome != cpu.OutcomeTimeout {
		t.Fatalf("expected TIMEOUT, got %v (err=%v)", res.Outcome, res.Err)
	}
	if res.Cycles != 50 {
		t.Fatalf("expected exactly maxCycles=50 executed, got %d", res.Cycles)
	}
	if res.HaltVia != ViaTimeout {
		t.Fatalf("expected timeout classification, got %v", res.HaltVia)
	}
}

func TestRunFileMissing(t *testing.T) {
	res := RunFile("/nonexistent/path.hex", "path.hex", 10, false)
	if res.Outcome != cpu.OutcomeFatal {
		t.Fatalf("expected FATAL for missing file, got %v", res.Outcome)
	}
}

func TestRunDirEnumeratesHexOnly(t *testing.T) {
	dir := t.TempDir()
	writeHex(t, dir, "a.hex", passProgram)
	writeHex(t, dir, "b.hex", failProgram)
	writeHex(t, dir, "notes.txt", "ignore me")

	results, summary, err := RunDir(dir, 1000, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results (txt file excluded), got %d", len(results))
	}
	if summary.Total != 2 || summary.Pass != 1 || summary.Fail != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunDirCallback(t *testing.T) {
	dir := t.TempDir()
	writeHex(t, dir, "a.hex", passProgram)

	var seen []string
	_, _, err := RunDir(dir, 1000, false, func(res Result) {
		seen = append(seen, res.Name)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 1 || seen[0] != "a.hex" {
		t.Fatalf("expected callback invoked once with a.hex, got %v", seen)
	}
}
