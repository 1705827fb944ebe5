package parser

import (
	"testing"

	"github.com/rcornwell/rv32iss/emu/bus"
	"github.com/rcornwell/rv32iss/emu/cpu"
	"github.com/rcornwell/rv32iss/emu/hostdevice"
	"github.com/rcornwell/rv32iss/emu/ram"
)

func newSession() *Session {
	r := ram.New()
	h := hostdevice.New()
	b := bus.New(r, h)
	c := cpu.New()
	return &Session{CPU: c, Bus: b}
}

func TestProcessCommandUnknown(t *testing.T) {
	s := newSession()
	_, err := ProcessCommand("bogus", s)
	if err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestProcessCommandTooShortForMinimum(t *testing.T) {
	s := newSession()
	// "step" requires at least 2 characters to match.
	_, err := ProcessCommand("s", s)
	if err == nil {
		t.Fatalf("expected error: 's' is shorter than step's minimum match length")
	}
}

func TestProcessCommandPC(t *testing.T) {
	s := newSession()
	quit, err := ProcessCommand("pc", s)
	if err != nil || quit {
		t.Fatalf("unexpected result: quit=%v err=%v", quit, err)
	}
}

func TestProcessCommandQuit(t *testing.T) {
	s := newSession()
	quit, err := ProcessCommand("quit", s)
	if err != nil || !quit {
		t.Fatalf("expected quit=true, got quit=%v err=%v", quit, err)
	}
}

func TestProcessCommandMemRequiresAddr(t *testing.T) {
	s := newSession()
	_, err := ProcessCommand("mem", s)
	if err == nil {
		t.Fatalf("expected error for missing address")
	}
}

func TestProcessCommandMemReadsRAM(t *testing.T) {
	s := newSession()
	s.Bus.WriteWord(cpu.RAMBase, 0xDEADBEEF)
	quit, err := ProcessCommand("mem 80000000", s)
	if err != nil || quit {
		t.Fatalf("unexpected result: quit=%v err=%v", quit, err)
	}
}

func TestProcessCommandStepAdvancesPC(t *testing.T) {
	s := newSession()
	s.Bus.WriteWord(cpu.RAMBase, 0x00000013) // NOP (ADDI x0, x0, 0)
	startPC := s.CPU.PC()
	_, err := ProcessCommand("step", s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CPU.PC() != startPC+4 {
		t.Fatalf("expected pc to advance by 4, got %#x -> %#x", startPC, s.CPU.PC())
	}
}

func TestCompleteCmd(t *testing.T) {
	matches := CompleteCmd("re")
	if len(matches) != 1 || matches[0] != "regs" {
		t.Fatalf("expected exactly [regs], got %v", matches)
	}
}
