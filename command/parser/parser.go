package parser

/*
 * rv32iss - Console command parser
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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/rv32iss/emu/bus"
	"github.com/rcornwell/rv32iss/emu/cpu"
)

// Session is the state a console command operates on: a CPU and bus
// holding a failed or timed-out test's program, which the console can
// step or continue.
type Session struct {
	CPU *cpu.CPU
	Bus *bus.Bus
}

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *Session) (bool, error)
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "regs", min: 1, process: regs},
	{name: "csrs", min: 1, process: csrs},
	{name: "mem", min: 3, process: mem},
	{name: "pc", min: 2, process: pc},
	{name: "step", min: 2, process: step},
	{name: "continue", min: 1, process: cont},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes commandLine against session. It returns true
// when the console should exit.
func ProcessCommand(commandLine string, session *Session) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}
	return match[0].process(&line, session)
}

// CompleteCmd returns the set of command names matching the first word
// of commandLine, for liner's tab completion.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	matches := matchList(name)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

func matchCommand(m cmd, name string) bool {
	if name == "" || len(name) > len(m.name) {
		return false
	}
	if name != m.name[:len(name)] {
		return false
	}
	return len(name) >= m.min
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, name) {
			match = append(match, m)
		}
	}
	return match
}

func (l *cmdLine) isEOL() bool {
	return l.pos >= len(l.line)
}

func (l *cmdLine) skipSpace() {
	for !l.isEOL() && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return strings.ToLower(l.line[start:l.pos])
}

func (l *cmdLine) getHex() (uint32, error) {
	word := l.getWord()
	word = strings.TrimPrefix(word, "0x")
	if word == "" {
		return 0, errors.New("expected a hex value")
	}
	v, err := strconv.ParseUint(word, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q: %w", word, err)
	}
	return uint32(v), nil
}

func regs(_ *cmdLine, s *Session) (bool, error) {
	for i := 0; i < 32; i++ {
		v := s.CPU.Reg(i)
		fmt.Printf("x%-2d %-5s = %#010x (%d)\n", i, cpu.ABIName(i), v, int32(v))
	}
	return false, nil
}

func csrs(_ *cmdLine, s *Session) (bool, error) {
	names := []struct {
		name string
		num  uint32
	}{
		{"mstatus", 0x300}, {"mie", 0x304}, {"mtvec", 0x305},
		{"mepc", 0x341}, {"mcause", 0x342}, {"mhartid", 0xF14},
	}
	for _, n := range names {
		fmt.Printf("%-8s = %#010x\n", n.name, s.CPU.CSR(n.num))
	}
	return false, nil
}

func mem(line *cmdLine, s *Session) (bool, error) {
	addr, err := line.getHex()
	if err != nil {
		return false, err
	}
	v, ok := s.Bus.ReadWord(addr)
	if !ok {
		return false, fmt.Errorf("address %#08x is not mapped", addr)
	}
	fmt.Printf("%#08x: %#010x\n", addr, v)
	return false, nil
}

func pc(_ *cmdLine, s *Session) (bool, error) {
	fmt.Printf("pc = %#010x\n", s.CPU.PC())
	return false, nil
}

func step(_ *cmdLine, s *Session) (bool, error) {
	if !s.CPU.Step(s.Bus) {
		fmt.Println("step: " + s.CPU.FatalError().Error())
		return false, nil
	}
	fmt.Printf("pc = %#010x\n", s.CPU.PC())
	return false, nil
}

func cont(_ *cmdLine, s *Session) (bool, error) {
	for s.CPU.Step(s.Bus) {
		if s.Bus.HaltRequested() {
			break
		}
	}
	fmt.Printf("pc = %#010x halted=%v result=%#x\n", s.CPU.PC(), s.Bus.HaltRequested(), s.Bus.TestResult())
	return false, nil
}

func quit(_ *cmdLine, _ *Session) (bool, error) {
	return true, nil
}
