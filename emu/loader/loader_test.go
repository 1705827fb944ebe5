package loader

import (
	"strings"
	"testing"
)

type fakeWriter struct {
	writes map[uint32]uint32
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{writes: make(map[uint32]uint32)}
}

func (w *fakeWriter) WriteWord(addr uint32, data uint32) bool {
	w.writes[addr] = data
	return true
}

func TestLoadSequentialWords(t *testing.T) {
	src := "800012B7\n00100313\n0062A023\n"
	w := newFakeWriter()
	if err := Load(strings.NewReader(src), w, 0x80000000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[uint32]uint32{
		0x80000000: 0x800012B7,
		0x80000004: 0x00100313,
		0x80000008: 0x0062A023,
	}
	for addr, v := range want {
		if w.writes[addr] != v {
			t.Fatalf("at %#x: got %#x, want %#x", addr, w.writes[addr], v)
		}
	}
}

func TestLoadAddressDirective(t *testing.T) {
	src := "@80000100\nDEADBEEF\n"
	w := newFakeWriter()
	if err := Load(strings.NewReader(src), w, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.writes[0x80000100] != 0xDEADBEEF {
		t.Fatalf("directive-addressed write missing or wrong")
	}
}

func TestLoadSkipsBlankAndBadLines(t *testing.T) {
	src := "\n  \nnot-hex-zzz\n00000013\n"
	w := newFakeWriter()
	if err := Load(strings.NewReader(src), w, 0x1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.writes) != 1 || w.writes[0x1000] != 0x13 {
		t.Fatalf("expected exactly one write of 0x13 at 0x1000, got %v", w.writes)
	}
}

func TestLoadMixedDirectivesAndWords(t *testing.T) {
	src := "@100\n1\n2\n@200\n3\n"
	w := newFakeWriter()
	if err := Load(strings.NewReader(src), w, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.writes[0x100] != 1 || w.writes[0x104] != 2 || w.writes[0x200] != 3 {
		t.Fatalf("got %v", w.writes)
	}
}
