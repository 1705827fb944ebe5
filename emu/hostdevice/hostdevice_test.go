package hostdevice

import "testing"

func TestWordWriteAssertsHalt(t *testing.T) {
	d := New()
	d.WriteWord(0, 1)
	if !d.Halted() {
		t.Fatalf("word write to offset 0 should halt")
	}
	if d.TestResult() != 1 {
		t.Fatalf("got test result %d, want 1", d.TestResult())
	}
}

func TestByteWritesDoNotHalt(t *testing.T) {
	d := New()
	d.WriteByte(0, 1)
	d.WriteByte(1, 0)
	d.WriteByte(2, 0)
	d.WriteByte(3, 0)
	if d.Halted() {
		t.Fatalf("byte writes must never assert halt")
	}
	if got := d.ReadWord(0); got != 1 {
		t.Fatalf("got %#x, want 1", got)
	}
}

func TestResultLatchedOnce(t *testing.T) {
	d := New()
	d.WriteWord(0, 3)
	d.WriteWord(0, 0xFFFFFFFF)
	if d.TestResult() != 3 {
		t.Fatalf("test result should stay at first latched value, got %d", d.TestResult())
	}
}

func TestOutOfRangeOffsetsReadZero(t *testing.T) {
	d := New()
	d.WriteWord(0, 0xDEADBEEF)
	if d.ReadByte(4) != 0 {
		t.Fatalf("offset outside [0,3] should read zero")
	}
	if d.ReadWord(4) != 0 {
		t.Fatalf("non-zero word offset should read zero")
	}
}

func TestLittleEndianByteOrder(t *testing.T) {
	d := New()
	d.WriteWord(0, 0x11223344)
	if d.ReadByte(0) != 0x44 || d.ReadByte(1) != 0x33 || d.ReadByte(2) != 0x22 || d.ReadByte(3) != 0x11 {
		t.Fatalf("tohost bytes not little-endian: %02x %02x %02x %02x",
			d.ReadByte(0), d.ReadByte(1), d.ReadByte(2), d.ReadByte(3))
	}
}
