package hostdevice

/*
 * rv32iss - Host-communication device (tohost)
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

// Size is the host device's address window, matching the RAM-overlapping
// 4 KiB region the bus routes to it.
const Size = 0x1000

// Device is the test harness's return channel. A word-sized write to
// offset 0 latches the result and halts the simulation; byte-sized
// writes update tohostWord without ever halting.
type Device struct {
	tohostWord byte4
	halt       bool
	testResult uint32
}

type byte4 [4]byte

// New returns a cleared host device.
func New() *Device {
	return &Device{}
}

// Halted reports whether a word-write to tohost has occurred.
func (d *Device) Halted() bool {
	return d.halt
}

// TestResult returns the value latched by the halting write. Its meaning
// is undefined before Halted returns true.
func (d *Device) TestResult() uint32 {
	return d.testResult
}

// ReadByte returns byte offset of tohostWord, or zero outside [0,3].
func (d *Device) ReadByte(offset uint32) byte {
	if offset > 3 {
		return 0
	}
	return d.tohostWord[offset]
}

// WriteByte updates byte offset of tohostWord. This never asserts halt:
// a word store is assembled from four of these during bus decomposition,
// and treating a partial write as a halt would terminate the simulation
// before the word is fully written.
func (d *Device) WriteByte(offset uint32, b byte) {
	if offset > 3 {
		return
	}
	d.tohostWord[offset] = b
}

// ReadWord returns tohostWord as a little-endian uint32, or zero for any
// offset other than 0.
func (d *Device) ReadWord(offset uint32) uint32 {
	if offset != 0 {
		return 0
	}
	return uint32(d.tohostWord[0]) | uint32(d.tohostWord[1])<<8 |
		uint32(d.tohostWord[2])<<16 | uint32(d.tohostWord[3])<<24
}

// WriteWord stores w at offset 0 and, only there, asserts halt and
// latches the test result. Once halted, the result is never overwritten
// by a later access within the same run.
func (d *Device) WriteWord(offset uint32, w uint32) {
	if offset != 0 {
		return
	}
	d.tohostWord[0] = byte(w)
	d.tohostWord[1] = byte(w >> 8)
	d.tohostWord[2] = byte(w >> 16)
	d.tohostWord[3] = byte(w >> 24)
	if !d.halt {
		d.halt = true
		d.testResult = w
	}
}
