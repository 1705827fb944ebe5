package ram

/*
 * rv32iss - Main RAM
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

// Size is the fixed RAM size: 512 KiB.
const Size = 512 * 1024

// RAM is flat byte-addressable storage mapped starting at bus.RAMBase.
// Every run gets a fresh RAM; there is no persistence across test runs.
type RAM struct {
	mem [Size]byte
}

// New returns a zeroed RAM.
func New() *RAM {
	return &RAM{}
}

// Reset zeroes the backing store in place, for reuse across test runs
// without reallocating.
func (r *RAM) Reset() {
	for i := range r.mem {
		r.mem[i] = 0
	}
}

// ReadByte returns the byte at local offset and whether the access was
// in bounds. Out-of-bounds reads return (0, false); the caller logs and
// continues per the fail-soft memory policy.
func (r *RAM) ReadByte(offset uint32) (byte, bool) {
	if offset >= Size {
		return 0, false
	}
	return r.mem[offset], true
}

// WriteByte stores a byte at local offset and reports whether the access
// was in bounds. Out-of-bounds writes are discarded.
func (r *RAM) WriteByte(offset uint32, value byte) bool {
	if offset >= Size {
		return false
	}
	r.mem[offset] = value
	return true
}
