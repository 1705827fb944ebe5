package bus

/*
 * rv32iss - Address bus
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
	"log/slog"

	"github.com/rcornwell/rv32iss/emu/hostdevice"
	"github.com/rcornwell/rv32iss/emu/ram"
)

// Address-space layout. The host device's window numerically overlaps
// the RAM region; routing below checks it first, which is a hard
// invariant, not an ordering convenience.
const (
	RAMBase = 0x8000_0000
	RAMEnd  = RAMBase + ram.Size - 1

	HostBase = 0x8000_1000
	HostEnd  = HostBase + hostdevice.Size - 1
)

// Bus decodes a physical address and routes byte/word accesses to the
// matching device. It holds non-owning references: RAM and the host
// device are owned by whoever constructs the Bus for a run.
type Bus struct {
	ram  *ram.RAM
	host *hostdevice.Device
}

// New wires a Bus to an already-constructed RAM and host device.
func New(r *ram.RAM, h *hostdevice.Device) *Bus {
	return &Bus{ram: r, host: h}
}

// HaltRequested reports whether the host device has latched a result.
// The CPU's run loop polls this without knowing which device backs it.
func (b *Bus) HaltRequested() bool {
	return b.host.Halted()
}

// TestResult returns the host device's latched result. Valid only after
// HaltRequested reports true.
func (b *Bus) TestResult() uint32 {
	return b.host.TestResult()
}

// ReadByte decodes addr and returns the byte there, or (0, false) for an
// address that hits no device.
func (b *Bus) ReadByte(addr uint32) (byte, bool) {
	switch {
	case addr >= HostBase && addr <= HostEnd:
		return b.host.ReadByte(addr - HostBase), true
	case addr >= RAMBase && addr <= RAMEnd:
		return b.ram.ReadByte(addr - RAMBase)
	default:
		slog.Warn("bus: invalid address on read", "addr", addr)
		return 0, false
	}
}

// WriteByte decodes addr and writes the byte there. It reports whether
// the address hit a device.
func (b *Bus) WriteByte(addr uint32, data byte) bool {
	switch {
	case addr >= HostBase && addr <= HostEnd:
		b.host.WriteByte(addr-HostBase, data)
		return true
	case addr >= RAMBase && addr <= RAMEnd:
		return b.ram.WriteByte(addr-RAMBase, data)
	default:
		slog.Warn("bus: invalid address on write", "addr", addr)
		return false
	}
}

// ReadWord reads a 32-bit little-endian word at addr. A host-device hit
// is delegated to the device's word API directly, atomic with respect to
// the halt side effect. A RAM-range hit is decomposed into four ordered
// byte reads (LSB at addr), each re-decoded through ReadByte rather than
// indexed into RAM directly, so a word that starts in RAM but straddles
// into the host device's overlapping window routes its upper bytes
// there instead of silently reading raw RAM storage. Reads that would
// span past the end of RAM fail without performing any of the byte
// reads.
func (b *Bus) ReadWord(addr uint32) (uint32, bool) {
	switch {
	case addr >= HostBase && addr <= HostEnd:
		return b.host.ReadWord(addr - HostBase), true
	case addr >= RAMBase && addr <= RAMEnd:
		if addr+3 > RAMEnd {
			slog.Warn("bus: word read overflows RAM", "addr", addr)
			return 0, false
		}
		b0, _ := b.ReadByte(addr)
		b1, _ := b.ReadByte(addr + 1)
		b2, _ := b.ReadByte(addr + 2)
		b3, _ := b.ReadByte(addr + 3)
		return uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24, true
	default:
		slog.Warn("bus: invalid address on word read", "addr", addr)
		return 0, false
	}
}

// WriteWord writes a 32-bit little-endian word at addr, with the same
// host-atomic / byte-redecoded / overflow-checked rules as ReadWord.
func (b *Bus) WriteWord(addr uint32, data uint32) bool {
	switch {
	case addr >= HostBase && addr <= HostEnd:
		b.host.WriteWord(addr-HostBase, data)
		return true
	case addr >= RAMBase && addr <= RAMEnd:
		if addr+3 > RAMEnd {
			slog.Warn("bus: word write overflows RAM", "addr", addr)
			return false
		}
		b.WriteByte(addr, byte(data))
		b.WriteByte(addr+1, byte(data>>8))
		b.WriteByte(addr+2, byte(data>>16))
		b.WriteByte(addr+3, byte(data>>24))
		return true
	default:
		slog.Warn("bus: invalid address on word write", "addr", addr)
		return false
	}
}
