package loader

/*
 * rv32iss - Hex program loader
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
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Writer is the bus-level operation the loader drives. *bus.Bus
// satisfies this.
type Writer interface {
	WriteWord(addr uint32, data uint32) bool
}

// Load reads a line-oriented hex program from r and writes it to bus
// starting at startAddr. Blank lines are skipped. A line beginning with
// '@' sets the current write address from the hex value that follows.
// Any other line is parsed as one 32-bit hex word and written at the
// current address, which then advances by 4. A line that fails to parse
// as hex is skipped with a warning log rather than an error, matching the
// original loader's tolerance for stray text in compliance-test hex dumps.
func Load(r io.Reader, b Writer, startAddr uint32) error {
	addr := startAddr
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '@' {
			v, err := strconv.ParseUint(strings.TrimSpace(line[1:]), 16, 32)
			if err != nil {
				slog.Warn("loader: bad address directive, skipping", "line", line)
				continue
			}
			addr = uint32(v)
			continue
		}
		v, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			slog.Warn("loader: unparseable line, skipping", "line", line)
			continue
		}
		b.WriteWord(addr, uint32(v))
		addr += 4
	}
	return scanner.Err()
}
