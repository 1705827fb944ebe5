package config

/*
 * rv32iss - CLI flag parsing
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
	"os"

	getopt "github.com/pborman/getopt/v2"
)

// Config holds the resolved command-line options for one run of the
// driver.
type Config struct {
	Dir         string
	MaxCycles   int
	LogFile     string
	Debug       bool
	Interactive bool
}

// Parse reads os.Args into a Config. It calls os.Exit(0) after printing
// usage if -h/--help was given.
func Parse() *Config {
	optDir := getopt.StringLong("dir", 'd', "testdata", "Directory of .hex compliance tests")
	optMaxCycles := getopt.IntLong("max-cycles", 'm', 50_000, "Per-test instruction limit before TIMEOUT")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 0, "Enable per-instruction trace logging")
	optInteractive := getopt.BoolLong("interactive", 'i', "Drop into console on FAIL/TIMEOUT")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	return &Config{
		Dir:         *optDir,
		MaxCycles:   *optMaxCycles,
		LogFile:     *optLogFile,
		Debug:       *optDebug,
		Interactive: *optInteractive,
	}
}
