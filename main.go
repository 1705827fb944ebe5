package main

/*
 * rv32iss - Main process
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
	"fmt"
	"log/slog"
	"os"

	"github.com/rcornwell/rv32iss/command/console"
	"github.com/rcornwell/rv32iss/command/parser"
	"github.com/rcornwell/rv32iss/config"
	"github.com/rcornwell/rv32iss/emu/cpu"
	"github.com/rcornwell/rv32iss/emu/driver"
	logger "github.com/rcornwell/rv32iss/util/logger"
)

var Logger *slog.Logger

func main() {
	cfg := config.Parse()

	var file *os.File
	if cfg.LogFile != "" {
		var err error
		file, err = os.Create(cfg.LogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not create log file:", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	if cfg.Debug {
		programLevel.Set(slog.LevelDebug)
	} else {
		programLevel.Set(slog.LevelInfo)
	}
	handler := logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, cfg.Debug)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("rv32iss started", "dir", cfg.Dir, "maxCycles", cfg.MaxCycles)

	_, summary, err := driver.RunDir(cfg.Dir, cfg.MaxCycles, cfg.Debug, func(res driver.Result) {
		if !cfg.Interactive {
			return
		}
		if res.Outcome != cpu.OutcomeHaltFail && res.Outcome != cpu.OutcomeTimeout {
			return
		}
		fmt.Printf("\n%s: %s, dropping into console (type 'quit' to continue to next test)\n", res.Name, res.Outcome)
		session := rerunForConsole(cfg.Dir, res)
		if session != nil {
			console.Run(res.Name, session)
		}
	})
	if err != nil {
		Logger.Error("failed to run test directory", "dir", cfg.Dir, "err", err)
		os.Exit(1)
	}

	Logger.Info("run complete",
		"total", summary.Total, "pass", summary.Pass, "fail", summary.Fail,
		"timeout", summary.Timeout, "fatal", summary.Fatal)
	fmt.Printf("\n%d total: %d pass, %d fail, %d timeout, %d fatal\n",
		summary.Total, summary.Pass, summary.Fail, summary.Timeout, summary.Fatal)

	if summary.Pass != summary.Total {
		os.Exit(1)
	}
}

// rerunForConsole replays the failing test under a CPU the console can
// single-step and inspect interactively; the driver's own run has
// already torn its hardware stack down by the time the summary lands.
func rerunForConsole(dir string, res driver.Result) *parser.Session {
	path := dir + "/" + res.Name
	f, err := os.Open(path)
	if err != nil {
		Logger.Error("console: could not reopen test file", "path", path, "err", err)
		return nil
	}
	defer f.Close()
	return driver.NewSession(f)
}
