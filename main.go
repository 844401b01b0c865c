/*
 * synacorvm - Main process.
 *
 * Copyright 2024, Richard Cornwell
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

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"synacorvm/internal/console"
	"synacorvm/internal/loader"
	"synacorvm/internal/machine"
	"synacorvm/internal/vmlog"
)

var Logger *slog.Logger

func main() {
	optTrace := getopt.BoolLong("trace", 't', "Log one line per decoded instruction")
	optStep := getopt.BoolLong("step", 's', "Pause for Enter between instructions")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("<program-file>")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile *os.File
	if optLogFile != nil && *optLogFile != "" {
		var err error
		logFile, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer logFile.Close()
	}
	level := slog.LevelInfo
	if *optTrace {
		level = slog.LevelDebug
	}
	Logger = slog.New(vmlog.New(logFile, level, *optTrace))
	slog.SetDefault(Logger)

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(1)
	}

	if err := run(args[0], *optTrace, *optStep); err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(path string, trace, step bool) error {
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()

	program, err := loader.Load(fp)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	Logger.Info("loaded program", "path", path, "words", len(program))

	in := console.New(os.Stdin, "")
	defer in.Close()

	state := machine.NewState(program, in, bufio.NewWriter(os.Stdout))

	opts := machine.RunOptions{}
	if trace {
		opts.Trace = func(pc machine.Word, inst machine.Instruction) {
			Logger.Debug("step", "pc", pc, "inst", inst.String())
		}
	}
	if step {
		// Separate from the in instruction's own stdin reader; stepping
		// through a program that also reads guest input will race both
		// readers over the same fd, same as risc32's plain fmt.Scanln step.
		stdin := bufio.NewReader(os.Stdin)
		opts.Step = func() {
			fmt.Fprint(os.Stderr, "vm: paused, press enter to continue...")
			_, _ = stdin.ReadString('\n')
		}
	}

	err = machine.Run(state, opts)

	if flusher, ok := state.Stdout().(*bufio.Writer); ok {
		_ = flusher.Flush()
	}

	if err == nil {
		return nil
	}
	return err
}
