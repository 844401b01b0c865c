// Package console implements the line-buffered standard input reader the
// machine's "in" instruction consumes. When standard input is a terminal it
// is backed by a line-editing prompt with history, exactly as the operator
// console drives one line at a time; when standard input is a pipe (the
// common case for replaying a recorded transcript) it falls back to a
// plain buffered reader. Either way the contract seen by the machine is
// the same: one line is fetched at a time, and its bytes - including the
// trailing newline - are handed back to the caller one at a time.
package console

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/peterh/liner"
)

// Reader is a line-buffered byte source.
type Reader struct {
	prompt string

	line *liner.State  // set when reading from an interactive terminal
	br   *bufio.Reader // set otherwise

	buf []byte
	pos int
	eof bool
}

// New returns a Reader over in. When in is a terminal, lines are read
// through a liner.State (prompt/history/Ctrl-C abort); otherwise a plain
// bufio.Reader is used. prompt is only shown in the interactive case.
func New(in *os.File, prompt string) *Reader {
	r := &Reader{prompt: prompt}
	if isTerminal(in) {
		l := liner.NewLiner()
		l.SetCtrlCAborts(true)
		r.line = l
	} else {
		r.br = bufio.NewReader(in)
	}
	return r
}

// Close releases the underlying terminal state, if any.
func (r *Reader) Close() error {
	if r.line != nil {
		return r.line.Close()
	}
	return nil
}

// ReadByte returns the next byte of guest-visible input, refilling from a
// fresh line of standard input when the current line is exhausted.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		if r.eof {
			return 0, io.EOF
		}
		if err := r.refill(); err != nil {
			return 0, err
		}
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) refill() error {
	if r.line != nil {
		text, err := r.line.Prompt(r.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				r.eof = true
				return io.EOF
			}
			return err
		}
		r.line.AppendHistory(text)
		r.buf = append([]byte(text), '\n')
		r.pos = 0
		return nil
	}

	text, err := r.br.ReadString('\n')
	if len(text) == 0 && err != nil {
		if errors.Is(err, io.EOF) {
			r.eof = true
		}
		return err
	}
	if err != nil {
		// Final, newline-less line before EOF: deliver it as-is, then
		// report EOF on the next refill.
		r.eof = true
	}
	r.buf = []byte(text)
	r.pos = 0
	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
