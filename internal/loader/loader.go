// Package loader decodes a Synacor Challenge program file into the word
// stream the machine loads into memory at address 0. Program loading is
// treated as an external collaborator by the specification this machine
// implements - there is nothing architecturally interesting here - but a
// runnable repository still needs one.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"

	"synacorvm/internal/machine"
)

// ErrOddLength is returned when the program file's length is not a
// multiple of two: the format is a flat stream of 16-bit little-endian
// words with no header or separator, so a trailing byte cannot belong to
// a whole word.
var ErrOddLength = fmt.Errorf("program file length is not a multiple of 2")

// ErrTooLarge is returned when the program file decodes to more words
// than fit in memory.
var ErrTooLarge = fmt.Errorf("program exceeds %d words", machine.MemorySize)

// Load reads every byte of r and decodes it as a sequence of 16-bit
// little-endian words, the same field width and byte order
// encoding/binary.LittleEndian.Uint16 is built for.
func Load(r io.Reader) ([]machine.Word, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw)%2 != 0 {
		return nil, ErrOddLength
	}
	words := len(raw) / 2
	if words > machine.MemorySize {
		return nil, ErrTooLarge
	}
	program := make([]machine.Word, words)
	for i := 0; i < words; i++ {
		program[i] = machine.Word(binary.LittleEndian.Uint16(raw[2*i : 2*i+2]))
	}
	return program, nil
}
