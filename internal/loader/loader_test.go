package loader

import (
	"bytes"
	"errors"
	"testing"

	"synacorvm/internal/machine"
)

func TestLoadDecodesLittleEndianWords(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x09, 0x00, 0x01, 0x80}
	program, err := Load(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []machine.Word{0, 9, 32769}
	if len(program) != len(want) {
		t.Fatalf("got %d words, want %d", len(program), len(want))
	}
	for i := range want {
		if program[i] != want[i] {
			t.Errorf("word %d: got %d, want %d", i, program[i], want[i])
		}
	}
}

func TestLoadRejectsOddLength(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	if !errors.Is(err, ErrOddLength) {
		t.Fatalf("got %v, want ErrOddLength", err)
	}
}

func TestLoadRejectsOversizedProgram(t *testing.T) {
	raw := make([]byte, (machine.MemorySize+1)*2)
	_, err := Load(bytes.NewReader(raw))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got %v, want ErrTooLarge", err)
	}
}

func TestLoadEmptyFileYieldsEmptyProgram(t *testing.T) {
	program, err := Load(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program) != 0 {
		t.Errorf("got %d words, want 0", len(program))
	}
}

func TestLoadMaxSizeProgramSucceeds(t *testing.T) {
	raw := make([]byte, machine.MemorySize*2)
	program, err := Load(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program) != machine.MemorySize {
		t.Errorf("got %d words, want %d", len(program), machine.MemorySize)
	}
}
