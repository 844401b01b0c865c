// Package machine implements the Synacor-architecture interpreter core: a
// 16-bit word-addressed register/stack machine. The package is organized
// the way a single CPU core usually is - one file per concern, one struct
// owning all mutable state - rather than as several Go packages, since the
// whole interpreter is small enough that splitting State, Decoder, and
// Executor into separate packages would only add import plumbing.
package machine

// Word is a single 16-bit machine value: a memory cell, a register, or a
// stack entry.
type Word uint16

const (
	// MemorySize is the number of addressable words.
	MemorySize = 32768

	// NumRegisters is the number of general-purpose registers.
	NumRegisters = 8

	// MaxLiteral is the largest value representable as a Literal operand.
	MaxLiteral = MemorySize - 1

	// registerBase is the first operand value decoded as Register(0).
	registerBase = MemorySize

	// registerLimit is one past the last valid register operand value.
	registerLimit = registerBase + NumRegisters

	// Modulus is the modulus all arithmetic instructions reduce under.
	Modulus = MemorySize

	// maxStack caps the operand stack so a runaway program fails with
	// StackOverflowError instead of exhausting host memory.
	maxStack = 1 << 20
)
