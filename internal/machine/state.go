package machine

import "io"

// StdinSource is the line-buffered byte source the in instruction reads
// from. internal/console.Reader implements this.
type StdinSource interface {
	ReadByte() (byte, error)
}

// State holds everything a running program can observe or mutate: the
// 32768-word memory image, the eight general-purpose registers, the
// operand stack, the program counter, and the standard input source. Only
// the executor is meant to mutate a State; the decoder only reads memory
// at pc and advances pc via FetchWord.
type State struct {
	memory    [MemorySize]Word
	registers [NumRegisters]Word
	stack     []Word
	pc        Word
	stdin     StdinSource
	stdout    io.Writer
}

// NewState returns a State with memory initialized from program (padded
// with zeros to MemorySize), all registers zeroed, an empty stack, pc at
// 0, stdin as the source for the in instruction, and stdout as the sink
// for the out instruction.
func NewState(program []Word, stdin StdinSource, stdout io.Writer) *State {
	s := &State{stdin: stdin, stdout: stdout}
	copy(s.memory[:], program)
	return s
}

// PC returns the current program counter.
func (s *State) PC() Word { return s.pc }

// SetPC sets the program counter. It fails if pc addresses outside
// memory.
func (s *State) SetPC(pc Word) error {
	if pc >= MemorySize {
		return &InvalidAddressError{Word: pc, PC: s.pc}
	}
	s.pc = pc
	return nil
}

// FetchWord reads the word at pc and advances pc by one. This is the only
// primitive that advances pc as a side effect of reading; every other
// reassignment of pc goes through SetPC. It fails with InvalidAddressError
// if pc has reached the end of the 15-bit address space - the one way pc
// can go out of range without passing through SetPC's own check, since
// incrementing past the last valid address is a side effect of fetching,
// not an explicit assignment.
func (s *State) FetchWord() (Word, error) {
	if s.pc >= MemorySize {
		return 0, &InvalidAddressError{Word: s.pc, PC: s.pc}
	}
	w := s.memory[s.pc]
	s.pc++
	return w, nil
}

// ReadWord reads memory at addr. It fails if addr is out of range.
func (s *State) ReadWord(addr Word) (Word, error) {
	if addr >= MemorySize {
		return 0, &InvalidAddressError{Word: addr, PC: s.pc}
	}
	return s.memory[addr], nil
}

// WriteWord writes word to memory at addr. It fails if addr is out of
// range or if word does not fit in 15 bits - the one exception being the
// wmem instruction, which goes through WriteWordMasked instead so that an
// overflowing value is truncated rather than rejected.
func (s *State) WriteWord(addr, word Word) error {
	if addr >= MemorySize {
		return &InvalidAddressError{Word: addr, PC: s.pc}
	}
	if word > MaxLiteral {
		return &InvalidOperandError{Word: word, PC: s.pc}
	}
	s.memory[addr] = word
	return nil
}

// WriteWordMasked writes word to memory at addr, masking word to its low
// 15 bits first. Used only by the wmem instruction: the architecture
// never clearly defines what a register value above 32767 written through
// wmem should do, and this implementation follows the permissive
// alternative of masking instead of erroring.
func (s *State) WriteWordMasked(addr, word Word) error {
	if addr >= MemorySize {
		return &InvalidAddressError{Word: addr, PC: s.pc}
	}
	s.memory[addr] = word & MaxLiteral
	return nil
}

// GetRegister returns the value of register r. r must be in 0..7.
func (s *State) GetRegister(r Word) Word {
	return s.registers[r]
}

// SetRegister assigns word to register r. It fails if word does not fit
// in 15 bits: no instruction may leave a register holding a value outside
// the architecture's word range.
func (s *State) SetRegister(r, word Word) error {
	if word > MaxLiteral {
		return &InvalidOperandError{Word: word, PC: s.pc}
	}
	s.registers[r] = word
	return nil
}

// Resolve reads the value an operand denotes: a literal as-is, or a
// register's current contents.
func (s *State) Resolve(op Operand) Word {
	if op.IsRegister() {
		return s.GetRegister(op.RegisterIndex())
	}
	return op.LiteralValue()
}

// Push appends word to the operand stack. It fails with
// StackOverflowError if the stack has reached its soft limit.
func (s *State) Push(word Word) error {
	if len(s.stack) >= maxStack {
		return &StackOverflowError{PC: s.pc}
	}
	s.stack = append(s.stack, word)
	return nil
}

// Pop removes and returns the top of the operand stack. It fails with
// StackUnderflowError if the stack is empty.
func (s *State) Pop() (Word, error) {
	if len(s.stack) == 0 {
		return 0, &StackUnderflowError{PC: s.pc}
	}
	n := len(s.stack) - 1
	w := s.stack[n]
	s.stack = s.stack[:n]
	return w, nil
}

// StackEmpty reports whether the operand stack currently holds no
// entries - the condition that turns ret into a clean halt rather than a
// jump.
func (s *State) StackEmpty() bool {
	return len(s.stack) == 0
}

// ReadStdinChar returns the next byte of guest-visible standard input,
// refilling one line at a time from the underlying StdinSource.
func (s *State) ReadStdinChar() (byte, error) {
	b, err := s.stdin.ReadByte()
	if err != nil {
		return 0, &IoError{Cause: err, PC: s.pc}
	}
	return b, nil
}

// Stdout returns the writer the out instruction writes to, so a caller
// can flush a buffered sink after Run returns.
func (s *State) Stdout() io.Writer { return s.stdout }

// WriteStdoutByte writes a single byte verbatim to standard output.
func (s *State) WriteStdoutByte(b byte) error {
	_, err := s.stdout.Write([]byte{b})
	if err != nil {
		return &IoError{Cause: err, PC: s.pc}
	}
	return nil
}
