package machine

// Execute mutates s according to inst and reports whether the machine
// should continue running. A return of ErrHalt means the program ended
// cleanly (the halt instruction, or ret against an empty stack) and is not
// a fault; any other non-nil error aborts the interpreter loop.
func Execute(s *State, inst Instruction) error {
	switch inst.Op {
	case OpHalt:
		return ErrHalt

	case OpSet:
		return s.SetRegister(inst.Operands[0].RegisterIndex(), s.Resolve(inst.Operands[1]))

	case OpPush:
		return s.Push(s.Resolve(inst.Operands[0]))

	case OpPop:
		v, err := s.Pop()
		if err != nil {
			return err
		}
		return s.SetRegister(inst.Operands[0].RegisterIndex(), v)

	case OpEq:
		return s.SetRegister(inst.Operands[0].RegisterIndex(), boolWord(s.Resolve(inst.Operands[1]) == s.Resolve(inst.Operands[2])))

	case OpGt:
		return s.SetRegister(inst.Operands[0].RegisterIndex(), boolWord(s.Resolve(inst.Operands[1]) > s.Resolve(inst.Operands[2])))

	case OpJmp:
		return s.SetPC(s.Resolve(inst.Operands[0]))

	case OpJt:
		if s.Resolve(inst.Operands[0]) != 0 {
			return s.SetPC(s.Resolve(inst.Operands[1]))
		}
		return nil

	case OpJf:
		if s.Resolve(inst.Operands[0]) == 0 {
			return s.SetPC(s.Resolve(inst.Operands[1]))
		}
		return nil

	case OpAdd:
		sum := (uint32(s.Resolve(inst.Operands[1])) + uint32(s.Resolve(inst.Operands[2]))) % Modulus
		return s.SetRegister(inst.Operands[0].RegisterIndex(), Word(sum))

	case OpMult:
		product := (uint32(s.Resolve(inst.Operands[1])) * uint32(s.Resolve(inst.Operands[2]))) % Modulus
		return s.SetRegister(inst.Operands[0].RegisterIndex(), Word(product))

	case OpMod:
		b := s.Resolve(inst.Operands[2])
		if b == 0 {
			return &DivisionByZeroError{PC: s.PC()}
		}
		a := s.Resolve(inst.Operands[1])
		return s.SetRegister(inst.Operands[0].RegisterIndex(), a%b)

	case OpAnd:
		return s.SetRegister(inst.Operands[0].RegisterIndex(), s.Resolve(inst.Operands[1])&s.Resolve(inst.Operands[2]))

	case OpOr:
		return s.SetRegister(inst.Operands[0].RegisterIndex(), s.Resolve(inst.Operands[1])|s.Resolve(inst.Operands[2]))

	case OpNot:
		return s.SetRegister(inst.Operands[0].RegisterIndex(), s.Resolve(inst.Operands[1])^MaxLiteral)

	case OpRmem:
		addr := s.Resolve(inst.Operands[1])
		v, err := s.ReadWord(addr)
		if err != nil {
			return err
		}
		return s.SetRegister(inst.Operands[0].RegisterIndex(), v)

	case OpWmem:
		addr := s.Resolve(inst.Operands[0])
		return s.WriteWordMasked(addr, s.Resolve(inst.Operands[1]))

	case OpCall:
		target := s.Resolve(inst.Operands[0])
		if err := s.Push(s.PC()); err != nil {
			return err
		}
		return s.SetPC(target)

	case OpRet:
		if s.StackEmpty() {
			return ErrHalt
		}
		target, err := s.Pop()
		if err != nil {
			return err
		}
		return s.SetPC(target)

	case OpOut:
		return s.WriteStdoutByte(byte(s.Resolve(inst.Operands[0]) & 0xff))

	case OpIn:
		b, err := s.ReadStdinChar()
		if err != nil {
			return err
		}
		return s.SetRegister(inst.Operands[0].RegisterIndex(), Word(b))

	case OpNoop:
		return nil
	}
	return nil
}

// boolWord converts a Go bool into the architecture's 1/0 encoding.
func boolWord(b bool) Word {
	if b {
		return 1
	}
	return 0
}
