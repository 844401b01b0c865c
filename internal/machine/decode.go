package machine

// Opcode identifies one of the architecture's 22 instructions.
type Opcode uint8

const (
	OpHalt Opcode = 0
	OpSet  Opcode = 1
	OpPush Opcode = 2
	OpPop  Opcode = 3
	OpEq   Opcode = 4
	OpGt   Opcode = 5
	OpJmp  Opcode = 6
	OpJt   Opcode = 7
	OpJf   Opcode = 8
	OpAdd  Opcode = 9
	OpMult Opcode = 10
	OpMod  Opcode = 11
	OpAnd  Opcode = 12
	OpOr   Opcode = 13
	OpNot  Opcode = 14
	OpRmem Opcode = 15
	OpWmem Opcode = 16
	OpCall Opcode = 17
	OpRet  Opcode = 18
	OpOut  Opcode = 19
	OpIn   Opcode = 20
	OpNoop Opcode = 21
)

// opcodeInfo describes one opcode's operand shape: how many operand words
// follow it, and which of those operands (if any) must decode to a
// Register because the executor writes through it. destIndex of -1 means
// no operand is a destination.
type opcodeInfo struct {
	arity     int
	destIndex int
}

// opcodeTable mirrors the architecture's fixed per-opcode arity, the same
// role a per-opcode format table plays in a variable-width instruction
// set, just with every Synacor opcode a fixed arity instead of the RR/RX/
// RS/SI/SS shapes a multi-format architecture would need.
var opcodeTable = map[Opcode]opcodeInfo{
	OpHalt: {0, -1},
	OpSet:  {2, 0},
	OpPush: {1, -1},
	OpPop:  {1, 0},
	OpEq:   {3, 0},
	OpGt:   {3, 0},
	OpJmp:  {1, -1},
	OpJt:   {2, -1},
	OpJf:   {2, -1},
	OpAdd:  {3, 0},
	OpMult: {3, 0},
	OpMod:  {3, 0},
	OpAnd:  {3, 0},
	OpOr:   {3, 0},
	OpNot:  {2, 0},
	OpRmem: {2, 0},
	OpWmem: {2, -1},
	OpCall: {1, -1},
	OpRet:  {0, -1},
	OpOut:  {1, -1},
	OpIn:   {1, 0},
	OpNoop: {0, -1},
}

// maxOperands is the widest operand list any opcode takes.
const maxOperands = 3

// Instruction is a decoded instruction: an opcode together with its
// already-resolved-to-Operand arguments. Keeping one struct shape for
// every opcode (rather than a variant type per opcode) keeps decoding and
// dispatch a single table lookup each; the executor's switch on Op plays
// the role the per-variant methods would otherwise play.
type Instruction struct {
	Op       Opcode
	Operands [maxOperands]Operand
	N        int // number of valid entries in Operands
}

// Decode reads one instruction from s starting at the current pc: first
// the opcode word, then as many operand words as that opcode takes. A
// destination operand (per opcodeTable) must decode to a Register;
// anything else is an UnexpectedOperandError. Decode only reads memory at
// pc via FetchWord; it never touches registers or the stack.
func Decode(s *State) (Instruction, error) {
	opcodePC := s.PC()
	opWord, err := s.FetchWord()
	if err != nil {
		return Instruction{}, err
	}

	if opWord > Word(OpNoop) {
		return Instruction{}, &InvalidOpcodeError{Word: opWord, PC: opcodePC}
	}
	op := Opcode(opWord)
	info, ok := opcodeTable[op]
	if !ok {
		return Instruction{}, &InvalidOpcodeError{Word: opWord, PC: opcodePC}
	}

	inst := Instruction{Op: op, N: info.arity}
	for i := 0; i < info.arity; i++ {
		wordPC := s.PC()
		raw, err := s.FetchWord()
		if err != nil {
			return Instruction{}, err
		}
		operand, err := decodeOperand(raw, wordPC)
		if err != nil {
			return Instruction{}, err
		}
		if i == info.destIndex && !operand.IsRegister() {
			return Instruction{}, &UnexpectedOperandError{Operand: operand, PC: wordPC}
		}
		inst.Operands[i] = operand
	}
	return inst, nil
}
