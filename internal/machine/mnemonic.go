package machine

import "strings"

var mnemonics = map[Opcode]string{
	OpHalt: "halt", OpSet: "set", OpPush: "push", OpPop: "pop",
	OpEq: "eq", OpGt: "gt", OpJmp: "jmp", OpJt: "jt", OpJf: "jf",
	OpAdd: "add", OpMult: "mult", OpMod: "mod", OpAnd: "and", OpOr: "or",
	OpNot: "not", OpRmem: "rmem", OpWmem: "wmem", OpCall: "call",
	OpRet: "ret", OpOut: "out", OpIn: "in", OpNoop: "noop",
}

// String renders an instruction the way a trace log line wants it: the
// mnemonic followed by its operands. It is not a disassembler - it never
// reconstructs jump targets or labels - only a one-line trace aid.
func (inst Instruction) String() string {
	var b strings.Builder
	b.WriteString(mnemonics[inst.Op])
	for i := 0; i < inst.N; i++ {
		b.WriteByte(' ')
		b.WriteString(inst.Operands[i].String())
	}
	return b.String()
}
