package machine

import "errors"

// RunOptions configures the driver loop's optional instrumentation. Both
// fields may be left nil.
type RunOptions struct {
	// Trace, when set, is called with each instruction's pc and decoded
	// form before it executes - the hook main.go's -trace flag wires a
	// logger into.
	Trace func(pc Word, inst Instruction)

	// Step, when set, is called after Trace and before Execute for every
	// instruction - the hook main.go's -step flag wires a "press enter to
	// continue" pause into.
	Step func()
}

// Run decodes and executes instructions from s until the program halts
// cleanly or an error occurs. A clean halt (the halt instruction, or ret
// against an empty stack) is reported as a nil error; anything else
// aborts the loop and is returned to the caller with the pc and offending
// word already attached by the failing Decode/Execute call.
func Run(s *State, opts RunOptions) error {
	for {
		pc := s.PC()
		inst, err := Decode(s)
		if err != nil {
			return err
		}
		if opts.Trace != nil {
			opts.Trace(pc, inst)
		}
		if opts.Step != nil {
			opts.Step()
		}
		if err := Execute(s, inst); err != nil {
			if errors.Is(err, ErrHalt) {
				return nil
			}
			return err
		}
	}
}
