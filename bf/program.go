package bf

import "fmt"

// Opcode identifies a fused IR operation.
type Opcode uint8

const (
	OpAdjustPointer Opcode = iota // move the tape pointer by Arg cells
	OpAdjustValue                 // add Arg to the current cell, mod 256
	OpOutput                      // write the current cell as one byte
	OpInput                       // read one byte into the current cell
	OpLoopOpen                    // jump past the matching close (Arg) when the cell is zero
	OpLoopClose                   // jump back to the matching open (Arg) when the cell is nonzero
)

func (o Opcode) String() string {
	switch o {
	case OpAdjustPointer:
		return "AdjustPointer"
	case OpAdjustValue:
		return "AdjustValue"
	case OpOutput:
		return "Output"
	case OpInput:
		return "Input"
	case OpLoopOpen:
		return "LoopOpen"
	case OpLoopClose:
		return "LoopClose"
	default:
		return fmt.Sprintf("Opcode(%d)", uint8(o))
	}
}

// Op is a single IR operation. Arg carries the signed run length for the two
// adjust operations (never zero) and the matching bracket's program index for
// the two loop operations.
type Op struct {
	Code Opcode
	Arg  int
}

func (op Op) String() string {
	switch op.Code {
	case OpAdjustPointer, OpAdjustValue:
		return fmt.Sprintf("%s(%+d)", op.Code, op.Arg)
	case OpLoopOpen, OpLoopClose:
		return fmt.Sprintf("%s(%d)", op.Code, op.Arg)
	default:
		return op.Code.String()
	}
}

// Program is the fused, loop-resolved instruction sequence consumed by both
// the interpreter and the code generator.
type Program []Op

func delta(c Command) int {
	if c == Increment || c == Right {
		return 1
	}
	return -1
}

// Build compacts an instruction stream into the IR. Runs of the same raw
// command among + - < > fuse into a single adjust operation carrying the run
// length; the other four commands map one to one. Loop brackets are resolved
// with a stack so each open and close knows the other's index. The stream is
// expected to have passed Validate; the error here is the stack's own
// imbalance check, without source positions.
func Build(cmds []Command) (Program, error) {
	program := make(Program, 0, len(cmds))
	var opens []int
	var prev Command
	for _, c := range cmds {
		switch c {
		case Increment, Decrement:
			if c == prev {
				program[len(program)-1].Arg += delta(c)
			} else {
				program = append(program, Op{Code: OpAdjustValue, Arg: delta(c)})
			}
		case Left, Right:
			if c == prev {
				program[len(program)-1].Arg += delta(c)
			} else {
				program = append(program, Op{Code: OpAdjustPointer, Arg: delta(c)})
			}
		case Output:
			program = append(program, Op{Code: OpOutput})
		case Input:
			program = append(program, Op{Code: OpInput})
		case LoopStart:
			opens = append(opens, len(program))
			program = append(program, Op{Code: OpLoopOpen})
		case LoopEnd:
			if len(opens) == 0 {
				return nil, fmt.Errorf("%w: unmatched ']' at instruction %d", ErrUnbalancedLoop, len(program))
			}
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			program = append(program, Op{Code: OpLoopClose, Arg: open})
			program[open].Arg = len(program) - 1
		default:
			continue
		}
		prev = c
	}
	if len(opens) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed '['", ErrUnbalancedLoop, len(opens))
	}
	return program, nil
}
