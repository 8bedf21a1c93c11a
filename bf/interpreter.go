package bf

import (
	"context"
	"fmt"
	"io"
)

// Interpreter walks the IR one operation at a time against a Tape. It is the
// reference implementation and the portable fallback: the compiled path must
// produce the same output bytes and the same final tape for any program and
// input stream.
type Interpreter struct {
	Program Program
	pc      int
	tape    *Tape
	Input   io.Reader
	Output  io.Writer
}

func NewInterpreter(program Program, input io.Reader, output io.Writer) *Interpreter {
	return &Interpreter{
		Program: program,
		tape:    NewTape(),
		Input:   input,
		Output:  output,
	}
}

// Tape exposes the interpreter's tape for verification.
func (i *Interpreter) Tape() *Tape {
	return i.tape
}

// At reads the tape cell at index j, wrapping.
func (i *Interpreter) At(j int32) uint8 {
	return i.tape.At(j)
}

func (i *Interpreter) Reset() {
	i.pc = 0
	i.tape.Reset()
}

// One byte from Input. End of input and read failures both map to the
// sentinel 0, matching the compiled path's read trampoline.
func (i *Interpreter) readByte() uint8 {
	if i.Input == nil {
		return 0
	}
	var buff [1]byte
	if _, err := io.ReadFull(i.Input, buff[:]); err != nil {
		return 0
	}
	return buff[0]
}

// RunContext executes the program until the counter passes the last
// operation. Output stream errors are fatal; cancelling the context is the
// only way to stop a program that loops forever.
func (i *Interpreter) RunContext(ctx context.Context) error {
	for i.pc < len(i.Program) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		op := i.Program[i.pc]
		switch op.Code {
		case OpAdjustPointer:
			i.tape.Move(op.Arg)
		case OpAdjustValue:
			i.tape.Adjust(op.Arg)
		case OpOutput:
			if i.Output != nil {
				if _, err := i.Output.Write([]byte{i.tape.Get()}); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}
		case OpInput:
			i.tape.Set(i.readByte())
		case OpLoopOpen:
			if i.tape.Get() == 0 {
				// Jump to the matching close; the increment below steps
				// past it.
				i.pc = op.Arg
			}
		case OpLoopClose:
			if i.tape.Get() != 0 {
				// Back to the matching open so it is re-tested.
				i.pc = op.Arg
				continue
			}
		default:
			return fmt.Errorf("unknown opcode %d at instruction %d", op.Code, i.pc)
		}
		i.pc++
	}
	return nil
}

func (i *Interpreter) Run() error {
	return i.RunContext(context.Background())
}
