// Package jitbf runs brainfuck programs, compiling them to native code where
// the target supports it and falling back to an interpreter everywhere else.
// Both strategies share one pipeline: validate the source, lex it, build the
// fused program, then execute.
package jitbf

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/containerd/log"

	"github.com/MarcinKonowalczyk/jitbf/bf"
	"github.com/MarcinKonowalczyk/jitbf/bf/jit"
)

// State tracks a runner through its lifecycle.
type State int

const (
	StateInit State = iota
	StateCompiling
	StateInterpreting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCompiling:
		return "compiling"
	case StateInterpreting:
		return "interpreting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is what a finished run leaves behind.
type Result struct {
	Tape     *bf.Tape
	Compiled bool
}

// compiledProgram is what the compile hook hands back. It matches *jit.Code;
// tests substitute their own.
type compiledProgram interface {
	Run(cells []byte)
	Release() error
}

type compileFunc func(program bf.Program, inputFD, outputFD int) (compiledProgram, error)

func compileAndLoad(program bf.Program, inputFD, outputFD int) (compiledProgram, error) {
	code, err := jit.Compile(program, inputFD, outputFD)
	if err != nil {
		return nil, err
	}
	return jit.Load(code)
}

// Runner executes one program against a pair of files. It prefers compiled
// execution and falls back to the interpreter when the target cannot run
// compiled code or compilation fails. A runner is single use.
type Runner struct {
	state  State
	input  *os.File
	output *os.File

	// Interp forces the interpreter even where compilation is supported.
	Interp bool

	compile compileFunc
}

func NewRunner(input, output *os.File) *Runner {
	return &Runner{
		state:   StateInit,
		input:   input,
		output:  output,
		compile: compileAndLoad,
	}
}

func (r *Runner) State() State {
	return r.state
}

// descriptor maps a missing file to an invalid descriptor. The compiled code
// treats a failing read as end of input and never checks writes, so -1
// behaves like a closed stream.
func descriptor(f *os.File) int {
	if f == nil {
		return -1
	}
	return int(f.Fd())
}

// Run takes source through the full pipeline. Validation and build errors
// fail the run before anything executes; compilation errors only demote it
// to the interpreter. The context cancels interpreted execution between
// steps, compiled execution runs to completion.
func (r *Runner) Run(ctx context.Context, source string) (*Result, error) {
	if r.state != StateInit {
		return nil, fmt.Errorf("runner already used: %s", r.state)
	}

	if err := bf.Validate(source); err != nil {
		r.state = StateFailed
		return nil, err
	}
	program, err := bf.Build(bf.Lex(source))
	if err != nil {
		r.state = StateFailed
		return nil, err
	}

	if jit.Supported() && !r.Interp {
		r.state = StateCompiling
		prog, err := r.compile(program, descriptor(r.input), descriptor(r.output))
		if err == nil {
			tape := bf.NewTape()
			prog.Run(tape.Cells())
			if err := prog.Release(); err != nil {
				log.G(ctx).WithError(err).Warn("releasing compiled code")
			}
			r.state = StateDone
			return &Result{Tape: tape, Compiled: true}, nil
		}
		log.G(ctx).WithError(err).Warn("compilation failed, falling back to the interpreter")
	}

	r.state = StateInterpreting
	var in io.Reader
	if r.input != nil {
		in = r.input
	}
	var out io.Writer
	if r.output != nil {
		out = r.output
	}
	interpreter := bf.NewInterpreter(program, in, out)
	if err := interpreter.RunContext(ctx); err != nil {
		r.state = StateFailed
		return nil, err
	}
	r.state = StateDone
	return &Result{Tape: interpreter.Tape(), Compiled: false}, nil
}

// Run executes source against stdin and stdout.
func Run(source string) (*Result, error) {
	return RunContext(context.Background(), source)
}

// RunContext executes source against stdin and stdout under ctx.
func RunContext(ctx context.Context, source string) (*Result, error) {
	return NewRunner(os.Stdin, os.Stdout).Run(ctx, source)
}
