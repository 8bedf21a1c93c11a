//go:build linux && amd64

package jit_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/MarcinKonowalczyk/jitbf/bf"
	"github.com/MarcinKonowalczyk/jitbf/bf/jit"
	"github.com/MarcinKonowalczyk/jitbf/utils"
)

const hello_world = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

// runCompiled compiles source against a pair of pipes, runs it on a fresh
// tape and returns the bytes it wrote plus the final cells. The whole input
// is written up front, so it must fit in the pipe buffer.
func runCompiled(t *testing.T, source, input string) (string, []uint8) {
	t.Helper()

	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer inR.Close()
	defer outR.Close()

	if input != "" {
		if _, err := inW.WriteString(input); err != nil {
			t.Fatalf("write input: %v", err)
		}
	}
	inW.Close()

	code := mustCompile(t, source, int(inR.Fd()), int(outW.Fd()))
	prog, err := jit.Load(code)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer prog.Release()

	tape := bf.NewTape()
	prog.Run(tape.Cells())

	outW.Close()
	out, err := io.ReadAll(outR)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(out), tape.Cells()
}

func TestJIT_Supported(t *testing.T) {
	utils.Assert(t, jit.Supported(), "expected support on linux/amd64")
}

func TestJIT_Increment(t *testing.T) {
	_, cells := runCompiled(t, "+", "")
	utils.AssertEqual(t, cells[0], 1)
}

func TestJIT_Decrement(t *testing.T) {
	_, cells := runCompiled(t, "-", "")
	utils.AssertEqual(t, cells[0], 255)
}

func TestJIT_Loop(t *testing.T) {
	_, cells := runCompiled(t, "+++[->+<]", "")
	utils.AssertEqual(t, cells[0], 0)
	utils.AssertEqual(t, cells[1], 3)
}

func TestJIT_NestedLoop(t *testing.T) {
	_, cells := runCompiled(t, "++[>+++[>++<-]<-]", "")
	utils.AssertEqual(t, cells[0], 0)
	utils.AssertEqual(t, cells[1], 0)
	utils.AssertEqual(t, cells[2], 12)
}

func TestJIT_EmptyLoop(t *testing.T) {
	_, cells := runCompiled(t, "[]", "")
	utils.AssertEqual(t, cells[0], 0)
}

func TestJIT_PointerWrap(t *testing.T) {
	// Lands exactly on the end of the tape and keeps going.
	_, cells := runCompiled(t, strings.Repeat(">", bf.TapeSize-1)+"+>+", "")
	utils.AssertEqual(t, cells[bf.TapeSize-1], 1)
	utils.AssertEqual(t, cells[0], 1)
}

func TestJIT_Echo(t *testing.T) {
	out, cells := runCompiled(t, ",.", "A")
	utils.AssertEqual(t, out, "A")
	utils.AssertEqual(t, cells[0], 65)
}

func TestJIT_InputPastEOF(t *testing.T) {
	_, cells := runCompiled(t, "+,", "")
	utils.AssertEqual(t, cells[0], 0)
}

func TestJIT_HelloWorld(t *testing.T) {
	out, _ := runCompiled(t, hello_world, "")
	utils.AssertEqual(t, out, "Hello World!\n")
}

// The interpreter is the oracle: both strategies must leave the same tape
// and write the same bytes.
func TestJIT_MatchesInterpreter(t *testing.T) {
	cases := []struct {
		source string
		input  string
	}{
		{"+++[->+<]", ""},
		{"++[>+++[>++<-]<-]>>.", ""},
		{"<+", ""},
		{",.,.", "hi"},
		{"+,+,", "x"},
		{strings.Repeat(">", bf.TapeSize) + "+", ""},
		{hello_world, ""},
	}
	for _, tc := range cases {
		gotOut, gotCells := runCompiled(t, tc.source, tc.input)

		var want bytes.Buffer
		interpreter := bf.NewInterpreter(mustBuild(t, tc.source), strings.NewReader(tc.input), &want)
		if err := interpreter.Run(); err != nil {
			t.Fatalf("interpreter failed on %q: %v", tc.source, err)
		}
		if gotOut != want.String() {
			t.Errorf("%q: output %q, interpreter wrote %q", tc.source, gotOut, want.String())
		}
		if !utils.CompareArrays(gotCells, interpreter.Tape().Cells()) {
			t.Errorf("%q: final tapes differ", tc.source)
		}
	}
}

func TestJIT_ReleaseTwice(t *testing.T) {
	prog, err := jit.Load(mustCompile(t, "+", 0, 1))
	utils.AssertNoError(t, err)
	utils.AssertNoError(t, prog.Release())
	utils.AssertNoError(t, prog.Release())
}

func TestJIT_LoadEmpty(t *testing.T) {
	_, err := jit.Load(nil)
	utils.AssertError(t, err)
	utils.AssertErrorIs(t, err, jit.ErrMemoryMapFailed)
}

func mustBuild(t *testing.T, source string) bf.Program {
	t.Helper()
	program, err := bf.Build(bf.Lex(source))
	if err != nil {
		t.Fatalf("Build(%q) failed: %v", source, err)
	}
	return program
}
