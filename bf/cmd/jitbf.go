package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	jitbf "github.com/MarcinKonowalczyk/jitbf"
	"github.com/MarcinKonowalczyk/jitbf/bf"
	"github.com/MarcinKonowalczyk/jitbf/bf/jit"
)

var (
	filename string
	interp   bool
	dump     string
)

func init() {
	flag.StringVar(&filename, "file", "", "brainfuck source file")
	flag.BoolVar(&interp, "interp", false, "force the interpreter")
	flag.StringVar(&dump, "dump", "", "write the compiled code to a file instead of running")
}

func main() {
	flag.Parse()
	if filename == "" {
		fmt.Println("Please provide a filename using the -file flag.")
		os.Exit(1)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if dump != "" {
		if err := dumpCode(string(source), dump); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := jitbf.NewRunner(os.Stdin, os.Stdout)
	runner.Interp = interp
	if _, err := runner.Run(ctx, string(source)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// dumpCode compiles the source and writes the raw machine code to path,
// with stdin and stdout baked in as the descriptors.
func dumpCode(source, path string) error {
	if err := bf.Validate(source); err != nil {
		return err
	}
	program, err := bf.Build(bf.Lex(source))
	if err != nil {
		return err
	}
	code, err := jit.Compile(program, 0, 1)
	if err != nil {
		return err
	}
	return os.WriteFile(path, code, 0o644)
}
