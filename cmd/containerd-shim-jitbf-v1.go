package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	jitbf "github.com/MarcinKonowalczyk/jitbf"
	jitbf_shim "github.com/MarcinKonowalczyk/jitbf/shim"

	"github.com/containerd/containerd/v2/pkg/shim"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Maybe hijack the shim to run as a brainfuck runner
	brainfuck, args := isBrainfuckArg(os.Args[1:])

	if brainfuck {
		if err := runBrainfuck(ctx, args); err != nil {
			fmt.Fprintln(os.Stderr, "Error running brainfuck:", err)
			os.Exit(1)
		}
	} else {
		shim.Run(ctx, jitbf_shim.NewManager("io.containerd.jitbf.v1"))
	}
}

///////////////

var (
	filename string
	interp   bool
)

func isBrainfuckArg(args []string) (bool, []string) {
	for i, arg := range args {
		if arg == "brainfuck" {
			return true, append(args[:i], args[i+1:]...)
		}
	}
	return false, args
}

func parseBrainfuckFlags(args []string) error {
	my_flagset := flag.NewFlagSet("brainfuck", flag.ExitOnError)
	my_flagset.StringVar(&filename, "file", "", "brainfuck source file")
	my_flagset.BoolVar(&interp, "interp", false, "force the interpreter")
	return my_flagset.Parse(args)
}

func runBrainfuck(ctx context.Context, args []string) error {
	if err := parseBrainfuckFlags(args); err != nil {
		return err
	}

	if filename == "" {
		return fmt.Errorf("invalid argument: -file is required")
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	runner := jitbf.NewRunner(os.Stdin, os.Stdout)
	runner.Interp = interp
	_, err = runner.Run(ctx, string(source))
	return err
}
