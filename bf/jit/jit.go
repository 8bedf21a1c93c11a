// Package jit turns programs into x86-64 machine code and runs them from
// executable memory. Compile works on any target; Load and Run exist only on
// linux/amd64, and everywhere else Load reports ErrUnsupportedTarget so
// callers can fall back to the interpreter.
package jit

import "errors"

var (
	// ErrUnsupportedTarget means compiled code cannot run on this OS/arch.
	ErrUnsupportedTarget = errors.New("unsupported target")
	// ErrMemoryMapFailed wraps a mmap or mprotect failure while loading code.
	ErrMemoryMapFailed = errors.New("memory map failed")
)
