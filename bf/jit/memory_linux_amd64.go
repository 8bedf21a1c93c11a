//go:build linux && amd64

package jit

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

// Supported reports whether compiled programs can run on this target.
func Supported() bool {
	return true
}

// Code is a compiled program resident in executable memory.
type Code struct {
	mem []byte
}

func pageCeil(n int) int {
	page := os.Getpagesize()
	return (n + page - 1) / page * page
}

// Load copies code into a fresh anonymous mapping and flips it executable.
// The mapping is never writable and executable at the same time.
func Load(code []byte) (*Code, error) {
	mem, err := syscall.Mmap(
		-1, 0, pageCeil(len(code)),
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_PRIVATE|syscall.MAP_ANONYMOUS,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap: %w", ErrMemoryMapFailed, err)
	}
	copy(mem, code)
	if err := syscall.Mprotect(mem, syscall.PROT_READ|syscall.PROT_EXEC); err != nil {
		_ = syscall.Munmap(mem)
		return nil, fmt.Errorf("%w: mprotect: %w", ErrMemoryMapFailed, err)
	}
	return &Code{mem: mem}, nil
}

// Run executes the program against cells, which must be a full tape of
// bf.TapeSize bytes.
func (c *Code) Run(cells []byte) {
	callCode(uintptr(unsafe.Pointer(&c.mem[0])), unsafe.Pointer(&cells[0]))
}

// Release unmaps the code. The program must not run afterwards; releasing
// more than once is a no-op.
func (c *Code) Release() error {
	if c.mem == nil {
		return nil
	}
	mem := c.mem
	c.mem = nil
	return syscall.Munmap(mem)
}

// callCode jumps to entry with the tape base in rdi, per the System V ABI.
// Implemented in call_linux_amd64.s.
//
//go:noescape
func callCode(entry uintptr, tape unsafe.Pointer)
