package jit

import (
	"fmt"

	"github.com/MarcinKonowalczyk/jitbf/bf"
)

// Syscall numbers for linux/amd64, the only target the emitted code runs on.
const (
	sysRead  = 0
	sysWrite = 1
)

// Compile translates a program into a self-contained x86-64 function. The
// entry point is byte zero, the System V ABI applies, and the sole argument
// is the tape base address; the tape must hold bf.TapeSize cells. Byte I/O
// goes through one-byte read and write syscalls against the two descriptors,
// which are baked into the emitted code.
//
// The cell cursor lives in rbx as an absolute address. r15 holds the address
// one past the tape so pointer moves can wrap: every move adds its delta
// normalized to [0, TapeSize) and subtracts the tape size again when the
// cursor runs past the end. Each fused operation emits a fixed-size sequence
// whatever its run length.
func Compile(program bf.Program, inputFD, outputFD int) ([]byte, error) {
	a := &assembler{code: make([]byte, 0, 4096)}

	entry := a.jmpNear()

	// write(outputFD, cursor, 1)
	writeTramp := a.len()
	a.movRegImm32(rax, sysWrite)
	a.movRegImm32(rdi, int32(outputFD))
	a.movRegReg(rsi, rbx)
	a.movRegImm32(rdx, 1)
	a.syscall()
	a.ret()

	// read(inputFD, cursor, 1), storing zero at the cursor on EOF or error
	readTramp := a.len()
	a.movRegImm32(rax, sysRead)
	a.movRegImm32(rdi, int32(inputFD))
	a.movRegReg(rsi, rbx)
	a.movRegImm32(rdx, 1)
	a.syscall()
	a.testRegReg(rax, rax)
	a.jccShort(ccGreater, 3)
	a.movByteAtRegZero(rbx)
	a.ret()

	a.patchRel32(entry, a.len())
	a.push(rbx)
	a.push(r15)
	a.movRegReg(rbx, rdi)
	a.movRegReg(r15, rdi)
	a.addRegImm32(r15, bf.TapeSize)

	var opens []int
	for i, op := range program {
		switch op.Code {
		case bf.OpAdjustPointer:
			d := op.Arg % bf.TapeSize
			if d < 0 {
				d += bf.TapeSize
			}
			if d == 0 {
				continue
			}
			a.addRegImm32(rbx, int32(d))
			a.cmpRegReg(rbx, r15)
			a.jccShort(ccBelow, 7)
			a.subRegImm32(rbx, bf.TapeSize)
		case bf.OpAdjustValue:
			if op.Arg >= 0 {
				if v := byte(op.Arg % 256); v != 0 {
					a.addByteAtReg(rbx, v)
				}
			} else {
				if v := byte((-op.Arg) % 256); v != 0 {
					a.subByteAtReg(rbx, v)
				}
			}
		case bf.OpOutput:
			a.call(writeTramp)
		case bf.OpInput:
			a.call(readTramp)
		case bf.OpLoopOpen:
			a.cmpByteAtRegZero(rbx)
			opens = append(opens, a.jccNear(ccEqual))
		case bf.OpLoopClose:
			if len(opens) == 0 {
				return nil, fmt.Errorf("%w: unmatched ']' at instruction %d", bf.ErrUnbalancedLoop, i)
			}
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			a.cmpByteAtRegZero(rbx)
			site := a.jccNear(ccNotEqual)
			a.patchRel32(site, open)
			a.patchRel32(open, a.len())
		default:
			return nil, fmt.Errorf("unknown opcode %d at instruction %d", op.Code, i)
		}
	}
	if len(opens) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed '['", bf.ErrUnbalancedLoop, len(opens))
	}

	a.pop(r15)
	a.pop(rbx)
	a.ret()

	return a.code, nil
}
