package jit

import (
	"testing"

	"github.com/MarcinKonowalczyk/jitbf/utils"
)

func TestAsm_RexModrm(t *testing.T) {
	utils.AssertEqual(t, rex(true, 0, rbx), 0x48)
	utils.AssertEqual(t, rex(true, r15, rbx), 0x4C)
	utils.AssertEqual(t, rex(true, rdi, r14), 0x49)
	utils.AssertEqual(t, modrm(3, rdi, rbx), 0xFB)
	utils.AssertEqual(t, modrm(0, 0, rbx), 0x03)
}

func TestAsm_PushPop(t *testing.T) {
	a := &assembler{}
	a.push(rbx)
	a.push(r15)
	a.pop(r15)
	a.pop(rbx)
	utils.AssertEqualArrays(t, []byte{0x53, 0x41, 0x57, 0x41, 0x5F, 0x5B}, a.code)
}

func TestAsm_MovRegReg(t *testing.T) {
	a := &assembler{}
	a.movRegReg(rbx, rdi)
	a.movRegReg(r15, rdi)
	a.movRegReg(rsi, rbx)
	utils.AssertEqualArrays(t, []byte{
		0x48, 0x89, 0xFB,
		0x49, 0x89, 0xFF,
		0x48, 0x89, 0xDE,
	}, a.code)
}

func TestAsm_MovRegImm32(t *testing.T) {
	a := &assembler{}
	a.movRegImm32(rax, 1)
	a.movRegImm32(rdi, 7)
	utils.AssertEqualArrays(t, []byte{
		0x48, 0xC7, 0xC0, 0x01, 0x00, 0x00, 0x00,
		0x48, 0xC7, 0xC7, 0x07, 0x00, 0x00, 0x00,
	}, a.code)
}

func TestAsm_AddSubRegImm32(t *testing.T) {
	a := &assembler{}
	a.addRegImm32(rbx, 30_000)
	a.addRegImm32(r15, 30_000)
	a.subRegImm32(rbx, 30_000)
	utils.AssertEqualArrays(t, []byte{
		0x48, 0x81, 0xC3, 0x30, 0x75, 0x00, 0x00,
		0x49, 0x81, 0xC7, 0x30, 0x75, 0x00, 0x00,
		0x48, 0x81, 0xEB, 0x30, 0x75, 0x00, 0x00,
	}, a.code)
}

func TestAsm_CmpTest(t *testing.T) {
	a := &assembler{}
	a.cmpRegReg(rbx, r15)
	a.testRegReg(rax, rax)
	utils.AssertEqualArrays(t, []byte{
		0x4C, 0x39, 0xFB,
		0x48, 0x85, 0xC0,
	}, a.code)
}

func TestAsm_ByteAtReg(t *testing.T) {
	a := &assembler{}
	a.addByteAtReg(rbx, 5)
	a.subByteAtReg(rbx, 5)
	a.cmpByteAtRegZero(rbx)
	a.movByteAtRegZero(rbx)
	utils.AssertEqualArrays(t, []byte{
		0x80, 0x03, 0x05,
		0x80, 0x2B, 0x05,
		0x80, 0x3B, 0x00,
		0xC6, 0x03, 0x00,
	}, a.code)
}

func TestAsm_ByteAtHighReg(t *testing.T) {
	a := &assembler{}
	a.addByteAtReg(r8, 5)
	utils.AssertEqualArrays(t, []byte{0x41, 0x80, 0x00, 0x05}, a.code)
}

func TestAsm_JccShort(t *testing.T) {
	a := &assembler{}
	a.jccShort(ccBelow, 7)
	a.jccShort(ccGreater, 3)
	a.jccShort(ccEqual, -2)
	utils.AssertEqualArrays(t, []byte{0x72, 0x07, 0x7F, 0x03, 0x74, 0xFE}, a.code)
}

func TestAsm_JccNearPatch(t *testing.T) {
	a := &assembler{}
	site := a.jccNear(ccEqual)
	utils.AssertEqual(t, site, 6)
	utils.AssertEqualArrays(t, []byte{0x0F, 0x84, 0x00, 0x00, 0x00, 0x00}, a.code)

	for a.len() < 20 {
		a.ret()
	}
	a.patchRel32(site, 20)
	utils.AssertEqualArrays(t, []byte{0x0E, 0x00, 0x00, 0x00}, a.code[2:6])
	a.patchRel32(site, 0)
	utils.AssertEqualArrays(t, []byte{0xFA, 0xFF, 0xFF, 0xFF}, a.code[2:6])
}

func TestAsm_JmpNearPatch(t *testing.T) {
	a := &assembler{}
	site := a.jmpNear()
	utils.AssertEqual(t, site, 5)
	utils.AssertEqual(t, a.code[0], 0xE9)
	a.patchRel32(site, 67)
	utils.AssertEqualArrays(t, []byte{0x3E, 0x00, 0x00, 0x00}, a.code[1:5])
}

func TestAsm_CallForward(t *testing.T) {
	a := &assembler{}
	a.call(100)
	utils.AssertEqualArrays(t, []byte{0xE8, 0x5F, 0x00, 0x00, 0x00}, a.code)
}

func TestAsm_CallBackward(t *testing.T) {
	a := &assembler{}
	for a.len() < 20 {
		a.ret()
	}
	a.call(5)
	utils.AssertEqualArrays(t, []byte{0xE8, 0xEC, 0xFF, 0xFF, 0xFF}, a.code[20:])
}

func TestAsm_SyscallRet(t *testing.T) {
	a := &assembler{}
	a.syscall()
	a.ret()
	utils.AssertEqualArrays(t, []byte{0x0F, 0x05, 0xC3}, a.code)
}
