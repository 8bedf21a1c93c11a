package jit

import "encoding/binary"

// x86-64 registers by encoding number. The high eight need a REX extension
// bit wherever they appear.
const (
	rax = 0
	rcx = 1
	rdx = 2
	rbx = 3
	rsp = 4
	rbp = 5
	rsi = 6
	rdi = 7
	r8  = 8
	r9  = 9
	r10 = 10
	r11 = 11
	r12 = 12
	r13 = 13
	r14 = 14
	r15 = 15
)

// Condition codes for jcc.
const (
	ccBelow    = 0x2 // unsigned <
	ccEqual    = 0x4
	ccNotEqual = 0x5
	ccGreater  = 0xF // signed >
)

// assembler accumulates machine code. Emitters append encoded instructions;
// jumps whose target is not yet known emit a zero displacement and hand back
// a patch site for later.
type assembler struct {
	code []byte
}

func (a *assembler) emit(bs ...byte) {
	a.code = append(a.code, bs...)
}

func (a *assembler) emitU32(v uint32) {
	a.emit(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (a *assembler) len() int {
	return len(a.code)
}

// rex builds a REX prefix. w selects 64-bit operands; reg and rm contribute
// their extension bits for the ModRM fields of the same names.
func rex(w bool, reg, rm int) byte {
	b := byte(0x40)
	if w {
		b |= 0x08
	}
	if reg >= 8 {
		b |= 0x04
	}
	if rm >= 8 {
		b |= 0x01
	}
	return b
}

// modrm packs mod (2 bits), reg (3 bits) and rm (3 bits).
func modrm(mod, reg, rm byte) byte {
	return mod<<6 | (reg&7)<<3 | rm&7
}

func (a *assembler) push(reg int) {
	if reg >= 8 {
		a.emit(0x41)
	}
	a.emit(0x50 + byte(reg&7))
}

func (a *assembler) pop(reg int) {
	if reg >= 8 {
		a.emit(0x41)
	}
	a.emit(0x58 + byte(reg&7))
}

// movRegReg emits mov dst, src.
func (a *assembler) movRegReg(dst, src int) {
	a.emit(rex(true, src, dst), 0x89, modrm(3, byte(src), byte(dst)))
}

// movRegImm32 emits mov reg, imm32, sign-extended to 64 bits.
func (a *assembler) movRegImm32(reg int, imm int32) {
	a.emit(rex(true, 0, reg), 0xC7, modrm(3, 0, byte(reg)))
	a.emitU32(uint32(imm))
}

func (a *assembler) addRegImm32(reg int, imm int32) {
	a.emit(rex(true, 0, reg), 0x81, modrm(3, 0, byte(reg)))
	a.emitU32(uint32(imm))
}

func (a *assembler) subRegImm32(reg int, imm int32) {
	a.emit(rex(true, 0, reg), 0x81, modrm(3, 5, byte(reg)))
	a.emitU32(uint32(imm))
}

// cmpRegReg emits cmp rm, reg.
func (a *assembler) cmpRegReg(rm, reg int) {
	a.emit(rex(true, reg, rm), 0x39, modrm(3, byte(reg), byte(rm)))
}

// testRegReg emits test rm, reg.
func (a *assembler) testRegReg(rm, reg int) {
	a.emit(rex(true, reg, rm), 0x85, modrm(3, byte(reg), byte(rm)))
}

// The byte-at-register emitters address memory through reg with no
// displacement, so reg must not be rsp, rbp, r12 or r13.

// addByteAtReg emits add byte [reg], v.
func (a *assembler) addByteAtReg(reg int, v byte) {
	if reg >= 8 {
		a.emit(0x41)
	}
	a.emit(0x80, modrm(0, 0, byte(reg)), v)
}

// subByteAtReg emits sub byte [reg], v.
func (a *assembler) subByteAtReg(reg int, v byte) {
	if reg >= 8 {
		a.emit(0x41)
	}
	a.emit(0x80, modrm(0, 5, byte(reg)), v)
}

// cmpByteAtRegZero emits cmp byte [reg], 0.
func (a *assembler) cmpByteAtRegZero(reg int) {
	if reg >= 8 {
		a.emit(0x41)
	}
	a.emit(0x80, modrm(0, 7, byte(reg)), 0)
}

// movByteAtRegZero emits mov byte [reg], 0.
func (a *assembler) movByteAtRegZero(reg int) {
	if reg >= 8 {
		a.emit(0x41)
	}
	a.emit(0xC6, modrm(0, 0, byte(reg)), 0)
}

// jccShort emits a two-byte conditional jump. rel counts from the end of the
// instruction.
func (a *assembler) jccShort(cc byte, rel int8) {
	a.emit(0x70|cc, byte(rel))
}

// jccNear emits a conditional jump with a zero displacement and returns the
// patch site, the index just past the rel32.
func (a *assembler) jccNear(cc byte) int {
	a.emit(0x0F, 0x80|cc)
	a.emitU32(0)
	return a.len()
}

// jmpNear emits an unconditional jump with a zero displacement and returns
// the patch site.
func (a *assembler) jmpNear() int {
	a.emit(0xE9)
	a.emitU32(0)
	return a.len()
}

// call emits a call to a known offset in the same buffer.
func (a *assembler) call(target int) {
	a.emit(0xE8)
	a.emitU32(uint32(int32(target - (a.len() + 4))))
}

func (a *assembler) syscall() {
	a.emit(0x0F, 0x05)
}

func (a *assembler) ret() {
	a.emit(0xC3)
}

// patchRel32 rewrites the four bytes before site with the displacement from
// site to target.
func (a *assembler) patchRel32(site, target int) {
	binary.LittleEndian.PutUint32(a.code[site-4:site], uint32(int32(target-site)))
}
