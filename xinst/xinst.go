// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package xinst decodes x86 machine code into instructions that can be
// compared structurally: same opcode, same shape and ordering of operands,
// same registers, but indifferent to the concrete value of an immediate or
// a displacement. That indifference is what lets the function comparator
// recognise "the same code, recompiled with a different stack offset" as
// unchanged.
//
// Decoding itself is delegated entirely to golang.org/x/arch/x86/x86asm;
// this package only reshapes its Inst into the smaller structural key the
// comparator needs.
package xinst

import (
	"golang.org/x/arch/x86/x86asm"

	"github.com/tfbindiff/tfbindiff/errors"
)

// Mode is the processor mode instructions are decoded in, in bits.
type Mode int

const (
	Mode32 Mode = 32
	Mode64 Mode = 64
)

// ModeFromPointerSize maps a program's pointer size, in bytes, to the
// decode Mode its code was compiled for.
func ModeFromPointerSize(pointerSize int) Mode {
	if pointerSize == 8 {
		return Mode64
	}
	return Mode32
}

// OperandKind classifies an instruction argument by shape only: a register
// argument is the same OperandKind whichever register it names.
type OperandKind int

const (
	KindNone OperandKind = iota
	KindReg
	KindMem
	KindImm
	KindRel
)

// Operand is one argument to an Instruction, reduced to its structural
// identity: what kind of thing it is, and, for registers, which one. Imm
// carries the literal immediate value for the rare callers (the stack-depth
// probe) that need it despite it being excluded from Equal.
type Operand struct {
	Kind OperandKind
	Reg  x86asm.Reg // meaningful only when Kind == KindReg
	Base x86asm.Reg // meaningful only when Kind == KindMem
	Imm  int64      // meaningful only when Kind == KindImm; not compared by Equal
}

// Instruction is one decoded machine instruction, reduced to the fields
// that matter for structural equivalence: opcode, ordered operand shapes,
// and the registers those operands name. Address and byte length are kept
// for traversal, not comparison. Raw retains the full x86asm decode so a
// renderer can produce real disassembly text (with symbolised call/jump
// targets) instead of re-deriving it from the reduced Operands; it plays
// no part in Equal.
type Instruction struct {
	Addr     uint64
	Len      int
	Op       x86asm.Op
	Operands [4]Operand
	Raw      x86asm.Inst
}

// Decode walks code from its start, decoding one instruction at a time
// until code is exhausted. addr is the address of code[0], used to give
// each Instruction its own address.
func Decode(code []byte, addr uint64, mode Mode) ([]Instruction, error) {
	var out []Instruction
	for len(code) > 0 {
		inst, err := x86asm.Decode(code, int(mode))
		if err != nil {
			return nil, errors.Errorf(errors.DecodeError, addr, err)
		}
		out = append(out, reduce(inst, addr))
		code = code[inst.Len:]
		addr += uint64(inst.Len)
	}
	return out, nil
}

func reduce(inst x86asm.Inst, addr uint64) Instruction {
	r := Instruction{Addr: addr, Len: inst.Len, Op: inst.Op, Raw: inst}
	for i, arg := range inst.Args {
		if arg == nil {
			break
		}
		r.Operands[i] = reduceArg(arg)
	}
	return r
}

func reduceArg(arg x86asm.Arg) Operand {
	switch a := arg.(type) {
	case x86asm.Reg:
		return Operand{Kind: KindReg, Reg: a}
	case x86asm.Mem:
		return Operand{Kind: KindMem, Base: a.Base}
	case x86asm.Imm:
		return Operand{Kind: KindImm, Imm: int64(a)}
	case x86asm.Rel:
		return Operand{Kind: KindRel}
	default:
		return Operand{Kind: KindNone}
	}
}

// Equal reports whether a and b are structurally equivalent: same opcode,
// same operand kinds in the same order, same register identities wherever
// an operand is a register or names a base register. Immediate values,
// memory displacements, and relative branch offsets are never compared.
func Equal(a, b Instruction) bool {
	if a.Op != b.Op {
		return false
	}
	for i := range a.Operands {
		oa, ob := a.Operands[i], b.Operands[i]
		if oa.Kind != ob.Kind {
			return false
		}
		switch oa.Kind {
		case KindReg:
			if oa.Reg != ob.Reg {
				return false
			}
		case KindMem:
			if oa.Base != ob.Base {
				return false
			}
		}
	}
	return true
}
