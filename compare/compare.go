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

// Package compare decides whether two functions are the same, and if not,
// computes the instruction-level diff between them. Byte equality is
// checked first as a cheap short-circuit; everything past that point
// works on decoded instructions under structural equivalence, so a
// recompiled-but-unchanged function (same code, different displacements)
// still reads as Same.
package compare

import (
	"bytes"

	"golang.org/x/arch/x86/x86asm"

	"github.com/tfbindiff/tfbindiff/errors"
	"github.com/tfbindiff/tfbindiff/program"
	"github.com/tfbindiff/tfbindiff/xinst"
)

// Result is the outcome of comparing two functions.
type Result struct {
	Same          bool
	Instructions1 []xinst.Instruction
	Instructions2 []xinst.Instruction
	Ops           []DiffOp
}

// Compare decides whether f1 and f2 are the same function, decoding with
// mode when a byte-level difference requires a closer look.
func Compare(f1, f2 *program.Function, mode xinst.Mode) (Result, error) {
	if bytes.Equal(f1.Content, f2.Content) {
		return Result{Same: true}, nil
	}

	i1, err := xinst.Decode(f1.Content, f1.Address, mode)
	if err != nil {
		return Result{}, err
	}
	i2, err := xinst.Decode(f2.Content, f2.Address, mode)
	if err != nil {
		return Result{}, err
	}

	differs := len(f1.Content) != len(f2.Content)
	if !differs {
		differs = !instructionsEqual(i1, i2)
	}
	if !differs {
		stackDiffers, err := stackDepthDiffers(i1, i2)
		if err != nil {
			return Result{}, err
		}
		differs = stackDiffers
	}

	if !differs {
		return Result{Same: true}, nil
	}

	return Result{
		Same:          false,
		Instructions1: i1,
		Instructions2: i2,
		Ops:           myersDiff(i1, i2),
	}, nil
}

func instructionsEqual(a, b []xinst.Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !xinst.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// stackDepthDiffers zips i1 and i2 in order and inspects the first
// corresponding pair where both instructions are SUB ESP/RSP, imm. If the
// immediates differ, the two functions have a different stack frame size
// even though the rest of the instruction stream matches structurally.
func stackDepthDiffers(i1, i2 []xinst.Instruction) (bool, error) {
	n := len(i1)
	if len(i2) < n {
		n = len(i2)
	}
	for idx := 0; idx < n; idx++ {
		a, b := i1[idx], i2[idx]
		if !isSubStackPointer(a) || !isSubStackPointer(b) {
			continue
		}
		immA, err := subImmediate(a)
		if err != nil {
			return false, err
		}
		immB, err := subImmediate(b)
		if err != nil {
			return false, err
		}
		return immA != immB, nil
	}
	return false, nil
}

func isSubStackPointer(inst xinst.Instruction) bool {
	if inst.Op != x86asm.SUB {
		return false
	}
	op := inst.Operands[0]
	return op.Kind == xinst.KindReg && (op.Reg == x86asm.ESP || op.Reg == x86asm.RSP)
}

// subImmediate recovers the immediate operand of a SUB ESP/RSP, imm
// instruction. Structural equivalence ignores immediates, but the
// stack-depth probe needs the literal value, which Operand.Imm retains.
func subImmediate(inst xinst.Instruction) (int64, error) {
	op := inst.Operands[1]
	if op.Kind != xinst.KindImm {
		return 0, errors.Errorf(errors.UnhandledSubOperand, op.Kind)
	}
	return op.Imm, nil
}
