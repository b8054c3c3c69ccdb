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

package main

import (
	"strings"
	"testing"

	"github.com/tfbindiff/tfbindiff/program"
	"github.com/tfbindiff/tfbindiff/symbols"
	"github.com/tfbindiff/tfbindiff/test"
	"github.com/tfbindiff/tfbindiff/xinst"
)

// callRel32 encodes a near CALL rel32 at addr targeting target.
func callRel32(addr, target uint64) []byte {
	rel := int32(target - (addr + 5))
	b := []byte{0xE8, 0, 0, 0, 0}
	b[1] = byte(rel)
	b[2] = byte(rel >> 8)
	b[3] = byte(rel >> 16)
	b[4] = byte(rel >> 24)
	return b
}

func TestFormatInstructionResolvesCallTarget(t *testing.T) {
	const callAddr = 0x1000
	const targetAddr = 0x2000

	insts, err := xinst.Decode(callRel32(callAddr, targetAddr), callAddr, xinst.Mode32)
	test.Equate(t, err, nil)
	test.Equate(t, len(insts), 1)

	resolver := symbols.NewResolver(&program.Program{SymbolMap: map[uint64]string{
		targetAddr: "_Z3barv",
	}})

	out := formatInstruction(insts[0], resolver)
	test.ExpectedSuccess(t, strings.Contains(out, "bar"))
}

func TestFormatInstructionFallsBackToHexForUnknownTarget(t *testing.T) {
	const callAddr = 0x1000
	const targetAddr = 0x2000

	insts, err := xinst.Decode(callRel32(callAddr, targetAddr), callAddr, xinst.Mode32)
	test.Equate(t, err, nil)

	resolver := symbols.NewResolver(&program.Program{SymbolMap: map[uint64]string{}})

	out := formatInstruction(insts[0], resolver)
	test.ExpectedSuccess(t, strings.Contains(out, "2000"))
}
