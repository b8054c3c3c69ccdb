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

package compare

import (
	"testing"

	"github.com/tfbindiff/tfbindiff/test"
	"github.com/tfbindiff/tfbindiff/xinst"
)

func decode(t *testing.T, code []byte) []xinst.Instruction {
	t.Helper()
	insts, err := xinst.Decode(code, 0x1000, xinst.Mode32)
	test.Equate(t, err, nil)
	return insts
}

func TestMyersDiffEmptyVectorsProduceNoOps(t *testing.T) {
	ops := myersDiff(nil, nil)
	test.Equate(t, len(ops), 0)
}

func TestMyersDiffAllEqual(t *testing.T) {
	a := decode(t, []byte{0x55, 0x5D})
	b := decode(t, []byte{0x55, 0x5D})
	ops := myersDiff(a, b)
	test.Equate(t, len(ops), 1)
	test.Equate(t, ops[0].Kind, OpEqual)
	test.Equate(t, ops[0].OldLen, 2)
}

func TestMyersDiffPureInsert(t *testing.T) {
	a := decode(t, []byte{0x55})
	b := decode(t, []byte{0x55, 0x90})
	ops := myersDiff(a, b)
	test.Equate(t, len(ops), 2)
	test.Equate(t, ops[0].Kind, OpEqual)
	test.Equate(t, ops[1].Kind, OpInsert)
	test.Equate(t, ops[1].NewLen, 1)
}

func TestMyersDiffPureDelete(t *testing.T) {
	a := decode(t, []byte{0x55, 0x90})
	b := decode(t, []byte{0x55})
	ops := myersDiff(a, b)
	test.Equate(t, len(ops), 2)
	test.Equate(t, ops[0].Kind, OpEqual)
	test.Equate(t, ops[1].Kind, OpDelete)
	test.Equate(t, ops[1].OldLen, 1)
}
