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

// Package layout turns a pair of instruction vectors and their diff ops
// into a side-by-side grid ready for rendering: one Row per displayed
// line, each holding an old-side and a new-side Cell. Long runs of
// unchanged instructions are collapsed so an unrelated function-wide
// change doesn't bury the reader in pages of agreement.
package layout

import (
	"github.com/tfbindiff/tfbindiff/compare"
	"github.com/tfbindiff/tfbindiff/xinst"
)

// K is half the minimum run length at which a stretch of Equal rows is
// collapsed: a run collapses only once it is at least 2*K long, so the
// first and last K rows stay visible and only the middle is hidden.
const K = 15

// CellKind identifies what a Cell displays.
type CellKind int

const (
	CellHidden CellKind = iota
	CellCollapsed
	CellDefault
	CellInsert
	CellDelete
)

// Cell is one side of a Row. Instruction is meaningful only when Kind is
// CellDefault, CellInsert or CellDelete.
type Cell struct {
	Kind        CellKind
	Instruction xinst.Instruction
}

// Row is one line of the side-by-side display.
type Row struct {
	Old Cell
	New Cell
}

// Build lays out i1/i2 according to ops, collapsing long equal runs.
func Build(i1, i2 []xinst.Instruction, ops []compare.DiffOp) []Row {
	var rows []Row
	for _, op := range ops {
		switch op.Kind {
		case compare.OpEqual:
			rows = append(rows, equalRows(i1, i2, op)...)
		case compare.OpDelete:
			rows = append(rows, oneSidedRows(i1, op.OldIndex, op.OldLen, CellDelete, true)...)
		case compare.OpInsert:
			rows = append(rows, oneSidedRows(i2, op.NewIndex, op.NewLen, CellInsert, false)...)
		case compare.OpReplace:
			rows = append(rows, replaceRows(i1, i2, op)...)
		}
	}
	return rows
}

func equalRows(i1, i2 []xinst.Instruction, op compare.DiffOp) []Row {
	n := op.OldLen
	if n < 2*K {
		rows := make([]Row, 0, n)
		for i := 0; i < n; i++ {
			rows = append(rows, defaultRow(i1, i2, op.OldIndex+i, op.NewIndex+i))
		}
		return rows
	}

	rows := make([]Row, 0, 2*K+1)
	for i := 0; i < K; i++ {
		rows = append(rows, defaultRow(i1, i2, op.OldIndex+i, op.NewIndex+i))
	}
	rows = append(rows, Row{Old: Cell{Kind: CellCollapsed}, New: Cell{Kind: CellCollapsed}})
	for i := n - K; i < n; i++ {
		rows = append(rows, defaultRow(i1, i2, op.OldIndex+i, op.NewIndex+i))
	}
	return rows
}

func defaultRow(i1, i2 []xinst.Instruction, oldIx, newIx int) Row {
	return Row{
		Old: Cell{Kind: CellDefault, Instruction: i1[oldIx]},
		New: Cell{Kind: CellDefault, Instruction: i2[newIx]},
	}
}

// oneSidedRows builds rows for a Delete (old-only, onOld true) or Insert
// (new-only, onOld false) run.
func oneSidedRows(insts []xinst.Instruction, start, length int, kind CellKind, onOld bool) []Row {
	rows := make([]Row, 0, length)
	for i := 0; i < length; i++ {
		cell := Cell{Kind: kind, Instruction: insts[start+i]}
		if onOld {
			rows = append(rows, Row{Old: cell, New: Cell{Kind: CellHidden}})
		} else {
			rows = append(rows, Row{Old: Cell{Kind: CellHidden}, New: cell})
		}
	}
	return rows
}

// replaceRows zips the old and new ranges of a Replace op; the longer
// side's trailing items pair with Hidden on the shorter side.
func replaceRows(i1, i2 []xinst.Instruction, op compare.DiffOp) []Row {
	n := op.OldLen
	if op.NewLen > n {
		n = op.NewLen
	}

	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		oldCell := Cell{Kind: CellHidden}
		if i < op.OldLen {
			oldCell = Cell{Kind: CellDelete, Instruction: i1[op.OldIndex+i]}
		}
		newCell := Cell{Kind: CellHidden}
		if i < op.NewLen {
			newCell = Cell{Kind: CellInsert, Instruction: i2[op.NewIndex+i]}
		}
		rows = append(rows, Row{Old: oldCell, New: newCell})
	}
	return rows
}
