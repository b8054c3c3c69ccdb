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
	"fmt"
	"io"

	"golang.org/x/arch/x86/x86asm"

	"github.com/tfbindiff/tfbindiff/layout"
	"github.com/tfbindiff/tfbindiff/orchestrator"
	"github.com/tfbindiff/tfbindiff/symbols"
	"github.com/tfbindiff/tfbindiff/xinst"
)

const (
	ansiReset    = "\x1b[0m"
	ansiHeader   = "\x1b[1;36m"
	ansiInsert   = "\x1b[32m"
	ansiDelete   = "\x1b[31m"
	ansiCollapse = "\x1b[2m"
)

// render writes every FunctionChange to w as plain text, ANSI-coloured when
// colour is set: insert green, delete red, collapsed runs dimmed. primary resolves names
// for the header and for operands in the old-side instruction stream;
// secondary does the same for the new side, since a call or jump target
// inside a changed function can itself have moved between the two builds.
func render(w io.Writer, changes []orchestrator.FunctionChange, colour bool, primary, secondary *symbols.Resolver) {
	for _, c := range changes {
		renderHeader(w, c, colour, primary)
		for _, row := range c.Rows {
			renderRow(w, row, colour, primary, secondary)
		}
	}
}

func renderHeader(w io.Writer, c orchestrator.FunctionChange, colour bool, primary *symbols.Resolver) {
	name := primary.Resolve(c.PrimaryAddress)
	if colour {
		fmt.Fprintf(w, "%s%s%s changed [primary %#08x, secondary %#08x]\n", ansiHeader, name, ansiReset, c.PrimaryAddress, c.SecondaryAddress)
		return
	}
	fmt.Fprintf(w, "%s changed [primary %#08x, secondary %#08x]\n", name, c.PrimaryAddress, c.SecondaryAddress)
}

func renderRow(w io.Writer, row layout.Row, colour bool, primary, secondary *symbols.Resolver) {
	renderCell(w, row.Old, "-", ansiDelete, colour, primary)
	renderCell(w, row.New, "+", ansiInsert, colour, secondary)
}

func renderCell(w io.Writer, cell layout.Cell, marker, colourCode string, colour bool, resolver *symbols.Resolver) {
	switch cell.Kind {
	case layout.CellHidden:
		return
	case layout.CellCollapsed:
		if colour {
			fmt.Fprintf(w, "\t%s...%s\n", ansiCollapse, ansiReset)
			return
		}
		fmt.Fprintln(w, "\t...")
	case layout.CellDefault:
		fmt.Fprintf(w, "\t%08x\t%s\n", cell.Instruction.Addr, formatInstruction(cell.Instruction, resolver))
	case layout.CellInsert, layout.CellDelete:
		line := fmt.Sprintf("\t%s %08x\t%s", marker, cell.Instruction.Addr, formatInstruction(cell.Instruction, resolver))
		if colour {
			fmt.Fprintf(w, "%s%s%s\n", colourCode, line, ansiReset)
			return
		}
		fmt.Fprintln(w, line)
	}
}

// formatInstruction renders an instruction the way x86asm's own Intel
// syntax formatter does, resolving any address a call, jump or RIP-relative
// operand refers to through resolver so a control-flow change reads as a
// name change, not a blind "rel" token.
func formatInstruction(inst xinst.Instruction, resolver *symbols.Resolver) string {
	return x86asm.IntelSyntax(inst.Raw, inst.Addr, resolver.SymLookup)
}
