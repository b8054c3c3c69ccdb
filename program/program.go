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

// Package program loads an object file into the analysis-ready form the
// rest of this system works with: pointer size, a name-to-function map
// recovered from .eh_frame plus the symbol table, and the reverse address
// map.
package program

import (
	"github.com/tfbindiff/tfbindiff/ehframe"
	"github.com/tfbindiff/tfbindiff/errors"
	"github.com/tfbindiff/tfbindiff/logger"
	"github.com/tfbindiff/tfbindiff/objectfile"
)

// Function is a named function's address and exact code bytes, copied out
// of the object file at load time so the Program no longer depends on the
// lifetime of the original input bytes.
type Function struct {
	Address uint64
	Content []byte
}

// Program is the loaded, analysis-ready form of one object file.
//
// Duplicate symbol names collide on a single Function; the last one loaded
// wins. This is a deliberate choice: duplicate exported names are rare in
// release binaries, and the loss is visible through a SymbolMap lookup
// disagreeing with Functions.
type Program struct {
	PointerSize int // 4 or 8

	// Functions maps a (mangled) symbol name to its Function.
	Functions map[string]*Function

	// SymbolMap maps a function's address back to its (mangled) name.
	SymbolMap map[uint64]string
}

// Load parses data as an object file and builds a Program from its
// .eh_frame section and symbol table.
func Load(data []byte) (*Program, error) {
	obj, err := objectfile.Open(data)
	if err != nil {
		return nil, errors.Errorf(errors.ObjectFileError, err)
	}
	return loadFromObject(obj)
}

func loadFromObject(obj objectfile.File) (*Program, error) {
	pointerSize := 4
	if obj.Is64Bit() {
		pointerSize = 8
	}

	ehSec, ok := obj.Section(".eh_frame")
	if !ok {
		return nil, errors.Errorf(errors.NoEhFrameSection)
	}

	fdes, err := ehframe.Parse(ehSec.Data, pointerSize, ehSec.Addr)
	if err != nil {
		return nil, err
	}

	symbolMap := make(map[uint64]string)
	for _, s := range obj.Symbols() {
		symbolMap[s.Addr] = s.Name
	}

	sections := obj.Sections()

	// SymbolMap covers the whole object symbol table, not just functions
	// recovered from .eh_frame: the symbol resolver needs to name any
	// operand address a disassembled instruction can reference (a PLT
	// stub, a data symbol, a local), not only call/branch targets that
	// happen to also have a CFI record.
	p := &Program{
		PointerSize: pointerSize,
		Functions:   make(map[string]*Function),
		SymbolMap:   symbolMap,
	}

	for _, fde := range fdes {
		name, ok := symbolMap[fde.Begin]
		if !ok {
			logger.Logf(logger.Allow, "program", "no symbol for FDE at %#x, skipping", fde.Begin)
			continue
		}

		content, err := extractContent(sections, fde)
		if err != nil {
			return nil, err
		}

		p.Functions[name] = &Function{Address: fde.Begin, Content: content}
	}

	return p, nil
}

// extractContent returns the fde.Length bytes starting at fde.Begin from
// whichever loaded section's [Addr, Addr+Size) covers it. Code only ever
// lives in an executable section, so those are tried first; this also
// disambiguates the rare case where a non-executable section (eg. a
// debug-info section object/debug packagers sometimes leave mapped over
// the same address range) would otherwise match first.
func extractContent(sections []objectfile.Section, fde ehframe.FDE) ([]byte, error) {
	if data, ok := extractFrom(sections, fde, true); ok {
		return data, nil
	}
	if data, ok := extractFrom(sections, fde, false); ok {
		return data, nil
	}
	return nil, errors.Errorf(errors.NoSectionForAddress, fde.Begin)
}

func extractFrom(sections []objectfile.Section, fde ehframe.FDE, execOnly bool) ([]byte, bool) {
	for _, s := range sections {
		if execOnly && !s.IsExec {
			continue
		}
		if fde.Begin < s.Addr || fde.Begin+fde.Length > s.Addr+s.Size {
			continue
		}
		offset := fde.Begin - s.Addr
		if offset+fde.Length > uint64(len(s.Data)) {
			continue
		}
		return s.Data[offset : offset+fde.Length], true
	}
	return nil, false
}
