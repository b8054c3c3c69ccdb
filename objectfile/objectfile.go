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

// Package objectfile adapts ELF, Mach-O and PE object files behind a single
// seam so that the Program Loader doesn't need to know which format it was
// handed. It is a shim in the same spirit as the teacher's elfShim: the
// minimum surface a downstream consumer actually needs, not a general
// object-file abstraction.
package objectfile

// Section is a named, loaded section of an object file.
type Section struct {
	Name    string
	Addr    uint64
	Size    uint64
	Data    []byte
	IsExec  bool
}

// Symbol is an entry in an object file's symbol table.
type Symbol struct {
	Name string
	Addr uint64
}

// File is the seam the Program Loader depends on. Exactly one of the
// adapters in this package (elfFile, machoFile, peFile) implements it for
// any given input.
type File interface {
	// Is64Bit reports whether the object targets a 64-bit address space.
	Is64Bit() bool

	// Sections returns every section, in file order. For ELF this includes
	// sections that are not loaded at run time.
	Sections() []Section

	// Section returns the named section, or false if it isn't present.
	Section(name string) (Section, bool)

	// Symbols returns every symbol table entry (both static and dynamic,
	// where the format distinguishes them).
	Symbols() []Symbol
}
