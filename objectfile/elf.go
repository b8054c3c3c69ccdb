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

package objectfile

import (
	"bytes"
	"debug/elf"
)

type elfFile struct {
	ef *elf.File
}

func openELF(data []byte) (File, error) {
	ef, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &elfFile{ef: ef}, nil
}

func (f *elfFile) Is64Bit() bool {
	return f.ef.Class == elf.ELFCLASS64
}

func (f *elfFile) Sections() []Section {
	var out []Section
	for _, s := range f.ef.Sections {
		d, err := s.Data()
		if err != nil {
			// a section whose data cannot be read (eg. SHT_NOBITS) is
			// reported with no bytes rather than aborting the whole load
			d = nil
		}
		out = append(out, Section{
			Name:   s.Name,
			Addr:   s.Addr,
			Size:   s.Size,
			Data:   d,
			IsExec: s.Flags&elf.SHF_EXECINSTR != 0,
		})
	}
	return out
}

func (f *elfFile) Section(name string) (Section, bool) {
	s := f.ef.Section(name)
	if s == nil {
		return Section{}, false
	}
	d, err := s.Data()
	if err != nil {
		return Section{}, false
	}
	return Section{
		Name:   s.Name,
		Addr:   s.Addr,
		Size:   s.Size,
		Data:   d,
		IsExec: s.Flags&elf.SHF_EXECINSTR != 0,
	}, true
}

func (f *elfFile) Symbols() []Symbol {
	var out []Symbol

	syms, err := f.ef.Symbols()
	if err == nil {
		for _, s := range syms {
			if s.Name == "" {
				continue
			}
			out = append(out, Symbol{Name: s.Name, Addr: s.Value})
		}
	}

	dynsyms, err := f.ef.DynamicSymbols()
	if err == nil {
		for _, s := range dynsyms {
			if s.Name == "" {
				continue
			}
			out = append(out, Symbol{Name: s.Name, Addr: s.Value})
		}
	}

	return out
}
