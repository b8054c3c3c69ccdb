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
	"debug/pe"
)

type peFile struct {
	pf *pe.File
}

func openPE(data []byte) (File, error) {
	pf, err := pe.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &peFile{pf: pf}, nil
}

func (f *peFile) Is64Bit() bool {
	return f.pf.Machine == pe.IMAGE_FILE_MACHINE_AMD64
}

func (f *peFile) imageBase() uint64 {
	switch opt := f.pf.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		return uint64(opt.ImageBase)
	case *pe.OptionalHeader64:
		return opt.ImageBase
	}
	return 0
}

func (f *peFile) Sections() []Section {
	var out []Section
	base := f.imageBase()
	for _, s := range f.pf.Sections {
		d, err := s.Data()
		if err != nil {
			d = nil
		}
		out = append(out, Section{
			Name:   s.Name,
			Addr:   base + uint64(s.VirtualAddress),
			Size:   uint64(s.VirtualSize),
			Data:   d,
			IsExec: s.Characteristics&0x20000000 != 0, // IMAGE_SCN_MEM_EXECUTE
		})
	}
	return out
}

func (f *peFile) Section(name string) (Section, bool) {
	for _, s := range f.Sections() {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

func (f *peFile) Symbols() []Symbol {
	var out []Symbol
	base := f.imageBase()
	for _, s := range f.pf.Symbols {
		if s.Name == "" {
			continue
		}
		// section-relative symbols are the only ones meaningful for
		// locating function bodies; absolute/external symbols are skipped
		if s.SectionNumber <= 0 || int(s.SectionNumber) > len(f.pf.Sections) {
			continue
		}
		sec := f.pf.Sections[s.SectionNumber-1]
		out = append(out, Symbol{Name: s.Name, Addr: base + uint64(sec.VirtualAddress) + uint64(s.Value)})
	}
	return out
}
