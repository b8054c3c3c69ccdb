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
	"debug/macho"
)

type machoFile struct {
	mf *macho.File
}

// Mach-O section attribute bits marking a section that holds machine
// instructions (S_ATTR_PURE_INSTRUCTIONS, S_ATTR_SOME_INSTRUCTIONS);
// debug/macho does not export them.
const (
	attrPureInstructions = 0x80000000
	attrSomeInstructions = 0x00000400
)

func openMachO(data []byte) (File, error) {
	mf, err := macho.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &machoFile{mf: mf}, nil
}

func (f *machoFile) Is64Bit() bool {
	return f.mf.Magic == macho.Magic64
}

func (f *machoFile) Sections() []Section {
	var out []Section
	for _, s := range f.mf.Sections {
		d, err := s.Data()
		if err != nil {
			d = nil
		}
		out = append(out, Section{
			Name:   s.Name,
			Addr:   s.Addr,
			Size:   s.Size,
			Data:   d,
			IsExec: s.Flags&(attrPureInstructions|attrSomeInstructions) != 0,
		})
	}
	return out
}

// machoAliases maps an ELF-conventional section name to the name Mach-O
// gives the same section, so a caller that only knows the ELF/PE spelling
// (as the Program Loader does for ".eh_frame") still finds it.
var machoAliases = map[string]string{
	".eh_frame": "__eh_frame",
}

func (f *machoFile) Section(name string) (Section, bool) {
	s := f.mf.Section(name)
	if s == nil {
		if alias, ok := machoAliases[name]; ok {
			s = f.mf.Section(alias)
		}
	}
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
		IsExec: s.Flags&(attrPureInstructions|attrSomeInstructions) != 0,
	}, true
}

func (f *machoFile) Symbols() []Symbol {
	var out []Symbol
	if f.mf.Symtab == nil {
		return out
	}
	for _, s := range f.mf.Symtab.Syms {
		if s.Name == "" {
			continue
		}
		out = append(out, Symbol{Name: s.Name, Addr: s.Value})
	}
	return out
}
