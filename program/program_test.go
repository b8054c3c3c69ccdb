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

package program

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/tfbindiff/tfbindiff/objectfile"
	"github.com/tfbindiff/tfbindiff/test"
)

// fakeObject is a minimal objectfile.File stand-in so Program Loader
// behaviour can be tested without constructing real ELF/Mach-O/PE bytes.
type fakeObject struct {
	is64     bool
	sections map[string]objectfile.Section
	symbols  []objectfile.Symbol
}

func (f *fakeObject) Is64Bit() bool { return f.is64 }

func (f *fakeObject) Sections() []objectfile.Section {
	var out []objectfile.Section
	for _, s := range f.sections {
		out = append(out, s)
	}
	return out
}

func (f *fakeObject) Section(name string) (objectfile.Section, bool) {
	s, ok := f.sections[name]
	return s, ok
}

func (f *fakeObject) Symbols() []objectfile.Symbol { return f.symbols }

// buildEhFrame constructs a single-FDE .eh_frame section (absptr+pcrel,
// 4-byte pointers) covering [begin, begin+length) when loaded at baseAddress.
func buildEhFrame(baseAddress, begin, length uint32) []byte {
	cieBody := &bytes.Buffer{}
	binary.Write(cieBody, binary.LittleEndian, uint32(0))
	cieBody.WriteByte(1)
	cieBody.WriteString("zR")
	cieBody.WriteByte(0)
	cieBody.WriteByte(1)
	cieBody.WriteByte(0x7c)
	cieBody.WriteByte(8)
	cieBody.WriteByte(1)
	cieBody.WriteByte(0x10) // absptr, pcrel

	cie := &bytes.Buffer{}
	binary.Write(cie, binary.LittleEndian, uint32(cieBody.Len()))
	cie.Write(cieBody.Bytes())

	discriminatorOffset := cie.Len() + 4
	pcBeginOffsetInSection := discriminatorOffset + 4
	pcBeginRaw := begin - baseAddress - uint32(pcBeginOffsetInSection)

	fdeBody := &bytes.Buffer{}
	binary.Write(fdeBody, binary.LittleEndian, uint32(discriminatorOffset))
	binary.Write(fdeBody, binary.LittleEndian, pcBeginRaw)
	binary.Write(fdeBody, binary.LittleEndian, length)

	fde := &bytes.Buffer{}
	binary.Write(fde, binary.LittleEndian, uint32(fdeBody.Len()))
	fde.Write(fdeBody.Bytes())

	return append(cie.Bytes(), fde.Bytes()...)
}

func TestLoadBuildsFunctionFromFDE(t *testing.T) {
	const textAddr = 0x2000
	textData := make([]byte, 0x100)
	for i := range textData {
		textData[i] = byte(i)
	}

	obj := &fakeObject{
		is64: false,
		sections: map[string]objectfile.Section{
			".eh_frame": {Name: ".eh_frame", Addr: 0x1000, Data: buildEhFrame(0x1000, textAddr+0x10, 0x8)},
			".text":     {Name: ".text", Addr: textAddr, Size: uint64(len(textData)), Data: textData, IsExec: true},
		},
		symbols: []objectfile.Symbol{
			{Name: "_Z3fooPi", Addr: textAddr + 0x10},
		},
	}

	p, err := loadFromObject(obj)
	test.Equate(t, err, nil)
	test.Equate(t, p.PointerSize, 4)
	test.Equate(t, len(p.Functions), 1)

	fn, ok := p.Functions["_Z3fooPi"]
	test.ExpectedSuccess(t, ok)
	test.Equate(t, fn.Address, uint64(textAddr+0x10))
	test.Equate(t, len(fn.Content), 8)
	test.Equate(t, fn.Content[0], textData[0x10])

	name, ok := p.SymbolMap[fn.Address]
	test.ExpectedSuccess(t, ok)
	test.Equate(t, name, "_Z3fooPi")
}

func TestLoadSymbolMapCoversNonFunctionSymbols(t *testing.T) {
	const textAddr = 0x2000
	textData := make([]byte, 0x100)
	for i := range textData {
		textData[i] = byte(i)
	}

	obj := &fakeObject{
		sections: map[string]objectfile.Section{
			".eh_frame": {Name: ".eh_frame", Addr: 0x1000, Data: buildEhFrame(0x1000, textAddr+0x10, 0x8)},
			".text":     {Name: ".text", Addr: textAddr, Size: uint64(len(textData)), Data: textData, IsExec: true},
		},
		symbols: []objectfile.Symbol{
			{Name: "_Z3fooPi", Addr: textAddr + 0x10},
			{Name: "some_global_data", Addr: 0x5000},
		},
	}

	p, err := loadFromObject(obj)
	test.Equate(t, err, nil)

	name, ok := p.SymbolMap[0x5000]
	test.ExpectedSuccess(t, ok)
	test.Equate(t, name, "some_global_data")

	_, isFunction := p.Functions["some_global_data"]
	test.ExpectedFailure(t, isFunction)
}

func TestLoadSkipsFDEWithoutSymbol(t *testing.T) {
	const textAddr = 0x2000
	textData := make([]byte, 0x100)

	obj := &fakeObject{
		sections: map[string]objectfile.Section{
			".eh_frame": {Name: ".eh_frame", Addr: 0x1000, Data: buildEhFrame(0x1000, textAddr+0x10, 0x8)},
			".text":     {Name: ".text", Addr: textAddr, Size: uint64(len(textData)), Data: textData, IsExec: true},
		},
	}

	p, err := loadFromObject(obj)
	test.Equate(t, err, nil)
	test.Equate(t, len(p.Functions), 0)
}

func TestLoadMissingEhFrameSection(t *testing.T) {
	obj := &fakeObject{sections: map[string]objectfile.Section{}}

	_, err := loadFromObject(obj)
	test.ExpectedFailure(t, err == nil)
}

func TestLoadFunctionRangeOutsideAnySection(t *testing.T) {
	obj := &fakeObject{
		sections: map[string]objectfile.Section{
			".eh_frame": {Name: ".eh_frame", Addr: 0x1000, Data: buildEhFrame(0x1000, 0x9000, 0x8)},
		},
		symbols: []objectfile.Symbol{
			{Name: "orphan", Addr: 0x9000},
		},
	}

	_, err := loadFromObject(obj)
	test.ExpectedFailure(t, err == nil)
}
