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

package symbols

import (
	"sync"
	"testing"

	"github.com/tfbindiff/tfbindiff/program"
	"github.com/tfbindiff/tfbindiff/test"
)

func TestResolveUnknownAddressIsHex(t *testing.T) {
	r := NewResolver(&program.Program{SymbolMap: map[uint64]string{}})
	test.Equate(t, r.Resolve(0xdead), "0xdead")
}

func TestResolveDemanglesMangledName(t *testing.T) {
	r := NewResolver(&program.Program{SymbolMap: map[uint64]string{
		0x1000: "_Z3fooi",
	}})
	test.Equate(t, r.Resolve(0x1000), "foo")
}

func TestResolveFallsBackToMangledNameOnFailure(t *testing.T) {
	r := NewResolver(&program.Program{SymbolMap: map[uint64]string{
		0x1000: "not_a_mangled_name",
	}})
	test.Equate(t, r.Resolve(0x1000), "not_a_mangled_name")
}

func TestResolveCachesResult(t *testing.T) {
	r := NewResolver(&program.Program{SymbolMap: map[uint64]string{
		0x1000: "_Z3fooi",
	}})
	first := r.Resolve(0x1000)
	_, cached := r.cache["_Z3fooi"]
	test.ExpectedSuccess(t, cached)
	test.Equate(t, r.Resolve(0x1000), first)
}

func TestSymLookupReturnsNameForKnownAddress(t *testing.T) {
	r := NewResolver(&program.Program{SymbolMap: map[uint64]string{
		0x1000: "_Z3fooi",
	}})
	name, base := r.SymLookup(0x1000)
	test.Equate(t, name, "foo")
	test.Equate(t, base, uint64(0x1000))
}

func TestSymLookupReturnsEmptyForUnknownAddress(t *testing.T) {
	r := NewResolver(&program.Program{SymbolMap: map[uint64]string{}})
	name, _ := r.SymLookup(0xdead)
	test.Equate(t, name, "")
}

func TestResolveConcurrentUseIsSafe(t *testing.T) {
	r := NewResolver(&program.Program{SymbolMap: map[uint64]string{
		0x1000: "_Z3fooi",
		0x2000: "_Z3bari",
	}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Resolve(0x1000)
			r.Resolve(0x2000)
		}()
	}
	wg.Wait()
}
