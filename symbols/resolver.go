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

// Package symbols turns a Program's address-to-mangled-name map into
// display names, demangling C++ symbols on first lookup and caching the
// result. Safe for concurrent use by comparator workers and the renderer.
package symbols

import (
	"fmt"
	"sync"

	"github.com/ianlancetaylor/demangle"

	"github.com/tfbindiff/tfbindiff/program"
)

// Resolver wraps one Program's symbol table.
type Resolver struct {
	program *program.Program

	crit  sync.Mutex
	cache map[string]string
}

// NewResolver builds a Resolver over p. p is read-only from this point on;
// Resolver holds a long-lived reference rather than copying symbol_map.
func NewResolver(p *program.Program) *Resolver {
	return &Resolver{program: p, cache: make(map[string]string)}
}

// Resolve returns the display name for addr: demangled when the address
// has a mangled C++ symbol, the mangled name unchanged when demangling
// fails, or a bare hex literal when addr has no symbol at all.
func (r *Resolver) Resolve(addr uint64) string {
	name, ok := r.program.SymbolMap[addr]
	if !ok {
		return fmt.Sprintf("%#x", addr)
	}
	return r.demangled(name)
}

// SymLookup implements x86asm.SymLookup, resolving the address an
// instruction operand (a call target, a jump target, a RIP-relative
// memory reference) refers to into a demangled name and the symbol's base
// address, which is addr itself since only exact symbol addresses are
// known. It reports no symbol for an address the program doesn't have one
// for, leaving the caller's formatter to fall back to its own hex rendering.
func (r *Resolver) SymLookup(addr uint64) (string, uint64) {
	name, ok := r.program.SymbolMap[addr]
	if !ok {
		return "", 0
	}
	return r.demangled(name), addr
}

// demangled returns the cached display form of a mangled symbol name,
// demangling and caching it on first use. Parameter lists are suppressed,
// matching the original tool's no_params demangle option; template
// arguments are kept since nothing asked for those to be dropped too.
func (r *Resolver) demangled(name string) string {
	r.crit.Lock()
	defer r.crit.Unlock()

	if cached, ok := r.cache[name]; ok {
		return cached
	}

	display := demangle.Filter(name, demangle.NoParams)
	r.cache[name] = display
	return display
}
