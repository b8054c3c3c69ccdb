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

// Package matcher pairs a function name in one Program with its Function
// in another. Most names match directly; C++ static-initializer functions
// do not, because their mangled name embeds a build-environment path that
// differs between builds even when the initialised file did not change.
// For those, matching falls back to the source filename the name embeds.
package matcher

import (
	"regexp"

	"github.com/tfbindiff/tfbindiff/program"
)

var staticInitPattern = regexp.MustCompile(`^_?_GLOBAL__sub_I_(.*)\.stdout\.rel_tf_osx_builder\..*\.ii$`)

// Matcher resolves a primary function name to its counterpart Function in
// a fixed secondary Program.
type Matcher struct {
	secondary *program.Program

	// staticInit maps a static initializer's source filename to the
	// secondary function name it matched. Built once at construction and
	// read-only afterwards, so concurrent Match calls need no locking.
	staticInit map[string]string
}

// New builds a Matcher over secondary, precomputing its static-init map.
func New(secondary *program.Program) *Matcher {
	m := &Matcher{
		secondary:  secondary,
		staticInit: make(map[string]string),
	}

	blocklist := make(map[string]bool)
	for name := range secondary.Functions {
		sub := staticInitPattern.FindStringSubmatch(name)
		if sub == nil {
			continue
		}
		filename := sub[1]
		if blocklist[filename] {
			continue
		}
		if _, seen := m.staticInit[filename]; seen {
			delete(m.staticInit, filename)
			blocklist[filename] = true
			continue
		}
		m.staticInit[filename] = name
	}

	return m
}

// Match returns the secondary Function a primary function called name
// corresponds to, if any.
func (m *Matcher) Match(name string) (*program.Function, bool) {
	if fn, ok := m.secondary.Functions[name]; ok {
		return fn, true
	}

	sub := staticInitPattern.FindStringSubmatch(name)
	if sub == nil {
		return nil, false
	}

	mapped, ok := m.staticInit[sub[1]]
	if !ok {
		return nil, false
	}

	fn, ok := m.secondary.Functions[mapped]
	return fn, ok
}
