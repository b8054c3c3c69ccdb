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
	"bytes"
	"testing"

	"github.com/tfbindiff/tfbindiff/test"
)

func TestWrongArgCountExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"tfbindiff", "only-one-arg"}, &stdout, &stderr)
	test.Equate(t, code, 2)
	test.ExpectedSuccess(t, stderr.Len() > 0)
}

func TestNoArgsExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"tfbindiff"}, &stdout, &stderr)
	test.Equate(t, code, 2)
}

func TestMissingInputFileExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"tfbindiff", "/nonexistent/primary", "/nonexistent/secondary"}, &stdout, &stderr)
	test.Equate(t, code, 2)
	test.ExpectedSuccess(t, stderr.Len() > 0)
}
