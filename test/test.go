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

// Package test collects the small assertion helpers used by _test.go files
// throughout this module. It is intentionally minimal: no third-party
// assertion library is introduced here.
package test

import "testing"

// ExpectEquality fails the test if got and want are not equal.
func ExpectEquality[T comparable](t *testing.T, got T, want T) {
	t.Helper()
	if got != want {
		t.Errorf("unexpected value: got %v, want %v", got, want)
	}
}

// Equate is an alias of ExpectEquality.
func Equate[T comparable](t *testing.T, got T, want T) {
	t.Helper()
	ExpectEquality(t, got, want)
}

// ExpectedSuccess fails the test if ok is false.
func ExpectedSuccess(t *testing.T, ok bool) {
	t.Helper()
	if !ok {
		t.Errorf("expected success, got failure")
	}
}

// ExpectedFailure fails the test if ok is true.
func ExpectedFailure(t *testing.T, ok bool) {
	t.Helper()
	if ok {
		t.Errorf("expected failure, got success")
	}
}
