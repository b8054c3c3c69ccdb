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
	"github.com/tfbindiff/tfbindiff/errors"
)

// Open sniffs data and returns the File adapter for whichever of
// ELF/Mach-O/PE it recognises. Memory-mapping the underlying file, if any,
// is the caller's concern. The returned File keeps a reader over data and
// reads section and symbol contents from it when they are requested, so
// data must stay valid while the File is in use.
func Open(data []byte) (File, error) {
	if f, err := openELF(data); err == nil {
		return f, nil
	}
	if f, err := openMachO(data); err == nil {
		return f, nil
	}
	if f, err := openPE(data); err == nil {
		return f, nil
	}
	return nil, errors.Errorf(errors.ObjectFileError, "not a recognised ELF, Mach-O or PE object")
}
