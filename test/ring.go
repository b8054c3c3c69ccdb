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

package test

import "fmt"

// RingWriter is an io.Writer that keeps only the most recently written n
// bytes, discarding the oldest bytes once the buffer is full.
type RingWriter struct {
	buf   []byte
	pos   int
	full  bool
	limit int
}

// NewRingWriter creates a RingWriter with the given byte capacity.
func NewRingWriter(limit int) (*RingWriter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("ring writer: limit must be greater than zero")
	}
	return &RingWriter{
		buf:   make([]byte, limit),
		limit: limit,
	}, nil
}

// Write implements io.Writer.
func (r *RingWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		r.buf[r.pos] = b
		r.pos++
		if r.pos == r.limit {
			r.pos = 0
			r.full = true
		}
	}
	return len(p), nil
}

// Reset empties the buffer.
func (r *RingWriter) Reset() {
	r.pos = 0
	r.full = false
}

// String returns the buffer contents in write order.
func (r *RingWriter) String() string {
	if !r.full {
		return string(r.buf[:r.pos])
	}
	s := make([]byte, 0, r.limit)
	s = append(s, r.buf[r.pos:]...)
	s = append(s, r.buf[:r.pos]...)
	return string(s)
}
