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

// Package ehframe decodes the .eh_frame exception-frame unwind table of an
// ELF/Mach-O/PE object into the list of Frame Description Entries it
// declares. Only what is needed to recover a function's (start address,
// length) pair is kept; call-frame instructions themselves are skipped.
//
// The encoding follows the LSB/System-V ABI exception-frame format: a
// sequence of length-prefixed entries, each either a Common Information
// Entry (CIE) or a Frame Description Entry (FDE) referring back to one.
// See "information about the structure of call frame information" in the
// DWARF-4 Specification, section 6.4, for the ancestor .debug_frame format
// this is a GCC-specific variant of.
package ehframe

import (
	"encoding/binary"

	"github.com/tfbindiff/tfbindiff/errors"
	"github.com/tfbindiff/tfbindiff/leb128"
)

// PointerFormat is the low nibble of a CIE's R-augmentation byte: how an
// FDE pointer value is encoded on the wire.
type PointerFormat byte

// Pointer formats named by the DWARF exception-header encoding. Only a
// subset is supported for application (see readApplied); the rest are recognised
// so that an unsupported-but-valid encoding is reported explicitly rather
// than confused with a malformed one.
const (
	FormatAbsPtr  PointerFormat = 0x00
	FormatULEB128 PointerFormat = 0x01
	FormatUData2  PointerFormat = 0x02
	FormatUData4  PointerFormat = 0x03
	FormatUData8  PointerFormat = 0x04
	FormatSLEB128 PointerFormat = 0x09
	FormatSData2  PointerFormat = 0x0A
	FormatSData4  PointerFormat = 0x0B
	FormatSData8  PointerFormat = 0x0C
)

// PointerApplication is the high nibble of a CIE's R-augmentation byte: how
// a decoded pointer value is to be interpreted relative to its position.
type PointerApplication byte

// Pointer applications named by the DWARF exception-header encoding.
const (
	ApplicationAbs     PointerApplication = 0x00
	ApplicationPCRel   PointerApplication = 0x01
	ApplicationTextRel PointerApplication = 0x02
	ApplicationDataRel PointerApplication = 0x03
	ApplicationFuncRel PointerApplication = 0x04
	ApplicationAligned PointerApplication = 0x05
)

// FDE is a Frame Description Entry reduced to the pair of fields this
// system needs: the start address and byte length of the function it
// describes.
type FDE struct {
	Begin  uint64
	Length uint64
}

// cie is the shared decoding context referenced by FDEs by offset. It lives
// only for the duration of Parse.
type cie struct {
	pointerFormat      PointerFormat
	pointerApplication PointerApplication
	hasRAugmentation   bool
}

// Parse decodes the .eh_frame section contents in data into an ordered list
// of FDEs. pointerSize is 4 or 8. baseAddress is the section's load
// address; all FDE addresses are computed relative to it. Encoding is
// always little-endian.
func Parse(data []byte, pointerSize int, baseAddress uint64) ([]FDE, error) {
	p := &parser{
		data:        data,
		pointerSize: pointerSize,
		baseAddress: baseAddress,
		cies:        make(map[int]*cie),
	}
	return p.run()
}

type parser struct {
	data        []byte
	pointerSize int
	baseAddress uint64
	cies        map[int]*cie
	fdes        []FDE
}

func (p *parser) run() ([]FDE, error) {
	idx := 0

	for {
		if idx >= len(p.data) {
			// some toolchains omit the terminator; end-of-stream here is a
			// successful termination
			break
		}

		entryStart := idx

		if idx+4 > len(p.data) {
			break
		}
		length := uint64(binary.LittleEndian.Uint32(p.data[idx:]))
		idx += 4

		if length == 0 {
			// terminator
			break
		}

		if length == 0xFFFFFFFF {
			if idx+8 > len(p.data) {
				return nil, errors.Errorf(errors.EhFrameTruncated, "extended length")
			}
			length = binary.LittleEndian.Uint64(p.data[idx:])
			idx += 8
		}

		entryDataStart := idx
		entryEnd := entryDataStart + int(length)
		if entryEnd > len(p.data) {
			return nil, errors.Errorf(errors.EhFrameTruncated, "entry body")
		}

		if entryDataStart+4 > entryEnd {
			return nil, errors.Errorf(errors.EhFrameTruncated, "CIE discriminator")
		}
		id := binary.LittleEndian.Uint32(p.data[entryDataStart:])
		cursor := entryDataStart + 4

		if id == 0 {
			c, consumed, err := p.parseCIE(p.data[cursor:entryEnd])
			if err != nil {
				return nil, err
			}
			cursor += consumed
			p.cies[entryStart] = c
		} else {
			consumed, err := p.parseFDE(entryDataStart, cursor, entryEnd, int(id))
			if err != nil {
				return nil, err
			}
			cursor += consumed
		}

		if cursor > entryEnd {
			return nil, errors.Errorf(errors.EhFrameEntryOverrun, cursor-entryDataStart, entryEnd-entryDataStart)
		}

		idx = entryEnd
	}

	return p.fdes, nil
}

// parseCIE parses the body of a CIE (everything after its discriminator
// word) and returns the decoded CIE plus the number of bytes consumed.
func (p *parser) parseCIE(b []byte) (*cie, int, error) {
	n := 0

	if n >= len(b) {
		return nil, 0, errors.Errorf(errors.EhFrameTruncated, "CIE version")
	}
	version := b[n]
	n++
	if version != 1 {
		return nil, 0, errors.Errorf(errors.EhFrameBadCIEVersion, version)
	}

	// NUL-terminated augmentation string
	augStart := n
	for n < len(b) && b[n] != 0x00 {
		n++
	}
	if n >= len(b) {
		return nil, 0, errors.Errorf(errors.EhFrameTruncated, "augmentation string")
	}
	augmentation := string(b[augStart:n])
	n++ // NUL terminator

	// "eh" data field: pointer-sized, present iff augmentation contains "eh"
	if containsEH(augmentation) {
		if n+p.pointerSize > len(b) {
			return nil, 0, errors.Errorf(errors.EhFrameTruncated, "eh data field")
		}
		n += p.pointerSize
	}

	var m int
	_, m = leb128.DecodeULEB128(b[n:])
	n += m
	_, m = leb128.DecodeSLEB128(b[n:])
	n += m
	if n >= len(b) {
		return nil, 0, errors.Errorf(errors.EhFrameTruncated, "return address register")
	}
	n++ // return address register, one byte

	c := &cie{}

	if len(augmentation) > 0 && augmentation[0] == 'z' {
		var augLen uint64
		augLen, m = leb128.DecodeULEB128(b[n:])
		n += m
		augDataEnd := n + int(augLen)
		if augDataEnd > len(b) {
			return nil, 0, errors.Errorf(errors.EhFrameTruncated, "augmentation data")
		}

		ad := n // cursor within the augmentation data, reusing b's indices
		for i := 0; i < len(augmentation); i++ {
			switch augmentation[i] {
			case 'z':
				// no-op: signals presence of augmentation data, already consumed above
			case 'e':
				// "eh" - two characters, already fully consumed above; skip the second
				if i+1 >= len(augmentation) || augmentation[i+1] != 'h' {
					return nil, 0, errors.Errorf(errors.EhFrameBadAugmentation, augmentation[i])
				}
				i++
			case 'L':
				ad++
			case 'P':
				if ad >= len(b) {
					return nil, 0, errors.Errorf(errors.EhFrameTruncated, "P augmentation encoding")
				}
				format := PointerFormat(b[ad] & 0x0F)
				ad++
				sz, err := encodedSize(p.pointerSize, format, b[ad:])
				if err != nil {
					return nil, 0, err
				}
				ad += sz
			case 'R':
				if ad >= len(b) {
					return nil, 0, errors.Errorf(errors.EhFrameTruncated, "R augmentation")
				}
				rbyte := b[ad]
				ad++
				c.pointerFormat = PointerFormat(rbyte & 0x0F)
				c.pointerApplication = PointerApplication((rbyte >> 4) & 0x0F)
				c.hasRAugmentation = true
			default:
				return nil, 0, errors.Errorf(errors.EhFrameBadAugmentation, augmentation[i])
			}
		}

		n = augDataEnd
	}

	// remaining bytes are initial call-frame instructions; not needed to
	// recover function (address, length) pairs and are skipped by the
	// caller seeking to entryStart+length
	n = len(b)

	return c, n, nil
}

// parseFDE parses an FDE whose discriminator word (the "value" referred to
// below) is id, read from entryDataStart..entryDataStart+4. cursor is the
// position right after that word. Returns the number of bytes consumed
// counting from cursor.
func (p *parser) parseFDE(entryDataStart, cursor, entryEnd, id int) (int, error) {
	absoluteCIEOffset := entryDataStart - id

	c, ok := p.cies[absoluteCIEOffset]
	if !ok {
		return 0, errors.Errorf(errors.EhFrameUnknownCIE, absoluteCIEOffset)
	}
	if !c.hasRAugmentation {
		return 0, errors.Errorf(errors.EhFrameMissingRAug)
	}

	start := cursor
	pcBegin, n, err := p.readApplied(c.pointerFormat, c.pointerApplication, p.data[cursor:entryEnd], cursor)
	if err != nil {
		return 0, err
	}
	cursor += n

	if cursor+p.pointerSize > entryEnd {
		return 0, errors.Errorf(errors.EhFrameTruncated, "pc_range")
	}
	pcRange := readUint(p.data[cursor:], p.pointerSize)
	cursor += p.pointerSize

	p.fdes = append(p.fdes, FDE{Begin: pcBegin, Length: pcRange})

	return cursor - start, nil
}

// readApplied reads a pointer value encoded per format and returns it after
// applying application. offsetInSection is the section-relative offset of
// the first byte of b (i.e. where the raw value is read from), required by
// the pcrel application.
func (p *parser) readApplied(format PointerFormat, application PointerApplication, b []byte, offsetInSection int) (uint64, int, error) {
	switch {
	case format == FormatAbsPtr && p.pointerSize == 4 && application == ApplicationPCRel:
		if len(b) < 4 {
			return 0, 0, errors.Errorf(errors.EhFrameTruncated, "pc_begin")
		}
		raw := uint64(binary.LittleEndian.Uint32(b))
		return p.baseAddress + uint64(offsetInSection) + raw, 4, nil

	case format == FormatSData4 && application == ApplicationPCRel:
		if len(b) < 4 {
			return 0, 0, errors.Errorf(errors.EhFrameTruncated, "pc_begin")
		}
		raw := int64(int32(binary.LittleEndian.Uint32(b)))
		return uint64(int64(p.baseAddress) + int64(offsetInSection) + raw), 4, nil

	default:
		return 0, 0, errors.Errorf(errors.EhFramePointerEncoding, format, application)
	}
}

// encodedSize returns the number of bytes a value of the given format
// occupies at the head of b, without applying any relocation. Used only to
// skip over a personality pointer whose value this system never needs.
func encodedSize(pointerSize int, format PointerFormat, b []byte) (int, error) {
	switch format {
	case FormatAbsPtr:
		return pointerSize, nil
	case FormatUData2, FormatSData2:
		return 2, nil
	case FormatUData4, FormatSData4:
		return 4, nil
	case FormatUData8, FormatSData8:
		return 8, nil
	case FormatULEB128:
		_, n := leb128.DecodeULEB128(b)
		return n, nil
	case FormatSLEB128:
		_, n := leb128.DecodeSLEB128(b)
		return n, nil
	default:
		return 0, errors.Errorf(errors.EhFramePointerEncoding, format, PointerApplication(0))
	}
}

func readUint(b []byte, size int) uint64 {
	if size == 4 {
		return uint64(binary.LittleEndian.Uint32(b))
	}
	return binary.LittleEndian.Uint64(b)
}

func containsEH(augmentation string) bool {
	for i := 0; i+1 < len(augmentation); i++ {
		if augmentation[i] == 'e' && augmentation[i+1] == 'h' {
			return true
		}
	}
	return false
}
