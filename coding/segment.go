// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
)

// A Mode is a QR segment encoding mode.
type Mode int8

// Encoding modes.
const (
	Numeric      Mode = iota // numeric mode, decimal digits
	Alphanumeric             // alphanumeric mode, see IsAlphanumeric
	Byte                     // byte mode, any data
	Kanji                    // kanji mode, Shift JIS double byte characters
	ECI                      // extended channel interpretation designator
)

var modeTab = [...]struct {
	name      string
	indicator byte    // 4 bit mode indicator
	count     [3]byte // character count field length by size class
}{
	Numeric:      {"numeric", 1, [3]byte{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]byte{9, 11, 13}},
	Byte:         {"byte", 4, [3]byte{8, 16, 16}},
	Kanji:        {"kanji", 8, [3]byte{8, 10, 12}},
	ECI:          {"eci", 7, [3]byte{0, 0, 0}},
}

func (mode Mode) valid() bool { return 0 <= mode && int(mode) < len(modeTab) }

func (mode Mode) String() string {
	if mode.valid() {
		return modeTab[mode].name
	}
	return strconv.Itoa(int(mode))
}

// Indicator returns the 4 bit mode indicator.
func (mode Mode) Indicator() int { return int(modeTab[mode].indicator) }

// CountBits returns the length of the character count field
// for mode at QR version v.
func (mode Mode) CountBits(v Version) int {
	return int(modeTab[mode].count[v.SizeClass()])
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsNumericRune reports whether r is encodable in numeric mode.
func IsNumericRune(r rune) bool { return uint32(r-'0') < 10 }

// IsAlphanumericRune reports whether r is encodable in
// alphanumeric mode.
func IsAlphanumericRune(r rune) bool {
	return alphamask>>(uint32(r)-' ')&1 != 0
}

// IsNumeric reports whether s is encodable in numeric mode.
func IsNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsNumericRune(rune(s[i])) {
			return false
		}
	}
	return true
}

// IsAlphanumeric reports whether s is encodable in alphanumeric
// mode: digits, uppercase letters, space and "$%*+-./:".
func IsAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsAlphanumericRune(rune(s[i])) {
			return false
		}
	}
	return true
}

// A Segment is an encoded QR code segment.  Segments are immutable.
type Segment struct {
	mode  Mode
	count int    // characters, bytes for Byte, 0 for ECI
	nbit  int    // length of data in bits
	data  []byte // data bits, MSB first
}

// SegmentError represents text invalid for the segment mode.
type SegmentError struct {
	Mode Mode
	Text string
}

func (e SegmentError) Error() string {
	return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
}

// NewSegment returns a segment with the given mode, character count
// and the first nbit bits of data.  The count is not checked against
// the data length; the Make functions guarantee consistency.
func NewSegment(mode Mode, count int, data []byte, nbit int) Segment {
	if !mode.valid() || count < 0 || nbit < 0 || len(data)*8 < nbit {
		panic("qr: invalid segment")
	}
	b := &Bits{}
	b.writeBytes(data, nbit)
	return Segment{mode: mode, count: count, nbit: nbit, data: b.b}
}

// Mode returns the encoding mode of seg.
func (seg Segment) Mode() Mode { return seg.mode }

// Count returns the character count of seg.
func (seg Segment) Count() int { return seg.count }

// Len returns the length of the encoded data in bits, excluding the
// header.
func (seg Segment) Len() int { return seg.nbit }

// Bits returns a copy of the encoded data bits.
func (seg Segment) Bits() []byte {
	return append([]byte(nil), seg.data...)
}

// EncodedLength returns the encoded length of seg in bits at version
// v, including the header, and whether the character count fits.
func (seg Segment) EncodedLength(v Version) (int, bool) {
	cb := seg.mode.CountBits(v)
	if seg.count >= 1<<cb {
		return 0, false
	}
	return 4 + cb + seg.nbit, true
}

// encode writes seg encoded for version v to b.
func (seg Segment) encode(b *Bits, v Version) {
	b.Write(uint32(seg.mode.Indicator()), 4)
	b.Write(uint32(seg.count), seg.mode.CountBits(v))
	b.writeBytes(seg.data, seg.nbit)
}

// TotalBits returns the length in bits of segs encoded at version v.
// It returns false if the character count of any segment does not fit
// in its count field.
func TotalBits(segs []Segment, v Version) (int, bool) {
	n := 0
	for _, seg := range segs {
		l, ok := seg.EncodedLength(v)
		if !ok {
			return 0, false
		}
		n += l
	}
	return n, true
}

// MakeBytes returns a byte mode segment for data.
func MakeBytes(data []byte) Segment {
	return NewSegment(Byte, len(data), data, len(data)*8)
}

// MakeNumeric returns a numeric mode segment for s.
// MakeNumeric panics if s contains non-digits.
func MakeNumeric(s string) Segment {
	if !IsNumeric(s) {
		panic(SegmentError{Numeric, s})
	}
	n := len(s)
	b := &Bits{b: make([]byte, 0, (n*10+29)/24)}
	for ; len(s) >= 3; s = s[3:] {
		b.Write(uint32(s[0])*100+uint32(s[1])*10+
			uint32(s[2])+-'0'*111&0x3ff, 10)
	}
	switch len(s) {
	case 2:
		b.Write(uint32(s[0])*10+uint32(s[1])-'0'*11&0x7f, 7)
	case 1:
		b.Write(uint32(s[0]), 4)
	}
	return Segment{mode: Numeric, count: n, nbit: b.nbit, data: b.b}
}

// MakeAlphanumeric returns an alphanumeric mode segment for s.
// MakeAlphanumeric panics if s contains characters not encodable in
// alphanumeric mode.
func MakeAlphanumeric(s string) Segment {
	if !IsAlphanumeric(s) {
		panic(SegmentError{Alphanumeric, s})
	}
	n := len(s)
	b := &Bits{b: make([]byte, 0, (n*11+15)/16)}
	for ; len(s) >= 2; s = s[2:] {
		b.Write(uint32(alpha[s[0]&0x3f])*45+uint32(alpha[s[1]&0x3f]), 11)
	}
	if len(s) == 1 {
		b.Write(uint32(alpha[s[0]&0x3f]), 6)
	}
	return Segment{mode: Alphanumeric, count: n, nbit: b.nbit, data: b.b}
}

// MakeKanji returns a kanji mode segment for s.
// MakeKanji panics if any character in s is not encodable in kanji
// mode; see IsKanji.
func MakeKanji(s string) Segment {
	b := &Bits{b: make([]byte, 0, len(s)*13/24+2)}
	n := 0
	for _, r := range s {
		k, ok := KanjiValue(r)
		if !ok {
			panic(SegmentError{Kanji, s})
		}
		b.Write(uint32(k), 13)
		n++
	}
	return Segment{mode: Kanji, count: n, nbit: b.nbit, data: b.b}
}

// MakeECI returns an ECI designator segment for the assignment
// value v, 0 <= v < 1000000.
func MakeECI(v int) Segment {
	b := &Bits{b: make([]byte, 0, 3)}
	switch {
	case v < 0:
		panic("qr: invalid eci number " + strconv.Itoa(v))
	case v < 1<<7:
		b.Write(uint32(v), 8)
	case v < 1<<14:
		b.Write(2, 2)
		b.Write(uint32(v), 14)
	case v < 1e6:
		b.Write(6, 3)
		b.Write(uint32(v), 21)
	default:
		panic("qr: invalid eci number " + strconv.Itoa(v))
	}
	return Segment{mode: ECI, nbit: b.nbit, data: b.b}
}

// IsKanji reports whether every character in s is encodable in kanji
// mode.
func IsKanji(s string) bool {
	for _, r := range s {
		if _, ok := KanjiValue(r); !ok {
			return false
		}
	}
	return true
}
