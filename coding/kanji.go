// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// KanjiValue returns the 13 bit kanji mode value of r and whether r
// is encodable in kanji mode.  Encodable characters are those with
// a double byte Shift JIS encoding in the ranges 0x8140-0x9ffc and
// 0xe040-0xebbf.
func KanjiValue(r rune) (uint16, bool) {
	if r < 0x80 || !utf8.ValidRune(r) {
		return 0, false
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	sj, err := japanese.ShiftJIS.NewEncoder().Bytes(buf[:n])
	if err != nil || len(sj) != 2 {
		return 0, false
	}
	c := uint16(sj[0])<<8 | uint16(sj[1])
	switch {
	case 0x8140 <= c && c <= 0x9ffc:
		c -= 0x8140
	case 0xe040 <= c && c <= 0xebbf:
		c -= 0xc140
	default:
		return 0, false
	}
	return c>>8*0xc0 + c&0xff, true
}
