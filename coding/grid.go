// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A plan describes how to construct a QR code
// with a specific version and level.
type plan struct {
	version Version
	level   Level
	size    int // number of pixels on a side
	stride  int // number of bytes per row

	fn      []byte    // pixel map: 0 is data or checksum, 1 is other
	pattern [8][]byte // function patterns, format bits and mask
}

// Pre-allocated plans.  A plan is created the first time a
// combination of version and level is used and is never modified
// afterwards.  Each plan holds 9 bitmaps, from 567 bytes for
// version 1 to 36 KB for version 40.
var plans [MaxVersion + 1][H + 1]struct {
	once sync.Once
	p    *plan
}

// getPlan returns plans[v][l], creating it if needed.
func getPlan(v Version, l Level) *plan {
	v.check()
	l.check()
	p := &plans[v][l]
	p.once.Do(func() { p.p = newPlan(v, l) })
	return p.p
}

func newPlan(v Version, l Level) *plan {
	siz := v.Size()
	stride := (siz + 7) >> 3
	sz := siz * stride
	bitmap := make([]byte, sz*9)
	p := &plan{
		version: v,
		level:   l,
		size:    siz,
		stride:  stride,
		fn:      bitmap[:sz],
	}
	bitmap = bitmap[sz:]
	for i := range p.pattern {
		p.pattern[i], bitmap = bitmap[:sz], bitmap[sz:]
	}
	base := p.pattern[0]

	// Timing patterns, overwritten by finders and alignment boxes.
	for i := 0; i < siz; i++ {
		p.set(base, 6, i, i&1 == 0)
		p.set(base, i, 6, i&1 == 0)
	}

	// Finder patterns with separators.
	p.finder(base, 3, 3)
	p.finder(base, siz-4, 3)
	p.finder(base, 3, siz-4)

	// Alignment boxes, except where they would overlap finders.
	apos := v.AlignmentPositions()
	last := len(apos) - 1
	for i, x := range apos {
		for j, y := range apos {
			if i == 0 && j == 0 || i == 0 && j == last ||
				i == last && j == 0 {
				continue
			}
			p.alignBox(base, x, y)
		}
	}

	// Reserve format pixels; the bits depend on the mask.
	for i := 0; i < 15; i++ {
		for _, c := range formatCoords(siz, i) {
			p.set(base, c[0], c[1], false)
		}
	}

	// One lonely black pixel.
	p.set(base, 8, siz-8, true)

	// Version pattern.
	if v >= 7 {
		vi := v.versionInfo()
		for i := 0; i < 18; i++ {
			a, b := siz-11+i%3, i/3
			dark := vi>>i&1 != 0
			p.set(base, a, b, dark)
			p.set(base, b, a, dark)
		}
	}

	for mask := Mask(1); mask < 8; mask++ {
		copy(p.pattern[mask], base)
	}
	for mask := Mask(0); mask < 8; mask++ {
		pat := p.pattern[mask]
		fb := formatBits(l, mask)
		for i := 0; i < 15; i++ {
			if fb>>i&1 != 0 {
				for _, c := range formatCoords(siz, i) {
					pat[c[1]*stride+c[0]>>3] |= 0x80 >> (c[0] & 7)
				}
			}
		}
		for y := 0; y < siz; y++ {
			for x := 0; x < siz; x++ {
				if mask.dark(x, y) && !p.isFunc(x, y) {
					pat[y*stride+x>>3] |= 0x80 >> (x & 7)
				}
			}
		}
	}
	return p
}

// set marks the pixel at x, y as a function pixel and sets its colour
// in bitmap.
func (p *plan) set(bitmap []byte, x, y int, dark bool) {
	off, b := y*p.stride+x>>3, byte(0x80)>>(x&7)
	p.fn[off] |= b
	if dark {
		bitmap[off] |= b
	} else {
		bitmap[off] &^= b
	}
}

// isFunc reports whether the pixel at x, y is a function pixel.
func (p *plan) isFunc(x, y int) bool {
	return p.fn[y*p.stride+x>>3]&(0x80>>(x&7)) != 0
}

// finder draws a finder pattern and its separator centred at x, y,
// clipped to the code.
func (p *plan) finder(bitmap []byte, x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= p.size || yy < 0 || yy >= p.size {
				continue
			}
			d := max(abs(dx), abs(dy))
			p.set(bitmap, xx, yy, d != 2 && d != 4)
		}
	}
}

// alignBox draws an alignment (small) box centred at x, y.
func (p *plan) alignBox(bitmap []byte, x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			p.set(bitmap, x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// formatCoords returns the coordinates of both copies of format bit i
// (bit 0 is the least significant) in a code with siz pixels on a side.
func formatCoords(siz, i int) [2][2]int {
	var a, b [2]int
	switch {
	case i < 6:
		a = [2]int{8, i}
	case i < 8:
		a = [2]int{8, i + 1}
	case i == 8:
		a = [2]int{7, 8}
	default:
		a = [2]int{14 - i, 8}
	}
	if i < 8 {
		b = [2]int{siz - 1 - i, 8}
	} else {
		b = [2]int{8, siz - 15 + i}
	}
	return [2][2]int{a, b}
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Next returns the next bit from s as 0 or 1.
// Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}

// serialise writes bits from s to the data pixels of bitmap in zigzag
// scan order: two pixel wide columns from right to left, alternately
// upwards and downwards, skipping the vertical timing strip.
// Pixels left over after s is exhausted are remainder bits, set to 0.
func (p *plan) serialise(s BitStream, bitmap []byte) {
	siz, stride := p.size, p.stride
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 { // vertical timing strip
			right = 5
		}
		up := (right+1)&2 == 0
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for x := right; x >= right-1; x-- {
				off, b := y*stride+x>>3, byte(0x80)>>(x&7)
				if p.fn[off]&b == 0 && s.Next() != 0 {
					bitmap[off] |= b
				}
			}
		}
	}
}
