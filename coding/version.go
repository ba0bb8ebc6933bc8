// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details.
package coding // import "github.com/unixdj/qrgen/coding"

//go:generate sh -c "go run gen.go | gofmt > tables.go"

import (
	"errors"
	"strconv"

	"rsc.io/qr/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrMask    = errors.New("qr: invalid mask")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// Versions run from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

// QR version size classes.  The length of the character count field
// of a segment depends on the class.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Valid reports whether v is a QR version.
func (v Version) Valid() bool { return MinVersion <= v && v <= MaxVersion }

func (v Version) check() {
	if !v.Valid() {
		panic(ErrVersion)
	}
}

// Size returns the number of pixels on a side.
func (v Version) Size() int { return int(v)*4 + 17 }

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// RawDataModules returns the number of modules available for data
// and error correction codewords, including the remainder bits:
// the area of the code minus function patterns and format and version
// information.  The result is between 208 and 29648.
func (v Version) RawDataModules() int {
	v.check()
	n := int(v)
	res := (16*n+128)*n + 64
	if v >= 2 {
		na := n/7 + 2
		res -= (25*na-10)*na - 55
		if v >= 7 {
			res -= 36
		}
	}
	return res
}

// DataCodewords returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataCodewords(l Level) int {
	v.check()
	l.check()
	return v.RawDataModules()/8 - v.ECCBlocks(l)*v.ECCPerBlock(l)
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataCodewords(l) * 8 }

// ECCBlocks returns the number of error correction blocks.
func (v Version) ECCBlocks(l Level) int { return int(eccBlocks[l][v]) }

// ECCPerBlock returns the number of error correction bytes per block.
func (v Version) ECCPerBlock(l Level) int { return int(eccPerBlock[l][v]) }

// AlignmentPositions returns the ascending list of alignment pattern
// center coordinates, used on both axes.  Version 1 has none.
func (v Version) AlignmentPositions() []int {
	v.check()
	if v == 1 {
		return nil
	}
	na := int(v)/7 + 2
	step := 26
	if v != 32 {
		// twice (size-13)/(na*2-2), rounded up
		step = (int(v)*4 + na*2 + 1) / (na*2 - 2) * 2
	}
	pos := make([]int, na)
	pos[0] = 6
	for i, p := na-1, v.Size()-7; i > 0; i, p = i-1, p-step {
		pos[i] = p
	}
	return pos
}

// versionInfo returns the 18 bit version information:
// 6 bits of version and 12 bits of BCH code.
func (v Version) versionInfo() uint32 {
	const poly = 0x1f25
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*poly
	}
	return uint32(v)<<12 | rem
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Valid reports whether l is an error correction level.
func (l Level) Valid() bool { return L <= l && l <= H }

func (l Level) check() {
	if !l.Valid() {
		panic(ErrLevel)
	}
}

// FormatBits returns the 2 bit error correction level indicator
// used in format information: L=01, M=00, Q=11, H=10.
func (l Level) FormatBits() int { return int(l) ^ 1 }
