// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// A Code is a square pixel grid with the parameters it was encoded
// with.  Codes are immutable.
type Code struct {
	version Version
	level   Level
	mask    Mask
	size    int    // number of pixels on a side
	stride  int    // number of bytes per row
	bitmap  []byte // 1 is black, 0 is white
}

// Version returns the QR version of c.
func (c *Code) Version() Version { return c.version }

// Level returns the error correction level of c.
func (c *Code) Level() Level { return c.level }

// Mask returns the mask pattern applied to c.
func (c *Code) Mask() Mask { return c.mask }

// Size returns the number of pixels on a side.
func (c *Code) Size() int { return c.size }

// Black reports whether the pixel at column x, row y is black.
// Pixels outside the code are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.size && 0 <= y && y < c.size &&
		c.bitmap[y*c.stride+x/8]&(1<<uint(7&^x)) != 0
}

// Penalty returns the penalty value of c as used for choosing the
// mask.
func (c *Code) Penalty() int { return penalty(c.bitmap, c.size, c.stride) }

// build places raw codewords on a fresh bitmap for plan p and applies
// mask, or the best mask for AutoMask.  data is scratch space for the
// unmasked bitmap and must be zeroed.
func (p *plan) build(raw, data []byte, mask Mask, parallel bool) *Code {
	p.serialise(NewBitStream(raw), data)
	c := &Code{
		version: p.version,
		level:   p.level,
		size:    p.size,
		stride:  p.stride,
		bitmap:  make([]byte, len(data)),
	}
	switch {
	case mask.Valid():
		xor(c.bitmap, data, p.pattern[mask])
		c.mask = mask
	case parallel:
		c.mask = p.chooseMaskParallel(c.bitmap, data)
	default:
		c.mask = p.chooseMask(c.bitmap, data)
	}
	return c
}

// EncodeCodewords returns a QR code of the given version and level
// holding data, which must be exactly v.DataCodewords(l) bytes of
// data codewords.  mask is a pattern from 0 to 7 or AutoMask.
// EncodeCodewords panics on invalid arguments.
func EncodeCodewords(v Version, l Level, data []byte, mask Mask) *Code {
	if mask != AutoMask && !mask.Valid() {
		panic(ErrMask)
	}
	p := getPlan(v, l)
	return p.build(Interleave(data, v, l), make([]byte, p.size*p.stride), mask, false)
}

// CapacityError is returned by Encoder when the data does not fit.
type CapacityError struct {
	Bits     int // data bits written
	Capacity int // data bits available
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("qr: cannot encode %d bits into %d-bit code",
		e.Bits, e.Capacity)
}

// CountError is returned by Encoder when the character count of a
// segment overflows its field.
type CountError struct {
	Mode    Mode
	Count   int
	Version Version
}

func (e *CountError) Error() string {
	return fmt.Sprintf("qr: %d characters do not fit %s mode count at version %s",
		e.Count, e.Mode, e.Version)
}

// Encoder encodes QR codes of a specific version and level.
// It owns its bit buffer and scratch buffers, which are reused
// for every code and never alias each other.
// An Encoder must not be used concurrently.
type Encoder struct {
	// Parallel makes Code score masks concurrently.
	Parallel bool

	p     *plan
	b     *Bits
	raw   []byte // interleaved codewords
	check []byte // error correction codewords of a block
	data  []byte // unmasked bitmap
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	if !version.Valid() {
		return nil, ErrVersion
	}
	if !level.Valid() {
		return nil, ErrLevel
	}
	p := getPlan(version, level)
	return &Encoder{
		p:     p,
		b:     NewBitsCap(make([]byte, version.DataCodewords(level))),
		raw:   make([]byte, version.RawDataModules()/8),
		check: make([]byte, version.ECCPerBlock(level)),
		data:  make([]byte, p.size*p.stride),
	}, nil
}

// Write adds text to e.
func (e *Encoder) Write(text ...Segment) error {
	v := e.p.version
	n, ok := TotalBits(text, v)
	if !ok {
		for _, t := range text {
			if _, ok := t.EncodedLength(v); !ok {
				return &CountError{t.Mode(), t.Count(), v}
			}
		}
	}
	if nb := v.DataBits(e.p.level); e.b.Bits()+n > nb {
		return &CapacityError{e.b.Bits() + n, nb}
	}
	e.b.WriteSegments(v, text...)
	return nil
}

// Reset discards data written to e.
func (e *Encoder) Reset() { e.b.Reset() }

// Code returns a QR code containing data written to e with the given
// mask, or the best mask for AutoMask, and resets e.
func (e *Encoder) Code(mask Mask) (*Code, error) {
	if mask != AutoMask && !mask.Valid() {
		return nil, ErrMask
	}
	v, l := e.p.version, e.p.level
	e.b.AddPadding(v, l)
	interleave(e.raw, e.check, e.b.Bytes(), v, l)
	e.b.Reset()
	clear(e.data)
	return e.p.build(e.raw, e.data, mask, e.Parallel), nil
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(mask Mask, text ...Segment) (*Code, error) {
	if err := e.Write(text...); err != nil {
		return nil, err
	}
	return e.Code(mask)
}

// Encode encodes text using an Encoder with the given version and level.
func Encode(version Version, level Level, mask Mask, text ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(mask, text...)
}
