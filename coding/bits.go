// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Bits is an append-only buffer of bits, written MSB first.
type Bits struct {
	b     []byte
	nbit  int
	fixed bool // b may not grow beyond its capacity
}

// NewBits returns Bits with enough capacity for the data codewords
// of a QR code of the given version and level.
func NewBits(v Version, l Level) *Bits {
	return &Bits{b: make([]byte, 0, v.DataCodewords(l))}
}

// NewBitsCap returns Bits using the storage of buf, which is never
// reallocated.  Writing past cap(buf) panics.
func NewBitsCap(buf []byte) *Bits {
	return &Bits{b: buf[:0], fixed: true}
}

// Reset empties b, retaining its storage.
func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the written bits.  Bytes panics unless the number of
// bits is a multiple of 8.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the low nbit bits of v, 0 <= nbit <= 31.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit < 0 || nbit > 31 {
		panic("qr: invalid bit count")
	}
	if b.fixed && (b.nbit+nbit+7)>>3 > cap(b.b) {
		panic("qr: bit buffer overflow")
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// writeBytes appends the first nbit bits of p.
func (b *Bits) writeBytes(p []byte, nbit int) {
	if b.nbit&7 == 0 && !b.fixed {
		b.b = append(b.b, p[:(nbit+7)>>3]...)
		b.nbit += nbit
		if r := -nbit & 7; r != 0 {
			b.b[len(b.b)-1] &^= 1<<r - 1
		}
		return
	}
	for ; nbit >= 8; nbit -= 8 {
		b.Write(uint32(p[0]), 8)
		p = p[1:]
	}
	if nbit > 0 {
		b.Write(uint32(p[0])>>(8-nbit), nbit)
	}
}

// Pad adds up to 4 terminator bits to b, pads it with zero bits to a
// byte boundary and then with alternating 0xec and 0x11 bytes to n
// bytes.  Pad panics if b holds more than n bytes.
func (b *Bits) Pad(n int) {
	if b.nbit > n*8 {
		panic("qr: too much data")
	}
	b.Write(0, min(4, n*8-b.nbit))
	b.Write(0, -b.nbit&7)
	for pad := uint32(0xec); len(b.b) < n; pad ^= 0xec ^ 0x11 {
		b.Write(pad, 8)
	}
}
