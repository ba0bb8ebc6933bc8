// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "rsc.io/qr/gf256"

// WriteSegments writes segs encoded for version v to b.
func (b *Bits) WriteSegments(v Version, segs ...Segment) {
	for _, seg := range segs {
		seg.encode(b, v)
	}
}

// AddPadding adds terminator and padding to b for the given QR
// version and level.  AddPadding panics if b holds more data than the
// code can store.
func (b *Bits) AddPadding(v Version, l Level) {
	nd := v.DataCodewords(l)
	b.Pad(nd)
	if len(b.b) != nd {
		panic("qr: internal error")
	}
}

// AssembleCodewords returns the data codewords for segs at the given
// version and level: segment headers and data, terminator and padding.
// It panics if segs do not fit.
func AssembleCodewords(segs []Segment, v Version, l Level) []byte {
	n, ok := TotalBits(segs, v)
	if !ok || n > v.DataBits(l) {
		panic("qr: too much data")
	}
	b := NewBits(v, l)
	b.WriteSegments(v, segs...)
	b.AddPadding(v, l)
	return b.Bytes()
}

// Interleave returns the raw codewords for data: data split into
// blocks, error correction codewords added to each block and blocks
// interleaved for the given QR version and level.
// len(data) must be v.DataCodewords(l).
func Interleave(data []byte, v Version, l Level) []byte {
	dst := make([]byte, v.RawDataModules()/8)
	interleave(dst, make([]byte, v.ECCPerBlock(l)), data, v, l)
	return dst
}

// interleave writes the raw codewords for data to dst using check as
// scratch space for error correction codewords of a block.  dst, check
// and data must not overlap.
func interleave(dst, check, data []byte, v Version, l Level) {
	if len(data) != v.DataCodewords(l) {
		panic("qr: wrong data length")
	}
	nblock, nc := v.ECCBlocks(l), v.ECCPerBlock(l)
	raw := len(dst)
	short := nblock - raw%nblock // number of short blocks
	db := raw/nblock - nc        // data bytes in a short block
	nd := len(data)
	check = check[:nc]
	rs := gf256.NewRSEncoder(Field, nc)
	for i := 0; i < nblock; i++ {
		n := db
		if i >= short {
			n++
		}
		blk := data[:n]
		data = data[n:]
		for j, c := range blk[:db] {
			dst[j*nblock+i] = c
		}
		if i >= short {
			// long blocks only
			dst[db*nblock+i-short] = blk[db]
		}
		rs.ECC(blk, check)
		for j, c := range check {
			dst[nd+j*nblock+i] = c
		}
	}
}
