// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strconv"

	"golang.org/x/sync/errgroup"
)

// A Mask is a QR data mask pattern.  Pixel x, y (column, row) is
// inverted where the pattern is dark:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//	   ███   ███         ▄▄▄▄▄ ▄▄▄▄▄        ▄▄▄   ▄▄▄     ▄█▄▀ ▀▄█▄▀ ▀
//	      ███   ███      █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	   ███   ███         ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
type Mask int8

// AutoMask requests the mask with the lowest penalty.
const AutoMask Mask = -1

func (m Mask) String() string {
	if m == AutoMask {
		return "auto"
	}
	return strconv.Itoa(int(m))
}

// Valid reports whether m is a mask pattern, 0 to 7.
func (m Mask) Valid() bool { return 0 <= m && m <= 7 }

// dark reports whether pattern m is dark at x, y.
func (m Mask) dark(x, y int) bool {
	switch m {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	}
	panic(ErrMask)
}

// formatBits returns the 15 bit format information for level l and
// mask m: 5 bits of data, 10 bits of BCH code, xored with 0x5412.
func formatBits(l Level, m Mask) uint32 {
	const poly = 0x537
	data := uint32(l.FormatBits()<<3 | int(m))
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*poly
	}
	return (data<<10 | rem) ^ 0x5412
}

// xor xors a and b into dst.  a and b may not be shorter than dst.
// dst and a or b should not overlap unless they are the same slice.
func xor(dst, a, b []byte) {
	a = a[:len(dst)]
	b = b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// penalty returns the penalty value of a square bitmap, used for
// choosing the mask.
//
// Total penalty is the sum of penalties for runs and boxes
// of same-colour pixels, finder-like patterns and colour balance.
//
//   - RunP: for non-overlapping runs of n pixels, n>=5 -> n-2
//   - BoxP: for possibly overlapping 2x2 boxes -> 3
//   - FindP: for 1:1:3:1:1 dark patterns with 4 light on either side,
//     the light may extend into the quiet zone -> 40
//   - BalP: for n% of black pixels -> 10*(ceiling(abs(n-50)/5)-1)
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
func penalty(bm []byte, siz, stride int) int {
	const (
		MinRun    = 5  // RunP:  minimum run length
		RunPDelta = -2 // RunP:  add to run length
		BoxPP     = 3  // BoxP:  points per box
		FindPP    = 40 // FindP: points per pattern
		BalPP     = 10 // BalP:  points per 5%
	)
	black := func(x, y int) bool {
		return bm[y*stride+x>>3]&(0x80>>(x&7)) != 0
	}
	p := 0
	dark := 0
	var h runHistory
	// horizontal: RunP, FindP, BoxP and count black pixels for BalP
	// vertical: RunP, FindP
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < siz; i++ {
			h.reset(siz)
			colour, r := false, 0
			for j := 0; j < siz; j++ {
				x, y := j, i
				if pass == 1 {
					x, y = i, j
				}
				c := black(x, y)
				if pass == 0 {
					if c {
						dark++
					}
					if x > 0 && y > 0 && c == black(x-1, y) &&
						c == black(x, y-1) && c == black(x-1, y-1) {
						p += BoxPP
					}
				}
				if c == colour {
					r++
					if r == MinRun {
						p += MinRun + RunPDelta
					} else if r > MinRun {
						p++
					}
					continue
				}
				h.add(r)
				if !colour {
					p += h.count() * FindPP
				}
				colour, r = c, 1
			}
			p += h.finish(colour, r) * FindPP
		}
	}

	// BalP: k = ceiling(|dark/total - 1/2| * 20) - 1
	total := siz * siz
	k := (abs(dark*20-total*10)+total-1)/total - 1
	p += max(k, 0) * BalPP
	return p
}

// runHistory holds the lengths of the last 7 runs in a line,
// most recent first, for finding finder-like patterns.
type runHistory struct {
	run [7]int
	siz int
}

func (h *runHistory) reset(siz int) {
	h.run = [7]int{}
	h.siz = siz
}

// add pushes a run.  The first run in a line (light, possibly empty)
// is extended by the quiet zone.
func (h *runHistory) add(n int) {
	if h.run[0] == 0 {
		n += h.siz
	}
	copy(h.run[1:], h.run[:6])
	h.run[0] = n
}

// count returns the number of finder-like patterns ending with the
// most recent light run: 0, 1 or 2.
func (h *runHistory) count() int {
	r := &h.run
	n := r[1]
	if n <= 0 || r[2] != n || r[3] != n*3 || r[4] != n || r[5] != n {
		return 0
	}
	c := 0
	if r[0] >= n*4 && r[6] >= n {
		c++
	}
	if r[6] >= n*4 && r[0] >= n {
		c++
	}
	return c
}

// finish terminates a line ending with a run of r pixels of the given
// colour, extending the final light run into the quiet zone, and
// returns the number of finder-like patterns found.
func (h *runHistory) finish(black bool, r int) int {
	if black {
		h.add(r)
		r = 0
	}
	r += h.siz
	h.add(r)
	return h.count()
}

// chooseMask returns the mask giving the lowest penalty when applied
// to data and the resulting bitmap, written to dst.  Ties go to the
// lower mask.
func (p *plan) chooseMask(dst, data []byte) Mask {
	cur := make([]byte, len(data))
	best, pen := AutoMask, 1<<30 // largest penalty is < 1<<22
	for m := Mask(0); m < 8; m++ {
		xor(cur, data, p.pattern[m])
		if n := penalty(cur, p.size, p.stride); n < pen {
			best, pen = m, n
			copy(dst, cur)
		}
	}
	return best
}

// chooseMaskParallel is chooseMask with each mask scored on its own
// bitmap in a separate goroutine.
func (p *plan) chooseMaskParallel(dst, data []byte) Mask {
	var (
		g    errgroup.Group
		bm   [8][]byte
		pens [8]int
	)
	for m := Mask(0); m < 8; m++ {
		m := m
		g.Go(func() error {
			bm[m] = make([]byte, len(data))
			xor(bm[m], data, p.pattern[m])
			pens[m] = penalty(bm[m], p.size, p.stride)
			return nil
		})
	}
	g.Wait()
	best := Mask(0)
	for m := Mask(1); m < 8; m++ {
		if pens[m] < pens[best] {
			best = m
		}
	}
	copy(dst, bm[best])
	return best
}
