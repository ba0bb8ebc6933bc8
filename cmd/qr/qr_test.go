// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/unixdj/qrgen"
)

func hello(t *testing.T) *qr.Code {
	t.Helper()
	c, err := qr.EncodeText("HELLO WORLD", qr.Q)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// transform resets the randr state and applies ops.
func transform(ops string) {
	g.cx, g.inc = 0, [2]int{1, 1}
	for _, op := range ops {
		switch op {
		case 'f':
			flip()
		case 'r':
			rotate()
		}
	}
}

func TestRandr(t *testing.T) {
	defer transform("")
	c := hello(t)
	siz := c.Size()
	tests := []struct {
		ops string
		src func(x, y int) (int, int)
	}{
		{"", func(x, y int) (int, int) { return x, y }},
		{"rrrr", func(x, y int) (int, int) { return x, y }},
		{"f", func(x, y int) (int, int) { return siz - 1 - x, y }},
		{"r", func(x, y int) (int, int) { return siz - 1 - y, x }},
		{"rr", func(x, y int) (int, int) { return siz - 1 - x, siz - 1 - y }},
		{"frr", func(x, y int) (int, int) { return x, siz - 1 - y }},
		{"fr", func(x, y int) (int, int) { return y, x }},
		{"rfrr", func(x, y int) (int, int) { return y, x }},
		{"rrrf", func(x, y int) (int, int) { return y, x }},
	}
	for _, tt := range tests {
		transform(tt.ops)
		p := randr(c)
		p.bord = 0
		for y := 0; y < siz; y++ {
			for x := 0; x < siz; x++ {
				sx, sy := tt.src(x, y)
				if got, want := p.black(x, y), c.Black(sx, sy); got != want {
					t.Fatalf("-%s: pixel %d,%d = %v, want %v",
						tt.ops, x, y, got, want)
				}
			}
		}
	}
}

func TestQuietZone(t *testing.T) {
	c := hello(t)
	for _, rev := range []bool{false, true} {
		p := pixels{c: c, inc: [2]int{1, 1}, bord: 2, rev: rev}
		if n := p.size(); n != c.Size()+4 {
			t.Fatalf("size = %d, want %d", n, c.Size()+4)
		}
		for _, xy := range [][2]int{{0, 0}, {1, 5}, {p.size() - 1, 3}, {4, p.size() - 2}} {
			if p.black(xy[0], xy[1]) != rev {
				t.Errorf("rev %v: quiet zone pixel %v = %v",
					rev, xy, !rev)
			}
		}
		// top left finder corner
		if p.black(2, 2) == rev {
			t.Errorf("rev %v: finder pixel white", rev)
		}
	}
}

func TestASCII(t *testing.T) {
	c := hello(t)
	p := pixels{c: c, inc: [2]int{1, 1}, bord: 1}
	var b bytes.Buffer
	if err := ascii(p, &b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 23 {
		t.Fatalf("got %d lines, want 23", len(lines))
	}
	if want := strings.Repeat(" ", 46); lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if want := "  ##############  "; !strings.HasPrefix(lines[1], want) {
		t.Errorf("line 1 = %q, want prefix %q", lines[1], want)
	}
}

func TestUTF8(t *testing.T) {
	c := hello(t)
	p := pixels{c: c, inc: [2]int{1, 1}, bord: 0}
	var b bytes.Buffer
	if err := utf8(p, &b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d lines, want 11", len(lines))
	}
	// finder rows 0 and 1: full block, then upper half blocks
	if want := "█▀▀▀▀▀█"; !strings.HasPrefix(lines[0], want) {
		t.Errorf("line 0 = %q, want prefix %q", lines[0], want)
	}
	// last line has only the top half
	if r := []rune(lines[10]); len(r) != 21 || r[0] != '▀' {
		t.Errorf("line 10 = %q", lines[10])
	}
}
