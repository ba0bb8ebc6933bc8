// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unixdj/qrgen/coding"
)

func rows(c *Code) []string {
	r := make([]string, c.Size())
	for y := range r {
		b := make([]byte, c.Size())
		for x := range b {
			b[x] = '.'
			if c.Black(x, y) {
				b[x] = '#'
			}
		}
		r[y] = string(b)
	}
	return r
}

func TestEncodeText(t *testing.T) {
	for _, tt := range []struct {
		text  string
		level Level
		v     Version
		want  Level
	}{
		{"HELLO WORLD", Q, 1, Q},
		{"HELLO WORLD", L, 1, Q},
		{"01234567", M, 1, H},
		{"Hello, world!", L, 1, M},
		{"", L, 1, H},
		{strings.Repeat("0", 200), L, 5, M},
	} {
		c, err := EncodeText(tt.text, tt.level)
		if err != nil {
			t.Errorf("EncodeText(%q, %v): %v", tt.text, tt.level, err)
			continue
		}
		if c.Version() != tt.v || c.Level() != tt.want ||
			c.Size() != int(tt.v)*4+17 {
			t.Errorf("EncodeText(%q, %v) = %d-%v size %d, want %d-%v",
				tt.text, tt.level, c.Version(), c.Level(), c.Size(),
				tt.v, tt.want)
		}
	}
}

func TestEncodeTextMode(t *testing.T) {
	v, l, err := Select([]coding.Segment{coding.MakeAlphanumeric("HELLO WORLD")},
		Q, nil)
	if err != nil || v != 1 || l != Q {
		t.Fatalf("Select() = %d, %v, %v", v, l, err)
	}
	// Byte mode needs 4+8+88 bits, more than 1-Q holds.
	if _, _, err := Select([]coding.Segment{coding.MakeBytes([]byte("HELLO WORLD"))},
		Q, &Options{MinVersion: 1, MaxVersion: 1, Mask: AutoMask}); err == nil {
		t.Error("HELLO WORLD in byte mode fits 1-Q")
	}
	c, err := EncodeText("HELLO WORLD", Q)
	if err != nil {
		t.Fatal(err)
	}
	want := EncodeCodewords(1, Q, coding.AssembleCodewords(
		[]coding.Segment{coding.MakeAlphanumeric("HELLO WORLD")}, 1, Q),
		AutoMask)
	if diff := cmp.Diff(rows(want), rows(c)); diff != "" {
		t.Errorf("EncodeText not alphanumeric (-want +got):\n%s", diff)
	}
}

func TestDataOverCapacity(t *testing.T) {
	data := make([]byte, 3000)
	for i := range data {
		data[i] = byte(i * 7)
	}
	c, err := EncodeBinary(data, H)
	if c != nil || !errors.Is(err, ErrDataTooLong) {
		t.Fatalf("EncodeBinary(3000 bytes, H) = %v, %v", c, err)
	}
	var de *DataOverCapacityError
	if !errors.As(err, &de) {
		t.Fatalf("error %T, want *DataOverCapacityError", err)
	}
	want := DataOverCapacityError{4 + 16 + 3000*8, 1276 * 8, 40, H}
	if diff := cmp.Diff(want, *de); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}

	// limited version range
	_, err = EncodeTextOpts("HELLO WORLD", H,
		&Options{MinVersion: 1, MaxVersion: 1, Mask: AutoMask})
	if !errors.As(err, &de) || de.Version != 1 || de.Capacity != 72 {
		t.Errorf("HELLO WORLD at 1-H: error %v", err)
	}
}

func TestSegmentTooLong(t *testing.T) {
	segs := []coding.Segment{
		coding.MakeBytes([]byte("x")),
		coding.MakeNumeric(strings.Repeat("1", 16384)),
	}
	_, err := EncodeSegments(segs, L)
	var se *SegmentTooLongError
	if !errors.Is(err, ErrDataTooLong) || !errors.As(err, &se) {
		t.Fatalf("EncodeSegments(16384 digits) error = %v", err)
	}
	want := SegmentTooLongError{1, coding.Numeric, 16384}
	if diff := cmp.Diff(want, *se); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions(t *testing.T) {
	o := DefaultOptions
	o.MinVersion = 5
	o.Mask = 3
	o.BoostECC = false
	c, err := EncodeTextOpts("HELLO", L, &o)
	if err != nil {
		t.Fatal(err)
	}
	if c.Version() != 5 || c.Level() != L || c.Mask() != 3 {
		t.Errorf("got %d-%v mask %v, want 5-L mask 3",
			c.Version(), c.Level(), c.Mask())
	}

	text := strings.Repeat("日本語", 40)
	o = DefaultOptions
	plain, err := EncodeTextOpts(text, M, &o)
	if err != nil {
		t.Fatal(err)
	}
	o.Kanji = true
	kanji, err := EncodeTextOpts(text, M, &o)
	if err != nil {
		t.Fatal(err)
	}
	if kanji.Version() >= plain.Version() {
		t.Errorf("kanji mode version %d, byte mode %d",
			kanji.Version(), plain.Version())
	}

	o = DefaultOptions
	o.Parallel = true
	text = strings.Repeat("parallel 0123456789 ", 30)
	par, err := EncodeTextOpts(text, Q, &o)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := EncodeText(text, Q)
	if err != nil {
		t.Fatal(err)
	}
	if par.Mask() != seq.Mask() {
		t.Errorf("parallel mask %v, sequential %v", par.Mask(), seq.Mask())
	}
	if diff := cmp.Diff(rows(seq), rows(par)); diff != "" {
		t.Errorf("parallel code differs (-sequential +parallel):\n%s", diff)
	}
}

func TestInvalidOptions(t *testing.T) {
	for _, tt := range []struct {
		name  string
		level Level
		opts  Options
	}{
		{"level", 4, DefaultOptions},
		{"min version", L, Options{0, 40, AutoMask, true, false, false}},
		{"max version", L, Options{1, 41, AutoMask, true, false, false}},
		{"version range", L, Options{10, 9, AutoMask, true, false, false}},
		{"mask", L, Options{1, 40, 8, true, false, false}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("did not panic")
				}
			}()
			EncodeTextOpts("x", tt.level, &tt.opts)
		})
	}
}
