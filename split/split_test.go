// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unixdj/qrgen/coding"
)

type seg struct {
	Mode  coding.Mode
	Count int
}

func describe(segs []coding.Segment) []seg {
	var r []seg
	for _, s := range segs {
		r = append(r, seg{s.Mode(), s.Count()})
	}
	return r
}

func TestMake(t *testing.T) {
	for _, tt := range []struct {
		text string
		want []seg
	}{
		{"", nil},
		{"0123456789", []seg{{coding.Numeric, 10}}},
		{"HELLO WORLD", []seg{{coding.Alphanumeric, 11}}},
		{"Hello, world!", []seg{{coding.Byte, 13}}},
		{"日本", []seg{{coding.Byte, 6}}},
	} {
		if diff := cmp.Diff(tt.want, describe(Make(tt.text))); diff != "" {
			t.Errorf("Make(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestOptimal(t *testing.T) {
	for _, tt := range []struct {
		text  string
		v     coding.Version
		kanji bool
		want  []seg
	}{
		{"", 1, false, nil},
		{"0123456789", 1, false, []seg{{coding.Numeric, 10}}},
		{"HELLO WORLD", 1, false, []seg{{coding.Alphanumeric, 11}}},
		{"a" + strings.Repeat("1", 30), 1, false,
			[]seg{{coding.Byte, 1}, {coding.Numeric, 30}}},
		{"abc12", 1, false, []seg{{coding.Byte, 5}}},
		{"HELLO123456789012", 1, false,
			[]seg{{coding.Alphanumeric, 5}, {coding.Numeric, 12}}},
		{"日本語", 1, true, []seg{{coding.Kanji, 3}}},
		{"日本語", 1, false, []seg{{coding.Byte, 9}}},
		{"a\xff" + strings.Repeat("9", 12), 1, false,
			[]seg{{coding.Byte, 2}, {coding.Numeric, 12}}},
	} {
		got := describe(Optimal(tt.text, tt.v, tt.kanji))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Optimal(%q, %d, %v) mismatch (-want +got):\n%s",
				tt.text, tt.v, tt.kanji, diff)
		}
	}
}

// Optimal is never longer than Make.
func TestOptimalShorter(t *testing.T) {
	for _, text := range []string{
		"Hello, world!",
		"HTTPS://EXAMPLE.COM/ABC?x=1234567890",
		"314159265358979323846264338327950288419716939937510",
		"日本語のテキスト 12345 ABCDE",
		strings.Repeat("ABC123abc", 40),
	} {
		for _, v := range []coding.Version{1, 10, 27} {
			opt, ok1 := coding.TotalBits(Optimal(text, v, true), v)
			simple, ok2 := coding.TotalBits(Make(text), v)
			if ok1 && ok2 && opt > simple {
				t.Errorf("%q at version %d: optimal %d bits, simple %d",
					text, v, opt, simple)
			}
		}
	}
}

func TestOptimalRange(t *testing.T) {
	segs, v, err := OptimalRange("HELLO WORLD", coding.Q, 1, 40, false)
	if err != nil || v != 1 || len(segs) != 1 {
		t.Errorf("HELLO WORLD: %d segments, version %d, error %v",
			len(segs), v, err)
	}
	// 1000 digits need version 22 at level H
	digits := strings.Repeat("7", 1000)
	segs, v, err = OptimalRange(digits, coding.H, 1, 40, false)
	if err != nil || v != 22 {
		t.Errorf("1000 digits: version %d, error %v, want 22", v, err)
	}
	if n, _ := coding.TotalBits(segs, v); n != 4+12+3334 {
		t.Errorf("1000 digits: %d bits", n)
	}
	_, _, err = OptimalRange(digits, coding.H, 1, 9, false)
	if err != ErrLongText {
		t.Errorf("1000 digits up to version 9: error %v, want %v",
			err, ErrLongText)
	}
	if _, _, err = OptimalRange("", coding.L, 5, 4, false); err != ErrRange {
		t.Errorf("version range 5-4: error %v, want %v", err, ErrRange)
	}
	if _, _, err = OptimalRange("", 7, 1, 40, false); err != coding.ErrLevel {
		t.Errorf("level 7: error %v, want %v", err, coding.ErrLevel)
	}
}
