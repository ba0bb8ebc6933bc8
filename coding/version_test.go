// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRawDataModules(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		want int
	}{
		{1, 208}, {2, 359}, {6, 1383}, {7, 1568}, {14, 4651},
		{32, 19723}, {40, 29648},
	} {
		if got := tt.v.RawDataModules(); got != tt.want {
			t.Errorf("version %d: RawDataModules() = %d, want %d",
				tt.v, got, tt.want)
		}
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		n := v.RawDataModules()
		if n < 208 || n > 29648 {
			t.Errorf("version %d: RawDataModules() = %d out of range", v, n)
		}
		for l := L; l <= H; l++ {
			if db := v.DataBits(l); db <= 0 || db > n {
				t.Errorf("%d-%v: DataBits() = %d, raw %d", v, l, db, n)
			}
			// every block holds at least one data byte more than
			// error correction bytes at level L
			nb, nc := v.ECCBlocks(l), v.ECCPerBlock(l)
			if nb <= 0 || nc <= 0 || n/8/nb <= nc {
				t.Errorf("%d-%v: %d blocks of %d check bytes, %d raw bytes",
					v, l, nb, nc, n/8)
			}
		}
	}
}

func TestDataCodewords(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		l    Level
		want int
	}{
		{1, L, 19}, {1, M, 16}, {1, Q, 13}, {1, H, 9},
		{5, Q, 62}, {7, Q, 88}, {40, L, 2956}, {40, H, 1276},
	} {
		if got := tt.v.DataCodewords(tt.l); got != tt.want {
			t.Errorf("%d-%v: DataCodewords() = %d, want %d",
				tt.v, tt.l, got, tt.want)
		}
	}
}

func TestAlignmentPositions(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		want []int
	}{
		{1, nil},
		{2, []int{6, 18}},
		{7, []int{6, 22, 38}},
		{14, []int{6, 26, 46, 66}},
		{32, []int{6, 34, 60, 86, 112, 138}},
		{36, []int{6, 24, 50, 76, 102, 128, 154}},
		{40, []int{6, 30, 58, 86, 114, 142, 170}},
	} {
		if diff := cmp.Diff(tt.want, tt.v.AlignmentPositions()); diff != "" {
			t.Errorf("version %d: AlignmentPositions() mismatch (-want +got):\n%s",
				tt.v, diff)
		}
	}
	for v := Version(2); v <= MaxVersion; v++ {
		pos := v.AlignmentPositions()
		na := int(v)/7 + 2
		if len(pos) != na || pos[0] != 6 || pos[na-1] != v.Size()-7 {
			t.Errorf("version %d: AlignmentPositions() = %v", v, pos)
			continue
		}
		// step is (size-13)/(na-1) rounded up to an even number
		step := 26
		if v != 32 {
			step = int(math.Ceil(float64(v.Size()-13)/float64(2*(na-1)))) * 2
		}
		for i := 1; i < na; i++ {
			if pos[i] <= pos[i-1] {
				t.Errorf("version %d: AlignmentPositions() = %v not ascending",
					v, pos)
				break
			}
			if i > 1 && pos[i]-pos[i-1] != step {
				t.Errorf("version %d: AlignmentPositions() = %v, step %d, want %d",
					v, pos, pos[i]-pos[i-1], step)
				break
			}
		}
	}
}

func TestVersionInfo(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		want uint32
	}{
		{7, 0x07c94}, {8, 0x085bc}, {21, 0x15683}, {40, 0x28c69},
	} {
		if got := tt.v.versionInfo(); got != tt.want {
			t.Errorf("version %d: versionInfo() = %#05x, want %#05x",
				tt.v, got, tt.want)
		}
	}
}

func TestFormatBits(t *testing.T) {
	for _, tt := range []struct {
		l    Level
		m    Mask
		want uint32
	}{
		{M, 0, 0x5412}, {L, 0, 0x77c4}, {Q, 0, 0x355f}, {H, 0, 0x1689},
		{L, 4, 0x662f}, {M, 5, 0x40ce}, {H, 7, 0x083b},
	} {
		if got := formatBits(tt.l, tt.m); got != tt.want {
			t.Errorf("formatBits(%v, %v) = %#04x, want %#04x",
				tt.l, tt.m, got, tt.want)
		}
	}
}

func TestInvalid(t *testing.T) {
	for _, v := range []Version{0, -1, 41} {
		if v.Valid() {
			t.Errorf("Version(%d).Valid() = true", v)
		}
	}
	for _, l := range []Level{-1, 4} {
		if l.Valid() {
			t.Errorf("Level(%d).Valid() = true", l)
		}
	}
	if _, err := NewEncoder(41, L); err != ErrVersion {
		t.Errorf("NewEncoder(41, L) error = %v, want %v", err, ErrVersion)
	}
	if _, err := NewEncoder(1, 4); err != ErrLevel {
		t.Errorf("NewEncoder(1, 4) error = %v, want %v", err, ErrLevel)
	}
	defer func() {
		if recover() != ErrVersion {
			t.Error("RawDataModules did not panic with ErrVersion")
		}
	}()
	Version(0).RawDataModules()
}
