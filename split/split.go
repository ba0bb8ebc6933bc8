// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments.

Make classifies the whole string as a single numeric, alphanumeric or
byte mode segment.  Optimal and OptimalRange split it into segments
of several modes to minimise the encoded length.
*/
package split // import "github.com/unixdj/qrgen/split"

import (
	"errors"
	"unicode/utf8"

	"github.com/unixdj/qrgen/coding"
)

var (
	ErrLongText = errors.New("qr: text too long")
	ErrRange    = errors.New("qr: invalid version range")
)

// QR version size classes.  The character count field lengths, and
// thus an optimal split, change only between classes.
var sizeClass = [3]struct{ min, max coding.Version }{
	{1, 9}, {10, 26}, {27, 40},
}

// Make returns a single segment encoding text: numeric if text
// consists of digits, alphanumeric if it is encodable in alphanumeric
// mode and byte otherwise.  Make returns no segments for empty text.
func Make(text string) []coding.Segment {
	switch {
	case text == "":
		return nil
	case coding.IsNumeric(text):
		return []coding.Segment{coding.MakeNumeric(text)}
	case coding.IsAlphanumeric(text):
		return []coding.Segment{coding.MakeAlphanumeric(text)}
	}
	return []coding.Segment{coding.MakeBytes([]byte(text))}
}

/*
Optimal split.

Costs are kept in units of 1/6 bit, so that the per character cost of
every mode is integral: 20 units for a digit (10 bits per 3), 33 for
an alphanumeric character (11 bits per 2), 78 for a kanji character
and 48 for every byte in byte mode.  A segment header costs
(4+count bits)*6 units.

The text is scanned one character at a time, where a character is a
UTF-8 sequence or a single byte of invalid UTF-8.  For each mode m,
cost[m] holds the minimum cost of encoding the text so far such that
the segment following it is in mode m.  A character extends cost[m]
if it is encodable in mode m.  Afterwards, ending a segment in mode k
and starting one in mode j costs cost[k] rounded up to a whole bit
plus the header for j; cost[j] is replaced if that is strictly
cheaper.  The mode each character was encoded in for every m is
recorded, and the cheapest final mode traced back gives the mode of
every character.  Consecutive characters of the same mode form a
segment.
*/

// Per character costs in 1/6 bit.
const (
	byteCost    = 8 * 6 // per byte
	alnumCost   = 33
	numericCost = 20
	kanjiCost   = 78
)

// splitter holds the modes of an optimal split.
type splitter struct {
	modes []coding.Mode // candidate modes, index into cost
	head  []int         // header cost per mode
}

func newSplitter(v coding.Version, kanji bool) *splitter {
	s := &splitter{
		modes: []coding.Mode{coding.Byte, coding.Alphanumeric, coding.Numeric},
	}
	if kanji {
		s.modes = append(s.modes, coding.Kanji)
	}
	s.head = make([]int, len(s.modes))
	for i, m := range s.modes {
		s.head[i] = (4 + m.CountBits(v)) * 6
	}
	return s
}

// charCost returns the cost of r, a UTF-8 sequence of width bytes, in
// mode m, or -1 if r is not encodable in m.
func charCost(m coding.Mode, r rune, width int) int {
	switch m {
	case coding.Byte:
		return width * byteCost
	case coding.Alphanumeric:
		if width == 1 && coding.IsAlphanumericRune(r) {
			return alnumCost
		}
	case coding.Numeric:
		if width == 1 && coding.IsNumericRune(r) {
			return numericCost
		}
	case coding.Kanji:
		if _, ok := coding.KanjiValue(r); ok && width > 1 {
			return kanjiCost
		}
	}
	return -1
}

// split returns the mode of each character of text and the character
// boundaries: character i is text[pos[i]:pos[i+1]].
func (s *splitter) split(text string) ([]coding.Mode, []int) {
	nm := len(s.modes)
	var (
		pos   []int
		from  []int8 // per character and final mode: mode of character
		cost  = append([]int(nil), s.head...)
		ext   = make([]int, nm)
		valid = make([]bool, nm)
	)
	for i := 0; i < len(text); {
		r, width := utf8.DecodeRuneInString(text[i:])
		pos = append(pos, i)
		i += width
		row := len(from)
		from = append(from, make([]int8, nm)...)
		for k, m := range s.modes {
			c := charCost(m, r, width)
			valid[k] = c >= 0
			if valid[k] {
				ext[k] = cost[k] + c
				from[row+k] = int8(k)
			}
		}
		copy(cost, ext)
		for j := range s.modes {
			first := !valid[j]
			for k := range s.modes {
				if !valid[k] {
					continue
				}
				c := (ext[k]+5)/6*6 + s.head[j]
				if first || c < cost[j] {
					cost[j] = c
					from[row+j] = int8(k)
					first = false
				}
			}
		}
	}
	pos = append(pos, len(text))

	best := 0
	for k := 1; k < nm; k++ {
		if cost[k] < cost[best] {
			best = k
		}
	}
	modes := make([]coding.Mode, len(pos)-1)
	for i := len(modes) - 1; i >= 0; i-- {
		best = int(from[i*nm+best])
		modes[i] = s.modes[best]
	}
	return modes, pos
}

// Optimal returns segments encoding text with the minimum total
// length at QR version v.  Text is split into byte, alphanumeric and
// numeric segments, and also kanji segments if kanji is true.
// Invalid UTF-8 is encoded as is in byte mode.
// Optimal returns no segments for empty text.
func Optimal(text string, v coding.Version, kanji bool) []coding.Segment {
	if text == "" {
		return nil
	}
	modes, pos := newSplitter(v, kanji).split(text)
	var segs []coding.Segment
	for i := 0; i < len(modes); {
		j := i + 1
		for j < len(modes) && modes[j] == modes[i] {
			j++
		}
		s := text[pos[i]:pos[j]]
		switch modes[i] {
		case coding.Byte:
			segs = append(segs, coding.MakeBytes([]byte(s)))
		case coding.Alphanumeric:
			segs = append(segs, coding.MakeAlphanumeric(s))
		case coding.Numeric:
			segs = append(segs, coding.MakeNumeric(s))
		case coding.Kanji:
			segs = append(segs, coding.MakeKanji(s))
		}
		i = j
	}
	return segs
}

/*
OptimalRange returns segments encoding text optimally and the lowest
QR version from min to max they fit at the given error correction
level.  The text is resplit at min and at the start of every size
class.  If the text does not fit, OptimalRange returns the segments
for max and ErrLongText.
*/
func OptimalRange(text string, level coding.Level, min, max coding.Version, kanji bool) ([]coding.Segment, coding.Version, error) {
	if !level.Valid() {
		return nil, 0, coding.ErrLevel
	}
	if !min.Valid() || !max.Valid() || min > max {
		return nil, 0, ErrRange
	}
	var segs []coding.Segment
	for v := min; v <= max; v++ {
		if v == min || v == sizeClass[v.SizeClass()].min {
			segs = Optimal(text, v, kanji)
		}
		if n, ok := coding.TotalBits(segs, v); ok && n <= v.DataBits(level) {
			return segs, v, nil
		}
	}
	return segs, 0, ErrLongText
}
