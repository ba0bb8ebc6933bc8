// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

EncodeText and EncodeBinary encode text and binary data in the
smallest QR code fitting it.  EncodeSegments encodes segments created
by the coding and split packages, and EncodeCodewords data codewords
at a fixed version.  The *Opts variants take Options restricting the
version range, forcing a mask or disabling error correction level
boost.
*/
package qr // import "github.com/unixdj/qrgen"

import (
	"errors"
	"fmt"

	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// A Version is a QR version, from 1 to 40.
type Version = coding.Version

// A Mask is a QR mask pattern, from 0 to 7, or AutoMask.
type Mask = coding.Mask

// AutoMask selects the mask with the lowest penalty.
const AutoMask = coding.AutoMask

// A Code is a QR code.  Code.Black reports the colour of a pixel.
type Code = coding.Code

// Options control QR code encoding.
type Options struct {
	MinVersion Version // smallest version to use
	MaxVersion Version // largest version to use
	Mask       Mask    // mask pattern, or AutoMask

	// BoostECC raises the error correction level as long as the
	// data still fits the selected version.
	BoostECC bool

	// Kanji enables kanji mode segments for text.
	Kanji bool

	// Parallel scores masks concurrently.
	Parallel bool
}

// DefaultOptions are used when no Options are given.
var DefaultOptions = Options{
	MinVersion: coding.MinVersion,
	MaxVersion: coding.MaxVersion,
	Mask:       AutoMask,
	BoostECC:   true,
}

// check panics if o or level are invalid.
func (o *Options) check(level Level) {
	switch {
	case !level.Valid():
		panic(coding.ErrLevel)
	case !o.MinVersion.Valid() || !o.MaxVersion.Valid() ||
		o.MinVersion > o.MaxVersion:
		panic(coding.ErrVersion)
	case o.Mask != AutoMask && !o.Mask.Valid():
		panic(coding.ErrMask)
	}
}

func options(opts *Options) *Options {
	if opts == nil {
		return &DefaultOptions
	}
	return opts
}

// ErrDataTooLong is matched by errors returned when data does not fit
// in the largest allowed QR code.
var ErrDataTooLong = errors.New("qr: data too long")

// SegmentTooLongError is returned when the character count of a
// segment does not fit in its count field at the largest allowed
// version.
type SegmentTooLongError struct {
	Index int         // index of segment
	Mode  coding.Mode // segment mode
	Count int         // character count
}

func (e *SegmentTooLongError) Error() string {
	return fmt.Sprintf("qr: segment %d too long: %d characters in %s mode",
		e.Index, e.Count, e.Mode)
}

func (e *SegmentTooLongError) Is(target error) bool {
	return target == ErrDataTooLong
}

// DataOverCapacityError is returned when data does not fit in the
// largest allowed QR code.
type DataOverCapacityError struct {
	Used     int     // data bits needed
	Capacity int     // data bits available
	Version  Version // largest allowed version
	Level    Level   // error correction level
}

func (e *DataOverCapacityError) Error() string {
	return fmt.Sprintf("qr: data too long: %d bits, capacity %d bits at %d-%v",
		e.Used, e.Capacity, e.Version, e.Level)
}

func (e *DataOverCapacityError) Is(target error) bool {
	return target == ErrDataTooLong
}

/*
Select returns the smallest version in the range given by opts in
which segs fit at the given error correction level, and the level.
If opts.BoostECC is set, the level is raised one step at a time as
long as segs fit the same version.  If segs do not fit, Select
returns a *SegmentTooLongError or a *DataOverCapacityError.

Nil opts means DefaultOptions.  Select panics on invalid level or
opts.
*/
func Select(segs []coding.Segment, level Level, opts *Options) (Version, Level, error) {
	o := options(opts)
	o.check(level)
	for v := o.MinVersion; ; v++ {
		n, ok := coding.TotalBits(segs, v)
		if ok && n <= v.DataBits(level) {
			for o.BoostECC && level < H && n <= v.DataBits(level+1) {
				level++
			}
			return v, level, nil
		}
		if v < o.MaxVersion {
			continue
		}
		if !ok {
			for i, seg := range segs {
				if _, ok := seg.EncodedLength(v); !ok {
					return 0, level, &SegmentTooLongError{
						i, seg.Mode(), seg.Count()}
				}
			}
		}
		return 0, level, &DataOverCapacityError{n, v.DataBits(level), v, level}
	}
}

// EncodeSegments returns a QR code encoding segs at the given
// error correction level with DefaultOptions.
func EncodeSegments(segs []coding.Segment, level Level) (*Code, error) {
	return EncodeSegmentsOpts(segs, level, nil)
}

// EncodeSegmentsOpts returns a QR code encoding segs at the given
// error correction level.  Nil opts means DefaultOptions.
// EncodeSegmentsOpts panics on invalid level or opts.
func EncodeSegmentsOpts(segs []coding.Segment, level Level, opts *Options) (*Code, error) {
	o := options(opts)
	v, l, err := Select(segs, level, o)
	if err != nil {
		return nil, err
	}
	e, err := coding.NewEncoder(v, l)
	if err != nil {
		return nil, err
	}
	e.Parallel = o.Parallel
	return e.Encode(o.Mask, segs...)
}

// EncodeText returns a QR code encoding UTF-8 text at the given
// error correction level with DefaultOptions.
func EncodeText(text string, level Level) (*Code, error) {
	return EncodeTextOpts(text, level, nil)
}

// EncodeTextOpts returns a QR code encoding text at the given error
// correction level.  The text is split into segments of different
// modes to minimise the size of the code.  Nil opts means
// DefaultOptions.  EncodeTextOpts panics on invalid level or opts.
func EncodeTextOpts(text string, level Level, opts *Options) (*Code, error) {
	o := options(opts)
	o.check(level)
	// On ErrLongText segs are split for MaxVersion and
	// EncodeSegmentsOpts reports the error.
	segs, _, _ := split.OptimalRange(text, level, o.MinVersion,
		o.MaxVersion, o.Kanji)
	return EncodeSegmentsOpts(segs, level, o)
}

// EncodeBinary returns a QR code encoding data in byte mode at the
// given error correction level with DefaultOptions.
func EncodeBinary(data []byte, level Level) (*Code, error) {
	return EncodeBinaryOpts(data, level, nil)
}

// EncodeBinaryOpts returns a QR code encoding data in byte mode at
// the given error correction level.  Nil opts means DefaultOptions.
// EncodeBinaryOpts panics on invalid level or opts.
func EncodeBinaryOpts(data []byte, level Level, opts *Options) (*Code, error) {
	return EncodeSegmentsOpts([]coding.Segment{coding.MakeBytes(data)},
		level, opts)
}

// EncodeCodewords returns a QR code of the given version and level
// holding data codewords, which must be exactly v.DataCodewords(level)
// bytes long.  EncodeCodewords panics on invalid arguments.
func EncodeCodewords(v Version, level Level, data []byte, mask Mask) *Code {
	return coding.EncodeCodewords(v, level, data, mask)
}
