// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qr prints a QR code encoding its arguments or standard input as
// text on a terminal.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"

	"github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/split"
)

// ECI assignment numbers
const (
	Latin1ECI = 3  // ISO 8859-1
	UTF8ECI   = 26 // UTF-8
)

var g = struct {
	border   int        // quiet zone
	rev      bool       // reverse colours
	fn       string     // filename
	format   int        // output format
	cx       int        // randr source X coordinate index in inc
	inc      [2]int     // randr source X,Y coordinate increments
	lev      qr.Level   // QR correction level
	opts     qr.Options // encoding options
	eci      int        // ECI segment value
	eciflag  bool       // ECI flag
	latin1   bool       // Latin-1 byte mode
	byteOnly bool       // byte mode only
	upper    bool       // uppercase
	debug    bool       // diagnostics
}{
	border: 4,
	inc:    [2]int{1, 1},
	opts:   qr.DefaultOptions,
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults: UTF-8 input, no conversion, kanji mode
segments enabled, no ECI segment.

`)
	cl.PrintOptions(w)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

func flip() {
	g.inc[0] = -g.inc[0]
}

func rotate() {
	g.cx ^= 1
	m := g.inc[0] * g.inc[1]
	g.inc[0] *= m
	g.inc[1] *= -m
}

var formats = []string{"utf8", "utf8i", "ascii", "asciii"}

var encoders = [...]func(pixels, io.Writer) error{utf8, ascii}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.FlagLong(opt(version), "version", 0,
		"print version and copyright").SetFlag()
	getopt.Flag(opt(flip), 'f', `flip code horizontally; `+
		`to flip vertically, use "-frr"`).SetFlag()
	getopt.Flag(opt(rotate), 'r', `rotate code 90° counterclockwise; `+
		`-r and -f may be given multiple times, `+
		`order matters: "-fr" = "-rfrr" = "-rrrf"`).SetFlag()
	nokanji := getopt.Bool('K', "disable kanji mode")
	getopt.Flag(&g.latin1, '1',
		"convert input to Latin-1 and encode ECI segment 3")
	getopt.Flag(&g.byteOnly, '8', "encode entire data in byte mode")
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&g.border, 'm', `quiet zone pixels`, "margin")
	getopt.Flag(&g.fn, 'o', `output file, or "-" for standard output`,
		"file")
	getopt.Flag(&g.eciflag, 'e', "encode ECI segment setting "+
		"character encoding according to -1")
	eci := getopt.Signed('E', -1, &getopt.SignedLimit{Base: 0, Bits: 21, Min: 0, Max: 999999},
		"encode ECI segment with the given value; overrides -e", "eci")
	minv := getopt.Unsigned('v', 1, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"minimum QR code version", "ver")
	maxv := getopt.Unsigned('V', 40, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"maximum QR code version", "ver")
	mask := getopt.Signed('k', -1, &getopt.SignedLimit{Base: 0, Bits: 8, Min: 0, Max: 7},
		"use the given mask pattern instead of the best one", "mask")
	noboost := getopt.Bool('B', "do not raise error correction level")
	getopt.Flag(&g.opts.Parallel, 'p', "evaluate mask patterns in parallel")
	getopt.Flag(&g.debug, 'd', "print diagnostics to standard error")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if standard output is a TTY, default is utf8, otherwise ascii`,
		"type")

	getopt.Parse()
	if *minv > *maxv {
		fmt.Fprintln(os.Stderr, "-v must not exceed -V")
		usage()
	}
	g.lev = qr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	g.opts.MinVersion = qr.Version(*minv)
	g.opts.MaxVersion = qr.Version(*maxv)
	g.opts.Mask = qr.Mask(*mask)
	g.opts.BoostECC = !*noboost
	g.opts.Kanji = !*nokanji && !g.latin1
	g.eci = int(*eci)
	if g.border < 0 {
		g.border = 0
	}
	if *ff == "" {
		*ff = "ascii"
		if g.fn == "" && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
	if g.eciflag && !getopt.IsSet('E') {
		g.eci = UTF8ECI
		if g.latin1 {
			g.eci = Latin1ECI
		}
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()
	logger := zerolog.Nop()
	if g.debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}
	if g.latin1 {
		var err error
		if s, err = charmap.ISO8859_1.NewEncoder().String(s); err != nil {
			log.Fatalln("input not encodable in Latin-1:", err)
		}
	}

	// Split the text for the version range; the ECI segment, if
	// any, may push the data into the next version.
	var segs []coding.Segment
	if g.byteOnly {
		segs = []coding.Segment{coding.MakeBytes([]byte(s))}
	} else {
		segs, _, _ = split.OptimalRange(s, g.lev,
			g.opts.MinVersion, g.opts.MaxVersion, g.opts.Kanji)
	}
	if g.eci >= 0 {
		segs = append([]coding.Segment{coding.MakeECI(g.eci)}, segs...)
	}
	for i, seg := range segs {
		logger.Debug().Int("index", i).Stringer("mode", seg.Mode()).
			Int("count", seg.Count()).Int("bits", seg.Len()).
			Msg("segment")
	}

	c, err := qr.EncodeSegmentsOpts(segs, g.lev, &g.opts)
	if err != nil {
		logger.Error().Err(err).Str("level", g.lev.String()).
			Msg("encoding failed")
		log.Fatalln(err)
	}
	logger.Info().Stringer("version", c.Version()).
		Stringer("level", c.Level()).Stringer("mask", c.Mask()).
		Int("size", c.Size()).Int("penalty", c.Penalty()).
		Msg("encoded")
	write(c)
}

func write(c *qr.Code) {
	w := os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	bw := bufio.NewWriter(w)
	err := encoders[g.format](randr(c), bw)
	if err == nil {
		err = bw.Flush()
	}
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// pixels is a rotated and reflected view of a code with a quiet
// zone.  Pixels outside the code are white, or black if reversed.
type pixels struct {
	c    *qr.Code
	cx   int    // index of source coordinate following X
	inc  [2]int // X,Y directions: 1 forward, -1 backward
	bord int    // quiet zone
	rev  bool   // reverse colours
}

// randr returns a view of c rotated and reflected as given by flags.
func randr(c *qr.Code) pixels {
	return pixels{c: c, cx: g.cx, inc: g.inc, bord: g.border, rev: g.rev}
}

// size returns the number of pixels on a side including quiet zone.
func (p pixels) size() int { return p.c.Size() + 2*p.bord }

// black reports whether the pixel at x, y is black, counting from
// the top left corner of the quiet zone.
func (p pixels) black(x, y int) bool {
	siz := p.c.Size()
	x, y = x-p.bord, y-p.bord
	if p.inc[0] < 0 {
		x = siz - 1 - x
	}
	if p.inc[1] < 0 {
		y = siz - 1 - y
	}
	var coord [2]int
	coord[p.cx], coord[p.cx^1] = x, y
	return p.c.Black(coord[0], coord[1]) != p.rev
}

func utf8(p pixels, w io.Writer) error {
	pix := p.size()
	var b []byte
	for y := 0; y < pix; y += 2 {
		for x := 0; x < pix; x++ {
			n := 0
			if !p.black(x, y) {
				n = 2
			}
			if y+1 >= pix || !p.black(x, y+1) {
				n++
			}
			b = append(b, [4]string{"█", "▀", "▄", " "}[n]...)
		}
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}

func ascii(p pixels, w io.Writer) error {
	pix := p.size()
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := 0; y < pix; y++ {
		for x := 0; x < pix; x++ {
			var c byte = ' '
			if p.black(x, y) {
				c = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = c, c
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
