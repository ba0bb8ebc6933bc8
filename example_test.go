// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/unixdj/qrgen"
)

func ExampleEncodeText() {
	c, err := qr.EncodeText("HELLO WORLD", qr.Q)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(c.Version(), c.Size(), c.Level())
	// Output:
	// 1 21 Q
}

func ExampleEncodeBinary() {
	_, err := qr.EncodeBinary(make([]byte, 3000), qr.H)
	fmt.Println(errors.Is(err, qr.ErrDataTooLong))
	fmt.Println(err)
	// Output:
	// true
	// qr: data too long: 24020 bits, capacity 10208 bits at 40-H
}

func ExampleEncodeTextOpts() {
	opts := qr.DefaultOptions
	opts.MinVersion = 2
	opts.Mask = 5
	c, err := qr.EncodeTextOpts("https://example.com/", qr.M, &opts)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(c.Version(), c.Mask())
	// Output:
	// 2 5
}
