// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command pollcat copies standard input to standard output through
// epoll-driven non-blocking streams.
//
//	pollcat [-config pollcat.yaml] [-aio] [-buffer N] [-log-level debug]
package main

import (
	"errors"
	"flag"
	"os"
)

func main() {
	opts, err := ParseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	os.Exit(run(opts))
}
