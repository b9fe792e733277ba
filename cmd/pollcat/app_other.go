// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package main

import "os"

func run(Options) int {
	_, _ = os.Stderr.WriteString("pollcat: epoll is only available on linux\n")
	return 1
}
