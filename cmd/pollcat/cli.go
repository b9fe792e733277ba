// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import "flag"

// Options holds CLI options.
type Options struct {
	ConfigPath string
	ViaAIO     bool
	BufferSize int
	LogLevel   string
}

// ParseFlags parses CLI flags from args.
func ParseFlags(args []string) (Options, error) {
	fs := flag.NewFlagSet("pollcat", flag.ContinueOnError)
	var opts Options
	fs.StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	fs.BoolVar(&opts.ViaAIO, "aio", false, "route output through the aio adapter")
	fs.IntVar(&opts.BufferSize, "buffer", 0, "copy buffer size in bytes (0 keeps config)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "override log.level")
	err := fs.Parse(args)
	return opts, err
}
