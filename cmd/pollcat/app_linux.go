// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/compat"
	"code.hybscloud.com/pollio/fdio"
	"code.hybscloud.com/pollio/internal/config"
	"code.hybscloud.com/pollio/internal/drive"
	"code.hybscloud.com/pollio/internal/logging"
)

// run is the entry point after flag parsing.
func run(opts Options) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		_, _ = os.Stderr.WriteString("pollcat: " + err.Error() + "\n")
		return 1
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString("pollcat: failed to set up logger: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = log.Sync() }()
	pollio.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pump(ctx, cfg.Copy, log); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("interrupted")
			return 130
		}
		log.Error("copy failed", zap.Error(err))
		return 1
	}
	return 0
}

func loadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.ViaAIO {
		cfg.Copy.ViaAIO = true
	}
	if opts.BufferSize > 0 {
		cfg.Copy.BufferSize = opts.BufferSize
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// pump runs the reactor and copies fd 0 to fd 1 until end of input.
func pump(ctx context.Context, c config.CopyConfig, log *zap.Logger) error {
	reactor, err := fdio.NewReactor(fdio.WithLogger(log), fdio.WithMaxEvents(c.MaxEvents))
	if err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- reactor.Run(runCtx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("reactor stopped", zap.Error(err))
		}
		_ = reactor.Close()
	}()

	zr := pollio.ZeroReadImmediate
	if c.ZeroReadForward() {
		zr = pollio.ZeroReadForward
	}
	in, err := fdio.Open(reactor, int(os.Stdin.Fd()), fdio.WithRestoreFlags(), fdio.WithZeroRead(zr))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := fdio.Open(reactor, int(os.Stdout.Fd()), fdio.WithRestoreFlags())
	if err != nil {
		return err
	}
	defer out.Close()

	var dst pollio.AsyncWriter = out
	if c.ViaAIO {
		// Native -> aio -> native: exercises both adapter directions.
		dst = compat.NewWriter(compat.NewAIOWriter(out))
	}
	log.Debug("copy starting",
		zap.Bool("in_pollable", in.Pollable()),
		zap.Bool("out_pollable", out.Pollable()),
		zap.Bool("via_aio", c.ViaAIO),
		zap.Int("buffer", c.BufferSize))

	start := time.Now()
	n, err := drive.Copy(ctx, dst, in, make([]byte, c.BufferSize))
	if err != nil {
		return err
	}
	if err := drive.Shutdown(ctx, dst); err != nil {
		return err
	}
	log.Info("copy complete", zap.Int64("bytes", n), zap.Duration("elapsed", time.Since(start)))
	return nil
}
