// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package backoff provides the jittered linear back-off used when a readiness
// source itself fails transiently and must be retried.
package backoff

import (
	"context"
	"time"
)

const (
	// DefaultBase is the first step (500µs).
	DefaultBase = 500 * time.Microsecond

	// DefaultMax caps a single step (100ms).
	DefaultMax = 100 * time.Millisecond
)

// Backoff groups attempts into blocks: block n holds n attempts of
// min(Base*n, Max) each, with ±12.5% jitter so that several waiters do not
// retry in lockstep.
//
// The zero value uses DefaultBase and DefaultMax.
type Backoff struct {
	Base time.Duration
	Max  time.Duration

	block int // 1-indexed once started
	step  int // attempt within block
	rnd   uint64
}

func (b *Backoff) init() {
	if b.block != 0 {
		return
	}
	b.block = 1
	if b.Base <= 0 {
		b.Base = DefaultBase
	}
	if b.Max <= 0 {
		b.Max = DefaultMax
	}
	if b.rnd == 0 {
		b.rnd = uint64(time.Now().UnixNano()) | 1
	}
}

// Current returns the step duration of the current block, without jitter.
func (b *Backoff) Current() time.Duration {
	base, max, block := b.Base, b.Max, b.block
	if base <= 0 {
		base = DefaultBase
	}
	if max <= 0 {
		max = DefaultMax
	}
	if block == 0 {
		block = 1
	}
	return min(time.Duration(block)*base, max)
}

// Next returns the jittered duration of the next attempt and advances.
func (b *Backoff) Next() time.Duration {
	b.init()
	d := b.jitter(b.Current())
	b.step++
	if b.step >= b.block {
		b.step = 0
		b.block++
	}
	return d
}

// Wait sleeps for Next, or until ctx is done.
func (b *Backoff) Wait(ctx context.Context) error {
	t := time.NewTimer(b.Next())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Block returns the current block number, starting at 1.
func (b *Backoff) Block() int {
	if b.block == 0 {
		return 1
	}
	return b.block
}

// Reset returns to block 1.
func (b *Backoff) Reset() { b.block, b.step = 0, 0 }

// jitter applies ±12.5% using a xorshift generator.
func (b *Backoff) jitter(d time.Duration) time.Duration {
	b.rnd ^= b.rnd << 13
	b.rnd ^= b.rnd >> 7
	b.rnd ^= b.rnd << 17
	r := int64(b.rnd>>32) % 256
	return d + time.Duration(int64(d)*(r-128)/1024)
}
