// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fdio

import (
	"go.uber.org/zap"

	"code.hybscloud.com/pollio"
)

// DefaultMaxEvents is the epoll_wait batch size.
const DefaultMaxEvents = 128

// Option configures a Reactor or a Stream.
type Option func(*options)

type options struct {
	log       *zap.Logger
	maxEvents int
	zeroRead  pollio.ZeroReadPolicy
	keepFlags bool
}

func buildOptions(opts []Option) options {
	o := options{
		log:       pollio.Logger(),
		maxEvents: DefaultMaxEvents,
		zeroRead:  pollio.ZeroReadImmediate,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. The default is pollio.Logger().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMaxEvents sets the reactor's epoll_wait batch size.
func WithMaxEvents(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxEvents = n
		}
	}
}

// WithZeroRead selects how a Stream handles a zero-length read buffer.
func WithZeroRead(z pollio.ZeroReadPolicy) Option {
	return func(o *options) { o.zeroRead = z }
}

// WithRestoreFlags makes Close restore the descriptor's original file status
// flags before closing it. Use it for descriptors shared with other processes,
// such as a terminal on stdin.
func WithRestoreFlags() Option {
	return func(o *options) { o.keepFlags = true }
}
