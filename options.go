// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

// Option configures the bridges returned by FromReader and FromWriter.
type Option func(*options)

type options struct {
	zeroRead ZeroReadPolicy
}

func defaultOptions() options {
	return options{zeroRead: ZeroReadImmediate}
}

// WithZeroRead selects how a zero-length read buffer is handled.
// The default is ZeroReadImmediate.
func WithZeroRead(z ZeroReadPolicy) Option {
	return func(o *options) { o.zeroRead = z }
}
