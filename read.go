// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

// AsyncReader is implemented by streams that can copy available input into a
// caller buffer without blocking.
//
// PollRead contract:
//   - Ready(n): n bytes were copied to the front of p (0 <= n <= len(p)).
//     Partial fills are normal. Ready(0) with a non-empty p means end of
//     stream: no more data will ever arrive.
//   - Pending: nothing was copied. The waker of cx has been registered with
//     the readiness source, superseding any earlier registration. Polling
//     again before it fires is legal but wasteful.
//   - Ready(failure): the stream cannot make progress. Failures never signal
//     a normal end of stream.
//
// A zero-length p is left to the implementation; most return Ready(0)
// immediately. See ZeroReadPolicy for the helpers in this package.
//
// A handle must not be polled by two tasks at once. Implementations keep any
// state that spans a Pending result inside the handle itself, owned by value.
type AsyncReader interface {
	PollRead(cx *Context, p []byte) Poll[int]
}

// AsyncReadWriter groups AsyncReader and AsyncWriter.
type AsyncReadWriter interface {
	AsyncReader
	AsyncWriter
}

// ZeroReadPolicy decides what helpers do with a zero-length read buffer.
type ZeroReadPolicy uint8

const (
	// ZeroReadImmediate returns Ready(0) without touching the source.
	ZeroReadImmediate ZeroReadPolicy = iota

	// ZeroReadForward passes the empty buffer to the source and reports
	// whatever it returns.
	ZeroReadForward
)

func (z ZeroReadPolicy) String() string {
	switch z {
	case ZeroReadImmediate:
		return "immediate"
	case ZeroReadForward:
		return "forward"
	default:
		return "ZeroReadPolicy(unknown)"
	}
}
