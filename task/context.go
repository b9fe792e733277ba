// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Waker is the continuation a readiness source invokes once a Pending
// operation can make progress. Wake must be safe to call from any goroutine
// and any number of times.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

type noopWaker struct{}

func (noopWaker) Wake() {}

// NoopWaker returns a Waker that does nothing. It is useful for one-shot
// non-blocking attempts where the caller never waits on readiness.
func NoopWaker() Waker { return noopWaker{} }

// Context is passed to every poll operation. It carries the Waker of the task
// currently driving the stream.
type Context struct {
	waker Waker
}

// NewContext returns a Context for w. A nil w is replaced by NoopWaker.
func NewContext(w Waker) *Context {
	if w == nil {
		w = noopWaker{}
	}
	return &Context{waker: w}
}

// Waker returns the waker to register with a readiness source.
func (cx *Context) Waker() Waker {
	if cx == nil || cx.waker == nil {
		return noopWaker{}
	}
	return cx.waker
}

// Wake invokes the context's waker immediately. Streams use it to request a
// re-poll without an external readiness event (cooperative yield).
func (cx *Context) Wake() { cx.Waker().Wake() }
