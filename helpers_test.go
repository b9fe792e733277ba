// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio_test

import (
	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/task"
)

// stepWriter is a deterministic AsyncWriter: every odd call to PollWrite is
// Pending, every even call accepts at most limit bytes, and once failAfter
// bytes have been accepted further writes fail. Two fresh stepWriters with
// the same parameters produce identical outcome sequences.
type stepWriter struct {
	limit     int
	failAfter int
	calls     int
	got       []byte
	flushes   int
	shutdowns int
}

func (w *stepWriter) PollWrite(cx *pollio.Context, p []byte) pollio.Poll[int] {
	w.calls++
	if len(p) == 0 {
		return task.Ready(0)
	}
	if w.failAfter > 0 && len(w.got) >= w.failAfter {
		return task.Fail[int](errFull)
	}
	if w.calls%2 == 1 {
		cx.Wake()
		return task.Pending[int]()
	}
	n := min(w.limit, len(p))
	w.got = append(w.got, p[:n]...)
	return task.Ready(n)
}

func (w *stepWriter) PollFlush(cx *pollio.Context) pollio.Poll[pollio.Unit] {
	w.flushes++
	if w.flushes%2 == 1 {
		cx.Wake()
		return task.Pending[pollio.Unit]()
	}
	return task.Ready(pollio.Unit{})
}

func (w *stepWriter) PollShutdown(*pollio.Context) pollio.Poll[pollio.Unit] {
	w.shutdowns++
	return task.Ready(pollio.Unit{})
}

// noWrite fails the test if PollWrite is ever called.
type noWrite struct {
	fatal func(args ...any)
}

func (w noWrite) PollWrite(*pollio.Context, []byte) pollio.Poll[int] {
	w.fatal("PollWrite must not be called")
	return task.Ready(0)
}

func (noWrite) PollFlush(*pollio.Context) pollio.Poll[pollio.Unit] {
	return task.Ready(pollio.Unit{})
}

func (noWrite) PollShutdown(*pollio.Context) pollio.Poll[pollio.Unit] {
	return task.Ready(pollio.Unit{})
}

// fixedWriter accepts exactly k bytes per call.
type fixedWriter struct {
	k   int
	got []byte
}

func (w *fixedWriter) PollWrite(_ *pollio.Context, p []byte) pollio.Poll[int] {
	n := min(w.k, len(p))
	w.got = append(w.got, p[:n]...)
	return task.Ready(n)
}

func (w *fixedWriter) PollFlush(*pollio.Context) pollio.Poll[pollio.Unit] {
	return task.Ready(pollio.Unit{})
}

func (w *fixedWriter) PollShutdown(*pollio.Context) pollio.Poll[pollio.Unit] {
	return task.Ready(pollio.Unit{})
}

// scriptedReader returns one scripted step per PollRead call, then EOF.
type scriptedReader struct {
	steps []readStep
	i     int
}

type readStep struct {
	b       string
	pending bool
	err     error
}

func (r *scriptedReader) PollRead(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if r.i >= len(r.steps) {
		return task.Ready(0)
	}
	st := r.steps[r.i]
	r.i++
	switch {
	case st.pending:
		cx.Wake()
		return task.Pending[int]()
	case st.err != nil:
		return task.Fail[int](st.err)
	}
	return task.Ready(copy(p, st.b))
}

// ioStep is one scripted result of an iox-style Read or Write.
type ioStep struct {
	b   string
	n   int
	err error
}

// ioReader is an iox-style non-blocking reader driven by a script.
type ioReader struct {
	steps []ioStep
	calls int
}

func (r *ioReader) Read(p []byte) (int, error) {
	r.calls++
	if len(r.steps) == 0 {
		return 0, pollio.ErrWouldBlock
	}
	st := r.steps[0]
	r.steps = r.steps[1:]
	return copy(p, st.b), st.err
}

// ioWriter is an iox-style non-blocking writer driven by a script.
type ioWriter struct {
	steps   []ioStep
	got     []byte
	flushes []error
	closes  []error
	calls   int
	closed  int
}

func (w *ioWriter) Write(p []byte) (int, error) {
	w.calls++
	if len(w.steps) == 0 {
		return 0, pollio.ErrWouldBlock
	}
	st := w.steps[0]
	w.steps = w.steps[1:]
	n := min(st.n, len(p))
	w.got = append(w.got, p[:n]...)
	return n, st.err
}

func (w *ioWriter) Flush() error {
	if len(w.flushes) == 0 {
		return nil
	}
	err := w.flushes[0]
	w.flushes = w.flushes[1:]
	return err
}

func (w *ioWriter) Close() error {
	w.closed++
	if len(w.closes) == 0 {
		return nil
	}
	err := w.closes[0]
	w.closes = w.closes[1:]
	return err
}
