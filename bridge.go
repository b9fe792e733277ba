// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"code.hybscloud.com/pollio/task"
)

// Notifier is a readiness source. Register stores w so that it is woken the
// next time the underlying resource may make progress; a later Register
// replaces an earlier one. *task.AtomicWaker satisfies Notifier.
type Notifier interface {
	Register(w Waker)
}

// Flusher is implemented by writers that buffer internally.
type Flusher interface {
	Flush() error
}

// register arms n with the waker of cx. Without a notifier the task is woken
// right away so that the scheduler re-polls instead of stalling forever.
func register(n Notifier, cx *Context) {
	if n == nil {
		cx.Wake()
		return
	}
	n.Register(cx.Waker())
}

// Reader lifts an iox-style non-blocking io.Reader into AsyncReader.
//
// The source reports "not ready" with ErrWouldBlock (or a bare (0, nil)).
// On that signal Reader registers the caller's waker with its Notifier and
// tries once more before returning Pending, so readiness that arrives between
// the attempt and the registration is not lost.
type Reader struct {
	r        io.Reader
	n        Notifier
	opts     options
	eof      bool
	deferred error
}

var _ AsyncReader = (*Reader)(nil)

// FromReader returns a Reader over r woken through n.
func FromReader(r io.Reader, n Notifier, opts ...Option) *Reader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Reader{r: r, n: n, opts: o}
}

// PollRead implements AsyncReader.
func (r *Reader) PollRead(cx *Context, p []byte) Poll[int] {
	if len(p) == 0 && r.opts.zeroRead == ZeroReadImmediate {
		return task.Ready(0)
	}
	if r.deferred != nil {
		err := r.deferred
		r.deferred = nil
		return task.Fail[int](err)
	}
	if r.eof {
		return task.Ready(0)
	}
	if res, ok := r.attempt(p); ok {
		return res
	}
	register(r.n, cx)
	if res, ok := r.attempt(p); ok {
		return res
	}
	return task.Pending[int]()
}

// attempt performs one read. ok is false when the source was not ready.
func (r *Reader) attempt(p []byte) (res Poll[int], ok bool) {
	n, err := r.r.Read(p)
	if n > 0 {
		// Counts first, semantics second.
		switch {
		case errors.Is(err, io.EOF):
			r.eof = true
		case err != nil && !IsNonFailure(err):
			Logger().Debug("pollio: deferring read error after progress",
				zap.Int("n", n), zap.Error(err))
			r.deferred = err
		}
		return task.Ready(n), true
	}
	switch {
	case errors.Is(err, io.EOF):
		r.eof = true
		return task.Ready(0), true
	case err == nil && len(p) == 0:
		return task.Ready(0), true
	case IsNonFailure(err):
		return res, false
	default:
		return task.Fail[int](err), true
	}
}

// Writer lifts an iox-style non-blocking io.Writer into AsyncWriter.
//
// PollFlush calls Flush when the writer implements Flusher. PollShutdown
// flushes, then calls Close when the writer implements io.Closer; Close is
// attempted at most once and later calls return Ready.
type Writer struct {
	w        io.Writer
	n        Notifier
	deferred error
	closed   bool
}

var _ AsyncWriter = (*Writer)(nil)

// FromWriter returns a Writer over w woken through n.
func FromWriter(w io.Writer, n Notifier) *Writer {
	return &Writer{w: w, n: n}
}

// PollWrite implements AsyncWriter.
func (w *Writer) PollWrite(cx *Context, p []byte) Poll[int] {
	if len(p) == 0 {
		return task.Ready(0)
	}
	if w.deferred != nil {
		err := w.deferred
		w.deferred = nil
		return task.Fail[int](err)
	}
	if res, ok := w.attempt(p); ok {
		return res
	}
	register(w.n, cx)
	if res, ok := w.attempt(p); ok {
		return res
	}
	return task.Pending[int]()
}

func (w *Writer) attempt(p []byte) (res Poll[int], ok bool) {
	n, err := w.w.Write(p)
	if n > 0 {
		if err != nil && !IsNonFailure(err) {
			Logger().Debug("pollio: deferring write error after progress",
				zap.Int("n", n), zap.Error(err))
			w.deferred = err
		}
		return task.Ready(n), true
	}
	if IsNonFailure(err) {
		return res, false
	}
	return task.Fail[int](err), true
}

// PollFlush implements AsyncWriter.
func (w *Writer) PollFlush(cx *Context) Poll[Unit] {
	if w.deferred != nil {
		err := w.deferred
		w.deferred = nil
		return task.Fail[Unit](err)
	}
	f, ok := w.w.(Flusher)
	if !ok {
		return readyUnit
	}
	return w.retry(cx, f.Flush)
}

// PollShutdown implements AsyncWriter.
func (w *Writer) PollShutdown(cx *Context) Poll[Unit] {
	if w.closed {
		return readyUnit
	}
	if res := w.PollFlush(cx); !res.IsReady() || res.IsFailure() {
		return res
	}
	c, ok := w.w.(io.Closer)
	if !ok {
		w.closed = true
		return readyUnit
	}
	res := w.retry(cx, c.Close)
	if res.IsReady() {
		w.closed = true
	}
	return res
}

// retry runs op, and on would-block registers the waker and runs it once more.
func (w *Writer) retry(cx *Context, op func() error) Poll[Unit] {
	err := op()
	if IsWouldBlock(err) {
		register(w.n, cx)
		err = op()
	}
	if IsWouldBlock(err) {
		return pendingUnit
	}
	if err != nil && !IsMore(err) {
		return task.Fail[Unit](err)
	}
	return readyUnit
}

// NonBlockingReader lowers r to an iox-style io.Reader. Every Read polls r
// once with cx: Pending becomes ErrWouldBlock and Ready(0) for a non-empty p
// becomes io.EOF.
func NonBlockingReader(r AsyncReader, cx *Context) io.Reader {
	return nonBlockingReader{r: r, cx: cx}
}

type nonBlockingReader struct {
	r  AsyncReader
	cx *Context
}

func (nb nonBlockingReader) Read(p []byte) (int, error) {
	n, err := Lower(nb.r.PollRead(nb.cx, p))
	if err == nil && n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, err
}

// NonBlockingWriter lowers w to an iox-style writer. Write keeps polling until
// p is fully accepted or w returns Pending, in which case it reports the
// accepted prefix with ErrWouldBlock. Flush and Close map to PollFlush and
// PollShutdown.
func NonBlockingWriter(w AsyncWriter, cx *Context) interface {
	io.WriteCloser
	Flusher
} {
	return nonBlockingWriter{w: w, cx: cx}
}

type nonBlockingWriter struct {
	w  AsyncWriter
	cx *Context
}

func (nb nonBlockingWriter) Write(p []byte) (written int, err error) {
	for written < len(p) {
		n, e := Lower(nb.w.PollWrite(nb.cx, p[written:]))
		written += n
		if e != nil {
			return written, e
		}
		if n == 0 {
			return written, ErrNoProgress
		}
	}
	return written, nil
}

func (nb nonBlockingWriter) Flush() error {
	_, err := Lower(nb.w.PollFlush(nb.cx))
	return err
}

func (nb nonBlockingWriter) Close() error {
	_, err := Lower(nb.w.PollShutdown(nb.cx))
	return err
}
