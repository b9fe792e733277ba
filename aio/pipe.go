// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aio

import (
	"errors"
	"sync"

	"github.com/eapache/queue"

	"code.hybscloud.com/pollio/task"
)

// DefaultPipeCapacity is the buffer bound used when Pipe is given a
// non-positive capacity.
const DefaultPipeCapacity = 64 * 1024

var (
	errWriteAfterClose = errors.New("aio: write after close")
	errReaderGone      = errors.New("aio: read side closed")
)

// pipe is the state shared by both ends. Accepted writes are stored as
// segments in FIFO order; off is the consumed prefix of the head segment.
type pipe struct {
	mu      sync.Mutex
	segs    *queue.Queue
	off     int
	size    int
	cap     int
	wclosed bool
	rclosed bool

	readable task.AtomicWaker
	writable task.AtomicWaker
}

// Pipe returns a connected in-memory pipe holding at most capacity unread
// bytes. Each end may be driven by a different task; wakers are only invoked
// after the pipe's lock has been released.
func Pipe(capacity int) (*PipeReader, *PipeWriter) {
	if capacity <= 0 {
		capacity = DefaultPipeCapacity
	}
	p := &pipe{segs: queue.New(), cap: capacity}
	return &PipeReader{p: p}, &PipeWriter{p: p}
}

// PipeReader is the read end of a Pipe.
type PipeReader struct {
	p *pipe
}

var _ Reader = (*PipeReader)(nil)

// PollRead implements Reader. It returns Ready(0) once the write end is closed
// and every buffered byte has been read.
func (r *PipeReader) PollRead(cx *task.Context, p []byte) task.Poll[int] {
	if len(p) == 0 {
		return task.Ready(0)
	}
	pp := r.p
	pp.mu.Lock()
	if pp.rclosed {
		pp.mu.Unlock()
		return task.Fail[int](NewError(KindClosed, errReaderGone))
	}
	if pp.size == 0 {
		if pp.wclosed {
			pp.mu.Unlock()
			return task.Ready(0)
		}
		pp.readable.Register(cx.Waker())
		pp.mu.Unlock()
		return task.Pending[int]()
	}
	n := 0
	for n < len(p) && pp.segs.Length() > 0 {
		seg := pp.segs.Peek().([]byte)
		c := copy(p[n:], seg[pp.off:])
		n += c
		pp.off += c
		if pp.off == len(seg) {
			pp.segs.Remove()
			pp.off = 0
		}
	}
	pp.size -= n
	pp.mu.Unlock()
	pp.writable.Wake()
	return task.Ready(n)
}

// Buffered returns the number of unread bytes.
func (r *PipeReader) Buffered() int {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()
	return r.p.size
}

// Close closes the read end. Pending and later writes fail with KindBrokenPipe.
func (r *PipeReader) Close() error {
	r.p.mu.Lock()
	r.p.rclosed = true
	r.p.mu.Unlock()
	r.p.writable.Wake()
	return nil
}

// PipeWriter is the write end of a Pipe.
type PipeWriter struct {
	p *pipe
}

var _ Writer = (*PipeWriter)(nil)

// PollWrite implements Writer. It accepts as much of p as fits and copies it;
// p is not retained.
func (w *PipeWriter) PollWrite(cx *task.Context, p []byte) task.Poll[int] {
	if len(p) == 0 {
		return task.Ready(0)
	}
	pp := w.p
	pp.mu.Lock()
	switch {
	case pp.wclosed:
		pp.mu.Unlock()
		return task.Fail[int](NewError(KindClosed, errWriteAfterClose))
	case pp.rclosed:
		pp.mu.Unlock()
		return task.Fail[int](NewError(KindBrokenPipe, errReaderGone))
	}
	avail := pp.cap - pp.size
	if avail == 0 {
		pp.writable.Register(cx.Waker())
		pp.mu.Unlock()
		return task.Pending[int]()
	}
	n := min(avail, len(p))
	seg := make([]byte, n)
	copy(seg, p)
	pp.segs.Add(seg)
	pp.size += n
	pp.mu.Unlock()
	pp.readable.Wake()
	return task.Ready(n)
}

// PollFlush implements Writer. Accepted bytes are already visible to the
// reader, so flushing only reports whether the write end is still usable.
func (w *PipeWriter) PollFlush(*task.Context) task.Poll[Unit] {
	w.p.mu.Lock()
	defer w.p.mu.Unlock()
	if w.p.wclosed {
		return task.Fail[Unit](NewError(KindClosed, errWriteAfterClose))
	}
	return task.Ready(Unit{})
}

// PollClose implements Writer. The reader sees end of stream after draining.
func (w *PipeWriter) PollClose(*task.Context) task.Poll[Unit] {
	w.p.mu.Lock()
	w.p.wclosed = true
	w.p.mu.Unlock()
	w.p.readable.Wake()
	return task.Ready(Unit{})
}
