// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

// The wrappers below are the ownership shapes a writer is commonly held in.
// Each forwards every operation to the wrapped writer with no behavior change.

// Boxed is an exclusively owned writer held behind an interface.
type Boxed struct {
	w AsyncWriter
}

// Box takes ownership of w. The caller must not poll w directly afterwards.
func Box(w AsyncWriter) *Boxed { return &Boxed{w: w} }

func (b *Boxed) PollWrite(cx *Context, p []byte) Poll[int] { return b.w.PollWrite(cx, p) }

func (b *Boxed) PollFlush(cx *Context) Poll[Unit] { return b.w.PollFlush(cx) }

func (b *Boxed) PollShutdown(cx *Context) Poll[Unit] { return b.w.PollShutdown(cx) }

// writerPtr is satisfied by *T when *T implements AsyncWriter.
type writerPtr[T any] interface {
	*T
	AsyncWriter
}

// Borrowed is a unique borrow of a writer the caller keeps owning.
type Borrowed[T any, PT writerPtr[T]] struct {
	p PT
}

// Borrow returns a view of v that forwards to it. v must not be polled
// through any other path while the borrow is in use.
func Borrow[T any, PT writerPtr[T]](v *T) Borrowed[T, PT] { return Borrowed[T, PT]{p: PT(v)} }

func (b Borrowed[T, PT]) PollWrite(cx *Context, p []byte) Poll[int] { return b.p.PollWrite(cx, p) }

func (b Borrowed[T, PT]) PollFlush(cx *Context) Poll[Unit] { return b.p.PollFlush(cx) }

func (b Borrowed[T, PT]) PollShutdown(cx *Context) Poll[Unit] { return b.p.PollShutdown(cx) }

// Pinned owns a writer in a heap cell whose address never changes. The value
// can only be reached through its pointer; there is no way to move it out.
type Pinned[T any, PT writerPtr[T]] struct {
	p PT
}

// Pin moves v into a fresh heap cell.
func Pin[T any, PT writerPtr[T]](v T) *Pinned[T, PT] {
	cell := new(T)
	*cell = v
	return &Pinned[T, PT]{p: PT(cell)}
}

// Get returns the pinned pointer.
func (pn *Pinned[T, PT]) Get() PT { return pn.p }

func (pn *Pinned[T, PT]) PollWrite(cx *Context, p []byte) Poll[int] { return pn.p.PollWrite(cx, p) }

func (pn *Pinned[T, PT]) PollFlush(cx *Context) Poll[Unit] { return pn.p.PollFlush(cx) }

func (pn *Pinned[T, PT]) PollShutdown(cx *Context) Poll[Unit] { return pn.p.PollShutdown(cx) }
