// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package compat

import (
	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/aio"
	"code.hybscloud.com/pollio/task"
)

// ToAIOError wraps err as an *aio.Error of KindOther. No finer
// classification is attempted; the original stays reachable through
// errors.Unwrap, errors.Is and errors.As, and its text is kept as is.
func ToAIOError(err error) error {
	return aio.NewError(aio.KindOther, err)
}

func toAIO[T any](p task.Poll[T]) task.Poll[T] { return task.MapErr(p, ToAIOError) }

// AIOReader views a pollio.AsyncReader as an aio.Reader.
type AIOReader[R pollio.AsyncReader] struct {
	inner R
}

// NewAIOReader wraps r.
func NewAIOReader[R pollio.AsyncReader](r R) *AIOReader[R] { return &AIOReader[R]{inner: r} }

func (c *AIOReader[R]) PollRead(cx *task.Context, p []byte) task.Poll[int] {
	return toAIO(c.inner.PollRead(cx, p))
}

// AIOWriter views a pollio.AsyncWriter as an aio.Writer.
type AIOWriter[W pollio.AsyncWriter] struct {
	inner W
}

// NewAIOWriter wraps w.
func NewAIOWriter[W pollio.AsyncWriter](w W) *AIOWriter[W] { return &AIOWriter[W]{inner: w} }

func (c *AIOWriter[W]) PollWrite(cx *task.Context, p []byte) task.Poll[int] {
	return toAIO(c.inner.PollWrite(cx, p))
}

func (c *AIOWriter[W]) PollFlush(cx *task.Context) task.Poll[aio.Unit] {
	return toAIO(c.inner.PollFlush(cx))
}

func (c *AIOWriter[W]) PollClose(cx *task.Context) task.Poll[aio.Unit] {
	return toAIO(c.inner.PollShutdown(cx))
}

// AIOReadWriter views a pollio.AsyncReadWriter as an aio.ReadWriter.
type AIOReadWriter[RW pollio.AsyncReadWriter] struct {
	inner RW
}

// NewAIOReadWriter wraps rw.
func NewAIOReadWriter[RW pollio.AsyncReadWriter](rw RW) *AIOReadWriter[RW] {
	return &AIOReadWriter[RW]{inner: rw}
}

func (c *AIOReadWriter[RW]) PollRead(cx *task.Context, p []byte) task.Poll[int] {
	return toAIO(c.inner.PollRead(cx, p))
}

func (c *AIOReadWriter[RW]) PollWrite(cx *task.Context, p []byte) task.Poll[int] {
	return toAIO(c.inner.PollWrite(cx, p))
}

func (c *AIOReadWriter[RW]) PollFlush(cx *task.Context) task.Poll[aio.Unit] {
	return toAIO(c.inner.PollFlush(cx))
}

func (c *AIOReadWriter[RW]) PollClose(cx *task.Context) task.Poll[aio.Unit] {
	return toAIO(c.inner.PollShutdown(cx))
}

var (
	_ aio.Reader     = (*AIOReader[*pollio.Reader])(nil)
	_ aio.Writer     = (*AIOWriter[*pollio.BufferSink])(nil)
	_ aio.ReadWriter = (*AIOReadWriter[pollio.AsyncReadWriter])(nil)
)
