// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package compat bridges the pollio and aio stream contracts.
//
// Each wrapper holds exactly one value, taken by move at construction, and
// forwards every call to it with the same task.Context and buffer.
//
//   - Reader, Writer, ReadWriter view an aio stream as a pollio stream.
//     Errors already are *aio.Error and pass through untouched.
//     PollShutdown maps to PollClose.
//   - AIOReader, AIOWriter, AIOReadWriter view a pollio stream as an aio
//     stream. Every failure is wrapped in an *aio.Error of KindOther whose
//     cause is the original error. PollClose maps to PollShutdown.
//
// Pending and success values are never altered in either direction.
package compat

import (
	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/aio"
	"code.hybscloud.com/pollio/task"
)

// Reader views an aio.Reader as a pollio.AsyncReader.
type Reader[R aio.Reader] struct {
	inner R
}

// NewReader wraps r.
func NewReader[R aio.Reader](r R) *Reader[R] { return &Reader[R]{inner: r} }

func (c *Reader[R]) PollRead(cx *task.Context, p []byte) task.Poll[int] {
	return c.inner.PollRead(cx, p)
}

// Writer views an aio.Writer as a pollio.AsyncWriter.
type Writer[W aio.Writer] struct {
	inner W
}

// NewWriter wraps w.
func NewWriter[W aio.Writer](w W) *Writer[W] { return &Writer[W]{inner: w} }

func (c *Writer[W]) PollWrite(cx *task.Context, p []byte) task.Poll[int] {
	return c.inner.PollWrite(cx, p)
}

func (c *Writer[W]) PollFlush(cx *task.Context) task.Poll[pollio.Unit] {
	return c.inner.PollFlush(cx)
}

func (c *Writer[W]) PollShutdown(cx *task.Context) task.Poll[pollio.Unit] {
	return c.inner.PollClose(cx)
}

// ReadWriter views an aio.ReadWriter as a pollio.AsyncReadWriter.
type ReadWriter[RW aio.ReadWriter] struct {
	inner RW
}

// NewReadWriter wraps rw.
func NewReadWriter[RW aio.ReadWriter](rw RW) *ReadWriter[RW] {
	return &ReadWriter[RW]{inner: rw}
}

func (c *ReadWriter[RW]) PollRead(cx *task.Context, p []byte) task.Poll[int] {
	return c.inner.PollRead(cx, p)
}

func (c *ReadWriter[RW]) PollWrite(cx *task.Context, p []byte) task.Poll[int] {
	return c.inner.PollWrite(cx, p)
}

func (c *ReadWriter[RW]) PollFlush(cx *task.Context) task.Poll[pollio.Unit] {
	return c.inner.PollFlush(cx)
}

func (c *ReadWriter[RW]) PollShutdown(cx *task.Context) task.Poll[pollio.Unit] {
	return c.inner.PollClose(cx)
}

var (
	_ pollio.AsyncReader     = (*Reader[*aio.PipeReader])(nil)
	_ pollio.AsyncWriter     = (*Writer[*aio.PipeWriter])(nil)
	_ pollio.AsyncReadWriter = (*ReadWriter[aio.ReadWriter])(nil)
)
