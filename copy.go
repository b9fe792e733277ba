// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import (
	"io"

	"go.uber.org/zap"

	"code.hybscloud.com/pollio/task"
)

// DefaultCopyBufferSize is the staging buffer size used by NewCopier when no
// buffer is supplied.
const DefaultCopyBufferSize = 32 * 1024

// Copier copies from an AsyncReader to an AsyncWriter until end of stream.
// It is a re-pollable operation: Poll returns Pending whenever either side
// does, and the bytes already read but not yet written are kept inside the
// Copier until the next Poll.
//
// Semantics:
//   - Bytes are written in the order they were read, through PollWriteBuf.
//   - When the reader goes Pending with accepted-but-unflushed output, the
//     writer is flushed once so that data does not sit in a buffer while the
//     copy waits for input.
//   - At end of stream the writer is flushed; Poll then returns Ready(total).
//     The writer is never shut down.
//   - A writer that returns Ready(0) for a non-empty buffer breaks the
//     contract; the copy fails with io.ErrShortWrite instead of spinning.
type Copier struct {
	dst       AsyncWriter
	src       AsyncReader
	buf       []byte
	cur       Cursor
	written   int64
	eof       bool
	needFlush bool
}

// NewCopier returns a Copier staging through buf. If buf is nil a buffer of
// DefaultCopyBufferSize is allocated. If buf has zero length NewCopier panics.
func NewCopier(dst AsyncWriter, src AsyncReader, buf []byte) *Copier {
	if buf != nil && len(buf) == 0 {
		panic("empty buffer in NewCopier")
	}
	if buf == nil {
		buf = make([]byte, DefaultCopyBufferSize)
	}
	return &Copier{dst: dst, src: src, buf: buf}
}

// Written returns the number of bytes accepted by the writer so far.
func (c *Copier) Written() int64 { return c.written }

// Poll advances the copy.
func (c *Copier) Poll(cx *Context) Poll[int64] {
	for {
		for c.cur.Remaining() > 0 {
			n, err, ok := PollWriteBuf(c.dst, cx, &c.cur).Get()
			if !ok {
				return task.Pending[int64]()
			}
			if err != nil {
				return task.Fail[int64](err)
			}
			if n == 0 {
				Logger().Debug("pollio: writer accepted zero bytes",
					zap.Int("remaining", c.cur.Remaining()))
				return task.Fail[int64](io.ErrShortWrite)
			}
			c.written += int64(n)
			c.needFlush = true
		}

		if c.eof {
			if _, err, ok := c.dst.PollFlush(cx).Get(); !ok {
				return task.Pending[int64]()
			} else if err != nil {
				return task.Fail[int64](err)
			}
			c.needFlush = false
			return task.Ready(c.written)
		}

		n, err, ok := c.src.PollRead(cx, c.buf).Get()
		if !ok {
			if c.needFlush {
				if _, ferr, fok := c.dst.PollFlush(cx).Get(); fok {
					if ferr != nil {
						return task.Fail[int64](ferr)
					}
					c.needFlush = false
				}
			}
			return task.Pending[int64]()
		}
		if err != nil {
			return task.Fail[int64](err)
		}
		if n == 0 {
			c.eof = true
			continue
		}
		c.cur.Reset(c.buf[:n])
	}
}
