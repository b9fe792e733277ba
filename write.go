// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import "code.hybscloud.com/pollio/task"

// AsyncWriter is implemented by streams that accept output without blocking,
// flush it toward their destination and shut down in an orderly way.
//
// PollWrite contract:
//   - Ready(n): the first n bytes of p were accepted, 1 <= n <= len(p) for a
//     non-empty p. Partial acceptance is normal. Ready(0) is reserved for an
//     empty p.
//   - Pending: zero bytes were accepted; the waker of cx is registered.
//   - Bytes accepted by successive calls are transmitted in call order.
//
// PollFlush returns Ready once every previously accepted byte has been handed
// to the transport (not necessarily received by a peer). It may return
// Pending repeatedly while the transport drains.
//
// PollShutdown begins or continues an orderly close and returns Ready once it
// is complete. Calling it again after Ready must not panic. Writing or
// flushing after shutdown is the caller's mistake and is not guarded against.
type AsyncWriter interface {
	PollWrite(cx *Context, p []byte) Poll[int]
	PollFlush(cx *Context) Poll[Unit]
	PollShutdown(cx *Context) Poll[Unit]
}

// Buf is a cursor over an in-progress write buffer.
//
// Chunk returns the leading contiguous region of unconsumed bytes; it is empty
// only when Remaining is zero. Advance marks n leading bytes as consumed and
// panics if n exceeds Remaining.
type Buf interface {
	Remaining() int
	Chunk() []byte
	Advance(n int)
}

// PollWriteBuf writes the next chunk of b to w and advances b by exactly the
// number of bytes accepted.
//
// If b has nothing left it returns Ready(0) without calling PollWrite, so a
// transport never sees a zero-length write from this helper. Pending and
// failures are returned unchanged and leave b untouched.
func PollWriteBuf(w AsyncWriter, cx *Context, b Buf) Poll[int] {
	if b.Remaining() == 0 {
		return task.Ready(0)
	}
	p := w.PollWrite(cx, b.Chunk())
	if n, err, ok := p.Get(); ok && err == nil {
		b.Advance(n)
	}
	return p
}
