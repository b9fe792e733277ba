// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import (
	"io"

	"code.hybscloud.com/pollio/task"
)

// TeeReader returns an AsyncReader that writes to w what it reads from r.
//   - Pending and failures from r are returned unchanged.
//   - If writing to w fails, that error is returned; the bytes already taken
//     from r are lost to the caller.
//   - Short writes to w are reported as ErrShortWrite.
//
// w is written synchronously and should not block; BufferSink is a natural fit.
func TeeReader(r AsyncReader, w io.Writer) AsyncReader {
	return teeReader{r: r, w: w}
}

type teeReader struct {
	r AsyncReader
	w io.Writer
}

func (t teeReader) PollRead(cx *Context, p []byte) Poll[int] {
	res := t.r.PollRead(cx, p)
	n, err, ok := res.Get()
	if !ok || err != nil || n == 0 {
		return res
	}
	if nw, ew := t.w.Write(p[:n]); ew != nil {
		return task.Fail[int](ew)
	} else if nw != n {
		return task.Fail[int](ErrShortWrite)
	}
	return res
}

// TeeWriter returns an AsyncWriter that duplicates to tee every byte primary
// accepts. Only the accepted prefix is duplicated, so tee sees exactly the
// stream primary sees. Flush and shutdown go to primary only.
func TeeWriter(primary AsyncWriter, tee io.Writer) AsyncWriter {
	return teeWriter{w: primary, tee: tee}
}

type teeWriter struct {
	w   AsyncWriter
	tee io.Writer
}

func (t teeWriter) PollWrite(cx *Context, p []byte) Poll[int] {
	res := t.w.PollWrite(cx, p)
	n, err, ok := res.Get()
	if !ok || err != nil || n == 0 {
		return res
	}
	if nw, ew := t.tee.Write(p[:n]); ew != nil {
		return task.Fail[int](ew)
	} else if nw != n {
		return task.Fail[int](ErrShortWrite)
	}
	return res
}

func (t teeWriter) PollFlush(cx *Context) Poll[Unit] { return t.w.PollFlush(cx) }

func (t teeWriter) PollShutdown(cx *Context) Poll[Unit] { return t.w.PollShutdown(cx) }
