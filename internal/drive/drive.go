// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package drive runs poll functions to completion on the calling goroutine.
//
// It is the minimal executor used by the pollcat command and by tests: a
// single task, woken through a channel, parked between polls.
package drive

import (
	"context"

	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/task"
)

// Block polls f until it returns Ready, parking on the waker between polls.
// It returns ctx.Err() if ctx is done while f is Pending.
func Block[T any](ctx context.Context, f func(cx *task.Context) task.Poll[T]) (T, error) {
	w := task.NewChanWaker()
	cx := task.NewContext(w)
	for {
		if v, err, ok := f(cx).Get(); ok {
			return v, err
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-w.C():
		}
	}
}

// Read performs one PollRead to completion.
func Read(ctx context.Context, r pollio.AsyncReader, p []byte) (int, error) {
	return Block(ctx, func(cx *task.Context) task.Poll[int] {
		return r.PollRead(cx, p)
	})
}

// ReadAll reads from r until end of stream.
func ReadAll(ctx context.Context, r pollio.AsyncReader) ([]byte, error) {
	var out []byte
	buf := make([]byte, 4096)
	for {
		n, err := Read(ctx, r, buf)
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, nil
		}
		out = append(out, buf[:n]...)
	}
}

// WriteAll writes every byte of p, retrying partial writes.
func WriteAll(ctx context.Context, w pollio.AsyncWriter, p []byte) (int, error) {
	c := pollio.NewCursor(p)
	_, err := Block(ctx, func(cx *task.Context) task.Poll[pollio.Unit] {
		for c.Remaining() > 0 {
			v, err, ok := pollio.PollWriteBuf(w, cx, c).Get()
			if !ok {
				return task.Pending[pollio.Unit]()
			}
			if err != nil {
				return task.Fail[pollio.Unit](err)
			}
			if v == 0 {
				return task.Fail[pollio.Unit](pollio.ErrShortWrite)
			}
		}
		return task.Ready(pollio.Unit{})
	})
	return c.Consumed(), err
}

// Flush drives PollFlush to completion.
func Flush(ctx context.Context, w pollio.AsyncWriter) error {
	_, err := Block(ctx, w.PollFlush)
	return err
}

// Shutdown drives PollShutdown to completion.
func Shutdown(ctx context.Context, w pollio.AsyncWriter) error {
	_, err := Block(ctx, w.PollShutdown)
	return err
}

// Copy drives a Copier from src to dst and returns the byte count.
func Copy(ctx context.Context, dst pollio.AsyncWriter, src pollio.AsyncReader, buf []byte) (int64, error) {
	c := pollio.NewCopier(dst, src, buf)
	if _, err := Block(ctx, c.Poll); err != nil {
		return c.Written(), err
	}
	return c.Written(), nil
}
