// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package fdio_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sys/unix"

	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/fdio"
	"code.hybscloud.com/pollio/internal/drive"
	"code.hybscloud.com/pollio/task"
)

func startReactor(t *testing.T) *fdio.Reactor {
	t.Helper()
	r, err := fdio.NewReactor(fdio.WithLogger(zaptest.NewLogger(t)), fdio.WithMaxEvents(8))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.ErrorIs(t, <-errc, context.Canceled)
		require.NoError(t, r.Close())
	})
	return r
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPipe_ReadPendingThenWoken(t *testing.T) {
	r := startReactor(t)
	rd, wr, err := fdio.Pipe(r)
	require.NoError(t, err)
	defer rd.Close()
	defer wr.Close()
	require.True(t, rd.Pollable())

	w := task.NewChanWaker()
	cx := task.NewContext(w)
	buf := make([]byte, 16)
	require.True(t, rd.PollRead(cx, buf).IsPending())

	res := wr.PollWrite(task.NewContext(task.NoopWaker()), []byte("ping"))
	require.True(t, res.IsReady())
	require.Equal(t, 4, res.Value())

	select {
	case <-w.C():
	case <-time.After(5 * time.Second):
		t.Fatal("reader was not woken")
	}
	res = rd.PollRead(cx, buf)
	require.True(t, res.IsReady())
	assert.Equal(t, "ping", string(buf[:res.Value()]))
}

func TestPipe_ShutdownIsEndOfStream(t *testing.T) {
	r := startReactor(t)
	ctx := testContext(t)
	rd, wr, err := fdio.Pipe(r)
	require.NoError(t, err)
	defer rd.Close()
	defer wr.Close()

	_, err = drive.WriteAll(ctx, wr, []byte("bye"))
	require.NoError(t, err)
	require.NoError(t, drive.Shutdown(ctx, wr))
	// Second shutdown is a no-op.
	require.NoError(t, drive.Shutdown(ctx, wr))

	got, err := drive.ReadAll(ctx, rd)
	require.NoError(t, err)
	assert.Equal(t, "bye", string(got))

	res := wr.PollWrite(task.NewContext(task.NoopWaker()), []byte("x"))
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Err(), fdio.ErrClosed)
}

func TestPipe_WriterBackpressure(t *testing.T) {
	r := startReactor(t)
	ctx := testContext(t)
	rd, wr, err := fdio.Pipe(r)
	require.NoError(t, err)
	defer rd.Close()
	defer wr.Close()

	// Larger than the default 64 KiB pipe buffer, so the writer must park.
	payload := bytes.Repeat([]byte("0123456789abcdef"), 32*1024)
	errc := make(chan error, 1)
	go func() {
		if _, err := drive.WriteAll(ctx, wr, payload); err != nil {
			errc <- err
			return
		}
		errc <- drive.Shutdown(ctx, wr)
	}()

	got, err := drive.ReadAll(ctx, rd)
	require.NoError(t, err)
	require.NoError(t, <-errc)
	assert.Equal(t, len(payload), len(got))
	assert.True(t, bytes.Equal(payload, got))
}

func TestStream_ZeroReadPolicy(t *testing.T) {
	r := startReactor(t)
	cx := task.NewContext(task.NoopWaker())

	rd, wr, err := fdio.Pipe(r)
	require.NoError(t, err)
	defer rd.Close()
	defer wr.Close()
	res := rd.PollRead(cx, nil)
	require.True(t, res.IsReady())
	assert.Equal(t, 0, res.Value())

	frd, fwr, err := fdio.Pipe(r, fdio.WithZeroRead(pollio.ZeroReadForward))
	require.NoError(t, err)
	defer frd.Close()
	defer fwr.Close()
	// read(2) with an empty buffer on an empty pipe still reports readiness
	// state; either outcome is legal but it must not fail.
	res = frd.PollRead(cx, []byte{})
	assert.False(t, res.IsFailure())
}

func TestStream_CloseWakesParkedReader(t *testing.T) {
	r := startReactor(t)
	rd, wr, err := fdio.Pipe(r)
	require.NoError(t, err)
	defer wr.Close()

	w := task.NewChanWaker()
	cx := task.NewContext(w)
	require.True(t, rd.PollRead(cx, make([]byte, 4)).IsPending())
	require.NoError(t, rd.Close())
	require.NoError(t, rd.Close())
	require.True(t, w.Woken())

	res := rd.PollRead(cx, make([]byte, 4))
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Err(), fdio.ErrClosed)
}

func TestStream_BrokenPipe(t *testing.T) {
	r := startReactor(t)
	rd, wr, err := fdio.Pipe(r)
	require.NoError(t, err)
	defer wr.Close()
	require.NoError(t, rd.Close())

	res := wr.PollWrite(task.NewContext(task.NoopWaker()), []byte("x"))
	require.True(t, res.IsFailure())
	assert.True(t, errors.Is(res.Err(), unix.EPIPE))
}

func TestOpen_RegularFileIsNotPolled(t *testing.T) {
	r := startReactor(t)
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("file contents"), 0o600))

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	require.NoError(t, err)
	s, err := fdio.Open(r, fd, fdio.WithRestoreFlags())
	require.NoError(t, err)
	defer s.Close()
	assert.False(t, s.Pollable())

	got, err := drive.ReadAll(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "file contents", string(got))
}

func TestCopier_PipeToPipe(t *testing.T) {
	r := startReactor(t)
	ctx := testContext(t)
	ard, awr, err := fdio.Pipe(r)
	require.NoError(t, err)
	brd, bwr, err := fdio.Pipe(r)
	require.NoError(t, err)
	defer ard.Close()
	defer brd.Close()

	payload := bytes.Repeat([]byte("copy "), 20000)
	go func() {
		_, _ = drive.WriteAll(ctx, awr, payload)
		_ = drive.Shutdown(ctx, awr)
	}()
	copied := make(chan error, 1)
	go func() {
		_, err := drive.Copy(ctx, bwr, ard, make([]byte, 4096))
		if err == nil {
			err = drive.Shutdown(ctx, bwr)
		}
		copied <- err
	}()

	got, err := drive.ReadAll(ctx, brd)
	require.NoError(t, err)
	require.NoError(t, <-copied)
	assert.Equal(t, len(payload), len(got))
}
