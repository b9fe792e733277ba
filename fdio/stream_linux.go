// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package fdio

import (
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/task"
)

// Stream is a non-blocking file descriptor driven through a Reactor.
//
// PollRead and PollWrite may be driven by different tasks, but each direction
// by one task at a time. Close must not race an in-flight poll; a task parked
// on Pending is woken by Close and then fails with ErrClosed.
type Stream struct {
	fd   int
	r    *Reactor
	reg  *registration // nil when the fd is not pollable
	opts options

	flags int // file status flags before O_NONBLOCK

	mu     sync.Mutex
	closed bool
	wrShut bool
	fdGone bool // fd released by PollShutdown on a non-socket
}

var _ pollio.AsyncReadWriter = (*Stream)(nil)

// Open switches fd to non-blocking mode and registers it with r. The Stream
// owns fd from then on.
func Open(r *Reactor, fd int, opts ...Option) (*Stream, error) {
	if r != nil {
		opts = append([]Option{WithLogger(r.opts.log)}, opts...)
	}
	o := buildOptions(opts)
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return nil, os.NewSyscallError("fcntl", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, os.NewSyscallError("setnonblock", err)
	}
	s := &Stream{fd: fd, r: r, opts: o, flags: flags}
	if r != nil {
		reg, err := r.register(fd)
		if err != nil {
			s.restoreFlags()
			return nil, err
		}
		s.reg = reg
	}
	return s, nil
}

// Pipe returns the two ends of a non-blocking pipe(2) registered with r.
func Pipe(r *Reactor, opts ...Option) (*Stream, *Stream, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, nil, os.NewSyscallError("pipe2", err)
	}
	rd, err := Open(r, p[0], opts...)
	if err != nil {
		unix.Close(p[0])
		unix.Close(p[1])
		return nil, nil, err
	}
	wr, err := Open(r, p[1], opts...)
	if err != nil {
		rd.Close()
		unix.Close(p[1])
		return nil, nil, err
	}
	return rd, wr, nil
}

// Fd returns the underlying descriptor.
func (s *Stream) Fd() int { return s.fd }

// Pollable reports whether the descriptor is registered with a reactor.
func (s *Stream) Pollable() bool { return s.reg != nil }

// PollRead implements pollio.AsyncReader. read(2) returning 0 on a non-empty
// buffer is end of stream and yields Ready(0).
func (s *Stream) PollRead(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if len(p) == 0 && s.opts.zeroRead == pollio.ZeroReadImmediate {
		return task.Ready(0)
	}
	return s.poll(cx, p, s.read, s.readable())
}

// PollWrite implements pollio.AsyncWriter.
func (s *Stream) PollWrite(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if len(p) == 0 {
		return task.Ready(0)
	}
	if s.isWriteShut() {
		return task.Fail[int](ErrClosed)
	}
	res := s.poll(cx, p, s.write, s.writable())
	if res.IsReady() && !res.IsFailure() && res.Value() == 0 {
		return task.Fail[int](pollio.ErrShortWrite)
	}
	return res
}

// PollFlush implements pollio.AsyncWriter. A Stream keeps no user-space
// buffer, so flush completes at once unless the write side is gone.
func (s *Stream) PollFlush(*pollio.Context) pollio.Poll[pollio.Unit] {
	if s.isWriteShut() {
		return task.Fail[pollio.Unit](ErrClosed)
	}
	return task.Ready(pollio.Unit{})
}

// PollShutdown implements pollio.AsyncWriter. Sockets get shutdown(SHUT_WR);
// other descriptors, such as the write end of a pipe, are closed so that the
// peer observes end of stream. Later calls return Ready.
func (s *Stream) PollShutdown(*pollio.Context) pollio.Poll[pollio.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wrShut {
		return task.Ready(pollio.Unit{})
	}
	if s.closed {
		return task.Fail[pollio.Unit](ErrClosed)
	}
	s.wrShut = true
	err := unix.Shutdown(s.fd, unix.SHUT_WR)
	switch {
	case err == nil, errors.Is(err, unix.ENOTCONN):
		return task.Ready(pollio.Unit{})
	case errors.Is(err, unix.ENOTSOCK):
		s.fdGone = true
		if err := s.release(); err != nil {
			return task.Fail[pollio.Unit](err)
		}
		return task.Ready(pollio.Unit{})
	default:
		return task.Fail[pollio.Unit](os.NewSyscallError("shutdown", err))
	}
}

// Close deregisters and closes the descriptor. It is safe to call more than
// once.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.fdGone {
		return nil
	}
	return s.release()
}

// release runs once, with s.mu held.
func (s *Stream) release() error {
	if s.reg != nil {
		s.r.deregister(s.reg)
	}
	s.restoreFlags()
	s.opts.log.Debug("fd closed", zap.Int("fd", s.fd))
	return os.NewSyscallError("close", unix.Close(s.fd))
}

func (s *Stream) restoreFlags() {
	if !s.opts.keepFlags || s.flags&unix.O_NONBLOCK != 0 {
		return
	}
	if err := unix.SetNonblock(s.fd, false); err != nil {
		s.opts.log.Debug("restore flags", zap.Int("fd", s.fd), zap.Error(err))
	}
}

func (s *Stream) isWriteShut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wrShut || s.closed
}

func (s *Stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed || s.fdGone
}

func (s *Stream) readable() *task.AtomicWaker {
	if s.reg == nil {
		return nil
	}
	return &s.reg.readable
}

func (s *Stream) writable() *task.AtomicWaker {
	if s.reg == nil {
		return nil
	}
	return &s.reg.writable
}

// poll runs op, and on EAGAIN arms slot and runs it once more.
func (s *Stream) poll(cx *pollio.Context, p []byte, op func([]byte) (int, error), slot *task.AtomicWaker) pollio.Poll[int] {
	if s.isClosed() {
		return task.Fail[int](ErrClosed)
	}
	n, err := op(p)
	if !errors.Is(err, unix.EAGAIN) {
		return done(n, err)
	}
	if slot == nil {
		// Not pollable but still not ready; let the scheduler re-poll.
		cx.Wake()
		return task.Pending[int]()
	}
	slot.Register(cx.Waker())
	if s.isClosed() {
		return task.Fail[int](ErrClosed)
	}
	n, err = op(p)
	if errors.Is(err, unix.EAGAIN) {
		return task.Pending[int]()
	}
	return done(n, err)
}

func done(n int, err error) pollio.Poll[int] {
	if err != nil {
		return task.Fail[int](err)
	}
	return task.Ready(n)
}

func (s *Stream) read(p []byte) (int, error) {
	for {
		n, err := unix.Read(s.fd, p)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, err
		default:
			return 0, os.NewSyscallError("read", err)
		}
	}
}

func (s *Stream) write(p []byte) (int, error) {
	for {
		n, err := unix.Write(s.fd, p)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, err
		default:
			return 0, os.NewSyscallError("write", err)
		}
	}
}
