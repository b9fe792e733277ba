// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package fdio

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"code.hybscloud.com/pollio/internal/backoff"
	"code.hybscloud.com/pollio/task"
)

// Reactor is an edge-triggered epoll loop. Streams register their descriptors
// with it; Run dispatches readiness to the wakers parked on them.
type Reactor struct {
	epfd int
	evfd int // eventfd used to interrupt epoll_wait
	opts options

	mu      sync.Mutex
	regs    map[int32]*registration
	closed  bool
	running bool
	exited  chan struct{}
}

// registration holds the per-direction waker slots of one descriptor.
type registration struct {
	fd       int
	readable task.AtomicWaker
	writable task.AtomicWaker
}

func (g *registration) wakeAll() {
	g.readable.Wake()
	g.writable.Wake()
}

// NewReactor creates the epoll instance. Call Run to start dispatching and
// Close to release it.
func NewReactor(opts ...Option) (*Reactor, error) {
	o := buildOptions(opts)
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("epoll_create1", err)
	}
	evfd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(epfd)
		return nil, os.NewSyscallError("eventfd", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(evfd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, evfd, &ev); err != nil {
		unix.Close(evfd)
		unix.Close(epfd)
		return nil, os.NewSyscallError("epoll_ctl", err)
	}
	return &Reactor{
		epfd: epfd,
		evfd: evfd,
		opts: o,
		regs: make(map[int32]*registration),
	}, nil
}

// register adds fd to the interest set. It returns (nil, nil) for descriptors
// epoll does not support; those are always ready.
func (r *Reactor) register(fd int) (*registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	ev := unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLOUT | unix.EPOLLRDHUP | unix.EPOLLET,
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		if errors.Is(err, unix.EPERM) {
			r.opts.log.Debug("fd not pollable, serving without reactor", zap.Int("fd", fd))
			return nil, nil
		}
		return nil, os.NewSyscallError("epoll_ctl", err)
	}
	g := &registration{fd: fd}
	r.regs[int32(fd)] = g
	return g, nil
}

// deregister removes g before its descriptor is closed and wakes any parked
// task so that it observes the closure.
func (r *Reactor) deregister(g *registration) {
	r.mu.Lock()
	if !r.closed {
		delete(r.regs, int32(g.fd))
		if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, g.fd, nil); err != nil {
			r.opts.log.Debug("epoll_ctl del", zap.Int("fd", g.fd), zap.Error(err))
		}
	}
	r.mu.Unlock()
	g.wakeAll()
}

// Run dispatches readiness until ctx is done or the reactor is closed. It
// returns nil after Close and ctx.Err() on cancellation. Transient
// epoll_wait failures are retried with back-off.
func (r *Reactor) Run(ctx context.Context) error {
	r.mu.Lock()
	switch {
	case r.closed:
		r.mu.Unlock()
		return ErrClosed
	case r.running:
		r.mu.Unlock()
		return ErrRunning
	}
	r.running = true
	r.exited = make(chan struct{})
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		close(r.exited)
		r.mu.Unlock()
	}()

	stop := context.AfterFunc(ctx, r.interrupt)
	defer stop()

	events := make([]unix.EpollEvent, r.opts.maxEvents)
	var bo backoff.Backoff
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.isClosed() {
			return nil
		}
		n, err := unix.EpollWait(r.epfd, events, -1)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			r.opts.log.Warn("epoll_wait failed", zap.Error(err), zap.Int("block", bo.Block()))
			if err := bo.Wait(ctx); err != nil {
				return err
			}
			continue
		}
		bo.Reset()
		r.dispatch(events[:n])
	}
}

func (r *Reactor) dispatch(events []unix.EpollEvent) {
	wake := make([]*task.AtomicWaker, 0, 2*len(events))
	r.mu.Lock()
	for i := range events {
		ev := &events[i]
		if int(ev.Fd) == r.evfd {
			r.drainEventfd()
			continue
		}
		g := r.regs[ev.Fd]
		if g == nil {
			continue
		}
		if ev.Events&(unix.EPOLLIN|unix.EPOLLRDHUP|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			wake = append(wake, &g.readable)
		}
		if ev.Events&(unix.EPOLLOUT|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			wake = append(wake, &g.writable)
		}
	}
	r.mu.Unlock()
	for _, w := range wake {
		w.Wake()
	}
}

func (r *Reactor) interrupt() {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], 1)
	if _, err := unix.Write(r.evfd, b[:]); err != nil && !errors.Is(err, unix.EAGAIN) {
		r.opts.log.Debug("eventfd write", zap.Error(err))
	}
}

func (r *Reactor) drainEventfd() {
	var b [8]byte
	for {
		if _, err := unix.Read(r.evfd, b[:]); err != nil {
			return
		}
	}
}

func (r *Reactor) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close stops Run, wakes every registered task, and releases the epoll
// instance. It is safe to call more than once.
func (r *Reactor) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	regs := r.regs
	r.regs = nil
	running, exited := r.running, r.exited
	r.mu.Unlock()

	for _, g := range regs {
		g.wakeAll()
	}
	r.interrupt()
	if running {
		<-exited
	}
	return errors.Join(
		os.NewSyscallError("close", unix.Close(r.evfd)),
		os.NewSyscallError("close", unix.Close(r.epfd)),
	)
}
