// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync"

// AtomicWaker is a single waker slot. Register replaces whatever was stored;
// Wake takes the stored waker and invokes it. The zero value is empty and
// ready to use.
//
// Readiness sources keep one AtomicWaker per direction (read, write) so that
// the last task to poll is the one that gets woken.
type AtomicWaker struct {
	mu sync.Mutex
	w  Waker
}

// Register stores w, superseding any earlier registration.
func (a *AtomicWaker) Register(w Waker) {
	a.mu.Lock()
	a.w = w
	a.mu.Unlock()
}

// Take removes and returns the stored waker, or nil.
func (a *AtomicWaker) Take() Waker {
	a.mu.Lock()
	w := a.w
	a.w = nil
	a.mu.Unlock()
	return w
}

// Wake invokes and clears the stored waker. It reports whether a waker was
// registered. The waker runs outside the lock.
func (a *AtomicWaker) Wake() bool {
	w := a.Take()
	if w == nil {
		return false
	}
	w.Wake()
	return true
}

// ChanWaker signals a buffered channel on Wake. Multiple wakes before the
// receiver drains the channel collapse into one notification.
type ChanWaker struct {
	c chan struct{}
}

// NewChanWaker returns an empty ChanWaker.
func NewChanWaker() *ChanWaker { return &ChanWaker{c: make(chan struct{}, 1)} }

func (w *ChanWaker) Wake() {
	select {
	case w.c <- struct{}{}:
	default:
	}
}

// C returns the notification channel.
func (w *ChanWaker) C() <-chan struct{} { return w.c }

// Woken reports, without blocking, whether a wake is pending, and consumes it.
func (w *ChanWaker) Woken() bool {
	select {
	case <-w.c:
		return true
	default:
		return false
	}
}
