// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fdio implements pollio.AsyncReader and pollio.AsyncWriter over
// non-blocking file descriptors.
//
// A Reactor owns an edge-triggered epoll instance and wakes the tasks parked
// on each registered descriptor. A Stream performs the syscall, and on EAGAIN
// registers the caller's waker with the reactor and retries once before
// reporting Pending.
//
// Descriptors that epoll refuses (regular files) are served without
// registration; they never report EAGAIN.
package fdio
