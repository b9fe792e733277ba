// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package aio is a poll-based byte stream contract with a fixed, concrete
// error type. It shares task.Context and task.Poll with package pollio but
// evolves independently: writers are closed with PollClose, and every failure
// is an *Error carrying a Kind.
//
// Use package compat to view an aio stream as a pollio stream or the reverse.
package aio

import "code.hybscloud.com/pollio/task"

// Unit is the success value of PollFlush and PollClose.
type Unit = struct{}

// Reader copies available input into p without blocking.
//
// Ready(n) copies n bytes to the front of p; Ready(0) with a non-empty p is
// end of stream. Pending copies nothing and registers the waker of cx.
// Failures are always *Error.
type Reader interface {
	PollRead(cx *task.Context, p []byte) task.Poll[int]
}

// Writer accepts output without blocking.
//
// PollWrite returns how many leading bytes of p were accepted, at least one
// for a non-empty p. PollFlush completes once accepted bytes are handed to
// the transport. PollClose flushes and closes the write side; calling it
// again after it completed returns Ready. Failures are always *Error.
type Writer interface {
	PollWrite(cx *task.Context, p []byte) task.Poll[int]
	PollFlush(cx *task.Context) task.Poll[Unit]
	PollClose(cx *task.Context) task.Poll[Unit]
}

// ReadWriter groups Reader and Writer.
type ReadWriter interface {
	Reader
	Writer
}
