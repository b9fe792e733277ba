// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import "code.hybscloud.com/pollio/task"

// IDE note: pollio re-exports the scheduling primitives from package task so
// that stream implementations can stay in the "pollio" namespace. The aio
// contract imports task directly; both contracts share the same Context and
// Poll types.

// Context is passed to every poll operation and carries the caller's Waker.
//
// Context is an alias of task.Context.
type Context = task.Context

// Waker is invoked by a readiness source when a Pending operation may make
// progress.
//
// Waker is an alias of task.Waker.
type Waker = task.Waker

// Poll is the three-way result of a poll operation.
//
// Poll is an alias of task.Poll.
type Poll[T any] = task.Poll[T]

// Outcome classifies a Poll or an iox-style error.
//
// Outcome is an alias of task.Outcome.
type Outcome = task.Outcome

const (
	OutcomeFailure = task.OutcomeFailure
	OutcomeReady   = task.OutcomeReady
	OutcomePending = task.OutcomePending
)

// Unit is the success value of PollFlush and PollShutdown.
type Unit = struct{}

var (
	readyUnit   = task.Ready(Unit{})
	pendingUnit = task.Pending[Unit]()
)
