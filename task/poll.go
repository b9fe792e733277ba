// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "errors"

// ErrNilFailure replaces a nil error passed to Fail so that a failed Poll is
// never mistaken for a successful one.
var ErrNilFailure = errors.New("task: failure without error")

// Outcome classifies a Poll.
//
// OutcomeReady:    the operation completed successfully.
// OutcomeFailure:  the operation completed with an error.
// OutcomePending:  no progress is possible now; re-poll after the waker fires.
type Outcome uint8

const (
	OutcomeFailure Outcome = iota
	OutcomeReady
	OutcomePending
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "Ready"
	case OutcomePending:
		return "Pending"
	default:
		return "Failure"
	}
}

// Poll is the result of a single non-blocking attempt: Ready with a value,
// Ready with a failure, or Pending. The zero value is Pending.
type Poll[T any] struct {
	value T
	err   error
	ready bool
}

// Ready returns a successful Poll carrying v.
func Ready[T any](v T) Poll[T] { return Poll[T]{value: v, ready: true} }

// Fail returns a failed Poll. A nil err is replaced by ErrNilFailure.
func Fail[T any](err error) Poll[T] {
	if err == nil {
		err = ErrNilFailure
	}
	return Poll[T]{err: err, ready: true}
}

// Pending returns a Poll that made no progress.
func Pending[T any]() Poll[T] { return Poll[T]{} }

// IsReady reports whether the operation completed, successfully or not.
func (p Poll[T]) IsReady() bool { return p.ready }

// IsPending reports whether the operation made no progress.
func (p Poll[T]) IsPending() bool { return !p.ready }

// IsFailure reports whether the operation completed with an error.
func (p Poll[T]) IsFailure() bool { return p.ready && p.err != nil }

// Value returns the success value, or the zero value for Pending and failures.
func (p Poll[T]) Value() T { return p.value }

// Err returns the failure, or nil for Pending and successes.
func (p Poll[T]) Err() error { return p.err }

// Get unpacks p. ok is false when p is Pending.
func (p Poll[T]) Get() (v T, err error, ok bool) { return p.value, p.err, p.ready }

// Outcome classifies p.
func (p Poll[T]) Outcome() Outcome {
	switch {
	case !p.ready:
		return OutcomePending
	case p.err != nil:
		return OutcomeFailure
	default:
		return OutcomeReady
	}
}

// String renders p for diagnostics and test failures.
func (p Poll[T]) String() string {
	switch p.Outcome() {
	case OutcomePending:
		return "Pending"
	case OutcomeFailure:
		return "Ready(Err(" + p.err.Error() + "))"
	default:
		return "Ready(Ok)"
	}
}

// Map converts the success value of p. Pending and failures pass through.
func Map[T, U any](p Poll[T], f func(T) U) Poll[U] {
	if !p.ready {
		return Poll[U]{}
	}
	if p.err != nil {
		return Poll[U]{err: p.err, ready: true}
	}
	return Poll[U]{value: f(p.value), ready: true}
}

// MapErr converts the failure of p. Pending and successes pass through.
func MapErr[T any](p Poll[T], f func(error) error) Poll[T] {
	if p.ready && p.err != nil {
		return Fail[T](f(p.err))
	}
	return p
}
