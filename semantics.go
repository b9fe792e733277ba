// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import (
	"errors"

	"code.hybscloud.com/pollio/task"
)

// IsWouldBlock reports whether err carries the would-block semantic.
// It returns true for ErrWouldBlock and wrappers (via errors.Is).
func IsWouldBlock(err error) bool { return errors.Is(err, ErrWouldBlock) }

// IsMore reports whether err carries the multi-shot semantic.
func IsMore(err error) bool { return errors.Is(err, ErrMore) }

// IsNonFailure reports whether err should be treated as a non-failure in
// non-blocking control flow: nil, ErrWouldBlock, or ErrMore.
func IsNonFailure(err error) bool { return err == nil || IsWouldBlock(err) || IsMore(err) }

// Classify maps an iox-style error to the Outcome a poll operation would
// report for it:
//   - nil, ErrMore  -> OutcomeReady
//   - ErrWouldBlock -> OutcomePending
//   - anything else -> OutcomeFailure
//
// Note: io.EOF classifies as a failure here. Streams report end-of-stream as
// Ready(0), never as an error.
func Classify(err error) Outcome {
	switch {
	case err == nil, IsMore(err):
		return task.OutcomeReady
	case IsWouldBlock(err):
		return task.OutcomePending
	default:
		return task.OutcomeFailure
	}
}

// Lift converts an iox-style (value, error) pair into a Poll using Classify.
func Lift[T any](v T, err error) Poll[T] {
	switch Classify(err) {
	case task.OutcomeReady:
		return task.Ready(v)
	case task.OutcomePending:
		return task.Pending[T]()
	default:
		return task.Fail[T](err)
	}
}

// Lower converts a Poll into an iox-style (value, error) pair. Pending becomes
// ErrWouldBlock.
func Lower[T any](p Poll[T]) (T, error) {
	v, err, ok := p.Get()
	if !ok {
		return v, ErrWouldBlock
	}
	return v, err
}
