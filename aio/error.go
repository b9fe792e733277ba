// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aio

import "errors"

// Kind categorizes an Error.
type Kind uint8

const (
	// KindOther is an error that fits no finer category. Errors crossing in
	// from another contract always use it.
	KindOther Kind = iota
	KindBrokenPipe
	KindUnexpectedEOF
	KindInvalidInput
	KindClosed
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindBrokenPipe:
		return "broken pipe"
	case KindUnexpectedEOF:
		return "unexpected end of file"
	case KindInvalidInput:
		return "invalid input"
	case KindClosed:
		return "closed"
	default:
		return "Kind(unknown)"
	}
}

// Error is the only failure type of the aio contract.
type Error struct {
	Kind Kind
	Err  error
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrBrokenPipe    = &Error{Kind: KindBrokenPipe}
	ErrUnexpectedEOF = &Error{Kind: KindUnexpectedEOF}
	ErrInvalidInput  = &Error{Kind: KindInvalidInput}
	ErrClosed        = &Error{Kind: KindClosed}
)

// NewError returns an Error of kind wrapping cause. cause may be nil.
func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Error reports the cause's text unchanged, or the kind when there is none.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "aio: " + e.Kind.String()
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a kind sentinel (an *Error without cause)
// of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or KindOther.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}
