// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import (
	"errors"
	"io"
)

// pollio keeps the two iox semantic errors so that readers and writers written
// in the iox style can be lifted into the poll contract and back.
//
// Mapping:
//   - ErrWouldBlock <-> Pending (waker registered, retry after readiness).
//   - ErrMore: progress now, more to follow. Treated as Ready when n > 0.

// ErrWouldBlock means "no further progress without waiting".
// Linux analogy: EAGAIN/EWOULDBLOCK.
var ErrWouldBlock = errors.New("io: would block")

// ErrMore means "this operation remains active; more completions will follow".
var ErrMore = errors.New("io: expect more")

// ErrShortWrite is returned by tee helpers when the side writer accepted
// fewer bytes than it was given.
var ErrShortWrite = io.ErrShortWrite

// ErrNoProgress is returned by NonBlockingWriter when a stream reports
// Ready(0) for a non-empty buffer, which the contract forbids.
var ErrNoProgress = io.ErrNoProgress
