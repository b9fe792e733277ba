// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fdio

import "errors"

var (
	// ErrClosed is returned by operations on a closed Stream or Reactor.
	ErrClosed = errors.New("fdio: closed")

	// ErrRunning is returned by Run when the reactor loop is already active.
	ErrRunning = errors.New("fdio: reactor already running")
)
