// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio_test

import "errors"

var (
	errFull  = errors.New("writer full")
	errReset = errors.New("connection reset")
)
