// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package task holds the scheduling primitives shared by every poll-based
// stream contract: the per-call Context carrying a Waker, the three-way Poll
// result, and single-slot waker registration.
//
// Nothing in this package drives a poll to completion. A scheduler supplies a
// Context on every call, and when a call returns Pending it waits until the
// registered Waker fires before polling again.
package task
