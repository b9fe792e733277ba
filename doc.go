// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pollio defines a poll-based contract for non-blocking byte streams
// and the small set of helpers that sit directly on top of it.
//
// Contract
//   - AsyncReader.PollRead copies available input into a caller buffer.
//   - AsyncWriter.PollWrite accepts output, PollFlush drives it toward the
//     transport, PollShutdown closes the stream in an orderly way.
//
// Every operation returns a task.Poll: Ready(value), Ready(failure) or Pending.
// Pending means nothing happened and the waker carried by the task.Context has
// been registered with the stream's readiness source; the caller polls again
// only after that waker fires. No operation ever blocks.
//
// Interop with iox-style code
//
// Non-blocking io.Reader/io.Writer implementations that report ErrWouldBlock
// can be lifted into the contract with FromReader and FromWriter, and any
// contract stream can be lowered back with NonBlockingReader and
// NonBlockingWriter. The compat sub-package bridges this contract with the
// aio contract.
//
// Note: pollio never drives a poll to completion. Scheduling, timeouts and
// retry policy belong to the caller.
package pollio
