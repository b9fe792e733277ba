// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import "code.hybscloud.com/pollio/task"

// Infallible marks a stream whose operations never fail. Every Poll it
// returns is either Ready with a nil error or Pending, so callers that detect
// it may skip their error paths.
type Infallible interface {
	NeverFails()
}

// BufferSink is a growable in-memory AsyncWriter. PollWrite always accepts
// the whole buffer; PollFlush and PollShutdown always succeed. It never
// returns Pending and never fails.
//
// The zero value is an empty sink ready to use.
type BufferSink struct {
	buf []byte
}

var (
	_ AsyncWriter = (*BufferSink)(nil)
	_ Infallible  = (*BufferSink)(nil)
)

// PollWrite appends p and returns Ready(len(p)).
func (s *BufferSink) PollWrite(_ *Context, p []byte) Poll[int] {
	s.buf = append(s.buf, p...)
	return task.Ready(len(p))
}

// PollFlush returns Ready.
func (s *BufferSink) PollFlush(*Context) Poll[Unit] { return readyUnit }

// PollShutdown returns Ready. Writes after shutdown are still accepted.
func (s *BufferSink) PollShutdown(*Context) Poll[Unit] { return readyUnit }

// NeverFails implements Infallible.
func (s *BufferSink) NeverFails() {}

// Write implements io.Writer with the same semantics as PollWrite.
func (s *BufferSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// Bytes returns the accumulated contents. The slice aliases the sink until
// the next write or Reset.
func (s *BufferSink) Bytes() []byte { return s.buf }

// String returns the accumulated contents as a string.
func (s *BufferSink) String() string { return string(s.buf) }

// Len returns the number of accumulated bytes.
func (s *BufferSink) Len() int { return len(s.buf) }

// Reset empties the sink and keeps its capacity.
func (s *BufferSink) Reset() { s.buf = s.buf[:0] }
