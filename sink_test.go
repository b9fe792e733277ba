// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio_test

import (
	"fmt"
	"io"
	"testing"

	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/task"
)

func TestBufferSink_WriteFlushWrite(t *testing.T) {
	var s pollio.BufferSink
	cx := task.NewContext(nil)

	for _, chunk := range []string{"ab", "cd"} {
		if p := s.PollWrite(cx, []byte(chunk)); p.Value() != len(chunk) || p.Err() != nil {
			t.Fatalf("write %q: %v", chunk, p)
		}
	}
	if p := s.PollFlush(cx); p.Outcome() != pollio.OutcomeReady {
		t.Fatalf("flush: %v", p)
	}
	if p := s.PollWrite(cx, []byte("ef")); p.Value() != 2 {
		t.Fatalf("write ef: %v", p)
	}
	if got := s.String(); got != "abcdef" {
		t.Fatalf("want abcdef got %q", got)
	}
	if s.Len() != 6 || string(s.Bytes()) != "abcdef" {
		t.Fatalf("len=%d bytes=%q", s.Len(), s.Bytes())
	}
}

func TestBufferSink_AlwaysReady(t *testing.T) {
	var s pollio.BufferSink
	cx := task.NewContext(task.WakerFunc(func() { t.Fatalf("sink must never wake") }))

	for i := 0; i < 3; i++ {
		if p := s.PollFlush(cx); p.Outcome() != pollio.OutcomeReady {
			t.Fatalf("flush %d: %v", i, p)
		}
		if p := s.PollShutdown(cx); p.Outcome() != pollio.OutcomeReady {
			t.Fatalf("shutdown %d: %v", i, p)
		}
	}
	// Still usable after shutdown.
	if p := s.PollWrite(cx, []byte("z")); p.Value() != 1 {
		t.Fatalf("write after shutdown: %v", p)
	}
}

func TestBufferSink_NonEmptyWriteNeverZero(t *testing.T) {
	var s pollio.BufferSink
	cx := task.NewContext(nil)
	for n := 1; n <= 64; n *= 2 {
		if p := s.PollWrite(cx, make([]byte, n)); p.Value() == 0 {
			t.Fatalf("Ready(0) for %d-byte write", n)
		}
	}
	if p := s.PollWrite(cx, nil); p.Value() != 0 || !p.IsReady() {
		t.Fatalf("empty write: %v", p)
	}
}

func TestBufferSink_InfallibleAndWriter(t *testing.T) {
	var w pollio.AsyncWriter = &pollio.BufferSink{}
	if _, ok := w.(pollio.Infallible); !ok {
		t.Fatalf("BufferSink must be Infallible")
	}

	s := w.(*pollio.BufferSink)
	if _, err := fmt.Fprintf(s, "n=%d", 5); err != nil {
		t.Fatalf("Fprintf: %v", err)
	}
	var _ io.Writer = s
	if s.String() != "n=5" {
		t.Fatalf("got %q", s.String())
	}
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("reset left %d bytes", s.Len())
	}
}
