// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/pollio"
	"code.hybscloud.com/pollio/task"
)

type shortWriter struct{ limit int }

func (w shortWriter) Write(p []byte) (int, error) { return min(w.limit, len(p)), nil }

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestTeeReader(t *testing.T) {
	var side pollio.BufferSink
	r := pollio.TeeReader(&scriptedReader{steps: []readStep{
		{b: "ab"},
		{pending: true},
		{b: "cd"},
		{err: errReset},
	}}, &side)
	cx := task.NewContext(nil)
	buf := make([]byte, 8)

	var outcomes []pollio.Outcome
	for i := 0; i < 5; i++ {
		outcomes = append(outcomes, r.PollRead(cx, buf).Outcome())
	}
	want := []pollio.Outcome{
		pollio.OutcomeReady, pollio.OutcomePending, pollio.OutcomeReady,
		pollio.OutcomeFailure, pollio.OutcomeReady,
	}
	for i := range want {
		if outcomes[i] != want[i] {
			t.Fatalf("call %d: got %v want %v", i, outcomes[i], want[i])
		}
	}
	if side.String() != "abcd" {
		t.Fatalf("side got %q", side.String())
	}
}

func TestTeeReader_SideFailures(t *testing.T) {
	cx := task.NewContext(nil)
	src := func() pollio.AsyncReader { return &scriptedReader{steps: []readStep{{b: "abc"}}} }

	if p := pollio.TeeReader(src(), failWriter{err: errReset}).PollRead(cx, make([]byte, 4)); !errors.Is(p.Err(), errReset) {
		t.Fatalf("side error: %v", p)
	}
	if p := pollio.TeeReader(src(), shortWriter{limit: 1}).PollRead(cx, make([]byte, 4)); !errors.Is(p.Err(), pollio.ErrShortWrite) {
		t.Fatalf("short side: %v", p)
	}
}

func TestTeeWriter_DuplicatesAcceptedPrefix(t *testing.T) {
	var side pollio.BufferSink
	primary := &stepWriter{limit: 2}
	w := pollio.TeeWriter(primary, &side)
	cx := task.NewContext(nil)

	c := pollio.NewCursor([]byte("hello"))
	for i := 0; c.Remaining() > 0 && i < 20; i++ {
		pollio.PollWriteBuf(w, cx, c)
	}
	if side.String() != "hello" || string(primary.got) != "hello" {
		t.Fatalf("side=%q primary=%q", side.String(), primary.got)
	}

	w.PollFlush(cx)
	w.PollShutdown(cx)
	if primary.flushes != 1 || primary.shutdowns != 1 {
		t.Fatalf("flushes=%d shutdowns=%d", primary.flushes, primary.shutdowns)
	}
}

func TestTeeWriter_SideFailures(t *testing.T) {
	cx := task.NewContext(nil)
	if p := pollio.TeeWriter(&fixedWriter{k: 4}, failWriter{err: errReset}).PollWrite(cx, []byte("ab")); !errors.Is(p.Err(), errReset) {
		t.Fatalf("side error: %v", p)
	}
	if p := pollio.TeeWriter(&fixedWriter{k: 4}, shortWriter{limit: 1}).PollWrite(cx, []byte("ab")); !errors.Is(p.Err(), pollio.ErrShortWrite) {
		t.Fatalf("short side: %v", p)
	}
}
