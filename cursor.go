// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pollio

import "fmt"

// Cursor is a Buf over a byte slice. The zero value is an empty cursor.
type Cursor struct {
	b   []byte
	off int
}

// NewCursor returns a cursor positioned at the start of b. The cursor reads
// b in place; it does not copy.
func NewCursor(b []byte) *Cursor { return &Cursor{b: b} }

// Remaining returns the number of unconsumed bytes.
func (c *Cursor) Remaining() int { return len(c.b) - c.off }

// Chunk returns the unconsumed bytes.
func (c *Cursor) Chunk() []byte { return c.b[c.off:] }

// Advance consumes n bytes.
func (c *Cursor) Advance(n int) {
	if n < 0 || n > c.Remaining() {
		panic(fmt.Sprintf("pollio: cursor advance %d out of range [0,%d]", n, c.Remaining()))
	}
	c.off += n
}

// Consumed returns the number of bytes consumed so far.
func (c *Cursor) Consumed() int { return c.off }

// Reset repositions the cursor at the start of b.
func (c *Cursor) Reset(b []byte) {
	c.b = b
	c.off = 0
}
