package session

// Cursor is the single navigation contract shared by live test sessions and
// graded result review: a 0-based pointer over a fixed-size ordered set.
// Prev/Next clamp at the boundaries and JumpTo silently ignores requests
// outside [0, size).
type Cursor struct {
	index int
	size  int
}

func NewCursor(size int) Cursor {
	if size < 0 {
		size = 0
	}
	return Cursor{size: size}
}

// Prev moves the pointer back by one. At index 0 it is a no-op.
func (c *Cursor) Prev() {
	if c.index > 0 {
		c.index--
	}
}

// Next moves the pointer forward by one. At the last index it is a no-op.
func (c *Cursor) Next() {
	if c.index < c.size-1 {
		c.index++
	}
}

// JumpTo sets the pointer directly. Out-of-range indexes leave it unchanged.
func (c *Cursor) JumpTo(index int) {
	if index >= 0 && index < c.size {
		c.index = index
	}
}

func (c *Cursor) Index() int {
	return c.index
}

func (c *Cursor) Size() int {
	return c.size
}
