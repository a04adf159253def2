// Package cursor tracks the selection of a scrollable result list: the
// row under the cursor, the scroll offset and which alternative of that
// row is active.
package cursor

// Cursor manages the selection for a list whose length and viewport height
// are passed to each method, since both change as results arrive.
type Cursor struct {
	row    int
	offset int // first visible row
	alt    int // active alternative of the row
	margin int // rows kept visible above/below the cursor
}

// New creates a Cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Row returns the row under the cursor.
func (c Cursor) Row() int {
	return c.row
}

// Offset returns the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Alt returns the active alternative of the row under the cursor.
func (c Cursor) Alt() int {
	return c.alt
}

// Move moves by delta rows, clamped to the list. Landing on another row
// resets the alternative. A zero-length list is left alone.
func (c *Cursor) Move(delta, listLen, height int) {
	if listLen == 0 {
		return
	}
	next := clamp(c.row+delta, listLen-1)
	if next != c.row {
		c.row = next
		c.alt = 0
	}
	c.EnsureVisible(listLen, height)
}

// CycleAlt steps through the n alternatives of the current row, wrapping
// around at both ends.
func (c *Cursor) CycleAlt(delta, n int) {
	if n <= 0 {
		c.alt = 0
		return
	}
	c.alt = ((c.alt+delta)%n + n) % n
}

// Clamp keeps the cursor inside a list that may have shrunk or grown, with
// alts alternatives on the row now under it. It reports whether anything
// moved.
func (c *Cursor) Clamp(listLen, alts, height int) bool {
	before := *c
	if listLen == 0 {
		c.Reset()
		return *c != before
	}
	if c.row > listLen-1 {
		c.row = listLen - 1
		c.alt = 0
	}
	if c.alt >= alts {
		c.alt = 0
	}
	c.EnsureVisible(listLen, height)
	return *c != before
}

// Follow moves to row keeping the active alternative, for when the selected
// entry was re-sorted to another position.
func (c *Cursor) Follow(row, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.row = clamp(row, listLen-1)
	c.EnsureVisible(listLen, height)
}

// EnsureVisible adjusts the scroll offset to keep the cursor on screen,
// with the margin shrunk to fit short viewports.
func (c *Cursor) EnsureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.row < c.offset+margin {
		c.offset = max(c.row-margin, 0)
	}
	if c.row >= c.offset+height-margin {
		c.offset = c.row - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// VisibleRange returns the visible rows as [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	start = min(c.offset, listLen)
	end = min(c.offset+height, listLen)
	return start, end
}

// Reset goes back to the first row and alternative.
func (c *Cursor) Reset() {
	c.row = 0
	c.offset = 0
	c.alt = 0
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
