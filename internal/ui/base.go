package ui

// Base holds the dimensions a view was last given. Embed it in a view
// model to get SetSize, Width, Height and FitRows.
type Base struct {
	width, height int
}

// SetSize records the view dimensions.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int { return b.width }
func (b Base) Height() int { return b.height }

// FitRows bounds a list of n rows to the visible row limits and, once a
// height is known, to the space left below the query line.
func (b Base) FitRows(n int) int {
	rows := ClampRows(n)
	if b.height > 0 {
		rows = min(rows, max(b.height-InputHeight, 1))
	}
	return rows
}
