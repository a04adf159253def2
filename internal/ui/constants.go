// Package ui holds layout helpers shared by the search views.
package ui

const (
	// ScrollMargin keeps this many rows visible on either side of the cursor.
	ScrollMargin = 2

	// The result list never shrinks below MinVisibleRows or grows past
	// MaxVisibleRows, however many records the buffer holds.
	MinVisibleRows = 3
	MaxVisibleRows = 25

	// InputHeight is the query line plus its separator.
	InputHeight = 2
)

// ClampRows bounds a row count to the result list limits.
func ClampRows(n int) int {
	return min(max(n, MinVisibleRows), MaxVisibleRows)
}
