package globalsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(rows []*Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Primary().Metadata.Title
	}
	return out
}

func TestBuffer_DefaultOrdering(t *testing.T) {
	buf := NewBuffer(nil)

	mid := track("a", "middle", "", "")
	mid.MatchQuality = MatchMiddle
	buf.Append(record(1, 0, mid))
	buf.Append(record(2, 1, track("a", "exact late", "", "")))
	buf.Append(record(3, 0, track("a", "exact early", "", "")))
	buf.Append(record(4, 0, album("a", "", "")))
	buf.Append(record(5, 0, track("a", "exact early 2", "", "")))

	assert.Equal(t, []string{"exact early", "exact early 2", "exact late", "", "middle"}, titles(buf.Rows()))
}

func TestBuffer_RemoveFindRowOf(t *testing.T) {
	buf := NewBuffer(nil)
	a := record(1, 0, track("a", "a", "", ""))
	b := record(2, 0, track("a", "b", "", ""))
	buf.Append(a)
	buf.Append(b)

	assert.Equal(t, 1, buf.RowOf(b.ID()))
	assert.Same(t, a, buf.Find(a.ID()))

	require.True(t, buf.Remove(a.ID()))
	assert.False(t, buf.Remove(a.ID()))
	assert.Nil(t, buf.Find(a.ID()))
	assert.Equal(t, -1, buf.RowOf(a.ID()))
	assert.Equal(t, 0, buf.RowOf(b.ID()))
	assert.Nil(t, buf.Row(1))
	assert.Nil(t, buf.Row(-1))
}

func TestBuffer_Clear(t *testing.T) {
	buf := NewBuffer(nil)
	buf.Append(record(1, 0, track("a", "a", "", "")))
	buf.Rows()

	buf.Clear()

	assert.Equal(t, 0, buf.Len())
	assert.Empty(t, buf.Rows())
}

func TestBuffer_SetPolicy(t *testing.T) {
	buf := NewBuffer(nil)
	buf.Append(record(1, 0, track("a", "b", "", "")))
	buf.Append(record(2, 0, track("a", "a", "", "")))
	require.Equal(t, []string{"b", "a"}, titles(buf.Rows()))

	buf.SetPolicy(SortFunc(func(x, y *Record) bool {
		return x.Primary().Metadata.Title < y.Primary().Metadata.Title
	}))

	assert.Equal(t, []string{"a", "b"}, titles(buf.Rows()))
}
