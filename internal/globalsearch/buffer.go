package globalsearch

import (
	"image"
	"sort"
)

// RecordID is a stable identity for a record, independent of its row.
type RecordID uint64

// Record is one entry of a result buffer: a preferred result plus every
// equivalent result merged into it.
//
// Records are owned by the Search; consumers must treat them as read-only.
type Record struct {
	id  RecordID
	seq uint64

	// Alternatives holds the primary result first, followed by results
	// merged in from other providers. It only ever grows.
	Alternatives []Result

	// ArrivalOrder is the index of the batch the primary result arrived in.
	ArrivalOrder int

	// Decoration is the thumbnail shown next to the record, if loaded.
	Decoration image.Image

	loadingArt bool
}

// ID returns the record's stable identity.
func (r *Record) ID() RecordID { return r.id }

// Primary returns the preferred result.
func (r *Record) Primary() Result { return r.Alternatives[0] }

// LoadingArt reports whether an art request is in flight for the record.
func (r *Record) LoadingArt() bool { return r.loadingArt }

// SortPolicy orders records for display. Ranking is not the buffer's
// concern; the buffer breaks ties by ArrivalOrder and then insertion order.
type SortPolicy interface {
	Less(a, b *Record) bool
}

// SortFunc adapts a plain function to SortPolicy.
type SortFunc func(a, b *Record) bool

// Less implements SortPolicy.
func (f SortFunc) Less(a, b *Record) bool { return f(a, b) }

// DefaultSortPolicy orders by match quality, then by type.
var DefaultSortPolicy SortPolicy = SortFunc(func(a, b *Record) bool {
	pa, pb := a.Primary(), b.Primary()
	if pa.MatchQuality != pb.MatchQuality {
		return pa.MatchQuality < pb.MatchQuality
	}
	return pa.Type < pb.Type
})

// Buffer is an ordered, insertion-stable collection of records.
type Buffer struct {
	policy  SortPolicy
	records []*Record // insertion order
	sorted  []*Record
	dirty   bool
	nextSeq uint64
}

// NewBuffer creates an empty buffer ordered by policy.
func NewBuffer(policy SortPolicy) *Buffer {
	if policy == nil {
		policy = DefaultSortPolicy
	}
	return &Buffer{policy: policy}
}

// Len returns the number of records.
func (b *Buffer) Len() int {
	return len(b.records)
}

// Append adds a record at the end of the insertion order.
func (b *Buffer) Append(r *Record) {
	r.seq = b.nextSeq
	b.nextSeq++
	b.records = append(b.records, r)
	b.dirty = true
}

// Remove deletes the record with the given identity.
func (b *Buffer) Remove(id RecordID) bool {
	for i, r := range b.records {
		if r.id == id {
			b.records = append(b.records[:i], b.records[i+1:]...)
			b.dirty = true
			return true
		}
	}
	return false
}

// Find returns the record with the given identity, or nil.
func (b *Buffer) Find(id RecordID) *Record {
	for _, r := range b.records {
		if r.id == id {
			return r
		}
	}
	return nil
}

// Clear removes all records.
func (b *Buffer) Clear() {
	b.records = nil
	b.sorted = nil
	b.dirty = false
	b.nextSeq = 0
}

// SetPolicy changes the ordering.
func (b *Buffer) SetPolicy(policy SortPolicy) {
	if policy == nil {
		policy = DefaultSortPolicy
	}
	b.policy = policy
	b.dirty = true
}

// Rows returns the records in display order. The returned slice is shared
// and only valid until the buffer is next modified.
func (b *Buffer) Rows() []*Record {
	if b.dirty || len(b.sorted) != len(b.records) {
		b.sorted = append(b.sorted[:0], b.records...)
		sort.SliceStable(b.sorted, func(i, j int) bool {
			return b.less(b.sorted[i], b.sorted[j])
		})
		b.dirty = false
	}
	return b.sorted
}

// Row returns the record at a display row, or nil if out of range.
func (b *Buffer) Row(i int) *Record {
	rows := b.Rows()
	if i < 0 || i >= len(rows) {
		return nil
	}
	return rows[i]
}

// RowOf returns the display row of a record, or -1.
func (b *Buffer) RowOf(id RecordID) int {
	for i, r := range b.Rows() {
		if r.id == id {
			return i
		}
	}
	return -1
}

func (b *Buffer) less(x, y *Record) bool {
	if b.policy.Less(x, y) {
		return true
	}
	if b.policy.Less(y, x) {
		return false
	}
	if x.ArrivalOrder != y.ArrivalOrder {
		return x.ArrivalOrder < y.ArrivalOrder
	}
	return x.seq < y.seq
}
