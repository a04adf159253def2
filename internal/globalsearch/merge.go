package globalsearch

import "strings"

// CombineAction is the outcome of comparing two records.
type CombineAction int

const (
	CannotCombine CombineAction = iota
	LeftPreferred
	RightPreferred
)

// merger combines equivalent records from different providers.
type merger struct {
	order map[string]int
}

func newMerger(providerOrder []string) merger {
	order := make(map[string]int, len(providerOrder))
	for i, id := range providerOrder {
		if _, ok := order[id]; !ok {
			order[id] = i
		}
	}
	return merger{order: order}
}

// rank returns the preference index of a provider; unknown providers rank
// after every listed one.
func (m merger) rank(providerID string) int {
	if i, ok := m.order[providerID]; ok {
		return i
	}
	return len(m.order)
}

// canCombine decides whether two records describe the same thing and, if
// so, which one should become the primary.
func (m merger) canCombine(left, right *Record) CombineAction {
	r1, r2 := left.Primary(), right.Primary()

	if r1.MatchQuality != r2.MatchQuality || r1.Type != r2.Type {
		return CannotCombine
	}

	differ := func(a, b string) bool { return !strings.EqualFold(a, b) }

	switch r1.Type {
	case TypeTrack:
		if differ(r1.Metadata.Title, r2.Metadata.Title) ||
			differ(r1.Metadata.Album, r2.Metadata.Album) ||
			differ(r1.Metadata.Artist, r2.Metadata.Artist) {
			return CannotCombine
		}
	case TypeAlbum:
		if differ(r1.Metadata.Album, r2.Metadata.Album) ||
			differ(r1.Metadata.Artist, r2.Metadata.Artist) {
			return CannotCombine
		}
	case TypeStream:
		if differ(r1.Metadata.URL, r2.Metadata.URL) {
			return CannotCombine
		}
	default:
		return CannotCombine
	}

	if m.rank(r2.ProviderID) < m.rank(r1.ProviderID) {
		return RightPreferred
	}
	return LeftPreferred
}

// candidates lists the records rec may be merged with: the one right after
// it in display order, then the ones before it, nearest first. The backward
// scan stops at the first record whose match quality differs from rec's,
// since only equal-quality records can be equivalent.
func candidates(buf *Buffer, rec *Record) []*Record {
	rows := buf.Rows()
	pos := -1
	for i, r := range rows {
		if r == rec {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil
	}

	quality := rec.Primary().MatchQuality
	out := make([]*Record, 0, 4)
	if pos+1 < len(rows) {
		out = append(out, rows[pos+1])
	}
	for i := pos - 1; i >= 0; i-- {
		if rows[i].Primary().MatchQuality != quality {
			break
		}
		out = append(out, rows[i])
	}
	return out
}

// TryMerge merges rec into the first equivalent candidate, or merges that
// candidate into rec, depending on provider preference. At most one merge
// happens per call. It returns the surviving record, or nil when nothing
// was merged.
func (m merger) TryMerge(buf *Buffer, rec *Record) *Record {
	for _, other := range candidates(buf, rec) {
		switch m.canCombine(rec, other) {
		case CannotCombine:
			continue
		case LeftPreferred:
			combine(buf, rec, other)
			return rec
		case RightPreferred:
			combine(buf, other, rec)
			return other
		}
	}
	return nil
}

// combine appends every alternative of inferior onto superior and removes
// inferior from the buffer.
func combine(buf *Buffer, superior, inferior *Record) {
	superior.Alternatives = append(superior.Alternatives, inferior.Alternatives...)
	if superior.Decoration == nil && inferior.Decoration != nil {
		superior.Decoration = inferior.Decoration
	}
	buf.Remove(inferior.id)
	buf.dirty = true
}
