// Package globalsearch aggregates results from several asynchronous search
// providers into one ranked, deduplicated result set.
//
// A Search owns two result buffers. Batches for the current session are
// appended to the staging buffer and combined with equivalent results from
// other providers; after a short quiet period the staging buffer is promoted
// to active in a single swap, so consumers never observe a half-built list.
//
// All methods of Search must be called from a single goroutine (the UI event
// loop). Asynchronous work is done by an Engine, whose responses are fed
// back through Dispatch on that same goroutine.
package globalsearch

import (
	"strings"
	"time"
)

// Type is the kind of thing a result refers to.
type Type int

const (
	TypeTrack Type = iota
	TypeAlbum
	TypeStream
)

func (t Type) String() string {
	switch t {
	case TypeTrack:
		return "track"
	case TypeAlbum:
		return "album"
	case TypeStream:
		return "stream"
	default:
		return "unknown"
	}
}

// MatchQuality is the relevance tier a provider assigned to a result.
// Lower values are better matches.
type MatchQuality int

const (
	MatchExact MatchQuality = iota
	MatchAtStart
	MatchMiddle
	MatchNone
)

func (q MatchQuality) String() string {
	switch q {
	case MatchExact:
		return "exact"
	case MatchAtStart:
		return "at start"
	case MatchMiddle:
		return "middle"
	default:
		return "none"
	}
}

// Metadata holds the descriptive fields of a result.
type Metadata struct {
	Title       string
	Album       string
	Artist      string
	AlbumArtist string
	URL         string // stream location, or remote page for online providers
	ImageURL    string // remote cover image, if the provider knows one
	Path        string // local file path, if any
	Year        int
	TrackNumber int
	Length      time.Duration
}

// Result is a single hit returned by a provider.
type Result struct {
	ProviderID   string
	Type         Type
	MatchQuality MatchQuality
	Metadata     Metadata

	// Ref is an opaque provider-specific handle (database id, MBID, ...)
	// used by the provider to materialize tracks or load art later.
	Ref string
}

// Key identifies a result for caching purposes.
func (r Result) Key() string {
	var b strings.Builder
	b.WriteString(r.ProviderID)
	b.WriteByte('|')
	b.WriteString(r.Type.String())
	b.WriteByte('|')
	switch r.Type {
	case TypeStream:
		b.WriteString(r.Metadata.URL)
	default:
		b.WriteString(strings.ToLower(r.Metadata.Artist))
		b.WriteByte('|')
		b.WriteString(strings.ToLower(r.Metadata.Album))
		if r.Type == TypeTrack {
			b.WriteByte('|')
			b.WriteString(strings.ToLower(r.Metadata.Title))
		}
	}
	if r.Ref != "" {
		b.WriteByte('|')
		b.WriteString(r.Ref)
	}
	return b.String()
}

// Song is a playable track produced by materializing a result.
type Song struct {
	ProviderID  string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	TrackNumber int
	Year        int
	Length      time.Duration
	Path        string // local file, empty for remote songs
	URL         string // remote location, empty for local songs
}

// Location returns the path or URL the song can be played from.
func (s Song) Location() string {
	if s.Path != "" {
		return s.Path
	}
	return s.URL
}

// ProviderInfo describes a search provider known to the engine.
type ProviderInfo struct {
	ID   string
	Name string
}
