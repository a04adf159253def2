// Package playlist holds the play queue that search results are added to.
package playlist

import (
	"slices"
	"time"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

const maxUndo = 20

// Track is one queue entry.
type Track struct {
	Location    string // file path or stream URL
	Provider    string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

// FromSong converts a materialized search song to a queue track.
func FromSong(s globalsearch.Song) Track {
	return Track{
		Location:    s.Location(),
		Provider:    s.ProviderID,
		Title:       s.Title,
		Artist:      s.Artist,
		Album:       s.Album,
		TrackNumber: s.TrackNumber,
		Duration:    s.Length,
	}
}

type snapshot struct {
	tracks  []Track
	current int
}

// Queue is an ordered list of tracks with a playing position.
type Queue struct {
	tracks  []Track
	current int // -1 when nothing plays

	// PlayOnActivate makes plain activations start playback.
	PlayOnActivate bool

	history []snapshot
}

// NewQueue returns an empty queue that plays on activation.
func NewQueue() *Queue {
	return &Queue{current: -1, PlayOnActivate: true}
}

// Len returns the number of tracks.
func (q *Queue) Len() int { return len(q.tracks) }

// Tracks returns a copy of the tracks.
func (q *Queue) Tracks() []Track { return slices.Clone(q.tracks) }

// CurrentIndex returns the position of the playing track, or -1.
func (q *Queue) CurrentIndex() int { return q.current }

// Current returns the playing track, or nil.
func (q *Queue) Current() *Track {
	if q.current < 0 || q.current >= len(q.tracks) {
		return nil
	}
	return &q.tracks[q.current]
}

// Apply inserts the songs of an annotated payload and returns the track
// to start playing, if any.
//
// ClearFirst empties the queue beforehand, EnqueueNow inserts right after
// the playing track instead of at the end, and PlayNow (or a plain
// activation when PlayOnActivate is set) moves playback to the first new
// track.
func (q *Queue) Apply(p *globalsearch.Payload) *Track {
	if p.Empty() {
		return nil
	}
	q.remember()

	if p.ClearFirst {
		q.tracks, q.current = nil, -1
	}

	at := len(q.tracks)
	if p.EnqueueNow && q.current >= 0 {
		at = q.current + 1
	}
	added := make([]Track, len(p.Songs))
	for i, s := range p.Songs {
		added[i] = FromSong(s)
	}
	q.tracks = slices.Insert(q.tracks, at, added...)

	if !p.PlayNow && !(p.FromDoubleClick && q.PlayOnActivate) {
		return nil
	}
	q.current = at
	return q.Current()
}

// Undo restores the queue to its state before the last Apply. It reports
// false when there is nothing to undo.
func (q *Queue) Undo() bool {
	n := len(q.history)
	if n == 0 {
		return false
	}
	last := q.history[n-1]
	q.history = q.history[:n-1]
	q.tracks, q.current = last.tracks, last.current
	return true
}

func (q *Queue) remember() {
	q.history = append(q.history, snapshot{tracks: slices.Clone(q.tracks), current: q.current})
	if len(q.history) > maxUndo {
		q.history = slices.Delete(q.history, 0, 1)
	}
}
