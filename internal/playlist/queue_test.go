package playlist

import (
	"slices"
	"testing"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

func songs(titles ...string) []globalsearch.Song {
	out := make([]globalsearch.Song, len(titles))
	for i, t := range titles {
		out[i] = globalsearch.Song{Title: t, Path: "/music/" + t + ".flac"}
	}
	return out
}

func titles(q *Queue) []string {
	var out []string
	for _, t := range q.Tracks() {
		out = append(out, t.Title)
	}
	return out
}

// queueAt returns a queue holding a, b and c with b playing.
func queueAt(t *testing.T) *Queue {
	t.Helper()
	q := NewQueue()
	if q.Apply(&globalsearch.Payload{Songs: songs("a", "b", "c")}) != nil {
		t.Fatal("plain add started playback")
	}
	q.current = 1
	q.history = nil
	return q
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 || q.CurrentIndex() != -1 || q.Current() != nil {
		t.Errorf("new queue: len %d, current %d", q.Len(), q.CurrentIndex())
	}
	if !q.PlayOnActivate {
		t.Error("PlayOnActivate should default to true")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		payload     globalsearch.Payload
		wantTitles  []string
		wantPlaying string
	}{
		{
			name:       "add appends",
			wantTitles: []string{"a", "b", "c", "new1", "new2"},
		},
		{
			name:        "add and play moves to first new track",
			payload:     globalsearch.Payload{PlayNow: true, OverrideUserSettings: true},
			wantTitles:  []string{"a", "b", "c", "new1", "new2"},
			wantPlaying: "new1",
		},
		{
			name:       "queue inserts after current",
			payload:    globalsearch.Payload{EnqueueNow: true},
			wantTitles: []string{"a", "b", "new1", "new2", "c"},
		},
		{
			name:       "replace clears first",
			payload:    globalsearch.Payload{ClearFirst: true},
			wantTitles: []string{"new1", "new2"},
		},
		{
			name:        "replace and play",
			payload:     globalsearch.Payload{ClearFirst: true, PlayNow: true},
			wantTitles:  []string{"new1", "new2"},
			wantPlaying: "new1",
		},
		{
			name:        "plain activation plays",
			payload:     globalsearch.Payload{FromDoubleClick: true},
			wantTitles:  []string{"a", "b", "c", "new1", "new2"},
			wantPlaying: "new1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queueAt(t)

			p := tt.payload
			p.Songs = songs("new1", "new2")
			got := q.Apply(&p)

			if !slices.Equal(titles(q), tt.wantTitles) {
				t.Errorf("tracks = %v, want %v", titles(q), tt.wantTitles)
			}
			if tt.wantPlaying == "" {
				if got != nil {
					t.Errorf("Apply() = %v, want nil", got)
				}
				return
			}
			if got == nil || got.Title != tt.wantPlaying {
				t.Errorf("Apply() = %v, want %s", got, tt.wantPlaying)
			}
			if c := q.Current(); c == nil || c.Title != tt.wantPlaying {
				t.Errorf("Current() = %v, want %s", c, tt.wantPlaying)
			}
		})
	}
}

func TestApply_PlayOnActivateOff(t *testing.T) {
	q := NewQueue()
	q.PlayOnActivate = false

	if got := q.Apply(&globalsearch.Payload{Songs: songs("a"), FromDoubleClick: true}); got != nil {
		t.Errorf("Apply() = %v, want nil", got)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestApply_EnqueueWithNothingPlaying(t *testing.T) {
	q := NewQueue()
	q.Apply(&globalsearch.Payload{Songs: songs("a")})
	q.Apply(&globalsearch.Payload{Songs: songs("b"), EnqueueNow: true})

	if !slices.Equal(titles(q), []string{"a", "b"}) {
		t.Errorf("tracks = %v, want [a b]", titles(q))
	}
}

func TestApply_EmptyPayload(t *testing.T) {
	q := NewQueue()

	if q.Apply(nil) != nil || q.Apply(&globalsearch.Payload{PlayNow: true}) != nil {
		t.Error("empty payload started playback")
	}
	if q.Undo() {
		t.Error("empty payload was recorded for undo")
	}
}

func TestUndo(t *testing.T) {
	q := queueAt(t)
	q.Apply(&globalsearch.Payload{Songs: songs("d"), ClearFirst: true, PlayNow: true})

	if !q.Undo() {
		t.Fatal("Undo() = false, want true")
	}
	if !slices.Equal(titles(q), []string{"a", "b", "c"}) {
		t.Errorf("tracks = %v, want [a b c]", titles(q))
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	if q.Undo() {
		t.Error("second Undo() = true, want false")
	}
}

func TestUndo_Bounded(t *testing.T) {
	q := NewQueue()
	for range maxUndo + 5 {
		q.Apply(&globalsearch.Payload{Songs: songs("x")})
	}

	undone := 0
	for q.Undo() {
		undone++
	}
	if undone != maxUndo {
		t.Errorf("undid %d changes, want %d", undone, maxUndo)
	}
	if q.Len() != 5 {
		t.Errorf("Len() = %d, want 5", q.Len())
	}
}

func TestTracks_ReturnsCopy(t *testing.T) {
	q := NewQueue()
	q.Apply(&globalsearch.Payload{Songs: songs("a")})

	q.Tracks()[0].Title = "changed"

	if q.Tracks()[0].Title != "a" {
		t.Error("Tracks() exposed internal storage")
	}
}

func TestFromSong(t *testing.T) {
	stream := FromSong(globalsearch.Song{ProviderID: "streams", Title: "Radio", URL: "http://radio/stream"})
	if stream.Location != "http://radio/stream" {
		t.Errorf("Location = %q, want stream URL", stream.Location)
	}

	local := FromSong(globalsearch.Song{Title: "Money", Path: "/music/money.flac", URL: "http://x"})
	if local.Location != "/music/money.flac" {
		t.Errorf("Location = %q, want path", local.Location)
	}
}
