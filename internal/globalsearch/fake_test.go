package globalsearch

import (
	"image"
	"time"
)

// fakeEngine records calls and hands out ids from a single counter.
type fakeEngine struct {
	nextID    int
	queries   []string
	cancelled []SessionID
	artLoads  []Result
	trackLoad []Result
	cached    map[string]image.Image
	providers []ProviderInfo
	enabled   map[string]bool
}

func newFakeEngine(providers ...ProviderInfo) *fakeEngine {
	e := &fakeEngine{
		cached:    make(map[string]image.Image),
		providers: providers,
		enabled:   make(map[string]bool),
	}
	for _, p := range providers {
		e.enabled[p.ID] = true
	}
	return e
}

func (e *fakeEngine) id() int {
	e.nextID++
	return e.nextID
}

func (e *fakeEngine) SearchAsync(query string) SessionID {
	e.queries = append(e.queries, query)
	return SessionID(e.id())
}

func (e *fakeEngine) CancelSearch(id SessionID) {
	e.cancelled = append(e.cancelled, id)
}

func (e *fakeEngine) LoadArtAsync(r Result) OperationID {
	e.artLoads = append(e.artLoads, r)
	return OperationID(e.id())
}

func (e *fakeEngine) LoadTracksAsync(r Result) OperationID {
	e.trackLoad = append(e.trackLoad, r)
	return OperationID(e.id())
}

func (e *fakeEngine) FindCachedPixmap(r Result) (image.Image, bool) {
	img, ok := e.cached[r.Key()]
	return img, ok
}

func (e *fakeEngine) Providers() []ProviderInfo { return e.providers }

func (e *fakeEngine) IsProviderEnabled(id string) bool { return e.enabled[id] }

func (e *fakeEngine) SetProviderEnabled(id string, enabled bool) { e.enabled[id] = enabled }

// manualScheduler remembers scheduled cutovers instead of starting timers.
type manualScheduler struct {
	scheduled []CutoverDue
	delays    []time.Duration
}

func (m *manualScheduler) Schedule(delay time.Duration, due CutoverDue) {
	m.scheduled = append(m.scheduled, due)
	m.delays = append(m.delays, delay)
}

func (m *manualScheduler) last() CutoverDue {
	return m.scheduled[len(m.scheduled)-1]
}

// recordingListener counts view notifications.
type recordingListener struct {
	swaps       int
	rowsChanged int
	decorated   []RecordID
	visible     []bool
	payloads    []*Payload
}

func (l *recordingListener) BufferSwapped() { l.swaps++ }
func (l *recordingListener) RowsChanged() { l.rowsChanged++ }
func (l *recordingListener) DecorationChanged(id RecordID) { l.decorated = append(l.decorated, id) }
func (l *recordingListener) SurfaceChanged(visible bool) { l.visible = append(l.visible, visible) }
func (l *recordingListener) AddToPlaylist(p *Payload) { l.payloads = append(l.payloads, p) }

func (l *recordingListener) lastVisible() bool {
	if len(l.visible) == 0 {
		return false
	}
	return l.visible[len(l.visible)-1]
}

func track(provider, title, album, artist string) Result {
	return Result{
		ProviderID:   provider,
		Type:         TypeTrack,
		MatchQuality: MatchExact,
		Metadata:     Metadata{Title: title, Album: album, Artist: artist},
	}
}

func album(provider, name, artist string) Result {
	return Result{
		ProviderID:   provider,
		Type:         TypeAlbum,
		MatchQuality: MatchExact,
		Metadata:     Metadata{Album: name, Artist: artist},
	}
}

func stream(provider, url string) Result {
	return Result{
		ProviderID:   provider,
		Type:         TypeStream,
		MatchQuality: MatchExact,
		Metadata:     Metadata{Title: url, URL: url},
	}
}

type harness struct {
	engine   *fakeEngine
	sched    *manualScheduler
	listener *recordingListener
	search   *Search
}

func newHarness(settings Settings) *harness {
	h := &harness{
		engine:   newFakeEngine(ProviderInfo{ID: "library", Name: "Library"}, ProviderInfo{ID: "lastfm", Name: "Last.fm"}),
		sched:    &manualScheduler{},
		listener: &recordingListener{},
	}
	s, err := New(h.engine,
		WithScheduler(h.sched),
		WithListener(h.listener),
		WithSettings(settings),
	)
	if err != nil {
		panic(err)
	}
	h.search = s
	return h
}

// fire delivers the most recently scheduled cutover.
func (h *harness) fire() bool {
	return h.search.Cutover(h.sched.last())
}

func newTestImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}
