package globalsearch

import (
	"cmp"
	"fmt"
	"image"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Search correlates asynchronous provider responses into a ranked,
// deduplicated result set exposed through the active buffer.
type Search struct {
	engine    Engine
	listener  Listener
	scheduler Scheduler
	logger    *slog.Logger
	policy    SortPolicy

	settings Settings
	merger   merger

	sessions sessionTracker
	cutover  debounce

	front  *Buffer // active: what the consumer sees
	back   *Buffer // staging: being built for the next cutover
	target *Buffer // where the current session's batches land

	nextRecordID RecordID

	art    artRequests
	tracks trackRequests

	providers map[string]ProviderInfo
	visible   bool
}

// Option configures a Search.
type Option func(*Search)

// WithListener sets the view-layer listener.
func WithListener(l Listener) Option {
	return func(s *Search) {
		if l != nil {
			s.listener = l
		}
	}
}

// WithScheduler sets the cutover timer source.
func WithScheduler(sch Scheduler) Option {
	return func(s *Search) {
		s.scheduler = sch
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Search) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSettings sets the initial settings. Default is DefaultSettings().
func WithSettings(settings Settings) Option {
	return func(s *Search) {
		s.settings = settings.withDefaults()
	}
}

// WithSortPolicy sets the display ordering of both buffers.
func WithSortPolicy(policy SortPolicy) Option {
	return func(s *Search) {
		s.policy = policy
	}
}

// New creates a Search driven by engine. Providers the engine already knows
// are registered immediately.
func New(engine Engine, opts ...Option) (*Search, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	s := &Search{
		engine:    engine,
		listener:  nopListener{},
		logger:    slog.Default(),
		policy:    DefaultSortPolicy,
		settings:  DefaultSettings(),
		art:       make(artRequests),
		tracks:    make(trackRequests),
		providers: make(map[string]ProviderInfo),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scheduler == nil {
		s.scheduler = NewTimerScheduler()
	}

	s.merger = newMerger(s.settings.ProviderOrder)
	s.front = NewBuffer(s.policy)
	s.back = NewBuffer(s.policy)
	s.target = s.front

	for _, p := range engine.Providers() {
		_ = s.OnProviderAdded(p) //nolint:errcheck // engine lists each provider once
	}

	return s, nil
}

// Settings returns the current settings.
func (s *Search) Settings() Settings {
	return s.settings
}

// ReloadSettings replaces the settings. It applies to merges performed
// from now on; existing records are left as they are.
func (s *Search) ReloadSettings(settings Settings) {
	s.settings = settings.withDefaults()
	s.merger = newMerger(s.settings.ProviderOrder)
}

// Active returns the buffer the consumer should display. It is read-only
// for the consumer and changes identity on every cutover.
func (s *Search) Active() *Buffer {
	return s.front
}

// Staging returns the buffer being built for the next cutover.
func (s *Search) Staging() *Buffer {
	return s.back
}

// Current returns the current session, or nil before the first search.
func (s *Search) Current() *Session {
	return s.sessions.current
}

// IsCurrent reports whether id is the current session.
func (s *Search) IsCurrent(id SessionID) bool {
	return s.sessions.IsCurrent(id)
}

// Visible reports whether the result surface should be shown.
func (s *Search) Visible() bool {
	return s.visible
}

// TextEdited reacts to a change of the query text. Queries shorter than
// the configured minimum end the current session, so none of its late
// results or pending cutover can show the surface again, and start nothing.
func (s *Search) TextEdited(text string) (SessionID, bool) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < s.settings.MinQueryLength {
		s.endSession()
		s.setVisible(false)
		return 0, false
	}
	return s.StartSession(trimmed), true
}

// StartSession cancels the previous session, clears the staging buffer and
// asks the engine for a new search. It does not wait for cancellation.
func (s *Search) StartSession(query string) SessionID {
	s.back.Clear()
	s.target = s.back

	if prev, ok := s.sessions.currentID(); ok {
		s.engine.CancelSearch(prev)
	}
	id := s.engine.SearchAsync(query)
	s.sessions.start(id, query)
	s.armCutover()

	s.logger.Debug("search session started", "session", id, "query", query)
	return id
}

func (s *Search) endSession() {
	prev, ok := s.sessions.end()
	if !ok {
		return
	}
	s.engine.CancelSearch(prev)
	s.cutover.disarm()
	s.logger.Debug("search session ended", "session", prev)
}

// Ingest appends a batch of results for session id. Batches for any other
// session are dropped without effect.
func (s *Search) Ingest(id SessionID, batch []Result) {
	if !s.sessions.IsCurrent(id) {
		return
	}
	session := s.sessions.current

	for _, r := range batch {
		rec := s.newRecord(r, session.arrivalCounter)
		if img, ok := s.engine.FindCachedPixmap(r); ok {
			rec.Decoration = img
		}
		s.target.Append(rec)

		if s.settings.CombineIdenticalResults {
			s.merger.TryMerge(s.target, rec)
		}
	}
	session.arrivalCounter++

	if len(batch) == 0 {
		return
	}

	if s.target == s.back {
		if !session.received {
			session.received = true
			s.armCutover()
		}
		return
	}

	// The session was already promoted; results land in the visible buffer.
	s.listener.RowsChanged()
	s.reposition()
}

func (s *Search) newRecord(r Result, arrival int) *Record {
	s.nextRecordID++
	return &Record{
		id:           s.nextRecordID,
		Alternatives: []Result{r},
		ArrivalOrder: arrival,
	}
}

func (s *Search) armCutover() {
	id, _ := s.sessions.currentID()
	gen := s.cutover.arm()
	s.scheduler.Schedule(s.settings.SwapDelay, CutoverDue{Session: id, Generation: gen})
}

// Cutover promotes staging to active if due matches the armed timer.
// It returns false for stale or repeated fires.
func (s *Search) Cutover(due CutoverDue) bool {
	if !s.sessions.IsCurrent(due.Session) {
		return false
	}
	if !s.cutover.fire(due.Generation) {
		return false
	}

	s.art.clear()
	s.front, s.back = s.back, s.front

	s.logger.Debug("search buffers swapped", "session", due.Session, "rows", s.front.Len())
	s.listener.BufferSwapped()
	s.reposition()
	return true
}

func (s *Search) reposition() {
	s.setVisible(s.front.Len() > 0)
}

func (s *Search) setVisible(visible bool) {
	s.visible = visible
	s.listener.SurfaceChanged(visible)
}

// Hide hides the result surface without touching the buffers.
func (s *Search) Hide() {
	s.setVisible(false)
}

// Show shows the result surface again if there is something to show.
func (s *Search) Show() {
	s.reposition()
}

// RequestArt starts loading the thumbnail of an active record. Records
// that are not active, already decorated, or already asked for are skipped.
func (s *Search) RequestArt(id RecordID) (OperationID, bool) {
	rec := s.front.Find(id)
	if rec == nil || rec.loadingArt || rec.Decoration != nil {
		return 0, false
	}
	rec.loadingArt = true

	op := s.engine.LoadArtAsync(rec.Primary())
	s.art.put(op, id)
	return op, true
}

// OnArtLoaded attaches a loaded thumbnail to the record that requested it.
func (s *Search) OnArtLoaded(op OperationID, img image.Image) {
	id, ok := s.art.take(op)
	if !ok {
		return
	}
	rec := s.front.Find(id)
	if rec == nil {
		return
	}
	if img == nil {
		return
	}
	rec.Decoration = img
	s.listener.DecorationChanged(id)
}

// PendingArt returns the number of art requests awaiting a response.
func (s *Search) PendingArt() int {
	return len(s.art)
}

// PendingTracks returns the number of track requests awaiting a response.
func (s *Search) PendingTracks() int {
	return len(s.tracks)
}

// RequestTrack asks the engine to materialize r for intent.
func (s *Search) RequestTrack(r Result, intent Intent) OperationID {
	op := s.engine.LoadTracksAsync(r)
	s.tracks.put(op, intent)
	return op
}

// Activate materializes alternative alt of the active record at row.
// An invalid row falls back to the first row; an empty buffer or an
// out-of-range alternative does nothing.
func (s *Search) Activate(row, alt int, intent Intent) (OperationID, bool) {
	rec := s.front.Row(row)
	if rec == nil {
		rec = s.front.Row(0)
	}
	if rec == nil {
		return 0, false
	}
	if alt < 0 || alt >= len(rec.Alternatives) {
		return 0, false
	}
	return s.RequestTrack(rec.Alternatives[alt], intent), true
}

// OnTrackMaterialized annotates a payload for its intent and hands it to
// the listener. Unknown operations and empty payloads are dropped.
func (s *Search) OnTrackMaterialized(op OperationID, p *Payload) {
	intent, ok := s.tracks.take(op)
	if !ok {
		return
	}
	if p.Empty() {
		s.logger.Debug("track materialization returned nothing", "operation", op, "intent", intent)
		return
	}
	intent.Annotate(p)
	s.listener.AddToPlaylist(p)
}

// OnProviderAdded registers a provider. Adding a known provider is
// reported and ignored.
func (s *Search) OnProviderAdded(p ProviderInfo) error {
	if _, ok := s.providers[p.ID]; ok {
		err := fmt.Errorf("%w: %s %s", ErrDuplicateProvider, p.Name, p.ID)
		s.logger.Error("tried to add the same provider twice", "name", p.Name, "id", p.ID)
		return err
	}
	s.providers[p.ID] = p
	return nil
}

// OnProviderRemoved unregisters a provider. Removing an unknown provider
// is reported and ignored.
func (s *Search) OnProviderRemoved(p ProviderInfo) error {
	if _, ok := s.providers[p.ID]; !ok {
		err := fmt.Errorf("%w: %s %s", ErrUnknownProvider, p.Name, p.ID)
		s.logger.Error("tried to remove a provider that hadn't been added yet", "name", p.Name, "id", p.ID)
		return err
	}
	delete(s.providers, p.ID)
	return nil
}

// Providers returns the known providers sorted by name.
func (s *Search) Providers() []ProviderInfo {
	out := make([]ProviderInfo, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b ProviderInfo) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// IsProviderEnabled reports whether the engine queries the provider.
func (s *Search) IsProviderEnabled(id string) bool {
	return s.engine.IsProviderEnabled(id)
}

// SetProviderEnabled passes an enable/disable toggle through to the engine.
func (s *Search) SetProviderEnabled(id string, enabled bool) error {
	if _, ok := s.providers[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, id)
	}
	s.engine.SetProviderEnabled(id, enabled)
	return nil
}

// Dispatch routes an engine event or a due cutover to its handler.
func (s *Search) Dispatch(ev Event) {
	switch e := ev.(type) {
	case ResultsAvailable:
		s.Ingest(e.Session, e.Results)
	case ArtLoaded:
		s.OnArtLoaded(e.Operation, e.Image)
	case TracksLoaded:
		s.OnTrackMaterialized(e.Operation, e.Payload)
	case ProviderAdded:
		_ = s.OnProviderAdded(e.Provider) //nolint:errcheck // already logged
	case ProviderRemoved:
		_ = s.OnProviderRemoved(e.Provider) //nolint:errcheck // already logged
	case CutoverDue:
		s.Cutover(e)
	}
}

// SwapDelay returns the configured debounce period.
func (s *Search) SwapDelay() time.Duration {
	return s.settings.SwapDelay
}
