package globalsearch

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preferLibrary() Settings {
	s := DefaultSettings()
	s.ProviderOrder = []string{"library", "lastfm"}
	return s
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrEngineRequired)
}

func TestNew_RegistersEngineProviders(t *testing.T) {
	h := newHarness(preferLibrary())

	providers := h.search.Providers()
	require.Len(t, providers, 2)
	// Sorted by name.
	assert.Equal(t, "Last.fm", providers[0].Name)
	assert.Equal(t, "Library", providers[1].Name)
}

func TestTextEdited_ShortQueryHidesAndStartsNothing(t *testing.T) {
	tests := []string{"", "ab", "  ab  ", "\tx "}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			h := newHarness(preferLibrary())

			_, started := h.search.TextEdited(text)

			assert.False(t, started)
			assert.Empty(t, h.engine.queries)
			assert.Empty(t, h.sched.scheduled)
			require.NotEmpty(t, h.listener.visible)
			assert.False(t, h.listener.lastVisible())
		})
	}
}

func TestTextEdited_ShortQueryEndsSession(t *testing.T) {
	h := newHarness(preferLibrary())
	old, started := h.search.TextEdited("dark side")
	require.True(t, started)
	pending := h.sched.last()

	_, started = h.search.TextEdited("da")

	require.False(t, started)
	assert.Equal(t, []SessionID{old}, h.engine.cancelled)
	assert.Nil(t, h.search.Current())
	assert.False(t, h.search.IsCurrent(old))

	h.search.Ingest(old, []Result{track("library", "Dark Side", "DSOTM", "Pink Floyd")})
	assert.False(t, h.search.Cutover(pending))
	assert.False(t, h.search.Visible())
	assert.Equal(t, 0, h.search.Active().Len())
	assert.Equal(t, 0, h.search.Staging().Len())

	// a second short edit has nothing left to cancel
	h.search.TextEdited("d")
	assert.Len(t, h.engine.cancelled, 1)
}

func TestTextEdited_TrimsQuery(t *testing.T) {
	h := newHarness(preferLibrary())

	id, started := h.search.TextEdited("  dark side ")

	require.True(t, started)
	assert.Equal(t, []string{"dark side"}, h.engine.queries)
	assert.True(t, h.search.IsCurrent(id))
	assert.Equal(t, "dark side", h.search.Current().Query)
}

func TestStartSession_CancelsPrevious(t *testing.T) {
	h := newHarness(preferLibrary())

	first := h.search.StartSession("money")
	second := h.search.StartSession("money money")

	assert.Equal(t, []SessionID{first}, h.engine.cancelled)
	assert.False(t, h.search.IsCurrent(first))
	assert.True(t, h.search.IsCurrent(second))
	assert.Greater(t, second, first)
}

func TestIngest_StaleSessionDropped(t *testing.T) {
	h := newHarness(preferLibrary())

	old := h.search.StartSession("money")
	h.search.Ingest(old, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	current := h.search.StartSession("time")

	stagingBefore := h.search.Staging().Len()
	activeBefore := h.search.Active().Len()
	counterBefore := h.search.Current().arrivalCounter

	h.search.Ingest(old, []Result{track("lastfm", "Money", "DSOTM", "Pink Floyd")})

	assert.Equal(t, stagingBefore, h.search.Staging().Len())
	assert.Equal(t, activeBefore, h.search.Active().Len())
	assert.Equal(t, counterBefore, h.search.Current().arrivalCounter)
	assert.True(t, h.search.IsCurrent(current))
}

func TestIngest_BatchSharesArrivalOrder(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("time")

	h.search.Ingest(id, []Result{
		track("library", "Time", "DSOTM", "Pink Floyd"),
		track("library", "Time After Time", "She's So Unusual", "Cyndi Lauper"),
	})
	h.search.Ingest(id, []Result{track("lastfm", "Times Like These", "One by One", "Foo Fighters")})

	orders := map[string]int{}
	for _, r := range h.search.Staging().Rows() {
		orders[r.Primary().Metadata.Title] = r.ArrivalOrder
	}
	assert.Equal(t, 0, orders["Time"])
	assert.Equal(t, 0, orders["Time After Time"])
	assert.Equal(t, 1, orders["Times Like These"])
}

func TestIngest_ArrivalOrderResetsPerSession(t *testing.T) {
	h := newHarness(preferLibrary())
	first := h.search.StartSession("time")
	h.search.Ingest(first, []Result{track("library", "Time", "DSOTM", "Pink Floyd")})
	h.search.Ingest(first, []Result{track("lastfm", "Us and Them", "DSOTM", "Pink Floyd")})

	second := h.search.StartSession("brain")
	h.search.Ingest(second, []Result{track("library", "Brain Damage", "DSOTM", "Pink Floyd")})

	rows := h.search.Staging().Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].ArrivalOrder)
}

func TestIngest_AttachesCachedThumbnail(t *testing.T) {
	h := newHarness(preferLibrary())
	r := track("library", "Time", "DSOTM", "Pink Floyd")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	h.engine.cached[r.Key()] = img

	id := h.search.StartSession("time")
	h.search.Ingest(id, []Result{r})

	rec := h.search.Staging().Row(0)
	require.NotNil(t, rec)
	assert.Same(t, img, rec.Decoration)
	assert.Empty(t, h.engine.artLoads)
}

func TestScenario_DarkSideMerge(t *testing.T) {
	h := newHarness(preferLibrary())
	id, ok := h.search.TextEdited("dark side")
	require.True(t, ok)

	library := track("library", "Money", "The Dark Side of the Moon", "Pink Floyd")
	lastfm := track("lastfm", "Money", "The Dark Side of the Moon", "Pink Floyd")

	h.search.Ingest(id, []Result{library})
	h.search.Ingest(id, []Result{lastfm})

	staging := h.search.Staging()
	require.Equal(t, 1, staging.Len())
	rec := staging.Row(0)
	require.Len(t, rec.Alternatives, 2)
	assert.Equal(t, "library", rec.Primary().ProviderID)
	assert.Equal(t, "lastfm", rec.Alternatives[1].ProviderID)
}

func TestScenario_PreferredResultArrivesLast(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("dark side")

	h.search.Ingest(id, []Result{track("lastfm", "Money", "The Dark Side of the Moon", "Pink Floyd")})
	h.search.Ingest(id, []Result{track("library", "MONEY", "the dark side of the moon", "pink floyd")})

	staging := h.search.Staging()
	require.Equal(t, 1, staging.Len())
	rec := staging.Row(0)
	assert.Equal(t, "library", rec.Primary().ProviderID)
	assert.Equal(t, 1, rec.ArrivalOrder)
	require.Len(t, rec.Alternatives, 2)
	assert.Equal(t, "lastfm", rec.Alternatives[1].ProviderID)
}

func TestIngest_CombineDisabled(t *testing.T) {
	settings := preferLibrary()
	settings.CombineIdenticalResults = false
	h := newHarness(settings)
	id := h.search.StartSession("money")

	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	h.search.Ingest(id, []Result{track("lastfm", "Money", "DSOTM", "Pink Floyd")})

	assert.Equal(t, 2, h.search.Staging().Len())
}

func TestCutover_SwapsBuffersAtomically(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})

	staging := h.search.Staging()
	active := h.search.Active()
	assert.Equal(t, 0, active.Len())

	require.True(t, h.fire())

	assert.Same(t, staging, h.search.Active())
	assert.Same(t, active, h.search.Staging())
	assert.Equal(t, 1, h.search.Active().Len())
	assert.Equal(t, 1, h.listener.swaps)
	assert.True(t, h.listener.lastVisible())
}

func TestCutover_FiringTwiceSwapsOnce(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})

	due := h.sched.last()
	assert.True(t, h.search.Cutover(due))
	assert.False(t, h.search.Cutover(due))
	assert.Equal(t, 1, h.listener.swaps)
}

func TestCutover_FirstBatchRestartsTimer(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	require.Len(t, h.sched.scheduled, 1)
	armedAtStart := h.sched.last()

	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	h.search.Ingest(id, []Result{track("lastfm", "Money", "DSOTM", "Pink Floyd")})

	// Only the first non-empty batch re-arms.
	require.Len(t, h.sched.scheduled, 2)
	assert.False(t, h.search.Cutover(armedAtStart))
	assert.Equal(t, 0, h.listener.swaps)
	assert.True(t, h.fire())
	for _, d := range h.sched.delays {
		assert.Equal(t, DefaultSwapDelay, d)
	}
}

func TestCutover_EmptySessionHidesSurface(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	require.True(t, h.fire())
	require.True(t, h.listener.lastVisible())

	h.search.StartSession("zzzzzz")
	require.True(t, h.fire())

	assert.Equal(t, 0, h.search.Active().Len())
	assert.False(t, h.listener.lastVisible())
	assert.False(t, h.search.Visible())
}

func TestCutover_SupersededSessionTimerIsNoop(t *testing.T) {
	h := newHarness(preferLibrary())
	h.search.StartSession("money")
	old := h.sched.last()
	h.search.StartSession("time")

	assert.False(t, h.search.Cutover(old))
	assert.Equal(t, 0, h.listener.swaps)
}

func TestIngest_AfterCutoverLandsInActive(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	require.True(t, h.fire())

	h.search.Ingest(id, []Result{
		track("lastfm", "Money", "DSOTM", "Pink Floyd"),
		track("lastfm", "Money", "Fame", "Gary Numan"),
	})

	active := h.search.Active()
	assert.Equal(t, 2, active.Len())
	assert.Equal(t, 1, h.listener.rowsChanged)
	assert.Equal(t, 0, h.search.Staging().Len())
}

func TestArt_CutoverDiscardsPendingRequest(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	require.True(t, h.fire())

	rec := h.search.Active().Row(0)
	op, ok := h.search.RequestArt(rec.ID())
	require.True(t, ok)
	assert.Equal(t, 1, h.search.PendingArt())

	// A new session gets promoted.
	h.search.StartSession("money!")
	require.True(t, h.fire())
	assert.Equal(t, 0, h.search.PendingArt())

	h.search.OnArtLoaded(op, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.Nil(t, rec.Decoration)
	assert.Empty(t, h.listener.decorated)
}

func TestArt_LoadedAttachesToActiveRecord(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	require.True(t, h.fire())
	rec := h.search.Active().Row(0)

	op, ok := h.search.RequestArt(rec.ID())
	require.True(t, ok)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	h.search.OnArtLoaded(op, img)

	assert.Same(t, img, rec.Decoration)
	assert.Equal(t, []RecordID{rec.ID()}, h.listener.decorated)

	// Duplicate delivery is a no-op.
	h.search.OnArtLoaded(op, image.NewRGBA(image.Rect(0, 0, 3, 3)))
	assert.Same(t, img, rec.Decoration)
}

func TestArt_RequestGuardedPerRecord(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})

	// Staging records cannot request art.
	_, ok := h.search.RequestArt(h.search.Staging().Row(0).ID())
	assert.False(t, ok)

	require.True(t, h.fire())
	rec := h.search.Active().Row(0)

	_, ok = h.search.RequestArt(rec.ID())
	require.True(t, ok)
	_, ok = h.search.RequestArt(rec.ID())
	assert.False(t, ok)
	assert.Len(t, h.engine.artLoads, 1)
	assert.True(t, rec.LoadingArt())
}

func TestTracks_IntentAnnotation(t *testing.T) {
	tests := []struct {
		intent Intent
		want   Payload
	}{
		{IntentPlain, Payload{FromDoubleClick: true}},
		{IntentAdd, Payload{}},
		{IntentAddAndPlay, Payload{OverrideUserSettings: true, PlayNow: true}},
		{IntentAddAndQueue, Payload{EnqueueNow: true}},
		{IntentReplace, Payload{ClearFirst: true}},
		{IntentReplaceAndPlay, Payload{ClearFirst: true, OverrideUserSettings: true, PlayNow: true}},
	}

	for _, tt := range tests {
		t.Run(tt.intent.String(), func(t *testing.T) {
			h := newHarness(preferLibrary())
			songs := []Song{{Title: "Money"}}

			op := h.search.RequestTrack(track("library", "Money", "DSOTM", "Pink Floyd"), tt.intent)
			h.search.OnTrackMaterialized(op, &Payload{Songs: songs})

			require.Len(t, h.listener.payloads, 1)
			got := h.listener.payloads[0]
			want := tt.want
			want.Songs = songs
			assert.Equal(t, want, *got)
		})
	}
}

func TestTracks_EmptyMaterializationDropped(t *testing.T) {
	h := newHarness(preferLibrary())

	op := h.search.RequestTrack(track("library", "Money", "DSOTM", "Pink Floyd"), IntentAddAndQueue)
	h.search.OnTrackMaterialized(op, nil)

	assert.Empty(t, h.listener.payloads)
	assert.Equal(t, 0, h.search.PendingTracks())

	// A late duplicate with data is ignored too.
	h.search.OnTrackMaterialized(op, &Payload{Songs: []Song{{Title: "Money"}}})
	assert.Empty(t, h.listener.payloads)
}

func TestTracks_UnknownOperationIgnored(t *testing.T) {
	h := newHarness(preferLibrary())

	h.search.OnTrackMaterialized(OperationID(999), &Payload{Songs: []Song{{Title: "x"}}})

	assert.Empty(t, h.listener.payloads)
}

func TestActivate(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	h.search.Ingest(id, []Result{track("lastfm", "Money", "DSOTM", "Pink Floyd")})

	// Nothing active yet.
	_, ok := h.search.Activate(0, 0, IntentAdd)
	assert.False(t, ok)

	require.True(t, h.fire())

	_, ok = h.search.Activate(0, 1, IntentAdd)
	require.True(t, ok)
	assert.Equal(t, "lastfm", h.engine.trackLoad[0].ProviderID)

	// Invalid row falls back to the first row, default alternative.
	_, ok = h.search.Activate(-1, 0, IntentReplace)
	require.True(t, ok)
	assert.Equal(t, "library", h.engine.trackLoad[1].ProviderID)

	_, ok = h.search.Activate(0, 2, IntentAdd)
	assert.False(t, ok)
	assert.Len(t, h.engine.trackLoad, 2)
}

func TestProviders_DuplicateAndUnknown(t *testing.T) {
	h := newHarness(preferLibrary())

	err := h.search.OnProviderAdded(ProviderInfo{ID: "library", Name: "Library"})
	require.ErrorIs(t, err, ErrDuplicateProvider)
	assert.Len(t, h.search.Providers(), 2)

	err = h.search.OnProviderRemoved(ProviderInfo{ID: "nope", Name: "Nope"})
	require.ErrorIs(t, err, ErrUnknownProvider)
	assert.Len(t, h.search.Providers(), 2)

	require.NoError(t, h.search.OnProviderRemoved(ProviderInfo{ID: "lastfm", Name: "Last.fm"}))
	assert.Len(t, h.search.Providers(), 1)
}

func TestProviders_EnableToggle(t *testing.T) {
	h := newHarness(preferLibrary())

	require.NoError(t, h.search.SetProviderEnabled("lastfm", false))
	assert.False(t, h.search.IsProviderEnabled("lastfm"))

	require.ErrorIs(t, h.search.SetProviderEnabled("nope", true), ErrUnknownProvider)
}

func TestDispatch_RoutesEvents(t *testing.T) {
	h := newHarness(preferLibrary())
	id := h.search.StartSession("money")

	h.search.Dispatch(ResultsAvailable{Session: id, Results: []Result{track("library", "Money", "DSOTM", "Pink Floyd")}})
	h.search.Dispatch(h.sched.last())
	h.search.Dispatch(ProviderAdded{Provider: ProviderInfo{ID: "streams", Name: "Streams"}})

	assert.Equal(t, 1, h.search.Active().Len())
	assert.Len(t, h.search.Providers(), 3)
}

func TestReloadSettings_ChangesPreference(t *testing.T) {
	h := newHarness(preferLibrary())
	reversed := preferLibrary()
	reversed.ProviderOrder = []string{"lastfm", "library"}
	h.search.ReloadSettings(reversed)

	id := h.search.StartSession("money")
	h.search.Ingest(id, []Result{track("library", "Money", "DSOTM", "Pink Floyd")})
	h.search.Ingest(id, []Result{track("lastfm", "Money", "DSOTM", "Pink Floyd")})

	rec := h.search.Staging().Row(0)
	assert.Equal(t, "lastfm", rec.Primary().ProviderID)
}
