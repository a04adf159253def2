package state

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/llehouerou/wavesearch/internal/db"
)

func newManager(t *testing.T) (*Manager, *sql.DB) {
	t.Helper()
	conn, err := db.Open(db.Memory)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	m, err := New(conn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, conn
}

func TestLastQuery_FirstRun(t *testing.T) {
	m, _ := newManager(t)

	q, err := m.LastQuery()
	if err != nil {
		t.Fatalf("LastQuery: %v", err)
	}
	if q != "" {
		t.Errorf("LastQuery = %q, want empty", q)
	}
}

func TestStoreQuery_Overwrites(t *testing.T) {
	_, conn := newManager(t)

	for _, q := range []string{"dark side", "wish you were here"} {
		if err := storeQuery(conn, q); err != nil {
			t.Fatalf("storeQuery(%q): %v", q, err)
		}
	}

	var rows int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM search_state`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("search_state rows = %d, want 1", rows)
	}
	if q, _ := loadQuery(conn); q != "wish you were here" {
		t.Errorf("query = %q, want %q", q, "wish you were here")
	}
}

func TestSaveQuery_WaitsForPause(t *testing.T) {
	m, _ := newManager(t)

	for _, q := range []string{"d", "da", "dar"} {
		m.SaveQuery(q)
	}
	if q, _ := m.LastQuery(); q != "" {
		t.Errorf("query written while typing: %q", q)
	}

	time.Sleep(queryDelay + 300*time.Millisecond)

	if q, _ := m.LastQuery(); q != "dar" {
		t.Errorf("query = %q, want %q", q, "dar")
	}
}

// recordHandler forwards every log record to a channel.
type recordHandler struct{ records chan slog.Record }

func (h recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.records <- r
	return nil
}

func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordHandler) WithGroup(string) slog.Handler { return h }

func TestSaveQuery_LogsWriteFailure(t *testing.T) {
	conn, err := db.Open(db.Memory)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	h := recordHandler{records: make(chan slog.Record, 4)}
	m, err := New(conn, WithLogger(slog.New(h)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.SaveQuery("echoes")
	conn.Close()

	select {
	case r := <-h.records:
		if r.Level != slog.LevelError {
			t.Errorf("level = %v, want %v", r.Level, slog.LevelError)
		}
		if r.Message != "failed to save search query" {
			t.Errorf("message = %q", r.Message)
		}
	case <-time.After(queryDelay + 2*time.Second):
		t.Fatal("write failure was not logged")
	}
}

func TestClose(t *testing.T) {
	t.Run("writes pending query", func(t *testing.T) {
		m, conn := newManager(t)

		m.SaveQuery("money")
		if err := m.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if q, _ := loadQuery(conn); q != "money" {
			t.Errorf("query = %q, want %q", q, "money")
		}
	})

	t.Run("ignores saves after close", func(t *testing.T) {
		m, conn := newManager(t)

		if err := m.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		m.SaveQuery("us and them")
		time.Sleep(queryDelay + 300*time.Millisecond)

		if q, _ := loadQuery(conn); q != "" {
			t.Errorf("query = %q, want empty", q)
		}
	})
}

func TestProviderToggles(t *testing.T) {
	m, _ := newManager(t)

	toggles, err := m.ProviderToggles()
	if err != nil {
		t.Fatalf("ProviderToggles: %v", err)
	}
	if len(toggles) != 0 {
		t.Errorf("toggles = %v, want none", toggles)
	}

	steps := []struct {
		id      string
		enabled bool
	}{
		{"lastfm", false},
		{"library", true},
		{"musicbrainz", false},
		{"lastfm", true},
	}
	for _, s := range steps {
		if err := m.SaveProviderEnabled(s.id, s.enabled); err != nil {
			t.Fatalf("SaveProviderEnabled(%s): %v", s.id, err)
		}
	}

	toggles, err = m.ProviderToggles()
	if err != nil {
		t.Fatalf("ProviderToggles: %v", err)
	}
	want := map[string]bool{"lastfm": true, "library": true, "musicbrainz": false}
	if len(toggles) != len(want) {
		t.Fatalf("toggles = %v, want %v", toggles, want)
	}
	for id, enabled := range want {
		if got, ok := toggles[id]; !ok || got != enabled {
			t.Errorf("toggles[%s] = %v (present %v), want %v", id, got, ok, enabled)
		}
	}
}

func TestNew_ExistingTables(t *testing.T) {
	_, conn := newManager(t)

	if _, err := New(conn); err != nil {
		t.Fatalf("second New: %v", err)
	}
}

func TestMock(t *testing.T) {
	var s Store = NewMock()

	s.SaveQuery("time")
	if err := s.SaveProviderEnabled("streams", false); err != nil {
		t.Fatal(err)
	}

	if q, _ := s.LastQuery(); q != "time" {
		t.Errorf("LastQuery = %q", q)
	}
	toggles, _ := s.ProviderToggles()
	toggles["streams"] = true
	if again, _ := s.ProviderToggles(); again["streams"] {
		t.Error("ProviderToggles returned the mock's own map")
	}
	_ = s.Close()
	if !s.(*Mock).Closed {
		t.Error("Close not recorded")
	}
}
