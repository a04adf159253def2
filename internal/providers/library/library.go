// Package library is the local music library search provider. Tracks are
// indexed from tagged files into SQLite and searched through an FTS5
// trigram index.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	dbutil "github.com/llehouerou/wavesearch/internal/db"
	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

const (
	providerName      = "Library"
	defaultMaxResults = 100
)

// Track is a row of library_tracks.
type Track struct {
	ID          int64
	Path        string
	Mtime       int64
	Artist      string
	AlbumArtist string
	Album       string
	Title       string
	DiscNumber  int
	TrackNumber int
	Year        int
}

// Library searches and indexes the local collection.
type Library struct {
	db         *sql.DB
	logger     *slog.Logger
	maxResults int
	readTags   func(path string) (*fileTags, error)
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMaxResults caps the number of results per search.
func WithMaxResults(n int) Option {
	return func(l *Library) {
		if n > 0 {
			l.maxResults = n
		}
	}
}

// New creates a library backed by db. The schema is created if needed.
func New(db *sql.DB, opts ...Option) (*Library, error) {
	l := &Library{
		db:         db,
		logger:     slog.Default(),
		maxResults: defaultMaxResults,
		readTags:   readFileTags,
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate library schema: %w", err)
	}
	return l, nil
}

// ID returns the provider id.
func (l *Library) ID() string { return globalsearch.LibraryProviderID }

// Name returns the provider display name.
func (l *Library) Name() string { return providerName }

// Search finds tracks and albums matching query.
func (l *Library) Search(ctx context.Context, query string) ([]globalsearch.Result, error) {
	hits, err := l.searchFTS(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("library search: %w", err)
	}

	tokens := globalsearch.Tokenize(query)
	results := make([]globalsearch.Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, h.result(tokens))
	}
	return results, nil
}

// LoadTracks returns the songs behind a result: the track itself, or every
// track of an album in order.
func (l *Library) LoadTracks(ctx context.Context, r globalsearch.Result) ([]globalsearch.Song, error) {
	var tracks []Track
	switch r.Type {
	case globalsearch.TypeTrack:
		id, err := strconv.ParseInt(r.Ref, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid track ref %q: %w", r.Ref, err)
		}
		t, err := l.TrackByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		tracks = []Track{*t}
	case globalsearch.TypeAlbum:
		var err error
		tracks, err = l.AlbumTracks(ctx, r.Metadata.AlbumArtist, r.Metadata.Album)
		if err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}

	songs := make([]globalsearch.Song, len(tracks))
	for i, t := range tracks {
		songs[i] = t.song()
	}
	return songs, nil
}

func (t Track) song() globalsearch.Song {
	return globalsearch.Song{
		ProviderID:  globalsearch.LibraryProviderID,
		Title:       t.Title,
		Artist:      t.Artist,
		AlbumArtist: t.AlbumArtist,
		Album:       t.Album,
		TrackNumber: t.TrackNumber,
		Year:        t.Year,
		Path:        t.Path,
	}
}

const trackColumns = `id, path, mtime, artist, album_artist, album, title, disc_number, track_number, year`

func scanTrack(row interface{ Scan(...any) error }) (Track, error) {
	var t Track
	var disc, num, year sql.NullInt64
	err := row.Scan(&t.ID, &t.Path, &t.Mtime, &t.Artist, &t.AlbumArtist, &t.Album, &t.Title, &disc, &num, &year)
	t.DiscNumber = int(dbutil.NullInt64Value(disc))
	t.TrackNumber = int(dbutil.NullInt64Value(num))
	t.Year = int(dbutil.NullInt64Value(year))
	return t, err
}

// TrackByID returns a track by its ID.
func (l *Library) TrackByID(ctx context.Context, id int64) (*Track, error) {
	row := l.db.QueryRowContext(ctx, `SELECT `+trackColumns+` FROM library_tracks WHERE id = ?`, id)
	t, err := scanTrack(row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AlbumTracks returns the tracks of an album in disc and track order.
func (l *Library) AlbumTracks(ctx context.Context, albumArtist, album string) ([]Track, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT `+trackColumns+`
		FROM library_tracks
		WHERE album_artist = ? AND album = ?
		ORDER BY disc_number, track_number, title COLLATE NOCASE
	`, albumArtist, album)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// TrackCount returns the number of indexed tracks.
func (l *Library) TrackCount(ctx context.Context) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM library_tracks`).Scan(&count)
	return count, err
}
