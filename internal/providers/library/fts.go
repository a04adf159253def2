package library

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/llehouerou/wavesearch/internal/db"
	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

// EnsureFTSIndex rebuilds the FTS index only if it's empty.
func (l *Library) EnsureFTSIndex(ctx context.Context) error {
	var count int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM library_search_fts`).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		return l.RebuildFTSIndex(ctx)
	}
	return nil
}

// RebuildFTSIndex rebuilds the full-text search index from library_tracks.
func (l *Library) RebuildFTSIndex(ctx context.Context) error {
	return db.WithTx(l.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM library_search_fts`); err != nil {
			return err
		}

		//nolint:dupword // SQL NULL values
		_, err := tx.ExecContext(ctx, `
			INSERT INTO library_search_fts (search_text, result_type, artist, album, track_id, year, track_title, track_artist, track_number, path)
			SELECT
				album_artist || ' ' || album,
				'album',
				album_artist,
				album,
				NULL,
				MAX(year),
				NULL,
				NULL,
				NULL,
				MIN(path)
			FROM library_tracks
			GROUP BY album_artist, album
		`)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO library_search_fts (search_text, result_type, artist, album, track_id, year, track_title, track_artist, track_number, path)
			SELECT
				album_artist || ' ' || album || ' ' || title || CASE WHEN artist != album_artist THEN ' ' || artist ELSE '' END,
				'track',
				album_artist,
				album,
				id,
				year,
				title,
				artist,
				track_number,
				path
			FROM library_tracks
		`)
		return err
	})
}

// hit is one row of the FTS index.
type hit struct {
	isAlbum     bool
	albumArtist string
	albumName   string
	trackID     int64
	year        int
	title       string
	artist      string
	trackNumber int
	path        string
}

func (l *Library) searchFTS(ctx context.Context, query string) ([]hit, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT result_type, artist, album, track_id, year, track_title, track_artist, track_number, path
		FROM library_search_fts
		WHERE search_text MATCH ?
		ORDER BY rank
		LIMIT ?
	`, escapeFTSQuery(query), l.maxResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []hit
	for rows.Next() {
		var h hit
		var resultType string
		var albumArtist, album, title, artist, path sql.NullString
		var trackID, year, trackNum sql.NullInt64

		if err := rows.Scan(&resultType, &albumArtist, &album, &trackID, &year, &title, &artist, &trackNum, &path); err != nil {
			return nil, err
		}

		h.isAlbum = resultType == "album"
		h.albumArtist = db.NullStringValue(albumArtist)
		h.albumName = db.NullStringValue(album)
		h.trackID = db.NullInt64Value(trackID)
		h.year = int(db.NullInt64Value(year))
		h.title = db.NullStringValue(title)
		h.artist = db.NullStringValue(artist)
		h.trackNumber = int(db.NullInt64Value(trackNum))
		h.path = db.NullStringValue(path)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (h hit) result(tokens []string) globalsearch.Result {
	r := globalsearch.Result{
		ProviderID: globalsearch.LibraryProviderID,
		Metadata: globalsearch.Metadata{
			Album:       h.albumName,
			AlbumArtist: h.albumArtist,
			Artist:      h.albumArtist,
			Year:        h.year,
			Path:        h.path,
		},
	}

	if h.isAlbum {
		r.Type = globalsearch.TypeAlbum
		r.MatchQuality = globalsearch.BestQuality(tokens, h.albumName, h.albumArtist)
		return r
	}

	r.Type = globalsearch.TypeTrack
	r.Ref = strconv.FormatInt(h.trackID, 10)
	r.Metadata.Title = h.title
	r.Metadata.Artist = h.artist
	r.Metadata.TrackNumber = h.trackNumber
	r.MatchQuality = globalsearch.BestQuality(tokens, h.title, h.artist, h.albumName)
	return r
}

// escapeFTSQuery escapes a query string for FTS5 trigram search.
// Each word is wrapped in quotes for substring matching, with implicit AND between words.
func escapeFTSQuery(query string) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return `""`
	}

	quoted := make([]string, len(words))
	for i, word := range words {
		escaped := strings.ReplaceAll(word, `"`, `""`)
		quoted[i] = `"` + escaped + `"`
	}

	return strings.Join(quoted, " ")
}
