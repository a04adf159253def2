package library

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/wavesearch/internal/db"
)

const numWorkers = 8

var musicExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".mp4":  true,
	".ogg":  true,
	".opus": true,
}

// IsMusicFile reports whether path has a supported audio extension.
func IsMusicFile(path string) bool {
	return musicExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanStats summarizes a completed scan.
type ScanStats struct {
	Scanned int
	Added   int
	Updated int
	Removed int
	Skipped int
}

// fileTags holds the tag fields the index needs.
type fileTags struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	DiscNumber  int
	TrackNumber int
	Year        int
}

type fileInfo struct {
	path  string
	mtime int64
}

// Scan indexes the music files under sources. Unchanged files are skipped
// unless force is set, and tracks whose files vanished are removed.
// The FTS index is rebuilt afterwards.
func (l *Library) Scan(ctx context.Context, sources []string, force bool) (ScanStats, error) {
	var stats ScanStats

	files := discoverFiles(sources)
	stats.Scanned = len(files)

	existing, err := l.existingTracks(ctx)
	if err != nil {
		return stats, err
	}

	var toProcess []fileInfo
	for _, f := range files {
		if mtime, ok := existing[f.path]; ok && mtime == f.mtime && !force {
			continue
		}
		toProcess = append(toProcess, f)
	}

	var (
		mu      sync.Mutex
		results = make(map[string]*fileTags, len(toProcess))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for _, f := range toProcess {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := l.readTags(f.path)
			if err != nil || t.Artist == "" || t.Album == "" {
				l.logger.Debug("skipping file", "path", f.path, "error", err)
				return nil
			}
			mu.Lock()
			results[f.path] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	discovered := make(map[string]bool, len(files))
	for _, f := range files {
		discovered[f.path] = true
	}

	now := time.Now().Unix()
	err = db.WithTx(l.db, func(tx *sql.Tx) error {
		for _, f := range toProcess {
			t, ok := results[f.path]
			if !ok {
				stats.Skipped++
				continue
			}
			if _, known := existing[f.path]; known {
				stats.Updated++
			} else {
				stats.Added++
			}
			if err := upsertTrack(ctx, tx, f, t, now); err != nil {
				return err
			}
		}
		for path := range existing {
			if discovered[path] {
				continue
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM library_tracks WHERE path = ?`, path); err != nil {
				return err
			}
			stats.Removed++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	l.logger.Info("library scan done",
		"scanned", stats.Scanned, "added", stats.Added, "updated", stats.Updated,
		"removed", stats.Removed, "skipped", stats.Skipped)

	return stats, l.RebuildFTSIndex(ctx)
}

func upsertTrack(ctx context.Context, tx *sql.Tx, f fileInfo, t *fileTags, now int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO library_tracks (path, mtime, artist, album_artist, album, title, disc_number, track_number, year, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			artist = excluded.artist,
			album_artist = excluded.album_artist,
			album = excluded.album,
			title = excluded.title,
			disc_number = excluded.disc_number,
			track_number = excluded.track_number,
			year = excluded.year,
			updated_at = excluded.updated_at
	`, f.path, f.mtime, t.Artist, t.AlbumArtist, t.Album, t.Title, t.DiscNumber, t.TrackNumber, t.Year, now, now)
	return err
}

func (l *Library) existingTracks(ctx context.Context) (map[string]int64, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT path, mtime FROM library_tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		out[path] = mtime
	}
	return out, rows.Err()
}

// discoverFiles walks the source directories and returns the music files.
func discoverFiles(sources []string) []fileInfo {
	var files []fileInfo
	for _, src := range sources {
		_ = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
			// Skip walk errors and keep scanning the other paths
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			if d.IsDir() || !IsMusicFile(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			files = append(files, fileInfo{path: path, mtime: info.ModTime().Unix()})
			return nil
		})
	}
	return files
}

// readFileTags reads tag metadata from a music file.
func readFileTags(path string) (*fileTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}
	track, _ := m.Track()
	disc, _ := m.Disc()

	return &fileTags{
		Title:       title,
		Artist:      m.Artist(),
		AlbumArtist: albumArtist,
		Album:       m.Album(),
		DiscNumber:  disc,
		TrackNumber: track,
		Year:        m.Year(),
	}, nil
}
