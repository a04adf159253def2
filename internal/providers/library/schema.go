package library

import "database/sql"

// Migrate creates the library tables if they do not exist yet.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS library_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			artist TEXT NOT NULL,
			album_artist TEXT NOT NULL,
			album TEXT NOT NULL,
			title TEXT NOT NULL,
			disc_number INTEGER,
			track_number INTEGER,
			year INTEGER,
			added_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_album_artist_album ON library_tracks(album_artist, album);

		CREATE VIRTUAL TABLE IF NOT EXISTS library_search_fts USING fts5(
			search_text,
			result_type UNINDEXED,
			artist UNINDEXED,
			album UNINDEXED,
			track_id UNINDEXED,
			year UNINDEXED,
			track_title UNINDEXED,
			track_artist UNINDEXED,
			track_number UNINDEXED,
			path UNINDEXED,
			tokenize='trigram'
		);
	`)
	return err
}
