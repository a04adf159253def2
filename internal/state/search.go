package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/wavesearch/internal/db"
)

func loadQuery(db *sql.DB) (string, error) {
	var query sql.NullString
	err := db.QueryRow(`SELECT query FROM search_state WHERE id = 1`).Scan(&query)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return dbutil.NullStringValue(query), nil
}

func storeQuery(db *sql.DB, query string) error {
	_, err := db.Exec(`
		INSERT INTO search_state (id, query, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			updated_at = excluded.updated_at
	`, query, time.Now().Unix())
	return err
}
