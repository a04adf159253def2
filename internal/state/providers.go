package state

import (
	"time"
)

// ProviderToggles returns the saved enabled flag of every provider the user
// has toggled. Providers never toggled are absent.
func (m *Manager) ProviderToggles() (map[string]bool, error) {
	rows, err := m.db.Query(`SELECT provider_id, enabled FROM provider_state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	toggles := make(map[string]bool)
	for rows.Next() {
		var id string
		var enabled bool
		if err := rows.Scan(&id, &enabled); err != nil {
			return nil, err
		}
		toggles[id] = enabled
	}
	return toggles, rows.Err()
}

// SaveProviderEnabled persists a provider toggle.
func (m *Manager) SaveProviderEnabled(id string, enabled bool) error {
	_, err := m.db.Exec(`
		INSERT INTO provider_state (provider_id, enabled, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(provider_id) DO UPDATE SET
			enabled = excluded.enabled,
			updated_at = excluded.updated_at
	`, id, enabled, time.Now().Unix())
	return err
}
