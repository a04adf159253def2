package state

import "maps"

// Mock is an in-memory Store. SaveQuery takes effect at once.
type Mock struct {
	Query   string
	Toggles map[string]bool
	Closed  bool
}

// NewMock returns an empty Mock.
func NewMock() *Mock {
	return &Mock{Toggles: make(map[string]bool)}
}

func (m *Mock) LastQuery() (string, error) { return m.Query, nil }

func (m *Mock) SaveQuery(query string) { m.Query = query }

func (m *Mock) ProviderToggles() (map[string]bool, error) {
	return maps.Clone(m.Toggles), nil
}

func (m *Mock) SaveProviderEnabled(id string, enabled bool) error {
	m.Toggles[id] = enabled
	return nil
}

func (m *Mock) Close() error {
	m.Closed = true
	return nil
}

var _ Store = (*Mock)(nil)
