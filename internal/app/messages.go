// Package app wires the search engine, its providers and the terminal UI
// into the root bubbletea model.
package app

import "github.com/llehouerou/wavesearch/internal/globalsearch"

// EngineEventMsg carries an engine response into Update.
type EngineEventMsg struct {
	Event globalsearch.Event
}

// EngineClosedMsg is sent when the engine's event channel closes.
type EngineClosedMsg struct{}

// cutoverMsg is sent when a scheduled cutover timer fires.
type cutoverMsg struct {
	Due globalsearch.CutoverDue
}

// restoreQueryMsg re-runs the query saved by the previous session.
type restoreQueryMsg struct {
	Query string
}
