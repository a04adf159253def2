package searchview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
	"github.com/llehouerou/wavesearch/internal/ui/action"
)

const source = "searchview"

// QueryChanged is emitted whenever the query text changes.
type QueryChanged struct {
	Text string
}

// Activate asks for an alternative of the record at Row to be materialized.
type Activate struct {
	Row         int
	Alternative int
	Intent      globalsearch.Intent
}

// Hide asks for the result surface to be hidden.
type Hide struct{}

// ToggleProvider asks for the Index-th provider (in display order) to be
// enabled or disabled.
type ToggleProvider struct {
	Index int
}

func (QueryChanged) ActionType() string { return "searchview.query_changed" }
func (Activate) ActionType() string { return "searchview.activate" }
func (Hide) ActionType() string { return "searchview.hide" }
func (ToggleProvider) ActionType() string { return "searchview.toggle_provider" }

func emit(a action.Action) tea.Cmd {
	return action.Cmd(source, a)
}
