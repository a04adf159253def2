package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

// waitForChannel waits for one receive on ch and hands the value, with
// false once ch is closed, to onResult. A nil channel yields no command.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// watchEngine waits for the next engine event. Update re-issues it after
// every event so exactly one wait is outstanding.
func watchEngine(ch <-chan globalsearch.Event) tea.Cmd {
	return waitForChannel(ch, func(ev globalsearch.Event, ok bool) tea.Msg {
		if !ok {
			return EngineClosedMsg{}
		}
		return EngineEventMsg{Event: ev}
	})
}

func restoreQuery(q string) tea.Cmd {
	if q == "" {
		return nil
	}
	return func() tea.Msg { return restoreQueryMsg{Query: q} }
}
