// Package action carries what a view wants done up to the root model.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a request from a view. ActionType names it in logs.
type Action interface {
	ActionType() string
}

// Msg is the tea message an Action travels in.
type Msg struct {
	Source string // emitting view, e.g. "searchview"
	Action Action
}

// Cmd emits a from source on the next update.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg { return Msg{Source: source, Action: a} }
}
