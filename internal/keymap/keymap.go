package keymap

import (
	"fmt"
	"strings"
)

// All contains every key binding, in help order.
var All = []Binding{
	// Result activation
	{ActionAdd, []string{"enter"}, "Add to playlist", ContextSearch},
	{ActionAddAndPlay, []string{"ctrl+p"}, "Add and play", ContextSearch},
	{ActionQueue, []string{"ctrl+e"}, "Queue after current track", ContextSearch},
	{ActionReplace, []string{"alt+enter"}, "Replace playlist", ContextSearch},
	{ActionReplaceAndPlay, []string{"ctrl+r"}, "Replace playlist and play", ContextSearch},
	{ActionActivate, []string{"ctrl+o"}, "Activate", ContextSearch},

	// Result list
	{ActionMoveUp, []string{"up", "ctrl+k"}, "Move up", ContextSearch},
	{ActionMoveDown, []string{"down", "ctrl+j"}, "Move down", ContextSearch},
	{ActionPageUp, []string{"pgup"}, "Page up", ContextSearch},
	{ActionPageDown, []string{"pgdown"}, "Page down", ContextSearch},
	{ActionNextAlt, []string{"tab"}, "Next provider for this result", ContextSearch},
	{ActionPrevAlt, []string{"shift+tab"}, "Previous provider for this result", ContextSearch},
	{ActionHide, []string{"esc"}, "Hide results", ContextSearch},
	{ActionToggleProvider, []string{"alt+1..9"}, "Enable/disable provider", ContextSearch},

	// Global
	{ActionUndo, []string{"ctrl+z"}, "Undo playlist change", ContextGlobal},
	{ActionReload, []string{"ctrl+l"}, "Reload configuration", ContextGlobal},
	{ActionHelp, []string{"f1"}, "Toggle this help", ContextGlobal},
	{ActionQuit, []string{"ctrl+c"}, "Quit", ContextGlobal},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Help formats the bindings of the given contexts as aligned help lines.
func Help(contexts ...string) []string {
	var lines []string
	for _, context := range contexts {
		for _, kb := range ByContext(context) {
			lines = append(lines, fmt.Sprintf("%-12s%s", strings.Join(kb.Keys, "/"), strings.ToLower(kb.Description)))
		}
	}
	return lines
}
