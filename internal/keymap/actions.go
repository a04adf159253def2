// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionReload Action = "reload_config"
	ActionUndo   Action = "undo"

	// Result activation
	ActionAdd            Action = "add"
	ActionAddAndPlay     Action = "add_and_play"
	ActionQueue          Action = "queue"
	ActionReplace        Action = "replace"
	ActionReplaceAndPlay Action = "replace_and_play"
	ActionActivate       Action = "activate"

	// Result list
	ActionMoveUp         Action = "move_up"
	ActionMoveDown       Action = "move_down"
	ActionPageUp         Action = "page_up"
	ActionPageDown       Action = "page_down"
	ActionNextAlt        Action = "next_alternative"
	ActionPrevAlt        Action = "prev_alternative"
	ActionHide           Action = "hide"
	ActionToggleProvider Action = "toggle_provider"
)

// Binding maps keys to an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // ContextGlobal or ContextSearch
}

const (
	ContextGlobal = "global"
	ContextSearch = "search"
)
