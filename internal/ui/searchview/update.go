package searchview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavesearch/internal/keymap"
)

// Update handles keys. Query edits go to the text input and are reported
// with QueryChanged.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleKey(key); handled {
			return m, cmd
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if text := m.input.Value(); text != prev {
		return m, tea.Batch(cmd, emit(QueryChanged{Text: text}))
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	if intent, ok := IntentForKey(key); ok {
		return emit(Activate{Row: m.sel.Row(), Alternative: m.sel.Alt(), Intent: intent}), true
	}
	if i, ok := providerToggleIndex(key); ok {
		return emit(ToggleProvider{Index: i}), true
	}

	switch keymap.Search.Resolve(key) {
	case keymap.ActionHide:
		return emit(Hide{}), true
	case keymap.ActionMoveUp:
		m.move(-1)
	case keymap.ActionMoveDown:
		m.move(1)
	case keymap.ActionPageUp:
		m.move(-m.listHeight())
	case keymap.ActionPageDown:
		m.move(m.listHeight())
	case keymap.ActionNextAlt:
		m.cycleAlternative(1)
	case keymap.ActionPrevAlt:
		m.cycleAlternative(-1)
	default:
		return nil, false
	}
	return nil, true
}
