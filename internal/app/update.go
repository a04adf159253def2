package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/wavesearch/internal/app/handler"
	"github.com/llehouerou/wavesearch/internal/errmsg"
	"github.com/llehouerou/wavesearch/internal/globalsearch"
	"github.com/llehouerou/wavesearch/internal/icons"
	"github.com/llehouerou/wavesearch/internal/keymap"
	"github.com/llehouerou/wavesearch/internal/ui/action"
	"github.com/llehouerou/wavesearch/internal/ui/searchview"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.SearchView.SetSize(msg.Width, m.viewHeight())

	case EngineEventMsg:
		m.Search.Dispatch(msg.Event)
		cmds = append(cmds, watchEngine(m.engine.Events()))

	case EngineClosedMsg:
		return m, tea.Quit

	case cutoverMsg:
		m.Search.Cutover(msg.Due)

	case restoreQueryMsg:
		m.Search.TextEdited(msg.Query)

	case action.Msg:
		m.logger.Debug("action", "source", msg.Source, "type", msg.Action.ActionType())
		cmds = append(cmds, m.handleAction(msg.Action))

	case tea.KeyMsg:
		if handled, cmd := handler.Chain(msg, m.globalKeys()...); handled {
			cmds = append(cmds, cmd)
			break
		}
		if m.ShowHelp {
			m.ShowHelp = false
			break
		}
		var cmd tea.Cmd
		m.SearchView, cmd = m.SearchView.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.SearchView, cmd = m.SearchView.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.sync()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) globalKeys() []handler.Handler {
	keys := keymap.Global.KeysFor
	return []handler.Handler{
		handler.Keys(func(string) tea.Cmd { return tea.Quit }, keys(keymap.ActionQuit)...),
		handler.Keys(func(string) tea.Cmd {
			m.ShowHelp = !m.ShowHelp
			return nil
		}, keys(keymap.ActionHelp)...),
		handler.Keys(func(string) tea.Cmd {
			m.reloadConfig()
			return nil
		}, keys(keymap.ActionReload)...),
		handler.Keys(func(string) tea.Cmd {
			if m.Queue.Undo() {
				m.StatusMsg = "Undid last playlist change"
			}
			return nil
		}, keys(keymap.ActionUndo)...),
	}
}

func (m *Model) handleAction(a action.Action) tea.Cmd {
	switch a := a.(type) {
	case searchview.QueryChanged:
		m.ErrorMsg = ""
		m.Search.TextEdited(a.Text)
		m.state.SaveQuery(a.Text)

	case searchview.Hide:
		m.Search.Hide()

	case searchview.Activate:
		if _, ok := m.Search.Activate(a.Row, a.Alternative, a.Intent); ok {
			m.StatusMsg = "Loading tracks..."
		}

	case searchview.ToggleProvider:
		m.toggleProvider(a.Index)
	}
	return nil
}

func (m *Model) toggleProvider(index int) {
	providers := m.Search.Providers()
	if index < 0 || index >= len(providers) {
		return
	}
	p := providers[index]
	enabled := !m.Search.IsProviderEnabled(p.ID)

	if err := m.Search.SetProviderEnabled(p.ID, enabled); err != nil {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpProviderToggle, p.Name, err)
		return
	}
	if err := m.state.SaveProviderEnabled(p.ID, enabled); err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpStateSave, err)
	}

	if enabled {
		m.StatusMsg = p.Name + " enabled"
	} else {
		m.StatusMsg = p.Name + " disabled"
	}
	m.Search.TextEdited(m.SearchView.Query())
}

func (m *Model) reloadConfig() {
	if m.reload == nil {
		return
	}
	cfg, err := m.reload()
	if err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpConfigReload, err)
		return
	}
	m.Search.ReloadSettings(cfg.SearchSettings())
	m.Queue.PlayOnActivate = cfg.PlayOnActivate()
	icons.Init(cfg.Icons)
	m.ErrorMsg = ""
	m.StatusMsg = "Configuration reloaded"
}

// sync applies what the search reported while handling the last message:
// cursor resets, playlist payloads, art requests for visible rows and
// pending cutover timers.
func (m *Model) sync() []tea.Cmd {
	l := m.listener
	if l.swapped {
		m.SearchView.ResetCursor()
	}
	if l.rowsChanged {
		m.SearchView.Clamp()
	}
	for _, p := range l.payloads {
		m.applyPayload(p)
	}
	l.reset()

	for _, id := range m.SearchView.VisibleRecords() {
		m.Search.RequestArt(id)
	}

	return m.sched.drain()
}

func (m *Model) applyPayload(p *globalsearch.Payload) {
	playing := m.Queue.Apply(p)
	added := english.Plural(len(p.Songs), "track", "")

	switch {
	case playing != nil:
		m.StatusMsg = fmt.Sprintf("Playing %s (%s added)", playing.Title, added)
	case p.ClearFirst:
		m.StatusMsg = "Playlist replaced with " + added
	case p.EnqueueNow:
		m.StatusMsg = "Queued " + added
	default:
		m.StatusMsg = "Added " + added
	}
	m.logger.Debug("payload applied", "songs", len(p.Songs), "play_now", p.PlayNow, "clear_first", p.ClearFirst)
}

func (m Model) viewHeight() int {
	// header, blank, queue panel, status and error lines
	return max(m.Height-queuePanelHeight-4, 1)
}
