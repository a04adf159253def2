// Package searchview is the query line and result list of the global
// search. It renders the active buffer of a globalsearch.Search and reports
// user intent as action messages; it never mutates the search itself.
package searchview

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
	"github.com/llehouerou/wavesearch/internal/ui"
	"github.com/llehouerou/wavesearch/internal/ui/cursor"
)

// Model is the search view.
type Model struct {
	ui.Base
	input  textinput.Model
	search *globalsearch.Search

	sel cursor.Cursor
	// picked is the record the user moved to or cycled on; 0 until then.
	picked globalsearch.RecordID
}

// New creates a view over search.
func New(search *globalsearch.Search) Model {
	ti := textinput.New()
	ti.Placeholder = "Search library, Last.fm, MusicBrainz, streams..."
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	return Model{input: ti, search: search, sel: cursor.New(ui.ScrollMargin)}
}

// SetSize sets the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-4, 1)
}

// Query returns the current query text.
func (m Model) Query() string {
	return m.input.Value()
}

// SetQuery replaces the query text without emitting QueryChanged.
func (m *Model) SetQuery(q string) {
	m.input.SetValue(q)
	m.input.CursorEnd()
}

// Cursor returns the row under the cursor.
func (m Model) Cursor() int {
	return m.sel.Row()
}

// Alternative returns the active alternative of the record under the cursor.
func (m Model) Alternative() int {
	return m.sel.Alt()
}

// Selected returns the record under the cursor, or nil.
func (m Model) Selected() *globalsearch.Record {
	return m.search.Active().Row(m.sel.Row())
}

// ResetCursor moves back to the first row. Called after a buffer swap.
func (m *Model) ResetCursor() {
	m.sel.Reset()
	m.picked = 0
}

// Clamp keeps the cursor inside the active buffer after rows changed. A
// record the user picked keeps the cursor and its alternative when it is
// re-sorted; if it is gone the alternative resets.
func (m *Model) Clamp() {
	buf := m.search.Active()
	if m.picked != 0 {
		if row := buf.RowOf(m.picked); row >= 0 {
			m.sel.Follow(row, buf.Len(), m.listHeight())
		}
	}

	row := min(m.sel.Row(), max(buf.Len()-1, 0))
	alts := 0
	if rec := buf.Row(row); rec != nil && (m.picked == 0 || rec.ID() == m.picked) {
		alts = len(rec.Alternatives)
	}
	m.sel.Clamp(buf.Len(), alts, m.listHeight())
	m.pick()
}

// pick remembers the record under the cursor once the user has chosen one.
func (m *Model) pick() {
	if m.picked == 0 {
		return
	}
	m.picked = 0
	if rec := m.Selected(); rec != nil {
		m.picked = rec.ID()
	}
}

// listHeight is the number of result rows shown.
func (m Model) listHeight() int {
	return m.FitRows(m.search.Active().Len())
}

// VisibleRecords returns the ids of the records currently on screen.
func (m Model) VisibleRecords() []globalsearch.RecordID {
	if !m.search.Visible() {
		return nil
	}
	rows := m.search.Active().Rows()
	start, end := m.sel.VisibleRange(len(rows), m.listHeight())
	ids := make([]globalsearch.RecordID, 0, end-start)
	for _, rec := range rows[start:end] {
		ids = append(ids, rec.ID())
	}
	return ids
}

func (m *Model) move(delta int) {
	m.sel.Move(delta, m.search.Active().Len(), m.listHeight())
	if rec := m.Selected(); rec != nil {
		m.picked = rec.ID()
	}
}

func (m *Model) cycleAlternative(delta int) {
	rec := m.Selected()
	if rec == nil {
		return
	}
	m.sel.CycleAlt(delta, len(rec.Alternatives))
	m.picked = rec.ID()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
