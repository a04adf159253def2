package searchview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
	"github.com/llehouerou/wavesearch/internal/icons"
	"github.com/llehouerou/wavesearch/internal/ui/render"
	"github.com/llehouerou/wavesearch/internal/ui/styles"
)

func typeIcon(t globalsearch.Type) string {
	switch t {
	case globalsearch.TypeAlbum:
		return icons.Album()
	case globalsearch.TypeStream:
		return icons.Stream()
	default:
		return icons.Track()
	}
}

// decorationMark shows whether a thumbnail is attached or on its way.
func decorationMark(rec *globalsearch.Record) string {
	switch {
	case rec.Decoration != nil:
		return icons.Art()
	case rec.LoadingArt():
		return icons.Loading()
	default:
		return " "
	}
}

// Describe returns the one-line text of a result.
func Describe(r globalsearch.Result) string {
	md := r.Metadata
	switch r.Type {
	case globalsearch.TypeAlbum:
		s := md.Album
		if md.Artist != "" {
			s += " - " + md.Artist
		}
		return s
	case globalsearch.TypeStream:
		if md.Title != "" {
			return md.Title
		}
		return md.URL
	default:
		s := md.Title
		if md.Artist != "" {
			s += " - " + md.Artist
		}
		if md.Album != "" {
			s += " (" + md.Album + ")"
		}
		return s
	}
}

func badges(rec *globalsearch.Record, active int) string {
	t := styles.T()
	parts := make([]string, len(rec.Alternatives))
	for i, r := range rec.Alternatives {
		style := t.Badge(r.ProviderID)
		if i == active {
			style = style.Bold(true).Underline(true)
		}
		parts[i] = style.Render(r.ProviderID)
	}
	return strings.Join(parts, " ")
}

func (m Model) formatRow(rec *globalsearch.Record, width int, isCursor bool) string {
	alt := 0
	if isCursor && m.sel.Alt() < len(rec.Alternatives) {
		alt = m.sel.Alt()
	}
	r := rec.Alternatives[alt]

	right := badges(rec, alt)
	if d := render.Duration(r.Metadata.Length); d != "" {
		right += " " + styles.T().S().Muted.Render(d)
	}

	prefix := "  "
	if isCursor {
		prefix = "> "
	}
	left := prefix + decorationMark(rec) + " " + typeIcon(r.Type) + " "
	avail := max(width-lipgloss.Width(left)-lipgloss.Width(right)-1, 1)
	left += render.Truncate(Describe(r), avail)

	line := render.Row(left, right, width)
	if isCursor {
		return styles.T().S().Cursor.Render(line)
	}
	return styles.T().S().Base.Render(line)
}

// View implements tea.Model.
func (m Model) View() string {
	width := m.Width()
	if width == 0 {
		return ""
	}

	input := m.input.View()
	if !m.search.Visible() {
		return input
	}

	lines := []string{input, styles.T().S().Subtle.Render(render.Separator(width))}

	rows := m.search.Active().Rows()
	height := m.listHeight()
	start, end := m.sel.VisibleRange(len(rows), height)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatRow(rows[i], width, i == m.sel.Row()))
	}
	for len(lines) < height+2 {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
