package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/wavesearch/internal/keymap"
	"github.com/llehouerou/wavesearch/internal/ui/popup"
	"github.com/llehouerou/wavesearch/internal/ui/render"
	"github.com/llehouerou/wavesearch/internal/ui/styles"
)

const (
	queueRows        = 5
	queuePanelHeight = queueRows + 2
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.SearchView.View(),
	}
	body := strings.Join(sections, "\n")

	// Push the queue panel and status to the bottom.
	used := lipgloss.Height(body) + queuePanelHeight + 2
	if gap := m.Height - used; gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	out := strings.Join([]string{
		body,
		m.renderQueue(),
		m.renderStatus(),
		m.renderError(),
	}, "\n")

	if m.ShowHelp {
		help := popup.Dialog{
			Title:  "Keys",
			Lines:  keymap.Help(keymap.ContextSearch, keymap.ContextGlobal),
			Footer: "any key to close",
		}
		out = popup.Compose(out, help.Render(m.Width, m.Height), m.Width)
	}
	return out
}

func (m Model) renderHeader() string {
	t := styles.T()
	var providers []string
	for i, p := range m.Search.Providers() {
		label := p.Name
		if i < 9 {
			label = "alt+" + string(rune('1'+i)) + " " + p.Name
		}
		if m.Search.IsProviderEnabled(p.ID) {
			providers = append(providers, t.Badge(p.ID).Render(label))
		} else {
			providers = append(providers, t.S().Disabled.Render(label))
		}
	}
	return render.Row(styles.Header("wavesearch"), strings.Join(providers, "  "), m.Width)
}

func (m Model) renderQueue() string {
	t := styles.T()
	// inside the border and one column of padding on each side
	inner := max(m.Width-6, 1)

	tracks := m.Queue.Tracks()
	current := m.Queue.CurrentIndex()
	start := max(min(current-1, len(tracks)-queueRows), 0)
	end := min(start+queueRows, len(tracks))

	lines := make([]string, 0, queueRows)
	for i := start; i < end; i++ {
		tr := tracks[i]
		left := tr.Title
		if tr.Artist != "" {
			left += " - " + tr.Artist
		}
		right := render.Duration(tr.Duration)
		line := render.Row(render.Truncate(left, max(inner-lipgloss.Width(right)-1, 1)), right, inner)
		if i == current {
			line = t.S().Playing.Render(line)
		} else {
			line = t.S().Muted.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, t.S().Subtle.Render("Playlist is empty"))
	}
	for len(lines) < queueRows {
		lines = append(lines, "")
	}

	return t.S().Panel.Width(inner+2).Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	t := styles.T()
	results := m.Search.Active().Len()

	left := humanize.Comma(int64(results)) + " results"
	if q := m.Search.Current(); q != nil && m.Search.Visible() {
		left += " for \"" + q.Query + "\""
	}
	if m.StatusMsg != "" {
		left += " · " + m.StatusMsg
	}
	right := "playlist: " + humanize.Comma(int64(m.Queue.Len())) + " · f1 help"
	return t.S().Muted.Render(render.Row(render.Truncate(left, max(m.Width-lipgloss.Width(right)-1, 1)), right, m.Width))
}

func (m Model) renderError() string {
	if m.ErrorMsg == "" {
		return ""
	}
	return styles.T().S().Error.Render(render.Truncate(m.ErrorMsg, m.Width))
}
