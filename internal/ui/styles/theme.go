package styles

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette of the search interface and the styles derived
// from it.
type Theme struct {
	Primary   lipgloss.Color // cursor row, playing entry, header start
	Secondary lipgloss.Color // header end

	Text   lipgloss.Color
	Dim    lipgloss.Color
	Faint  lipgloss.Color
	Cursor lipgloss.Color // row background
	Border lipgloss.Color
	Error  lipgloss.Color

	// Provider badges pick one of these by provider id.
	Badges []lipgloss.Color

	styles *Styles
}

// Styles are the ready-made styles views render with.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Playing  lipgloss.Style
	Cursor   lipgloss.Style
	Error    lipgloss.Style
	Disabled lipgloss.Style // toggled-off provider
	Panel    lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   "#a78bfa",
	Secondary: "#f1a208",

	Text:   "#c0c0c0",
	Dim:    "#808080",
	Faint:  "#585858",
	Cursor: "#303030",
	Border: "#585858",
	Error:  "#ff5555",

	Badges: []lipgloss.Color{"#42b883", "#ff6f61", "#4fc3f7", "#f1a208", "#ba68c8"},
}

// T returns the theme in use.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles of t, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.build()
	}
	return t.styles
}

// Badge returns the style of a provider badge. A provider keeps its color
// across runs.
func (t *Theme) Badge(providerID string) lipgloss.Style {
	h := fnv.New32a()
	_, _ = h.Write([]byte(providerID))
	return lipgloss.NewStyle().Foreground(t.Badges[h.Sum32()%uint32(len(t.Badges))])
}

func (t *Theme) build() *Styles {
	text := lipgloss.NewStyle().Foreground(t.Text)
	faint := lipgloss.NewStyle().Foreground(t.Faint)

	return &Styles{
		Base:     text,
		Muted:    lipgloss.NewStyle().Foreground(t.Dim),
		Subtle:   faint,
		Title:    text.Bold(true),
		Playing:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:   text.Background(t.Cursor),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Disabled: faint.Strikethrough(true),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
	}
}
