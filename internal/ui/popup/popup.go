// Package popup renders centered dialogs and overlays them on a base view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/wavesearch/internal/ui/render"
	"github.com/llehouerou/wavesearch/internal/ui/styles"
)

// Dialog is a bordered box with a title, body lines and a footer.
type Dialog struct {
	Title  string
	Lines  []string
	Footer string
	Width  int // content width; 0 = fit content
}

// Render returns the dialog centered in a termWidth x termHeight area.
func (d Dialog) Render(termWidth, termHeight int) string {
	t := styles.T()

	width := d.Width
	if width == 0 {
		width = max(lipgloss.Width(d.Title), lipgloss.Width(d.Footer))
		for _, l := range d.Lines {
			width = max(width, lipgloss.Width(l))
		}
	}
	// border and padding take two columns on each side
	width = max(min(width, termWidth-6), 1)

	lines := make([]string, 0, len(d.Lines)+4)
	if d.Title != "" {
		lines = append(lines, centerLine(t.S().Title.Render(d.Title), width), "")
	}
	for _, l := range d.Lines {
		lines = append(lines, render.Fit(l, width))
	}
	if d.Footer != "" {
		lines = append(lines, "", centerLine(t.S().Subtle.Render(d.Footer), width))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(width+2).
		Render(strings.Join(lines, "\n"))

	return Center(box, termWidth, termHeight)
}

func centerLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-w-pad)
}

// Center centers pre-rendered content in the terminal.
func Center(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range lines {
		boxWidth = max(boxWidth, lipgloss.Width(line))
	}

	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var b strings.Builder
	for range padTop {
		b.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for i, line := range lines {
		b.WriteString(strings.Repeat(" ", padLeft))
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Compose overlays popupView on top of base. Blank overlay cells leave the
// base visible. Both inputs may contain ANSI styling.
func Compose(base, popupView string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(popupView, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(overlayLine)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		startCol := len(plain) - len(strings.TrimLeft(plain, " "))
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))
		content := ansi.Cut(overlayLine, startCol, endCol)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		prefix := ansi.Cut(baseLine, 0, startCol)
		if w := ansi.StringWidth(prefix); w < startCol {
			// a wide rune straddled the cut
			prefix += strings.Repeat(" ", startCol-w)
		}
		line := prefix + content
		if endCol < width {
			suffix := ansi.Cut(baseLine, endCol, width)
			if w := ansi.StringWidth(suffix); w < width-endCol {
				suffix += strings.Repeat(" ", width-endCol-w)
			}
			line += suffix
		}
		baseLines[i] = line
	}

	return strings.Join(baseLines, "\n")
}
