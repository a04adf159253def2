package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Header renders a bold title fading from the theme's primary to its
// secondary color.
func Header(title string) string {
	t := T()
	return Gradient(title, t.Primary, t.Secondary, lipgloss.NewStyle().Bold(true))
}

// Gradient renders each grapheme of text with base, colored along a blend
// from one color to the other.
func Gradient(text string, from, to lipgloss.Color, base lipgloss.Style) string {
	colors := ramp(from, to, uniseg.GraphemeClusterCount(text))
	if len(colors) == 0 {
		return ""
	}

	var b strings.Builder
	gr := uniseg.NewGraphemes(text)
	for i := 0; gr.Next(); i++ {
		b.WriteString(base.Foreground(colors[i]).Render(gr.Str()))
	}
	return b.String()
}

// ramp returns n colors spaced evenly in HCL space between from and to.
// Colors that are not #rrggbb hex are not blended: every stop is from.
func ramp(from, to lipgloss.Color, n int) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	out := make([]lipgloss.Color, n)

	start, errFrom := colorful.Hex(string(from))
	end, errTo := colorful.Hex(string(to))
	if n == 1 || errFrom != nil || errTo != nil {
		for i := range out {
			out[i] = from
		}
		return out
	}

	for i := 1; i < n-1; i++ {
		c := start.BlendHcl(end, float64(i)/float64(n-1)).Clamped()
		out[i] = lipgloss.Color(c.Hex())
	}
	out[0], out[n-1] = from, to
	return out
}
