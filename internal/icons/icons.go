// Package icons holds the glyphs shown next to search results.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Track   string
	Album   string
	Stream  string
	Art     string // thumbnail attached
	Loading string // thumbnail requested
}

var (
	nerdIcons = Icons{
		Track:   "\uf001",     // nf-fa-music
		Album:   "\U000f0025", // nf-md-album
		Stream:  "\U000f0439", // nf-md-radio
		Art:     "\uf03e",     // nf-fa-image
		Loading: "\U000f051f", // nf-md-timer_sand
	}

	unicodeIcons = Icons{
		Track:   "♪",
		Album:   "◉",
		Stream:  "≈",
		Art:     "▣",
		Loading: "·",
	}

	noneIcons = Icons{
		Track:   "t",
		Album:   "a",
		Stream:  "s",
		Art:     "*",
		Loading: ".",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Call this once at startup with the config
// value; an empty or unknown style keeps the unicode set.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Track returns the single-track icon.
func Track() string {
	return current.Track
}

// Album returns the album icon.
func Album() string {
	return current.Album
}

// Stream returns the radio stream icon.
func Stream() string {
	return current.Stream
}

// Art returns the mark for a result whose thumbnail is loaded.
func Art() string {
	return current.Art
}

// Loading returns the mark for a result whose thumbnail is on its way.
func Loading() string {
	return current.Loading
}
