package globalsearch

import (
	"slices"
	"time"
)

// LibraryProviderID is the id of the local library provider, preferred by
// default.
const LibraryProviderID = "library"

const (
	DefaultMinQueryLength = 3
	DefaultSwapDelay      = 250 * time.Millisecond
)

// Settings configures a Search. It is passed explicitly at construction and
// on ReloadSettings.
type Settings struct {
	CombineIdenticalResults bool
	// ProviderOrder lists provider ids, most preferred first. It only
	// breaks ties between equivalent results.
	ProviderOrder []string
	// MinQueryLength is the minimum trimmed query length, in runes, that
	// starts a session.
	MinQueryLength int
	// SwapDelay is the quiet period before staging becomes active.
	SwapDelay time.Duration
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		CombineIdenticalResults: true,
		ProviderOrder:           []string{LibraryProviderID},
		MinQueryLength:          DefaultMinQueryLength,
		SwapDelay:               DefaultSwapDelay,
	}
}

func (s Settings) withDefaults() Settings {
	if s.ProviderOrder == nil {
		s.ProviderOrder = []string{LibraryProviderID}
	} else {
		s.ProviderOrder = slices.Clone(s.ProviderOrder)
	}
	if s.MinQueryLength <= 0 {
		s.MinQueryLength = DefaultMinQueryLength
	}
	if s.SwapDelay <= 0 {
		s.SwapDelay = DefaultSwapDelay
	}
	return s
}
