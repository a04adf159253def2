package searchview

import (
	"github.com/llehouerou/wavesearch/internal/globalsearch"
	"github.com/llehouerou/wavesearch/internal/keymap"
)

var intents = map[keymap.Action]globalsearch.Intent{
	keymap.ActionAdd:            globalsearch.IntentAdd,
	keymap.ActionAddAndPlay:     globalsearch.IntentAddAndPlay,
	keymap.ActionQueue:          globalsearch.IntentAddAndQueue,
	keymap.ActionReplace:        globalsearch.IntentReplace,
	keymap.ActionReplaceAndPlay: globalsearch.IntentReplaceAndPlay,
	keymap.ActionActivate:       globalsearch.IntentPlain,
}

// IntentForKey returns the activation intent bound to key.
func IntentForKey(key string) (globalsearch.Intent, bool) {
	intent, ok := intents[keymap.Search.Resolve(key)]
	return intent, ok
}

// providerToggleIndex maps alt+1..alt+9 to a provider index.
func providerToggleIndex(key string) (int, bool) {
	if len(key) != 5 || key[:4] != "alt+" || key[4] < '1' || key[4] > '9' {
		return 0, false
	}
	return int(key[4] - '1'), true
}
