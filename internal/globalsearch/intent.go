package globalsearch

// Intent is the action a user asked for when activating a result.
type Intent int

const (
	// IntentPlain is a direct activation (double-click) with no explicit action.
	IntentPlain Intent = iota
	IntentAdd
	IntentAddAndPlay
	IntentAddAndQueue
	IntentReplace
	IntentReplaceAndPlay
)

func (i Intent) String() string {
	switch i {
	case IntentPlain:
		return "activate"
	case IntentAdd:
		return "add"
	case IntentAddAndPlay:
		return "add and play"
	case IntentAddAndQueue:
		return "queue"
	case IntentReplace:
		return "replace"
	case IntentReplaceAndPlay:
		return "replace and play"
	default:
		return "unknown"
	}
}

// Payload carries materialized songs to the playlist layer, along with
// flags describing how they should be inserted.
type Payload struct {
	Songs []Song

	FromDoubleClick      bool
	OverrideUserSettings bool
	PlayNow              bool
	EnqueueNow           bool
	ClearFirst           bool
}

// Empty reports whether the payload carries nothing to add.
func (p *Payload) Empty() bool {
	return p == nil || len(p.Songs) == 0
}

// Annotate sets the payload flags for the intent.
func (i Intent) Annotate(p *Payload) {
	switch i {
	case IntentPlain:
		p.FromDoubleClick = true
	case IntentAdd:
	case IntentAddAndPlay:
		p.OverrideUserSettings = true
		p.PlayNow = true
	case IntentAddAndQueue:
		p.EnqueueNow = true
	case IntentReplace:
		p.ClearFirst = true
	case IntentReplaceAndPlay:
		p.ClearFirst = true
		p.OverrideUserSettings = true
		p.PlayNow = true
	}
}
