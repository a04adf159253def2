package app

import "github.com/llehouerou/wavesearch/internal/globalsearch"

// listener collects notifications from the search while a message is being
// handled. The model applies them afterwards and resets it.
type listener struct {
	swapped     bool
	rowsChanged bool
	decorated   int
	payloads    []*globalsearch.Payload
}

func (l *listener) BufferSwapped() { l.swapped = true }
func (l *listener) RowsChanged() { l.rowsChanged = true }
func (l *listener) DecorationChanged(globalsearch.RecordID) { l.decorated++ }
func (l *listener) SurfaceChanged(bool) {}
func (l *listener) AddToPlaylist(p *globalsearch.Payload) { l.payloads = append(l.payloads, p) }

func (l *listener) reset() {
	*l = listener{}
}
