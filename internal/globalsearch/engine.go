package globalsearch

import "image"

// Engine runs provider queries on behalf of a Search. Every method returns
// immediately; responses arrive later as Events that the owner of the
// Search passes to Dispatch.
//
// Responses for an id must not be dispatched before the call that returned
// the id has returned.
type Engine interface {
	SearchAsync(query string) SessionID
	CancelSearch(id SessionID)

	LoadArtAsync(r Result) OperationID
	LoadTracksAsync(r Result) OperationID

	// FindCachedPixmap checks the thumbnail cache synchronously.
	FindCachedPixmap(r Result) (image.Image, bool)

	Providers() []ProviderInfo
	IsProviderEnabled(id string) bool
	SetProviderEnabled(id string, enabled bool)
}

// Event is a response delivered by an Engine.
type Event interface {
	isEvent()
}

// ResultsAvailable carries one batch of results for a session.
type ResultsAvailable struct {
	Session SessionID
	Results []Result
}

// ArtLoaded carries the image for an art request. Image is nil when the
// provider had no art.
type ArtLoaded struct {
	Operation OperationID
	Image     image.Image
}

// TracksLoaded carries materialized songs. Payload is nil on failure.
type TracksLoaded struct {
	Operation OperationID
	Payload   *Payload
}

// ProviderAdded announces a provider joining the engine.
type ProviderAdded struct {
	Provider ProviderInfo
}

// ProviderRemoved announces a provider leaving the engine.
type ProviderRemoved struct {
	Provider ProviderInfo
}

func (ResultsAvailable) isEvent() {}
func (ArtLoaded) isEvent() {}
func (TracksLoaded) isEvent() {}
func (ProviderAdded) isEvent() {}
func (ProviderRemoved) isEvent() {}
func (CutoverDue) isEvent() {}

// Listener receives notifications meant for the view layer.
type Listener interface {
	// BufferSwapped is called once per cutover, after the active buffer
	// has been replaced.
	BufferSwapped()
	// RowsChanged is called when results land directly in the active
	// buffer after its session was already promoted.
	RowsChanged()
	// DecorationChanged is called when a record's thumbnail is attached.
	DecorationChanged(id RecordID)
	// SurfaceChanged asks the view to show or hide the result surface.
	SurfaceChanged(visible bool)
	// AddToPlaylist hands an annotated payload to the playlist layer.
	AddToPlaylist(p *Payload)
}

type nopListener struct{}

func (nopListener) BufferSwapped() {}
func (nopListener) RowsChanged() {}
func (nopListener) DecorationChanged(RecordID) {}
func (nopListener) SurfaceChanged(bool) {}
func (nopListener) AddToPlaylist(*Payload) {}
