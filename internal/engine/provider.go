package engine

import (
	"context"
	"image"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

// Provider answers search queries from one source of music.
type Provider interface {
	ID() string
	Name() string
	Search(ctx context.Context, query string) ([]globalsearch.Result, error)
}

// ArtLoader is implemented by providers that can fetch cover art for
// their results. A nil image with a nil error means there is no art.
type ArtLoader interface {
	LoadArt(ctx context.Context, r globalsearch.Result) (image.Image, error)
}

// TrackLoader is implemented by providers whose results can be turned
// into playable songs.
type TrackLoader interface {
	LoadTracks(ctx context.Context, r globalsearch.Result) ([]globalsearch.Song, error)
}

func info(p Provider) globalsearch.ProviderInfo {
	return globalsearch.ProviderInfo{ID: p.ID(), Name: p.Name()}
}
