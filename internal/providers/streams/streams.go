// Package streams searches a fixed list of configured radio streams.
package streams

import (
	"context"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

const (
	ProviderID   = "streams"
	providerName = "Radio streams"
)

// Stream is a named internet radio location.
type Stream struct {
	Name string
	URL  string
}

// Provider matches queries against stream names and URLs.
type Provider struct {
	streams []Stream
}

// New creates a provider over streams.
func New(streams []Stream) *Provider {
	return &Provider{streams: streams}
}

// ID returns the provider id.
func (p *Provider) ID() string { return ProviderID }

// Name returns the provider display name.
func (p *Provider) Name() string { return providerName }

// Search returns the streams whose name or URL contains a query token.
func (p *Provider) Search(ctx context.Context, query string) ([]globalsearch.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := globalsearch.Tokenize(query)

	var results []globalsearch.Result
	for _, s := range p.streams {
		q := globalsearch.BestQuality(tokens, s.Name, s.URL)
		if q == globalsearch.MatchNone {
			continue
		}
		results = append(results, globalsearch.Result{
			ProviderID:   ProviderID,
			Type:         globalsearch.TypeStream,
			MatchQuality: q,
			Metadata: globalsearch.Metadata{
				Title: s.Name,
				URL:   s.URL,
			},
		})
	}
	return results, nil
}

// LoadTracks returns the stream as a single song.
func (p *Provider) LoadTracks(_ context.Context, r globalsearch.Result) ([]globalsearch.Song, error) {
	if r.Metadata.URL == "" {
		return nil, nil
	}
	return []globalsearch.Song{{
		ProviderID: ProviderID,
		Title:      r.Metadata.Title,
		URL:        r.Metadata.URL,
	}}, nil
}
