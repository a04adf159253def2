// Package lastfm searches the Last.fm catalogue.
package lastfm

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder for cover art
	_ "image/png"  // PNG decoder for cover art
	"log/slog"
	"net/http"
	"time"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

const (
	ProviderID   = "lastfm"
	providerName = "Last.fm"

	defaultLimit = 10
	httpTimeout  = 10 * time.Second
)

// catalogue is the subset of the Last.fm API the provider uses.
type catalogue interface {
	SearchTracks(query string, limit int) ([]TrackMatch, error)
	SearchAlbums(query string, limit int) ([]AlbumMatch, error)
	AlbumTracks(artist, album string) ([]AlbumTrack, error)
}

// Provider exposes Last.fm tracks and albums as search results.
type Provider struct {
	api        catalogue
	httpClient *http.Client
	logger     *slog.Logger
	limit      int
}

// NewProvider creates a provider over client.
func NewProvider(client *Client, logger *slog.Logger) *Provider {
	return newProvider(client, logger)
}

func newProvider(api catalogue, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		api:        api,
		httpClient: &http.Client{Timeout: httpTimeout},
		logger:     logger,
		limit:      defaultLimit,
	}
}

// ID returns the provider id.
func (p *Provider) ID() string { return ProviderID }

// Name returns the provider display name.
func (p *Provider) Name() string { return providerName }

// Search looks up tracks and albums. A failure of one lookup still returns
// the results of the other.
func (p *Provider) Search(ctx context.Context, query string) ([]globalsearch.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := globalsearch.Tokenize(query)

	tracks, trackErr := p.api.SearchTracks(query, p.limit)
	if trackErr != nil {
		p.logger.Warn("last.fm track search failed", "query", query, "error", trackErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	albums, albumErr := p.api.SearchAlbums(query, p.limit)
	if albumErr != nil {
		p.logger.Warn("last.fm album search failed", "query", query, "error", albumErr)
	}
	if trackErr != nil && albumErr != nil {
		return nil, trackErr
	}

	results := make([]globalsearch.Result, 0, len(tracks)+len(albums))
	for _, t := range tracks {
		results = append(results, globalsearch.Result{
			ProviderID:   ProviderID,
			Type:         globalsearch.TypeTrack,
			MatchQuality: globalsearch.BestQuality(tokens, t.Name, t.Artist),
			Metadata: globalsearch.Metadata{
				Title:    t.Name,
				Artist:   t.Artist,
				URL:      t.URL,
				ImageURL: t.Image,
			},
			Ref: t.MBID,
		})
	}
	for _, a := range albums {
		results = append(results, globalsearch.Result{
			ProviderID:   ProviderID,
			Type:         globalsearch.TypeAlbum,
			MatchQuality: globalsearch.BestQuality(tokens, a.Name, a.Artist),
			Metadata: globalsearch.Metadata{
				Album:       a.Name,
				Artist:      a.Artist,
				AlbumArtist: a.Artist,
				URL:         a.URL,
				ImageURL:    a.Image,
			},
			Ref: a.MBID,
		})
	}
	return results, nil
}

// LoadTracks returns the track itself, or the album's track list.
func (p *Provider) LoadTracks(ctx context.Context, r globalsearch.Result) ([]globalsearch.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch r.Type {
	case globalsearch.TypeTrack:
		return []globalsearch.Song{{
			ProviderID: ProviderID,
			Title:      r.Metadata.Title,
			Artist:     r.Metadata.Artist,
			Album:      r.Metadata.Album,
			URL:        r.Metadata.URL,
		}}, nil
	case globalsearch.TypeAlbum:
		tracks, err := p.api.AlbumTracks(r.Metadata.Artist, r.Metadata.Album)
		if err != nil {
			return nil, err
		}
		songs := make([]globalsearch.Song, 0, len(tracks))
		for _, t := range tracks {
			songs = append(songs, globalsearch.Song{
				ProviderID:  ProviderID,
				Title:       t.Name,
				Artist:      t.Artist,
				AlbumArtist: r.Metadata.Artist,
				Album:       r.Metadata.Album,
				TrackNumber: t.Number,
				Length:      t.Duration,
				URL:         t.URL,
			})
		}
		return songs, nil
	default:
		return nil, nil
	}
}

// LoadArt downloads the cover image Last.fm listed for the result.
func (p *Provider) LoadArt(ctx context.Context, r globalsearch.Result) (image.Image, error) {
	if r.Metadata.ImageURL == "" {
		return nil, nil
	}
	return fetchImage(ctx, p.httpClient, r.Metadata.ImageURL)
}

func fetchImage(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
