// Package musicbrainz searches MusicBrainz recordings and releases, with
// covers from the Cover Art Archive.
package musicbrainz

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // JPEG decoder for cover art
	_ "image/png"  // PNG decoder for cover art
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

const (
	ProviderID   = "musicbrainz"
	providerName = "MusicBrainz"

	defaultLimit = 10
	recordingURL = "https://musicbrainz.org/recording/"
)

// Provider exposes MusicBrainz recordings as tracks and releases as albums.
// Result.Ref holds the release MBID used for covers and track lists.
type Provider struct {
	client *Client
	logger *slog.Logger
	limit  int
}

// NewProvider creates a provider over client.
func NewProvider(client *Client, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{client: client, logger: logger, limit: defaultLimit}
}

// ID returns the provider id.
func (p *Provider) ID() string { return ProviderID }

// Name returns the provider display name.
func (p *Provider) Name() string { return providerName }

// Search queries recordings and releases concurrently.
func (p *Provider) Search(ctx context.Context, query string) ([]globalsearch.Result, error) {
	var (
		recordings []Recording
		releases   []Release
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recordings, err = p.client.SearchRecordings(gctx, query, p.limit)
		return err
	})
	g.Go(func() error {
		var err error
		releases, err = p.client.SearchReleases(gctx, query, p.limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tokens := globalsearch.Tokenize(query)
	results := make([]globalsearch.Result, 0, len(recordings)+len(releases))
	for _, r := range recordings {
		results = append(results, globalsearch.Result{
			ProviderID:   ProviderID,
			Type:         globalsearch.TypeTrack,
			MatchQuality: globalsearch.BestQuality(tokens, r.Title, r.Artist),
			Metadata: globalsearch.Metadata{
				Title:  r.Title,
				Artist: r.Artist,
				Album:  r.Release,
				Length: r.Length,
				URL:    recordingURL + r.ID,
			},
			Ref: r.ReleaseID,
		})
	}
	for _, r := range releases {
		results = append(results, globalsearch.Result{
			ProviderID:   ProviderID,
			Type:         globalsearch.TypeAlbum,
			MatchQuality: globalsearch.BestQuality(tokens, r.Title, r.Artist),
			Metadata: globalsearch.Metadata{
				Album:       r.Title,
				Artist:      r.Artist,
				AlbumArtist: r.Artist,
				Year:        extractYear(r.Date),
			},
			Ref: r.ID,
		})
	}
	return results, nil
}

// LoadTracks returns the recording itself, or the release's track list.
func (p *Provider) LoadTracks(ctx context.Context, r globalsearch.Result) ([]globalsearch.Song, error) {
	switch r.Type {
	case globalsearch.TypeTrack:
		return []globalsearch.Song{{
			ProviderID: ProviderID,
			Title:      r.Metadata.Title,
			Artist:     r.Metadata.Artist,
			Album:      r.Metadata.Album,
			Length:     r.Metadata.Length,
			URL:        r.Metadata.URL,
		}}, nil
	case globalsearch.TypeAlbum:
		if r.Ref == "" {
			return nil, nil
		}
		details, err := p.client.GetRelease(ctx, r.Ref)
		if err != nil {
			return nil, err
		}
		songs := make([]globalsearch.Song, 0, len(details.Tracks))
		for _, t := range details.Tracks {
			songs = append(songs, globalsearch.Song{
				ProviderID:  ProviderID,
				Title:       t.Title,
				Artist:      t.Artist,
				AlbumArtist: details.Artist,
				Album:       details.Title,
				TrackNumber: t.Position,
				Year:        extractYear(details.Date),
				Length:      t.Length,
			})
		}
		return songs, nil
	default:
		return nil, nil
	}
}

// LoadArt fetches the release cover.
func (p *Provider) LoadArt(ctx context.Context, r globalsearch.Result) (image.Image, error) {
	if r.Ref == "" {
		return nil, nil
	}
	data, err := p.client.GetCoverArt(ctx, r.Ref)
	if err != nil || data == nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}
