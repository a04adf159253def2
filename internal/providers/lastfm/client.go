package lastfm

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shkh/lastfm-go/lastfm"
)

// Client wraps the Last.fm API for catalogue lookups.
type Client struct {
	api *lastfm.Api
}

// NewClient creates a new Last.fm client with the given API credentials.
func NewClient(apiKey, apiSecret string) *Client {
	return &Client{api: lastfm.New(apiKey, apiSecret)}
}

// SearchTracks runs track.search.
func (c *Client) SearchTracks(query string, limit int) ([]TrackMatch, error) {
	result, err := c.api.Track.Search(lastfm.P{
		"track": query,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search tracks: %w", err)
	}

	tracks := make([]TrackMatch, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		images := make(map[string]string, len(t.Images))
		for _, img := range t.Images {
			images[img.Size] = img.Url
		}
		tracks = append(tracks, TrackMatch{
			Name:   t.Name,
			Artist: t.Artist,
			URL:    t.Url,
			MBID:   t.Mbid,
			Image:  pickImage(images),
		})
	}
	return tracks, nil
}

// SearchAlbums runs album.search.
func (c *Client) SearchAlbums(query string, limit int) ([]AlbumMatch, error) {
	result, err := c.api.Album.Search(lastfm.P{
		"album": query,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search albums: %w", err)
	}

	albums := make([]AlbumMatch, 0, len(result.AlbumMatches))
	for _, a := range result.AlbumMatches {
		images := make(map[string]string, len(a.Images))
		for _, img := range a.Images {
			images[img.Size] = img.Url
		}
		albums = append(albums, AlbumMatch{
			Name:   a.Name,
			Artist: a.Artist,
			URL:    a.Url,
			MBID:   a.Mbid,
			Image:  pickImage(images),
		})
	}
	return albums, nil
}

// AlbumTracks runs album.getInfo and returns the album's track list.
func (c *Client) AlbumTracks(artist, album string) ([]AlbumTrack, error) {
	result, err := c.api.Album.GetInfo(lastfm.P{
		"artist": artist,
		"album":  album,
	})
	if err != nil {
		return nil, fmt.Errorf("get album info: %w", err)
	}

	tracks := make([]AlbumTrack, 0, len(result.Tracks))
	for i, t := range result.Tracks {
		seconds, _ := strconv.Atoi(t.Duration) //nolint:errcheck // missing duration stays 0
		tracks = append(tracks, AlbumTrack{
			Name:     t.Name,
			Artist:   t.Artist.Name,
			URL:      t.Url,
			Number:   i + 1,
			Duration: time.Duration(seconds) * time.Second,
		})
	}
	return tracks, nil
}

// pickImage returns the largest image URL Last.fm offered.
func pickImage(bySize map[string]string) string {
	for _, size := range []string{"extralarge", "large", "medium", "small"} {
		if u := bySize[size]; u != "" {
			return u
		}
	}
	return ""
}
