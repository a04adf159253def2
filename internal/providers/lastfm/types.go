package lastfm

import "time"

// TrackMatch is a track.search hit.
type TrackMatch struct {
	Name   string
	Artist string
	URL    string
	MBID   string
	Image  string
}

// AlbumMatch is an album.search hit.
type AlbumMatch struct {
	Name   string
	Artist string
	URL    string
	MBID   string
	Image  string
}

// AlbumTrack is one entry of an album's track list.
type AlbumTrack struct {
	Name     string
	Artist   string
	URL      string
	Number   int
	Duration time.Duration
}
