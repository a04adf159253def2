package musicbrainz

import "time"

// Recording is a recording search hit.
type Recording struct {
	ID      string
	Title   string
	Artist  string
	Length  time.Duration
	Score   int
	Release string // title of the first release it appears on
	// ReleaseID is the MBID of that release.
	ReleaseID string
}

// Release is a release search hit.
type Release struct {
	ID     string
	Title  string
	Artist string
	Date   string
	Score  int
}

// Track is one track of a release.
type Track struct {
	Position int
	Title    string
	Artist   string
	Length   time.Duration
}

// ReleaseDetails is a release with its track list.
type ReleaseDetails struct {
	Release
	Tracks []Track
}

type recordingSearchResponse struct {
	Recordings []recordingResult `json:"recordings"`
}

type recordingResult struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Length       int             `json:"length"` // milliseconds
	Score        int             `json:"score"`
	ArtistCredit []artistCredit  `json:"artist-credit"`
	Releases     []releaseResult `json:"releases"`
}

type releaseSearchResponse struct {
	Releases []releaseResult `json:"releases"`
}

type releaseResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Score        int            `json:"score"`
	Date         string         `json:"date"`
	ArtistCredit []artistCredit `json:"artist-credit"`
}

type artistCredit struct {
	Name   string `json:"name"`
	Artist struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artist"`
	JoinPhrase string `json:"joinphrase"`
}

type medium struct {
	Position int     `json:"position"`
	Tracks   []track `json:"tracks"`
}

type track struct {
	Position     int            `json:"position"`
	Title        string         `json:"title"`
	Length       int            `json:"length"`
	ArtistCredit []artistCredit `json:"artist-credit"`
}

type releaseDetailsResponse struct {
	releaseResult
	Media []medium `json:"media"`
}
