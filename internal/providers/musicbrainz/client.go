package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://musicbrainz.org/ws/2"
	defaultCoverArtURL = "https://coverartarchive.org"
	userAgent          = "wavesearch/0.1 (https://github.com/llehouerou/wavesearch)"

	// MusicBrainz requires 1 request per second
	rateLimitDur = time.Second

	maxRetries   = 3
	initialDelay = 2 * time.Second
	maxDelay     = 30 * time.Second
)

// Client provides access to the MusicBrainz API and the Cover Art Archive.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	coverArtURL  string
	limiter      *rate.Limiter
	initialDelay time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another MusicBrainz server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithCoverArtURL points the client at another Cover Art Archive server.
func WithCoverArtURL(u string) ClientOption {
	return func(c *Client) { c.coverArtURL = strings.TrimSuffix(u, "/") }
}

// WithRateLimit sets the minimum interval between requests.
func WithRateLimit(every time.Duration) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Every(every), 1) }
}

// WithRetryDelay sets the first backoff delay after a server error.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) { c.initialDelay = d }
}

// NewClient creates a new MusicBrainz API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      defaultBaseURL,
		coverArtURL:  defaultCoverArtURL,
		limiter:      rate.NewLimiter(rate.Every(rateLimitDur), 1),
		initialDelay: initialDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchRecordings searches for recordings matching the query.
func (c *Client) SearchRecordings(ctx context.Context, query string, limit int) ([]Recording, error) {
	var result recordingSearchResponse
	if err := c.getJSON(ctx, "recording", searchParams(query, limit), &result); err != nil {
		return nil, err
	}

	recordings := make([]Recording, 0, len(result.Recordings))
	for _, r := range result.Recordings {
		rec := Recording{
			ID:     r.ID,
			Title:  r.Title,
			Artist: extractArtist(r.ArtistCredit),
			Length: time.Duration(r.Length) * time.Millisecond,
			Score:  r.Score,
		}
		if len(r.Releases) > 0 {
			rec.Release = r.Releases[0].Title
			rec.ReleaseID = r.Releases[0].ID
		}
		recordings = append(recordings, rec)
	}
	return recordings, nil
}

// SearchReleases searches for album releases matching the query.
func (c *Client) SearchReleases(ctx context.Context, query string, limit int) ([]Release, error) {
	params := searchParams("("+query+") AND primarytype:album", limit)

	var result releaseSearchResponse
	if err := c.getJSON(ctx, "release", params, &result); err != nil {
		return nil, err
	}

	releases := make([]Release, 0, len(result.Releases))
	for _, r := range result.Releases {
		releases = append(releases, convertRelease(r))
	}
	return releases, nil
}

// GetRelease fetches a release with its recordings.
func (c *Client) GetRelease(ctx context.Context, mbid string) (*ReleaseDetails, error) {
	params := url.Values{}
	params.Set("inc", "recordings+artist-credits")

	var result releaseDetailsResponse
	if err := c.getJSON(ctx, "release/"+mbid, params, &result); err != nil {
		return nil, err
	}

	details := &ReleaseDetails{Release: convertRelease(result.releaseResult)}
	for _, m := range result.Media {
		for _, t := range m.Tracks {
			artist := extractArtist(t.ArtistCredit)
			if artist == "" {
				artist = details.Artist
			}
			details.Tracks = append(details.Tracks, Track{
				Position: t.Position,
				Title:    t.Title,
				Artist:   artist,
				Length:   time.Duration(t.Length) * time.Millisecond,
			})
		}
	}
	return details, nil
}

// GetCoverArt fetches the 250px front cover of a release from the Cover
// Art Archive. It returns nil if the release has no cover.
func (c *Client) GetCoverArt(ctx context.Context, releaseMBID string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/release/%s/front-250", c.coverArtURL, releaseMBID)

	resp, err := c.do(ctx, reqURL, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 404 means no cover art available - not an error
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return data, nil
}

func searchParams(query string, limit int) url.Values {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	return params
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("fmt", "json")
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	resp, err := c.do(ctx, reqURL, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck // body is only used in the error message
		return fmt.Errorf("API status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do executes a GET with rate limiting and exponential backoff retry.
// Retries on 5xx errors and network errors.
func (c *Client) do(ctx context.Context, reqURL, accept string) (*http.Response, error) {
	var lastErr error
	delay := c.initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay = min(delay*2, maxDelay)
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		// Success or client error (4xx) - don't retry
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries+1, lastErr)
}

func convertRelease(r releaseResult) Release {
	return Release{
		ID:     r.ID,
		Title:  r.Title,
		Artist: extractArtist(r.ArtistCredit),
		Date:   r.Date,
		Score:  r.Score,
	}
}

// extractArtist extracts the artist name from artist credits.
func extractArtist(credits []artistCredit) string {
	var b strings.Builder
	for _, c := range credits {
		name := c.Name
		if name == "" {
			name = c.Artist.Name
		}
		b.WriteString(name)
		b.WriteString(c.JoinPhrase)
	}
	return b.String()
}

// extractYear returns the year portion of a date string (YYYY-MM-DD or YYYY).
func extractYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
