package lastfm

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// serveXML answers every Last.fm request with body.
func serveXML(t *testing.T, body string) *[]string {
	t.Helper()
	var methods []string
	orig := http.DefaultTransport
	http.DefaultTransport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		methods = append(methods, r.URL.Query().Get("method"))
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": {"text/xml"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    r,
		}, nil
	})
	t.Cleanup(func() { http.DefaultTransport = orig })
	return &methods
}

func TestClient_SearchAlbums(t *testing.T) {
	methods := serveXML(t, `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
<results for="money">
<albummatches>
<album>
<name>Money Jungle</name>
<artist>Duke Ellington</artist>
<url>https://www.last.fm/music/Duke+Ellington/Money+Jungle</url>
<image size="small">http://img/small.png</image>
<image size="extralarge">http://img/xl.png</image>
<mbid>0a1b</mbid>
</album>
<album>
<name>Money for Nothing</name>
<artist>Dire Straits</artist>
<url>https://www.last.fm/music/Dire+Straits/Money+for+Nothing</url>
</album>
</albummatches>
</results>
</lfm>`)

	albums, err := NewClient("key", "secret").SearchAlbums("money", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"album.search"}, *methods)
	require.Len(t, albums, 2)
	assert.Equal(t, AlbumMatch{
		Name:   "Money Jungle",
		Artist: "Duke Ellington",
		URL:    "https://www.last.fm/music/Duke+Ellington/Money+Jungle",
		MBID:   "0a1b",
		Image:  "http://img/xl.png",
	}, albums[0])
	assert.Equal(t, "Dire Straits", albums[1].Artist)
	assert.Empty(t, albums[1].Image)
}

func TestClient_SearchTracks(t *testing.T) {
	serveXML(t, `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
<results for="money">
<trackmatches>
<track>
<name>Money</name>
<artist>Pink Floyd</artist>
<url>https://www.last.fm/music/Pink+Floyd/_/Money</url>
<image size="medium">http://img/m.png</image>
</track>
</trackmatches>
</results>
</lfm>`)

	tracks, err := NewClient("key", "secret").SearchTracks("money", 10)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Pink Floyd", tracks[0].Artist)
	assert.Equal(t, "http://img/m.png", tracks[0].Image)
}

func TestClient_APIError(t *testing.T) {
	serveXML(t, `<?xml version="1.0" encoding="utf-8"?>
<lfm status="failed"><error code="10">Invalid API key</error></lfm>`)

	_, err := NewClient("bad", "secret").SearchAlbums("money", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search albums")
}
