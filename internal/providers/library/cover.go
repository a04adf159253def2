package library

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // JPEG decoder for cover art
	_ "image/png"  // PNG decoder for cover art
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

// Common cover art filenames to look for in album folders.
var coverArtFilenames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// LoadArt returns the cover of a result's file: embedded art first, then a
// cover image next to it. It returns nil when there is none.
func (l *Library) LoadArt(ctx context.Context, r globalsearch.Result) (image.Image, error) {
	path := r.Metadata.Path
	if path == "" && r.Type == globalsearch.TypeAlbum {
		tracks, err := l.AlbumTracks(ctx, r.Metadata.AlbumArtist, r.Metadata.Album)
		if err != nil {
			return nil, err
		}
		if len(tracks) > 0 {
			path = tracks[0].Path
		}
	}
	if path == "" {
		return nil, nil
	}

	data := extractCoverArt(path)
	if data == nil {
		return nil, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// extractCoverArt reads embedded art, falling back to folder images.
func extractCoverArt(path string) []byte {
	if data := extractEmbeddedArt(path); data != nil {
		return data
	}
	return findFolderArt(filepath.Dir(path))
}

func extractEmbeddedArt(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil
	}
	if pic := m.Picture(); pic != nil {
		return pic.Data
	}
	return nil
}

func findFolderArt(dir string) []byte {
	for _, filename := range coverArtFilenames {
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			// Try case-insensitive match
			data, err = os.ReadFile(filepath.Join(dir, strings.ToUpper(filename)))
			if err != nil {
				continue
			}
		}
		return data
	}
	return nil
}
