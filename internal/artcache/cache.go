// Package artcache keeps search result thumbnails in memory and on disk.
package artcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	_ "image/jpeg" // JPEG decoder for cover art
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/nfnt/resize"
)

const (
	cacheDirName  = "wavesearch/thumbnails"
	cacheMaxAge   = 30 * 24 * time.Hour // 30 days
	pruneInterval = 24 * time.Hour

	// DefaultSize is the edge length of a thumbnail, in pixels.
	DefaultSize = 64
)

// Cache stores resized thumbnails keyed by result key. Lookups hit memory
// first and fall back to PNG files on disk.
type Cache struct {
	dir  string
	size uint

	mu         sync.RWMutex
	mem        map[string]image.Image
	lastPruned time.Time
}

// New creates a cache under baseDir. An empty baseDir uses the XDG cache
// directory. size <= 0 uses DefaultSize.
func New(baseDir string, size int) (*Cache, error) {
	if baseDir == "" {
		baseDir = xdg.CacheHome
	}
	if size <= 0 {
		size = DefaultSize
	}

	dir := filepath.Join(baseDir, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{
		dir:  dir,
		size: uint(size),
		mem:  make(map[string]image.Image),
	}

	go c.pruneOldEntries()

	return c, nil
}

// NewMemory creates a cache that never touches the disk.
func NewMemory(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	return &Cache{size: uint(size), mem: make(map[string]image.Image)}
}

func cacheKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, cacheKey(key)+".png")
}

// Get returns the thumbnail stored for key.
func (c *Cache) Get(key string) (image.Image, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	img, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		return img, true
	}
	if c.dir == "" {
		return nil, false
	}

	path := c.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	img, err = png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	// Touch the file to keep frequently used entries fresh
	now := time.Now()
	_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort

	c.mu.Lock()
	c.mem[key] = img
	c.mu.Unlock()
	return img, true
}

// Put resizes img to a thumbnail, stores it under key and returns it.
func (c *Cache) Put(key string, img image.Image) (image.Image, error) {
	if c == nil || img == nil {
		return img, nil
	}

	thumb := Thumbnail(img, c.size)

	c.mu.Lock()
	c.mem[key] = thumb
	c.mu.Unlock()

	if c.dir == "" {
		return thumb, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return thumb, err
	}
	return thumb, os.WriteFile(c.path(key), buf.Bytes(), 0o600)
}

// Len returns the number of thumbnails held in memory.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mem)
}

// Thumbnail scales img down to fit a size x size square, keeping its
// aspect ratio. Smaller images are returned unchanged.
func Thumbnail(img image.Image, size uint) image.Image {
	b := img.Bounds()
	if uint(b.Dx()) <= size && uint(b.Dy()) <= size {
		return img
	}
	return resize.Thumbnail(size, size, img, resize.Lanczos3)
}

// pruneOldEntries removes disk entries older than cacheMaxAge.
func (c *Cache) pruneOldEntries() {
	c.mu.Lock()
	if time.Since(c.lastPruned) < pruneInterval {
		c.mu.Unlock()
		return
	}
	c.lastPruned = time.Now()
	c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-cacheMaxAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}
