package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

const appName = "wavesearch"

// ErrNotConfigured is returned when an optional integration lacks settings.
var ErrNotConfigured = errors.New("not configured")

type Config struct {
	Icons string `koanf:"icons"` // "nerd", "unicode", or "none"

	GlobalSearch GlobalSearchConfig `koanf:"globalsearch"`
	Library      LibraryConfig      `koanf:"library"`

	// Last.fm search (enabled when both key and secret are set)
	Lastfm LastfmConfig `koanf:"lastfm"`

	MusicBrainz MusicBrainzConfig `koanf:"musicbrainz"`

	// Static radio streams offered as search results
	Streams []StreamConfig `koanf:"streams"`

	Log LogConfig `koanf:"log"`
}

// GlobalSearchConfig holds the aggregation settings.
type GlobalSearchConfig struct {
	CombineIdenticalResults *bool    `koanf:"combine_identical_results"` // default: true
	ProviderOrder           []string `koanf:"provider_order"`            // preferred providers first (default: ["library"])
	MinQueryLength          int      `koanf:"min_query_length"`          // default: 3
	SwapDelayMS             int      `koanf:"swap_delay_ms"`             // default: 250
	DisabledProviders       []string `koanf:"disabled_providers"`
	PlayOnActivate          *bool    `koanf:"play_on_activate"` // plain activation plays (default: true)
}

// LibraryConfig holds the local library settings.
type LibraryConfig struct {
	DBPath  string   `koanf:"db_path"`
	Sources []string `koanf:"sources"` // paths to scan for music
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// MusicBrainzConfig holds MusicBrainz-related configuration.
type MusicBrainzConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// StreamConfig is one [[streams]] entry.
type StreamConfig struct {
	Name string `koanf:"name"`
	URL  string `koanf:"url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
	File  string `koanf:"file"`
}

// Load reads the config files in priority order.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

// LoadFile reads a single config file.
func LoadFile(path string) (*Config, error) {
	return load([]string{path})
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Last wins
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Library.DBPath = expandPath(cfg.Library.DBPath)
	for i, src := range cfg.Library.Sources {
		cfg.Library.Sources[i] = expandPath(src)
	}
	cfg.Log.File = expandPath(cfg.Log.File)

	// Drop incomplete stream entries
	streams := cfg.Streams[:0]
	for _, s := range cfg.Streams {
		s.URL = strings.TrimSpace(s.URL)
		if s.URL == "" {
			continue
		}
		if s.Name == "" {
			s.Name = s.URL
		}
		streams = append(streams, s)
	}
	cfg.Streams = streams

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/wavesearch/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm search is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// LastfmCredentials returns the API key and secret, or ErrNotConfigured.
func (c *Config) LastfmCredentials() (key, secret string, err error) {
	if !c.HasLastfmConfig() {
		return "", "", ErrNotConfigured
	}
	return c.Lastfm.APIKey, c.Lastfm.APISecret, nil
}

// MusicBrainzEnabled reports whether the MusicBrainz provider should run.
func (c *Config) MusicBrainzEnabled() bool {
	return c.MusicBrainz.Enabled == nil || *c.MusicBrainz.Enabled
}

// PlayOnActivate reports whether a plain activation starts playback.
func (c *Config) PlayOnActivate() bool {
	return c.GlobalSearch.PlayOnActivate == nil || *c.GlobalSearch.PlayOnActivate
}

// IsProviderDisabled reports whether a provider id is listed in
// disabled_providers.
func (c *Config) IsProviderDisabled(id string) bool {
	for _, d := range c.GlobalSearch.DisabledProviders {
		if strings.EqualFold(d, id) {
			return true
		}
	}
	return false
}

// SearchSettings converts the [globalsearch] section to search settings,
// with defaults applied.
func (c *Config) SearchSettings() globalsearch.Settings {
	s := globalsearch.DefaultSettings()
	gs := c.GlobalSearch

	if gs.CombineIdenticalResults != nil {
		s.CombineIdenticalResults = *gs.CombineIdenticalResults
	}
	if len(gs.ProviderOrder) > 0 {
		s.ProviderOrder = gs.ProviderOrder
	}
	if gs.MinQueryLength > 0 {
		s.MinQueryLength = gs.MinQueryLength
	}
	if gs.SwapDelayMS > 0 {
		s.SwapDelay = time.Duration(gs.SwapDelayMS) * time.Millisecond
	}
	return s
}

// DBPath returns the library database path, defaulting to the XDG data dir.
func (c *Config) DBPath() (string, error) {
	if c.Library.DBPath != "" {
		return c.Library.DBPath, nil
	}
	return xdg.DataFile(filepath.Join(appName, "library.db"))
}

// LogFile returns the log file path, defaulting to the XDG state dir.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// LogLevel parses [log] level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
