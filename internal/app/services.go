package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/llehouerou/wavesearch/internal/artcache"
	"github.com/llehouerou/wavesearch/internal/config"
	"github.com/llehouerou/wavesearch/internal/db"
	"github.com/llehouerou/wavesearch/internal/engine"
	"github.com/llehouerou/wavesearch/internal/providers/lastfm"
	"github.com/llehouerou/wavesearch/internal/providers/library"
	"github.com/llehouerou/wavesearch/internal/providers/musicbrainz"
	"github.com/llehouerou/wavesearch/internal/providers/streams"
	"github.com/llehouerou/wavesearch/internal/state"
)

// ErrNoProviders is returned when every configured provider is disabled.
var ErrNoProviders = errors.New("no search providers enabled")

// Services holds everything the search needs that outlives a single view:
// the database, the providers and the engine running them.
type Services struct {
	DB      *sql.DB
	Library *library.Library
	Engine  *engine.Engine
	State   *state.Manager

	providers []engine.Provider
	logger    *slog.Logger
}

// Build opens the database and constructs the engine and providers from
// cfg. Providers are not registered until RegisterProviders is called, so
// a Search created in between sees every registration as an event.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	conn, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Services{DB: conn, logger: logger}
	if err := s.build(ctx, cfg); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Services) build(ctx context.Context, cfg *config.Config) error {
	lib, err := library.New(s.DB, library.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	if err := lib.EnsureFTSIndex(ctx); err != nil {
		return fmt.Errorf("build library index: %w", err)
	}
	s.Library = lib

	st, err := state.New(s.DB, state.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("open search state: %w", err)
	}
	s.State = st

	cache, err := artcache.New("", artcache.DefaultSize)
	if err != nil {
		s.logger.Warn("thumbnail cache unavailable, keeping thumbnails in memory", "error", err)
		cache = artcache.NewMemory(artcache.DefaultSize)
	}

	eng, err := engine.New(engine.WithLogger(s.logger), engine.WithArtCache(cache))
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	s.Engine = eng

	s.providers = providersFor(cfg, lib, s.logger)
	return nil
}

func providersFor(cfg *config.Config, lib *library.Library, logger *slog.Logger) []engine.Provider {
	providers := []engine.Provider{lib}

	if key, secret, err := cfg.LastfmCredentials(); err == nil {
		providers = append(providers, lastfm.NewProvider(lastfm.NewClient(key, secret), logger))
	}
	if cfg.MusicBrainzEnabled() {
		providers = append(providers, musicbrainz.NewProvider(musicbrainz.NewClient(), logger))
	}
	if len(cfg.Streams) > 0 {
		list := make([]streams.Stream, len(cfg.Streams))
		for i, sc := range cfg.Streams {
			list[i] = streams.Stream{Name: sc.Name, URL: sc.URL}
		}
		providers = append(providers, streams.New(list))
	}
	return providers
}

// RegisterProviders adds every provider to the engine. A provider starts
// disabled if the user switched it off last time, or, failing a saved
// toggle, if the config lists it in disabled_providers.
func (s *Services) RegisterProviders(cfg *config.Config) error {
	toggles, err := s.State.ProviderToggles()
	if err != nil {
		s.logger.Warn("could not load provider toggles", "error", err)
		toggles = nil
	}

	enabled := 0
	for _, p := range s.providers {
		if err := s.Engine.AddProvider(p); err != nil {
			return fmt.Errorf("add provider %s: %w", p.ID(), err)
		}

		on := !cfg.IsProviderDisabled(p.ID())
		if saved, ok := toggles[p.ID()]; ok {
			on = saved
		}
		s.Engine.SetProviderEnabled(p.ID(), on)
		if on {
			enabled++
		}
	}

	if enabled == 0 {
		return ErrNoProviders
	}
	return nil
}

// Close stops the engine, flushes state and closes the database.
func (s *Services) Close() error {
	if s.Engine != nil {
		s.Engine.Close()
	}
	var errs []error
	if s.State != nil {
		errs = append(errs, s.State.Close())
	}
	errs = append(errs, s.DB.Close())
	return errors.Join(errs...)
}
