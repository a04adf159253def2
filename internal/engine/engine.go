// Package engine runs search providers concurrently and reports their
// responses as globalsearch events.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/singleflight"

	"github.com/llehouerou/wavesearch/internal/artcache"
	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

const (
	DefaultPoolSize    = 8
	DefaultEventBuffer = 64
	DefaultTimeout     = 15 * time.Second
)

var _ globalsearch.Engine = (*Engine)(nil)

// Engine dispatches queries to providers on a worker pool. Every response
// is delivered on the Events channel, to be passed to Search.Dispatch by
// the consumer goroutine.
type Engine struct {
	logger  *slog.Logger
	pool    *ants.Pool
	cache   *artcache.Cache
	events  chan globalsearch.Event
	timeout time.Duration

	poolSize    int
	eventBuffer int

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	nextID    int
	providers map[string]Provider
	enabled   map[string]bool
	searches  map[globalsearch.SessionID]*search

	art singleflight.Group
}

// search tracks the providers still working on one session.
type search struct {
	cancel  context.CancelFunc
	pending int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPoolSize sets the number of concurrent provider calls.
func WithPoolSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.poolSize = n
		}
	}
}

// WithArtCache sets the thumbnail cache. Default is an in-memory cache.
func WithArtCache(c *artcache.Cache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithEventBuffer sets the capacity of the Events channel.
func WithEventBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.eventBuffer = n
		}
	}
}

// New creates an engine with no providers.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:      slog.Default(),
		timeout:     DefaultTimeout,
		poolSize:    DefaultPoolSize,
		eventBuffer: DefaultEventBuffer,
		providers:   make(map[string]Provider),
		enabled:     make(map[string]bool),
		searches:    make(map[globalsearch.SessionID]*search),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = artcache.NewMemory(artcache.DefaultSize)
	}

	pool, err := ants.NewPool(e.poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	e.pool = pool
	e.events = make(chan globalsearch.Event, e.eventBuffer)
	e.ctx, e.cancel = context.WithCancel(context.Background())
	return e, nil
}

// Events returns the channel responses are delivered on.
func (e *Engine) Events() <-chan globalsearch.Event {
	return e.events
}

// Close cancels every in-flight call and stops the worker pool.
func (e *Engine) Close() {
	e.cancel()
	e.pool.Release()
}

// AddProvider registers p, enabled, and announces it on the event channel.
func (e *Engine) AddProvider(p Provider) error {
	e.mu.Lock()
	if _, ok := e.providers[p.ID()]; ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", globalsearch.ErrDuplicateProvider, p.ID())
	}
	e.providers[p.ID()] = p
	e.enabled[p.ID()] = true
	e.mu.Unlock()

	e.emit(globalsearch.ProviderAdded{Provider: info(p)})
	return nil
}

// RemoveProvider unregisters a provider and announces it.
func (e *Engine) RemoveProvider(id string) error {
	e.mu.Lock()
	p, ok := e.providers[id]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", globalsearch.ErrUnknownProvider, id)
	}
	delete(e.providers, id)
	delete(e.enabled, id)
	e.mu.Unlock()

	e.emit(globalsearch.ProviderRemoved{Provider: info(p)})
	return nil
}

// Providers implements globalsearch.Engine.
func (e *Engine) Providers() []globalsearch.ProviderInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]globalsearch.ProviderInfo, 0, len(e.providers))
	for _, p := range e.providers {
		out = append(out, info(p))
	}
	return out
}

// IsProviderEnabled implements globalsearch.Engine.
func (e *Engine) IsProviderEnabled(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled[id]
}

// SetProviderEnabled implements globalsearch.Engine.
func (e *Engine) SetProviderEnabled(id string, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.providers[id]; ok {
		e.enabled[id] = enabled
	}
}

func (e *Engine) allocID() int {
	e.nextID++
	return e.nextID
}

// SearchAsync implements globalsearch.Engine. Each enabled provider
// delivers exactly one batch; failures are delivered as empty batches.
func (e *Engine) SearchAsync(query string) globalsearch.SessionID {
	e.mu.Lock()
	id := globalsearch.SessionID(e.allocID())
	var targets []Provider
	for pid, p := range e.providers {
		if e.enabled[pid] {
			targets = append(targets, p)
		}
	}
	ctx, cancel := context.WithCancel(e.ctx)
	if len(targets) == 0 {
		cancel()
		e.mu.Unlock()
		return id
	}
	e.searches[id] = &search{cancel: cancel, pending: len(targets)}
	e.mu.Unlock()

	for _, p := range targets {
		e.submit(func() {
			defer e.finishSearch(id)
			e.emit(globalsearch.ResultsAvailable{
				Session: id,
				Results: e.runSearch(ctx, p, query),
			})
		}, func() {
			e.finishSearch(id)
			e.emit(globalsearch.ResultsAvailable{Session: id})
		})
	}
	return id
}

func (e *Engine) runSearch(ctx context.Context, p Provider, query string) []globalsearch.Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	results, err := p.Search(ctx, query)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			e.logger.Warn("provider search failed", "provider", p.ID(), "query", query, "error", err)
		}
		return nil
	}
	e.logger.Debug("provider search done", "provider", p.ID(), "results", len(results), "took", time.Since(start))
	return results
}

func (e *Engine) finishSearch(id globalsearch.SessionID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.searches[id]
	if !ok {
		return
	}
	s.pending--
	if s.pending <= 0 {
		s.cancel()
		delete(e.searches, id)
	}
}

// CancelSearch implements globalsearch.Engine. Providers see their context
// cancelled; batches already produced may still be delivered.
func (e *Engine) CancelSearch(id globalsearch.SessionID) {
	e.mu.Lock()
	s, ok := e.searches[id]
	if ok {
		delete(e.searches, id)
	}
	e.mu.Unlock()
	if ok {
		s.cancel()
	}
}

// FindCachedPixmap implements globalsearch.Engine.
func (e *Engine) FindCachedPixmap(r globalsearch.Result) (image.Image, bool) {
	return e.cache.Get(r.Key())
}

// LoadArtAsync implements globalsearch.Engine. Concurrent loads of the
// same result share one provider call.
func (e *Engine) LoadArtAsync(r globalsearch.Result) globalsearch.OperationID {
	e.mu.Lock()
	op := globalsearch.OperationID(e.allocID())
	p := e.providers[r.ProviderID]
	e.mu.Unlock()

	e.submit(func() {
		e.emit(globalsearch.ArtLoaded{Operation: op, Image: e.loadArt(p, r)})
	}, func() {
		e.emit(globalsearch.ArtLoaded{Operation: op})
	})
	return op
}

func (e *Engine) loadArt(p Provider, r globalsearch.Result) image.Image {
	key := r.Key()
	if img, ok := e.cache.Get(key); ok {
		return img
	}
	loader, ok := p.(ArtLoader)
	if !ok {
		return nil
	}

	v, err, _ := e.art.Do(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
		defer cancel()

		img, err := loader.LoadArt(ctx, r)
		if err != nil || img == nil {
			return nil, err
		}
		thumb, err := e.cache.Put(key, img)
		if err != nil {
			e.logger.Warn("failed to store thumbnail", "key", key, "error", err)
		}
		return thumb, nil
	})
	if err != nil {
		e.logger.Debug("art load failed", "provider", r.ProviderID, "error", err)
		return nil
	}
	img, _ := v.(image.Image)
	return img
}

// LoadTracksAsync implements globalsearch.Engine.
func (e *Engine) LoadTracksAsync(r globalsearch.Result) globalsearch.OperationID {
	e.mu.Lock()
	op := globalsearch.OperationID(e.allocID())
	p := e.providers[r.ProviderID]
	e.mu.Unlock()

	e.submit(func() {
		e.emit(globalsearch.TracksLoaded{Operation: op, Payload: e.loadTracks(p, r)})
	}, func() {
		e.emit(globalsearch.TracksLoaded{Operation: op})
	})
	return op
}

func (e *Engine) loadTracks(p Provider, r globalsearch.Result) *globalsearch.Payload {
	loader, ok := p.(TrackLoader)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
	defer cancel()

	songs, err := loader.LoadTracks(ctx, r)
	if err != nil {
		e.logger.Warn("track load failed", "provider", r.ProviderID, "error", err)
		return nil
	}
	if len(songs) == 0 {
		return nil
	}
	return &globalsearch.Payload{Songs: songs}
}

// submit runs task on the pool without blocking the caller. When every
// worker is busy the task gets its own goroutine; once the pool is closed
// fallback reports the failure instead.
func (e *Engine) submit(task, fallback func()) {
	err := e.pool.Submit(task)
	switch {
	case err == nil:
	case errors.Is(err, ants.ErrPoolOverload):
		e.logger.Debug("worker pool saturated, running task on its own goroutine")
		go task()
	default:
		e.logger.Error("worker pool rejected task", "error", err)
		go fallback()
	}
}

func (e *Engine) emit(ev globalsearch.Event) {
	select {
	case e.events <- ev:
	case <-e.ctx.Done():
	}
}
