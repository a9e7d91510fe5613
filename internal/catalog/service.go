// Package catalog loads the option catalog, caching good responses and
// falling back to the last good catalog when the backend fails.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/fitness"
)

// Fetcher retrieves catalogs from the backend.
type Fetcher interface {
	ListOptions(ctx context.Context, age int, sel fitness.SelectionSet) (*fitness.Catalog, error)
	FetchOptions(ctx context.Context, age int, sel fitness.SelectionSet) (*fitness.Catalog, error)
}

// Persister keeps the last good catalog across restarts.
type Persister interface {
	SaveCatalog(ctx context.Context, c *fitness.Catalog) error
	LoadCatalog(ctx context.Context) (*fitness.Catalog, error)
}

// Result is the outcome of a catalog load.
type Result struct {
	Catalog *fitness.Catalog
	// Stale is set when Catalog is the last good copy rather than a fresh
	// response. Err then holds the failure that caused the fallback.
	Stale bool
	Err   error
}

// Config sizes the in-memory response cache.
type Config struct {
	SizeMB int
	TTL    time.Duration
}

// Service loads catalogs for the setup flow.
type Service struct {
	api     Fetcher
	persist Persister
	cache   *freecache.Cache
	ttlSecs int

	mu       sync.Mutex
	lastGood *fitness.Catalog
}

// NewService creates a Service. persist may be nil.
func NewService(api Fetcher, persist Persister, cfg Config) *Service {
	megabyte := 1024 * 1024
	size := cfg.SizeMB * megabyte
	if size <= 0 {
		size = megabyte
	}
	return &Service{
		api:     api,
		persist: persist,
		cache:   freecache.NewCache(size),
		ttlSecs: ttlSeconds(cfg.TTL),
	}
}

// ttlSeconds converts ttl to freecache's whole seconds. freecache reads 0 as
// "never expire", so positive sub-second values round up to 1s.
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return max(1, int(ttl/time.Second))
}

// Load fetches the catalog for age with no selection context.
func (s *Service) Load(ctx context.Context, age int) Result {
	return s.get(ctx, "list", age, fitness.SelectionSet{}, s.api.ListOptions)
}

// Refresh fetches a catalog tailored to the current selection.
func (s *Service) Refresh(ctx context.Context, age int, sel fitness.SelectionSet) Result {
	return s.get(ctx, "refresh", age, sel, s.api.FetchOptions)
}

// Cached returns the last good catalog without contacting the backend, or
// nil when none is known.
func (s *Service) Cached(ctx context.Context) *fitness.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadPersistedLocked(ctx)
	if s.lastGood == nil || s.lastGood.Empty() {
		return nil
	}
	return s.lastGood.Clone()
}

func (s *Service) loadPersistedLocked(ctx context.Context) {
	if s.lastGood != nil || s.persist == nil {
		return
	}
	c, err := s.persist.LoadCatalog(ctx)
	if err != nil {
		log.Warnf("load last good catalog: %s", err)
	}
	s.lastGood = c
}

type fetchFunc func(ctx context.Context, age int, sel fitness.SelectionSet) (*fitness.Catalog, error)

func (s *Service) get(ctx context.Context, kind string, age int, sel fitness.SelectionSet, fetch fetchFunc) Result {
	cacheKey := fmt.Sprintf("%s::%d::%s", kind, age, sel.Key())
	if raw, err := s.cache.Get([]byte(cacheKey)); err == nil {
		var c fitness.Catalog
		if err := json.Unmarshal(raw, &c); err == nil {
			log.Tracef("catalog %s served from cache", cacheKey)
			return Result{Catalog: &c}
		} else {
			log.Errorf("decode cached catalog %s: %s", cacheKey, err)
		}
	}

	c, err := fetch(ctx, age, sel)
	if err != nil {
		return s.fallback(ctx, err)
	}

	s.remember(ctx, cacheKey, c)
	return Result{Catalog: c}
}

func (s *Service) remember(ctx context.Context, cacheKey string, c *fitness.Catalog) {
	s.mu.Lock()
	s.lastGood = c
	s.mu.Unlock()
	raw, err := json.Marshal(c)
	if err != nil {
		log.Errorf("encode catalog: %s", err)
		return
	}
	if err := s.cache.Set([]byte(cacheKey), raw, s.ttlSecs); err != nil {
		log.Errorf("cache catalog %s: %s", cacheKey, err)
	}
	if s.persist != nil {
		if err := s.persist.SaveCatalog(ctx, c); err != nil {
			log.Warnf("persist catalog: %s", err)
		}
	}
}

// fallback returns the last good catalog for err, if there is one.
// Validation failures and cancellations are returned as-is.
func (s *Service) fallback(ctx context.Context, err error) Result {
	var ve *fitness.ValidationError
	if errors.As(err, &ve) || errors.Is(err, context.Canceled) {
		return Result{Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadPersistedLocked(ctx)
	if s.lastGood == nil || s.lastGood.Empty() {
		return Result{Err: err}
	}
	log.WithError(err).Info("serving last good catalog")
	return Result{Catalog: s.lastGood.Clone(), Stale: true, Err: err}
}
