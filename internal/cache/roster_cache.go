package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/mentorhub/mentorhub-web/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const cacheCheckPeriod = 30 * time.Second

// RosterFetcher loads a roster from the core backend on a cache miss,
// using the requesting user's credential.
type RosterFetcher func(ctx context.Context, token string) ([]models.Participant, error)

// RosterCache caches the student and mentor rosters. Rosters change
// rarely compared to how often the messaging pages load them, so a short
// TTL takes most of the read load off the backend.
type RosterCache struct {
	cache    *gocache.Cache
	ttl      time.Duration
	disabled bool
	mu       sync.Mutex // serializes concurrent fetches of the same roster
}

// NewRosterCache creates a roster cache. When disabled, every Get goes
// straight to the backend.
func NewRosterCache(ttlSeconds int, disabled bool) *RosterCache {
	if disabled {
		logger.Warn("Roster cache is DISABLED - fetching from the backend on every request")
	}
	return &RosterCache{
		cache:    gocache.New(time.Duration(ttlSeconds)*time.Second, cacheCheckPeriod),
		ttl:      time.Duration(ttlSeconds) * time.Second,
		disabled: disabled,
	}
}

// Get returns the named roster, fetching it through the supplied fetcher
// on a miss. The fetcher's error is returned as-is; a failed fetch never
// poisons the cache.
func (rc *RosterCache) Get(ctx context.Context, name, token string, fetch RosterFetcher) ([]models.Participant, error) {
	if rc.disabled {
		return fetch(ctx, token)
	}

	if data, found := rc.cache.Get(name); found {
		if roster, ok := data.([]models.Participant); ok {
			metrics.CacheHits.WithLabelValues("roster_" + name).Inc()
			return roster, nil
		}
		rc.cache.Delete(name)
	}

	metrics.CacheMisses.WithLabelValues("roster_" + name).Inc()

	rc.mu.Lock()
	defer rc.mu.Unlock()

	// Another request may have filled the entry while we waited
	if data, found := rc.cache.Get(name); found {
		if roster, ok := data.([]models.Participant); ok {
			return roster, nil
		}
	}

	roster, err := fetch(ctx, token)
	if err != nil {
		return nil, err
	}

	rc.cache.Set(name, roster, rc.ttl)
	logger.Debug("Roster cached",
		zap.String("roster", name),
		zap.Int("count", len(roster)),
	)
	return roster, nil
}

// Invalidate drops the named roster entry.
func (rc *RosterCache) Invalidate(name string) {
	rc.cache.Delete(name)
}
