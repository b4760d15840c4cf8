package joingraph

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SnapshotCache memoizes snapshots per schema identity. Snapshots are
// immutable, so readers share them without locking once obtained; the cache
// only synchronizes the build-or-fetch decision. Concurrent requests for the
// same uncached key share a single in-flight build instead of triggering
// redundant introspection.
type SnapshotCache struct {
	mu          sync.RWMutex
	snapshots   map[string]*Snapshot
	generations map[string]uint64
	group       singleflight.Group
	logger      *zap.Logger
}

// NewSnapshotCache creates an empty snapshot cache.
func NewSnapshotCache(logger *zap.Logger) *SnapshotCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{
		snapshots:   make(map[string]*Snapshot),
		generations: make(map[string]uint64),
		logger:      logger,
	}
}

// GetOrBuild returns the cached snapshot for key, building it from the
// provider on first use. The build runs under singleflight, so at most one
// build per key is in flight at a time; waiting callers receive the same
// result. The context of the caller that started the build governs it.
func (c *SnapshotCache) GetOrBuild(ctx context.Context, key string, provider MetadataProvider) (*Snapshot, error) {
	c.mu.RLock()
	snapshot, ok := c.snapshots[key]
	c.mu.RUnlock()
	if ok {
		return snapshot, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have stored a
		// snapshot between our read miss and acquiring the flight.
		c.mu.RLock()
		existing, ok := c.snapshots[key]
		generation := c.generations[key]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}

		built, err := Build(ctx, provider, c.logger)
		if err != nil {
			return nil, err
		}

		// Store only if no invalidation happened while building; the caller
		// still gets the snapshot it asked for either way.
		c.mu.Lock()
		if c.generations[key] == generation {
			c.snapshots[key] = built
		}
		c.mu.Unlock()

		c.logger.Debug("built foreign key snapshot",
			zap.String("schema", key),
			zap.Int("tables", len(built.names)),
			zap.Int("dangling", len(built.dangling)))
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// Invalidate drops the cached snapshot for key. In-flight readers keep the
// snapshot they already hold; the next GetOrBuild rebuilds. A build in
// flight during invalidation completes for its callers but is not stored.
func (c *SnapshotCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.snapshots, key)
	c.generations[key]++
	c.mu.Unlock()
	c.group.Forget(key)
}

// InvalidateAll drops every cached snapshot.
func (c *SnapshotCache) InvalidateAll() {
	c.mu.Lock()
	c.snapshots = make(map[string]*Snapshot)
	for key := range c.generations {
		c.generations[key]++
	}
	c.mu.Unlock()
}
