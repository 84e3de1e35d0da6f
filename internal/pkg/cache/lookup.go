package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const defaultLoadTimeout = 30 * time.Second

// LookupCache holds small read-mostly lists (reference data dropdowns) in memory.
// Concurrent misses for the same key share one load.
type LookupCache struct {
	store       *gocache.Cache
	group       singleflight.Group
	ttl         time.Duration
	loadTimeout time.Duration

	// generations guards against a load that started before Invalidate storing its result after it
	mu          sync.Mutex
	generations map[string]uint64
}

func NewLookupCache(ttl time.Duration) *LookupCache {
	return &LookupCache{
		store:       gocache.New(ttl, 2*ttl),
		ttl:         ttl,
		loadTimeout: defaultLoadTimeout,
		generations: make(map[string]uint64),
	}
}

// GetOrLoad returns the cached value for key, calling load on a miss.
// Load errors are returned and never cached. The shared load is detached from the
// caller's cancellation, so one caller giving up does not fail the others.
func (c *LookupCache) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (any, error)) (any, error) {
	if v, found := c.store.Get(key); found {
		return v, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		if v, found := c.store.Get(key); found {
			return v, nil
		}

		gen := c.generation(key)
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generations[key] == gen {
			c.store.Set(key, v, c.ttl)
		} else {
			slog.Debug("Lookup cache load outdated by invalidation, not stored", "key", key)
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			slog.Debug("Lookup cache load shared", "key", key)
		}
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *LookupCache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// Invalidate drops key so the next read reloads it. A load already in flight
// still answers its own callers but is not stored.
func (c *LookupCache) Invalidate(key string) {
	c.mu.Lock()
	c.generations[key]++
	c.store.Delete(key)
	c.mu.Unlock()
	c.group.Forget(key)
}

func (c *LookupCache) Len() int {
	return c.store.ItemCount()
}
