// Package querycache keeps API query results keyed by query and labelled with
// the tags they provide, so mutations can drop exactly what they make stale.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/skypointsocial/skypoint/app"
)

const subscriberBuffer = 16

type entry struct {
	value    any
	tags     []app.Tag
	storedAt time.Time
}

// Cache is a bounded LRU of query results plus an invalidation feed.
type Cache struct {
	entries *lru.Cache[string, entry]
	logger  *slog.Logger

	mu         sync.Mutex
	generation uint64
	subs       []chan app.Invalidation
}

// New creates a cache holding at most size results.
func New(size int, logger *slog.Logger) (*Cache, error) {
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("creating query cache: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{entries: entries, logger: logger}, nil
}

// Request describes one cached query.
type Request[T any] struct {
	Key     string
	Tags    []app.Tag
	Refetch bool // Skip a cached hit and go to the network.
	Fetch   func(ctx context.Context) (T, error)
}

// Query returns the cached result for req.Key or runs req.Fetch and caches
// the result. A result whose fetch overlapped an invalidation is returned but
// not cached, so it cannot mask the refetch that follows.
func Query[T any](ctx context.Context, c *Cache, req Request[T]) (T, error) {
	if !req.Refetch {
		if e, ok := c.entries.Get(req.Key); ok {
			if v, ok := e.value.(T); ok {
				return v, nil
			}
		}
	}

	startGen := c.currentGeneration()
	v, err := req.Fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if c.currentGeneration() == startGen {
		c.entries.Add(req.Key, entry{value: v, tags: req.Tags, storedAt: time.Now()})
	}
	return v, nil
}

// Invalidate drops every entry providing a tag hit by inv.Tags and notifies
// subscribers. It returns the dropped keys.
func (c *Cache) Invalidate(inv app.Invalidation) []string {
	if len(inv.Tags) == 0 {
		return nil
	}
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()

	var dropped []string
	for _, key := range c.entries.Keys() {
		e, ok := c.entries.Peek(key)
		if !ok {
			continue
		}
		if app.AnyMatch(inv.Tags, e.tags) {
			c.entries.Remove(key)
			dropped = append(dropped, key)
		}
	}
	c.logger.Debug("cache invalidated",
		slog.String("mutation", inv.Mutation.String()),
		slog.Any("tags", inv.Tags),
		slog.Int("dropped", len(dropped)),
	)
	c.publish(inv)
	return dropped
}

// Subscribe returns a channel that receives every invalidation. Slow
// subscribers miss events rather than block mutations.
func (c *Cache) Subscribe() <-chan app.Invalidation {
	ch := make(chan app.Invalidation, subscriberBuffer)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Reset empties the cache, e.g. on logout.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
	c.entries.Purge()
}

// Len returns the number of cached results.
func (c *Cache) Len() int { return c.entries.Len() }

// Contains reports whether key is cached, without touching recency.
func (c *Cache) Contains(key string) bool { return c.entries.Contains(key) }

func (c *Cache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Cache) publish(inv app.Invalidation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- inv:
		default:
			c.logger.Warn("dropping invalidation for slow subscriber",
				slog.String("mutation", inv.Mutation.String()))
		}
	}
}
