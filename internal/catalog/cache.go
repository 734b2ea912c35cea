package catalog

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mtgtools/revealsim/internal/card"
)

// Cache wraps a Lookup with a per-instance name cache. Resolved cards are
// kept for the cache's lifetime; card attributes are immutable reference
// data, so entries never expire. Concurrent first-resolution of the same
// name is collapsed into one upstream call.
//
// Negative results (ErrNotFound, transport errors) are not cached, so a
// transiently failing name can succeed on a later build.
type Cache struct {
	upstream Lookup

	mu    sync.RWMutex
	cards map[string]card.Card
	group singleflight.Group
}

// NewCache wraps upstream with an empty cache.
func NewCache(upstream Lookup) *Cache {
	return &Cache{
		upstream: upstream,
		cards:    make(map[string]card.Card),
	}
}

// key normalizes a name for caching; lookups are case-insensitive.
func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the cached card or resolves it upstream once.
func (c *Cache) Lookup(ctx context.Context, name string) (card.Card, error) {
	k := key(name)

	c.mu.RLock()
	cached, ok := c.cards[k]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(k, func() (any, error) {
		resolved, err := c.upstream.Lookup(ctx, name)
		if err != nil {
			return card.Card{}, err
		}
		c.mu.Lock()
		c.cards[k] = resolved
		c.mu.Unlock()
		return resolved, nil
	})
	if err != nil {
		return card.Card{}, err
	}
	return v.(card.Card), nil
}

// Len returns the number of cached names.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}

// Reset drops every cached entry. Intended for test isolation.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards = make(map[string]card.Card)
}
