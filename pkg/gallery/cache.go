package gallery

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider memoizes listings per folder and limit. Failed lookups are not cached.
type CachedProvider struct {
	next  Provider
	store *cache.Cache
}

// NewCachedProvider wraps next with an in-memory cache of the given TTL.
func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:  next,
		store: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedProvider) ListImages(ctx context.Context, folder string, max int) ([]Image, error) {
	key := fmt.Sprintf("%s|%d", folder, max)
	if v, ok := c.store.Get(key); ok {
		return v.([]Image), nil
	}

	images, err := c.next.ListImages(ctx, folder, max)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(key, images)
	return images, nil
}

// Flush drops every cached listing.
func (c *CachedProvider) Flush() {
	c.store.Flush()
}

var _ Provider = (*CachedProvider)(nil)
