package provider

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// DetailsCache memoizes package details per provider. Entries expire after the configured TTL.
type DetailsCache struct {
	cache *cache.Cache
}

// NewDetailsCache creates a DetailsCache. A ttl of 0 keeps entries forever.
func NewDetailsCache(ttl time.Duration) *DetailsCache {
	expiration := cache.NoExpiration
	if ttl > 0 {
		expiration = ttl
	}
	return &DetailsCache{
		cache: cache.New(expiration, expiration*2),
	}
}

func cacheKey(provider, name string) string {
	return provider + "/" + PureName(name)
}

// Lookup returns cached details
func (c *DetailsCache) Lookup(provider, name string) (Details, bool) {
	value, found := c.cache.Get(cacheKey(provider, name))
	if !found {
		return Details{}, false
	}
	return value.(Details), true
}

// Insert caches details under its provider and name
func (c *DetailsCache) Insert(details Details) {
	c.cache.SetDefault(cacheKey(details.Provider, details.Name), details)
}

// Details returns cached details, fetching them from p on a miss. Failures are not cached.
func (c *DetailsCache) Details(ctx context.Context, p Provider, name string) (Details, error) {
	if details, found := c.Lookup(p.Name(), name); found {
		return details, nil
	}
	details, err := p.Details(ctx, name)
	if err != nil {
		return Details{}, err
	}
	if details.Provider == "" {
		details.Provider = p.Name()
	}
	if details.Name == "" {
		details.Name = PureName(name)
	}
	c.Insert(details)
	return details, nil
}
