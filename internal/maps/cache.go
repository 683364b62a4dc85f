// README: Redis-backed cache for place lookups.
package maps

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tripstoryer/internal/trip"
)

const (
	cacheKeyPrefix = "places:lookup:"
	// Venue data goes stale slowly; a day keeps repeat plans cheap without
	// serving closed businesses for long.
	cacheTTL = 24 * time.Hour
)

// Cache stores place lookup results in Redis keyed by the lookup triple.
type Cache struct {
	redis *redis.Client
}

func NewCache(redis *redis.Client) *Cache {
	return &Cache{redis: redis}
}

func cacheKey(activityType, destination, timeWindow string) string {
	return cacheKeyPrefix + strings.ToLower(strings.Join([]string{activityType, destination, timeWindow}, ":"))
}

// Get returns the cached places and true on a hit. Any redis or decode error
// is treated as a miss.
func (c *Cache) Get(ctx context.Context, activityType, destination, timeWindow string) ([]trip.Place, bool) {
	raw, err := c.redis.Get(ctx, cacheKey(activityType, destination, timeWindow)).Bytes()
	if err != nil {
		return nil, false
	}
	var places []trip.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, false
	}
	return places, true
}

// Put stores the lookup result. Errors are dropped; the cache is best-effort.
func (c *Cache) Put(ctx context.Context, activityType, destination, timeWindow string, places []trip.Place) {
	raw, err := json.Marshal(places)
	if err != nil {
		return
	}
	c.redis.Set(ctx, cacheKey(activityType, destination, timeWindow), raw, cacheTTL)
}
