package geocoder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const emptyResultMarker = "N/A"

// CachedProvider remembers provider answers in redis, including empty ones
type CachedProvider struct {
	Provider Provider
	Cache    *cache.Cache[string]
}

func NewCachedProvider(provider Provider, client *redis.Client, expiry time.Duration) *CachedProvider {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiry))

	return &CachedProvider{
		Provider: provider,
		Cache:    cache.New[string](redisStore),
	}
}

func (c *CachedProvider) Search(ctx context.Context, query SearchQuery) ([]Candidate, error) {
	cacheKey := query.CacheKey()

	cachedValue, err := c.Cache.Get(ctx, cacheKey)
	if err == nil {
		if cachedValue == emptyResultMarker {
			return []Candidate{}, nil
		}

		var candidates []Candidate
		if err := json.Unmarshal([]byte(cachedValue), &candidates); err == nil {
			return candidates, nil
		}
	}

	candidates, err := c.Provider.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	cacheValue := emptyResultMarker
	if len(candidates) > 0 {
		candidatesJSON, _ := json.Marshal(candidates)
		cacheValue = string(candidatesJSON)
	}

	if err := c.Cache.Set(ctx, cacheKey, cacheValue); err != nil {
		log.Debug().Err(err).Str("key", cacheKey).Msg("Failed to cache geocode result")
	}

	return candidates, nil
}
