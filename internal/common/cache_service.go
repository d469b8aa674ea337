package common

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-process cache used when no Redis host is configured
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

// NewCacheService creates a cache whose entries expire after ttl by default.
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{cache: cache.New(ttl, 2*ttl)}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (interface{}, bool) {
	return cs.cache.Get(key)
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

func (cs *CacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error)) (interface{}, error) {
	if val, found := cs.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	cs.Set(key, val, duration)
	return val, nil
}

// DeletePrefix removes every key starting with prefix.
func (cs *CacheService) DeletePrefix(_ context.Context, prefix string) error {
	for key := range cs.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			cs.cache.Delete(key)
		}
	}
	return nil
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
