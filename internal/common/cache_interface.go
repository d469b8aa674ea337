package common

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// PrefixDeleter is implemented by caches that can drop a whole key family.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) error
}

// DecodeCached converts a cached value back into T. The in-memory cache hands
// back the stored value as is, Redis hands back generic JSON which is re-decoded.
func DecodeCached[T any](val interface{}) (T, bool) {
	var out T
	switch v := val.(type) {
	case T:
		return v, true
	case *T:
		if v == nil {
			return out, false
		}
		return *v, true
	}

	data, err := json.Marshal(val)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}
