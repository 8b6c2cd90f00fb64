package cache

import (
	"context"
	"strings"
	"time"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/observability"
)

// Instrumented wraps a Cache and reports hits, misses, and writes to the
// registered observability hooks. The key type reported is the key's prefix
// up to the first colon ("analysis", "graph", "artifact").
type Instrumented struct {
	inner Cache
}

// WithHooks wraps a cache with observability instrumentation.
func WithHooks(inner Cache) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Instrumented{inner: inner}
}

// Get retrieves a value and records the hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

// Set stores a value and records the write.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

// Delete removes a value.
func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the wrapped cache.
func (c *Instrumented) Close() error {
	return c.inner.Close()
}

// keyType extracts the entry-type prefix from a cache key.
func keyType(key string) string {
	if t, _, ok := strings.Cut(key, ":"); ok {
		return t
	}
	return "other"
}

// Ensure Instrumented implements Cache.
var _ Cache = (*Instrumented)(nil)
