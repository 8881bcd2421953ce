package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/lnzlayouts/pkg/observability"
)

// Instrument wraps c so every lookup and write is reported to the cache
// hooks. The key type is the key's prefix up to the first colon.
func Instrument(c Cache) Cache { return &instrumented{c} }

type instrumented struct{ Cache }

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func keyType(key string) string {
	// Scoped keys carry their own prefix before the keyer's.
	parts := strings.Split(key, ":")
	for i := len(parts) - 2; i >= 0; i-- {
		switch parts[i] {
		case "pass", "transition", "chart":
			return parts[i]
		}
	}
	return parts[0]
}
