package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/lnzlayouts/pkg/cache"
)

// cachedArtifact returns the artifact stored under key, computing and
// storing it on a miss. Cache failures are logged and otherwise ignored.
func (c *CLI) cachedArtifact(ctx context.Context, store cache.Cache, key string, compute func() ([]byte, error)) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	data, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		return data, true, nil
	}

	data, err = compute()
	if err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, data, cacheTTL); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
	}
	return data, false, nil
}

// writeArtifact writes data to path and reports it.
func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	printFile(path)
	return nil
}
