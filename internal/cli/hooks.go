package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lnzlayouts/pkg/observability"
)

// logHooks forwards observability events to the CLI logger at debug level.
// Transition and cache events prefer the logger carried by their context.
type logHooks struct {
	logger *log.Logger
}

// installHooks registers logHooks for every event category.
func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetLayoutHooks(h)
	observability.SetTransitionHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) from(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return h.logger
}

func (h logHooks) OnInvalidate(layout string, structural bool) {
	h.logger.Debug("invalidate", "layout", layout, "structural", structural)
}

func (h logHooks) OnPrepare(layout string, items int, elapsed time.Duration) {
	h.logger.Debug("layout pass", "layout", layout, "items", items, "elapsed", elapsed)
}

func (h logHooks) OnFocusChange(layout string, from, to int) {
	h.logger.Debug("focus change", "layout", layout, "from", from, "to", to)
}

func (h logHooks) OnDeletion(layout string, index int, committed bool) {
	if committed {
		h.logger.Debug("deletion committed", "layout", layout, "index", index)
		return
	}
	h.logger.Debug("deletion cancelled", "layout", layout, "index", index)
}

func (h logHooks) OnTransitionStart(ctx context.Context, id string, index int, reversed bool, clones int) {
	h.from(ctx).Debug("transition start", "id", id, "index", index, "reversed", reversed, "clones", clones)
}

func (h logHooks) OnTransitionPhase(ctx context.Context, id, phase string) {
	h.from(ctx).Debug("transition phase", "id", id, "phase", phase)
}

func (h logHooks) OnTransitionComplete(ctx context.Context, id string, finished bool, elapsed time.Duration) {
	h.from(ctx).Debug("transition complete", "id", id, "finished", finished, "elapsed", elapsed)
}

func (h logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.from(ctx).Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.from(ctx).Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.from(ctx).Debug("cache set", "type", keyType, "bytes", size)
}
