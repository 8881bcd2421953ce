// Package observability provides hooks for metrics, tracing, and logging.
//
// The layout engine is a pure in-process geometry library; it never logs on
// its own. Instead, layouts, the transition animator and the cache emit
// events through the hooks registered here. The CLI registers hooks that
// forward events to its charm logger; tests register recorders.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetTransitionHooks(&myTransitionHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnFocusChange("snap", 2, 3)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout passes. Layout computation is
// synchronous and runs on the host's UI goroutine, so these methods take no
// context.
type LayoutHooks interface {
	// OnInvalidate records an invalidation; structural is true when cached
	// geometry was dropped.
	OnInvalidate(layout string, structural bool)

	// OnPrepare records a prepare pass.
	OnPrepare(layout string, itemCount int, duration time.Duration)

	// OnFocusChange records a change of the centered item.
	OnFocusChange(layout string, from, to int)

	// OnDeletion records the end of a pan-to-delete gesture.
	OnDeletion(layout string, index int, committed bool)
}

// =============================================================================
// Transition Hooks
// =============================================================================

// TransitionHooks receives events from the transition animator.
type TransitionHooks interface {
	OnTransitionStart(ctx context.Context, id string, index int, reversed bool, clones int)
	OnTransitionPhase(ctx context.Context, id string, phase string)
	OnTransitionComplete(ctx context.Context, id string, finished bool, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnInvalidate(string, bool)            {}
func (NoopLayoutHooks) OnPrepare(string, int, time.Duration) {}
func (NoopLayoutHooks) OnFocusChange(string, int, int)       {}
func (NoopLayoutHooks) OnDeletion(string, int, bool)         {}

// NoopTransitionHooks is a no-op implementation of TransitionHooks.
type NoopTransitionHooks struct{}

func (NoopTransitionHooks) OnTransitionStart(context.Context, string, int, bool, int)         {}
func (NoopTransitionHooks) OnTransitionPhase(context.Context, string, string)                 {}
func (NoopTransitionHooks) OnTransitionComplete(context.Context, string, bool, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks     LayoutHooks     = NoopLayoutHooks{}
	transitionHooks TransitionHooks = NoopTransitionHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout pass.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetTransitionHooks registers custom transition hooks.
func SetTransitionHooks(h TransitionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transitionHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Transition returns the registered transition hooks.
func Transition() TransitionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transitionHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	transitionHooks = NoopTransitionHooks{}
	cacheHooks = NoopCacheHooks{}
}
