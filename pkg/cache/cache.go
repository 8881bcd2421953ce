// Package cache stores rendered artifacts (layout passes, transition frame
// sequences, state charts) keyed by a hash of the inputs that produced them.
//
// Three backends implement [Cache]: [FileCache] for the command line,
// [RedisCache] for sharing results between machines, and [NullCache] to
// disable caching. [Instrument] wraps any backend so hits, misses and
// writes are reported to the observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Keyer derives cache keys from the inputs of an artifact.
type Keyer interface {
	// PassKey is the key of a rendered layout pass.
	PassKey(sceneHash string, opts PassKeyOpts) string

	// TransitionKey is the key of a sampled transition run.
	TransitionKey(sceneHash string, opts TransitionKeyOpts) string

	// ChartKey is the key of a rendered state chart.
	ChartKey(opts ChartKeyOpts) string
}

// PassKeyOpts are the inputs of a layout pass besides the scene.
type PassKeyOpts struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Format  string  `json:"format"`
}

// TransitionKeyOpts are the inputs of a transition run besides the scene.
type TransitionKeyOpts struct {
	Index    int  `json:"index"`
	Reversed bool `json:"reversed"`
	FPS      int  `json:"fps"`
}

// ChartKeyOpts are the inputs of a state chart.
type ChartKeyOpts struct {
	Highlight string `json:"highlight"`
	Labels    bool   `json:"labels"`
	Format    string `json:"format"`
}

// DefaultKeyer hashes every input into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) PassKey(sceneHash string, opts PassKeyOpts) string {
	return hashKey("pass", sceneHash, opts)
}

func (DefaultKeyer) TransitionKey(sceneHash string, opts TransitionKeyOpts) string {
	return hashKey("transition", sceneHash, opts)
}

func (DefaultKeyer) ChartKey(opts ChartKeyOpts) string {
	return hashKey("chart", opts)
}
