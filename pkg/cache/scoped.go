package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each build of the tool
// its own namespace in a shared cache.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "lnzlayouts:v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PassKey generates a prefixed key for a layout pass.
func (k *ScopedKeyer) PassKey(sceneHash string, opts PassKeyOpts) string {
	return k.prefix + k.inner.PassKey(sceneHash, opts)
}

// TransitionKey generates a prefixed key for a transition run.
func (k *ScopedKeyer) TransitionKey(sceneHash string, opts TransitionKeyOpts) string {
	return k.prefix + k.inner.TransitionKey(sceneHash, opts)
}

// ChartKey generates a prefixed key for a state chart.
func (k *ScopedKeyer) ChartKey(opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(opts)
}
