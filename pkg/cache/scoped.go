package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. Server
// deployments use it to separate per-workspace caches; tests use it to keep
// fixtures apart.
//
// Example usage:
//
//	// Workspace-specific keys
//	wsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ws:alpha:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
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

// GraphKey generates a prefixed key for provider response caching.
func (k *ScopedKeyer) GraphKey(source string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(source, opts)
}

// ViewKey generates a prefixed key for view-model caching.
func (k *ScopedKeyer) ViewKey(graphHash string, opts ViewKeyOpts) string {
	return k.prefix + k.inner.ViewKey(graphHash, opts)
}

// SnapshotKey generates a prefixed key for snapshot artifact caching.
func (k *ScopedKeyer) SnapshotKey(viewHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(viewHash, opts)
}
