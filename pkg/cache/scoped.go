package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This keeps entries from different server instances or tenants from
// colliding when they share one Redis database.
//
// Example usage:
//
//	// Instance-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Shared keys
//	keyer := NewDefaultKeyer()
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

// AnalysisKey generates a prefixed key for a detection result.
func (k *ScopedKeyer) AnalysisKey(snapshotHash string) string {
	return k.prefix + k.inner.AnalysisKey(snapshotHash)
}

// GraphKey generates a prefixed key for a built graph document.
func (k *ScopedKeyer) GraphKey(snapshotHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(snapshotHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
