package cache

// ScopedKeyer wraps a Keyer with a prefix. A shared Redis instance uses it to
// keep the snapshots of different design systems apart:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "kds:")
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

// SnapshotKey generates a prefixed snapshot key.
func (k *ScopedKeyer) SnapshotKey(fileKey string) string {
	return k.prefix + k.inner.SnapshotKey(fileKey)
}
