package cache

// Keyer derives cache keys for the things this module caches.
type Keyer interface {
	// SnapshotKey keys the variables snapshot of one Figma file.
	SnapshotKey(fileKey string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SnapshotKey returns a key hashed over the file key, so arbitrary input
// never leaks into file names or Redis key patterns.
func (DefaultKeyer) SnapshotKey(fileKey string) string {
	return hashKey("snapshot", "variables/local", fileKey)
}
