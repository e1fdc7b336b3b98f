package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// snapshotSuffix distinguishes stored snapshots from token documents that
// may share a directory.
const snapshotSuffix = ".variables.json"

// SnapshotPath returns where the snapshot of a tier lives inside dir.
func SnapshotPath(dir, tier string) string {
	return filepath.Join(dir, tier+snapshotSuffix)
}

// ReadSnapshot decodes a variables snapshot from r.
func ReadSnapshot(r io.Reader) (*variables.Graph, error) {
	g, err := variables.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}
	return g, nil
}

// ImportSnapshot reads a variables snapshot from the file at path.
func ImportSnapshot(path string) (*variables.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "snapshot %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
