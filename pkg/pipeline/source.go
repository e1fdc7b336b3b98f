package pipeline

import (
	"context"
	"os"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/integrations/figma"
	"github.com/kiliansala/kds-ai-tokens/pkg/io"
	"github.com/kiliansala/kds-ai-tokens/pkg/tokens"
	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// Request identifies one snapshot to acquire.
type Request struct {
	Tier    tokens.Tier
	FileKey string
	Refresh bool
}

// Source acquires variable snapshots. Implementations must be safe for
// concurrent use; the runner acquires all tiers at once.
type Source interface {
	// Name describes the source in logs ("figma", "dir:fixtures").
	Name() string
	Acquire(ctx context.Context, req Request) (*variables.Graph, error)
}

// RawSource is a Source that can also return snapshots verbatim.
type RawSource interface {
	Source
	AcquireRaw(ctx context.Context, req Request) ([]byte, error)
}

// FigmaSource reads snapshots from the Figma REST API.
type FigmaSource struct {
	client *figma.Client
}

// NewFigmaSource wraps a Figma client.
func NewFigmaSource(client *figma.Client) *FigmaSource {
	return &FigmaSource{client: client}
}

func (s *FigmaSource) Name() string { return "figma" }

// Acquire fetches and decodes the snapshot of req.FileKey.
func (s *FigmaSource) Acquire(ctx context.Context, req Request) (*variables.Graph, error) {
	return s.client.FetchVariables(ctx, req.FileKey, req.Refresh)
}

// AcquireRaw fetches the snapshot of req.FileKey without decoding it.
func (s *FigmaSource) AcquireRaw(ctx context.Context, req Request) ([]byte, error) {
	return s.client.FetchRaw(ctx, req.FileKey, req.Refresh)
}

// DirSource reads snapshots stored by the fetch command, one file per tier
// (see [io.SnapshotPath]). File keys are ignored.
type DirSource struct {
	Dir string
}

// NewDirSource reads snapshots from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) Name() string { return "dir:" + s.Dir }

// Acquire reads the tier's snapshot file.
func (s *DirSource) Acquire(ctx context.Context, req Request) (*variables.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.ImportSnapshot(io.SnapshotPath(s.Dir, string(req.Tier)))
}

// AcquireRaw returns the tier's snapshot file contents.
func (s *DirSource) AcquireRaw(ctx context.Context, req Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := io.SnapshotPath(s.Dir, string(req.Tier))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read snapshot %s", path)
	}
	return data, nil
}

var (
	_ RawSource = (*FigmaSource)(nil)
	_ RawSource = (*DirSource)(nil)
)
