package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/io"
	"github.com/kiliansala/kds-ai-tokens/pkg/observability"
	"github.com/kiliansala/kds-ai-tokens/pkg/tokens"
	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// Snapshots holds the acquired graph of each tier.
type Snapshots map[tokens.Tier]*variables.Graph

// Runner executes pipeline stages against a snapshot source.
type Runner struct {
	Source Source
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(src Source, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(nopWriter{})
	}
	return &Runner{Source: src, Logger: logger}
}

// Execute acquires, resolves, and writes all three tiers. Documents are
// only written once every tier has resolved.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	snaps, err := r.Acquire(ctx, opts)
	if err != nil {
		return nil, err
	}
	acquireTime := time.Since(start)

	result, err := r.Resolve(ctx, snaps, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.AcquireTime = acquireTime

	if err := r.Write(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// Acquire fetches every tier's snapshot concurrently. The first failure
// cancels the remaining requests and is returned; no partial set is ever
// handed back.
func (r *Runner) Acquire(ctx context.Context, opts Options) (Snapshots, error) {
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "no snapshot source")
	}

	graphs := make([]*variables.Graph, len(tokens.Tiers))
	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range tokens.Tiers {
		i, tier := i, tier
		req := Request{Tier: tier, FileKey: opts.Files.For(tier), Refresh: opts.Refresh}
		g.Go(func() error {
			hooks := observability.Pipeline()
			hooks.OnAcquireStart(gctx, string(tier), r.Source.Name())
			start := time.Now()

			graph, err := r.Source.Acquire(gctx, req)
			size := 0
			if graph != nil {
				size = len(graph.Variables)
			}
			hooks.OnAcquireComplete(gctx, string(tier), size, time.Since(start), err)
			if err != nil {
				return fmt.Errorf("acquire %s: %w", tier, err)
			}

			r.Logger.Debug("acquired snapshot", "tier", tier, "collections", len(graph.Collections), "variables", size)
			graphs[i] = graph
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snaps := make(Snapshots, len(graphs))
	for i, tier := range tokens.Tiers {
		snaps[tier] = graphs[i]
	}
	return snaps, nil
}

// Resolve builds the tiers in order. Primitives feed semantic; both feed
// product. A fatal tier error (a DUPLICATE_PATH under the error policy)
// aborts the run.
func (r *Runner) Resolve(ctx context.Context, snaps Snapshots, opts Options) (*Result, error) {
	if opts.Policy == "" {
		opts.Policy = tokens.PolicyOverwrite
	}
	for _, tier := range tokens.Tiers {
		if snaps[tier] == nil {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "missing %s snapshot", tier)
		}
	}

	start := time.Now()
	topts := tokens.Options{Policy: opts.Policy}
	result := &Result{}

	var upstream tokens.KeyMap
	for _, tier := range tokens.Tiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hooks := observability.Pipeline()
		hooks.OnTierStart(ctx, string(tier))
		tierStart := time.Now()

		graph := snaps[tier]
		var (
			res *tokens.Result
			err error
		)
		switch tier {
		case tokens.TierPrimitives:
			res, err = tokens.BuildPrimitives(graph, topts)
		case tokens.TierSemantic:
			res, err = tokens.BuildSemantic(graph, upstream, topts)
		case tokens.TierProduct:
			res, err = tokens.BuildProduct(graph, upstream, topts)
		}
		elapsed := time.Since(tierStart)
		if err != nil {
			hooks.OnTierComplete(ctx, string(tier), 0, 0, elapsed, err)
			return nil, fmt.Errorf("resolve %s: %w", tier, err)
		}

		stats := statsOf(graph, res, elapsed)
		hooks.OnTierComplete(ctx, string(tier), stats.Tokens, stats.Unresolved+stats.Cycles, elapsed, nil)
		r.report(res, stats)

		result.Tiers = append(result.Tiers, res)
		result.Stats.Tiers = append(result.Stats.Tiers, stats)
		upstream = upstream.Merge(res.Keys)
	}

	result.Stats.ResolveTime = time.Since(start)
	return result, nil
}

func statsOf(g *variables.Graph, res *tokens.Result, d time.Duration) TierStats {
	return TierStats{
		Tier:        res.Tier,
		Variables:   len(g.Variables),
		Collections: len(res.Tree.Root()),
		Skipped:     res.Filtered.Len(),
		Tokens:      res.Tree.Len(),
		Unresolved:  res.Count(errors.ErrCodeUnresolvedReference),
		Cycles:      res.Count(errors.ErrCodeCycleDetected),
		Conflicts:   len(res.Tree.Conflicts()),
		Duration:    d,
	}
}

func (r *Runner) report(res *tokens.Result, s TierStats) {
	for _, skip := range res.Filtered.Skipped {
		r.Logger.Debug("skipped collection", "tier", res.Tier, "collection", skip.Collection, "reason", skip.Reason)
	}
	if s.Skipped > 0 {
		r.Logger.Info("filtered collections", "tier", res.Tier, "skipped", s.Skipped)
	}

	for _, d := range res.Diagnostics {
		r.Logger.Debug("unresolved", "tier", res.Tier, "detail", d.String())
	}
	if s.Unresolved > 0 || s.Cycles > 0 {
		r.Logger.Warn("unresolved references", "tier", res.Tier, "missing", s.Unresolved, "cycles", s.Cycles)
	}

	for _, c := range res.Tree.Conflicts() {
		r.Logger.Warn("duplicate token path", "tier", res.Tier, "path", c.String())
	}

	r.Logger.Info("resolved tier",
		"tier", res.Tier,
		"collections", s.Collections,
		"tokens", s.Tokens,
		"duration", s.Duration.Round(time.Millisecond))
}

// Write encodes every resolved tier into opts.OutputDir. Documents are
// encoded in memory first so an encoding failure leaves the directory
// untouched.
func (r *Runner) Write(ctx context.Context, result *Result, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	start := time.Now()

	docs := make([][]byte, len(result.Tiers))
	for i, res := range result.Tiers {
		var buf bytes.Buffer
		if err := io.WriteTokens(res.Tree, &buf); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", res.Tier)
		}
		docs[i] = buf.Bytes()
	}

	result.Paths = result.Paths[:0]
	for i, res := range result.Tiers {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := opts.DocumentPath(res.Tier)
		err := io.ExportBytes(docs[i], path)
		observability.Pipeline().OnWrite(ctx, string(res.Tier), path, len(docs[i]), err)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		r.Logger.Info("wrote tokens", "tier", res.Tier, "path", path, "tokens", res.Tree.Len())
		result.Paths = append(result.Paths, path)
	}

	result.Stats.WriteTime = time.Since(start)
	return nil
}

// Fetch stores every tier's raw snapshot under dir for later offline
// imports. Snapshots are fetched concurrently and written only after all
// of them arrived.
func (r *Runner) Fetch(ctx context.Context, opts Options, dir string) ([]string, error) {
	raw, ok := r.Source.(RawSource)
	if !ok {
		return nil, errors.New(errors.ErrCodeConfiguration, "source %s cannot provide raw snapshots", r.Source.Name())
	}

	bodies := make([][]byte, len(tokens.Tiers))
	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range tokens.Tiers {
		i, tier := i, tier
		req := Request{Tier: tier, FileKey: opts.Files.For(tier), Refresh: opts.Refresh}
		g.Go(func() error {
			hooks := observability.Pipeline()
			hooks.OnAcquireStart(gctx, string(tier), raw.Name())
			start := time.Now()
			body, err := raw.AcquireRaw(gctx, req)
			hooks.OnAcquireComplete(gctx, string(tier), len(body), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", tier, err)
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(bodies))
	for i, tier := range tokens.Tiers {
		path := io.SnapshotPath(dir, string(tier))
		if err := io.ExportSnapshot(bodies[i], path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		r.Logger.Info("saved snapshot", "tier", tier, "path", path, "bytes", len(bodies[i]))
		paths = append(paths, path)
	}
	return paths, nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
