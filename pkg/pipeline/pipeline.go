// Package pipeline runs the import: acquire three snapshots, resolve the
// three tiers, write three token documents.
//
// This package holds the sequencing shared by the CLI commands so "import"
// and "fetch" behave the same way regardless of where snapshots come from.
//
// # Stages
//
//  1. Acquire: fetch the primitives, semantic, and product snapshots
//     concurrently from a [Source]. The first failure cancels the others and
//     aborts the run; nothing is resolved or written.
//  2. Resolve: build the tiers strictly in order. Each tier's key map feeds
//     the next one.
//  3. Write: encode each tier's tree into the output directory.
//
// # Usage
//
//	runner := pipeline.NewRunner(pipeline.NewFigmaSource(client), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Files:       pipeline.Files{Primitives: "...", Semantic: "...", Product: "..."},
//	    ProductName: "etx",
//	    OutputDir:   "tokens",
//	})
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/tokens"
)

const (
	// DefaultProductName names the product document when none is set.
	DefaultProductName = "etx"

	// DefaultOutputDir is where documents are written when none is set.
	DefaultOutputDir = "tokens"
)

// Files maps each tier to the Figma file it is read from.
type Files struct {
	Primitives string
	Semantic   string
	Product    string
}

// For returns the file key of tier.
func (f Files) For(tier tokens.Tier) string {
	switch tier {
	case tokens.TierPrimitives:
		return f.Primitives
	case tokens.TierSemantic:
		return f.Semantic
	case tokens.TierProduct:
		return f.Product
	default:
		return ""
	}
}

// Options configures a pipeline run.
type Options struct {
	Files       Files
	ProductName string // base name of the product document
	OutputDir   string
	Policy      tokens.ConflictPolicy
	Refresh     bool // bypass snapshot caches
}

// ValidateAndSetDefaults fills empty fields and rejects unusable ones.
func (o *Options) ValidateAndSetDefaults() error {
	if o.ProductName == "" {
		o.ProductName = DefaultProductName
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.Policy == "" {
		o.Policy = tokens.PolicyOverwrite
	}
	if err := errors.ValidateOutputName(o.ProductName); err != nil {
		return fmt.Errorf("product name: %w", err)
	}
	if _, err := tokens.ParseConflictPolicy(string(o.Policy)); err != nil {
		return err
	}
	return nil
}

// DocumentName returns the file name of a tier's output document.
func (o *Options) DocumentName(tier tokens.Tier) string {
	if tier == tokens.TierProduct {
		return o.ProductName + ".json"
	}
	return string(tier) + ".json"
}

// DocumentPath returns where a tier's output document is written.
func (o *Options) DocumentPath(tier tokens.Tier) string {
	return filepath.Join(o.OutputDir, o.DocumentName(tier))
}

// TierStats summarizes one resolved tier.
type TierStats struct {
	Tier        tokens.Tier
	Variables   int // variables in the snapshot
	Collections int // collections emitted
	Skipped     int // collections filtered out
	Tokens      int
	Unresolved  int
	Cycles      int
	Conflicts   int
	Duration    time.Duration
}

// Stats holds timing and counts for a run.
type Stats struct {
	AcquireTime time.Duration
	ResolveTime time.Duration
	WriteTime   time.Duration
	Tiers       []TierStats
}

// Result is the outcome of a run.
type Result struct {
	Tiers []*tokens.Result // in resolution order
	Paths []string         // documents written, in tier order
	Stats Stats
}

// Tier returns the result of the named tier.
func (r *Result) Tier(t tokens.Tier) (*tokens.Result, bool) {
	for _, tr := range r.Tiers {
		if tr.Tier == t {
			return tr, true
		}
	}
	return nil, false
}
