package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kiliansala/kds-ai-tokens/pkg/config"
	"github.com/kiliansala/kds-ai-tokens/pkg/pipeline"
)

// importOpts holds the command-line flags shared by import and fetch.
type importOpts struct {
	snapshots string // read snapshots from this directory instead of Figma
	output    string // output directory
	product   string // product document name
	policy    string // conflict policy
	refresh   bool   // bypass snapshot cache
	noCache   bool   // disable the snapshot cache entirely
}

// overrides maps the flags that were set onto config keys.
func (o *importOpts) overrides(cmd *cobra.Command) map[string]any {
	m := map[string]any{}
	if cmd.Flags().Changed("out") {
		m["output_dir"] = o.output
	}
	if cmd.Flags().Changed("product") {
		m["product_name"] = o.product
	}
	if cmd.Flags().Changed("policy") {
		m["conflict_policy"] = o.policy
	}
	return m
}

// pipelineOptions converts the effective configuration into run options.
func pipelineOptions(cfg *config.Config, refresh bool) (pipeline.Options, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Files: pipeline.Files{
			Primitives: cfg.Files.Primitives,
			Semantic:   cfg.Files.Semantic,
			Product:    cfg.Files.Product,
		},
		ProductName: cfg.ProductName,
		OutputDir:   cfg.OutputDir,
		Policy:      policy,
		Refresh:     refresh,
	}, nil
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Resolve Figma variables into token documents",
		Long: `Fetch the primitives, semantic, and product variable snapshots and write
one W3C design token document per tier.

Examples:
  kds-tokens import                          # Fetch from Figma (needs FIGMA_ACCESS_TOKEN)
  kds-tokens import --out build/tokens       # Custom output directory
  kds-tokens import --snapshots ./snapshots  # Offline, from "kds-tokens fetch" output
  kds-tokens import --policy error           # Fail on duplicate token paths`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.snapshots, "snapshots", "", "read snapshots from a directory instead of Figma")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output directory (default from config: tokens)")
	cmd.Flags().StringVar(&opts.product, "product", "", "product document name (default from config: etx)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "duplicate path policy: overwrite, warn, error")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the snapshot cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the snapshot cache")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, cmd *cobra.Command, opts *importOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(opts.overrides(cmd))
	if err != nil {
		return err
	}
	popts, err := pipelineOptions(cfg, opts.refresh)
	if err != nil {
		return err
	}

	src, closeSrc, err := c.newSource(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer closeSrc()

	runner := pipeline.NewRunner(src, logger)
	prog := newProgress(logger)

	spinner := c.startSpinner(ctx, "Fetching variables...")
	snaps, err := runner.Acquire(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	result, err := runner.Resolve(ctx, snaps, popts)
	if err != nil {
		return err
	}
	if err := runner.Write(ctx, result, popts); err != nil {
		return err
	}

	total := 0
	for _, s := range result.Stats.Tiers {
		total += s.Tokens
	}
	prog.done(fmt.Sprintf("Imported %d tokens", total))

	printSuccess("Wrote %d token documents", len(result.Paths))
	for i, path := range result.Paths {
		printFile(path)
		printTierStats(result.Stats.Tiers[i])
	}
	return nil
}

// newSource picks the snapshot source: a directory when --snapshots is set,
// otherwise the Figma API behind the configured cache.
func (c *CLI) newSource(ctx context.Context, cfg *config.Config, opts *importOpts) (pipeline.Source, func(), error) {
	if opts.snapshots != "" {
		return pipeline.NewDirSource(opts.snapshots), func() {}, nil
	}

	backend, err := openCache(ctx, cfg, opts.noCache)
	if err != nil {
		return nil, nil, err
	}
	client, err := newFigmaClient(cfg, backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return pipeline.NewFigmaSource(client), func() { backend.Close() }, nil
}

// startSpinner shows a spinner unless debug logs would interleave with it.
func (c *CLI) startSpinner(ctx context.Context, msg string) interface{ Stop() } {
	if c.Logger.GetLevel() <= log.DebugLevel {
		return noSpinner{}
	}
	s := newSpinnerWithContext(ctx, msg)
	s.Start()
	return s
}

type noSpinner struct{}

func (noSpinner) Stop() {}
