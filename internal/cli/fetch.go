package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kiliansala/kds-ai-tokens/pkg/pipeline"
)

// defaultSnapshotDir is where fetch stores snapshots.
const defaultSnapshotDir = "snapshots"

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		opts importOpts
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Save raw variable snapshots for offline imports",
		Long: `Download the variables of all three Figma files and store them verbatim,
one file per tier, for "kds-tokens import --snapshots".

Examples:
  kds-tokens fetch                     # Writes ./snapshots/<tier>.variables.json
  kds-tokens fetch --dir testdata      # Custom directory
  kds-tokens fetch --refresh           # Ignore cached snapshots`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), &opts, dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", defaultSnapshotDir, "directory to store snapshots in")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the snapshot cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the snapshot cache")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, opts *importOpts, dir string) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(nil)
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

	spinner := c.startSpinner(ctx, "Fetching variables...")
	paths, err := pipeline.NewRunner(src, logger).Fetch(ctx, popts, dir)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Saved %d snapshots", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	printNextStep("Import them with", "kds-tokens import --snapshots "+dir)
	return nil
}
