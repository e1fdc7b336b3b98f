// Package cli implements the kds-tokens command-line interface.
//
// # Commands
//
//   - import: resolve the three Figma tiers into token documents
//   - fetch: store raw variable snapshots for offline imports
//   - cache: inspect and clear the snapshot cache
//   - config: show or create the configuration file
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces HTTP requests, cache lookups, and pipeline stages.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kiliansala/kds-ai-tokens/pkg/buildinfo"
	"github.com/kiliansala/kds-ai-tokens/pkg/cache"
	"github.com/kiliansala/kds-ai-tokens/pkg/config"
	"github.com/kiliansala/kds-ai-tokens/pkg/integrations/figma"
	"github.com/kiliansala/kds-ai-tokens/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "kds-tokens"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the
// observability hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		h := newLogHooks(c.Logger)
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetHTTPHooks(h)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "kds-tokens turns Figma variables into design tokens",
		Long: `kds-tokens reads the variables of three Figma files (primitives, semantic,
product) and writes them as W3C design token documents, resolving aliases
across the files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "config file (default: ./"+config.ProjectFileName+")")

	root.AddCommand(c.importCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the effective configuration and applies overrides
// collected from command flags.
func (c *CLI) loadConfig(overrides map[string]any) (*config.Config, error) {
	cfg, path, err := config.Load(config.LoadOptions{
		ConfigFile: c.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// =============================================================================
// Cache and Client Factory
// =============================================================================

// openCache opens the configured snapshot cache. noCache forces the null
// backend.
func openCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	backend := cache.Backend(cfg.Cache.Backend)
	if noCache {
		backend = cache.BackendNone
	}
	opts := cache.Options{Backend: backend, RedisURL: cfg.Cache.RedisURL}
	if backend == cache.BackendFile || backend == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// newFigmaClient builds an API client on top of backend.
func newFigmaClient(cfg *config.Config, backend cache.Cache) (*figma.Client, error) {
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}
	client, err := figma.NewClient(cfg.Token, backend, ttl)
	if err != nil {
		return nil, err
	}
	return client.
		WithBaseURL(cfg.APIURL).
		WithKeyer(cache.NewScopedKeyer(nil, cfg.Cache.Prefix)), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/kds-tokens/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home dir: %w", err)
	}
	return filepath.Join(home, ".cache", appName), nil
}
