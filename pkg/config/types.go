package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kiliansala/kds-ai-tokens/pkg/cache"
	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/tokens"
)

// Default Figma file keys of the three tiers.
const (
	DefaultPrimitivesFile = "nFZZKbwZjwWtGhcto3Bew4"
	DefaultSemanticFile   = "X9TzGj6LUcQo65RXeV6GHL"
	DefaultProductFile    = "IZiHUj1t0VIuw3UOroUhgF"
)

// Config is the effective configuration of a run.
type Config struct {
	// Token is the Figma personal access token. It is read from the
	// environment only and never written to a config file.
	Token string `mapstructure:"token" toml:"-"`

	Files          Files       `mapstructure:"files" toml:"files"`
	ProductName    string      `mapstructure:"product_name" toml:"product_name"`
	OutputDir      string      `mapstructure:"output_dir" toml:"output_dir"`
	APIURL         string      `mapstructure:"api_url" toml:"api_url"`
	ConflictPolicy string      `mapstructure:"conflict_policy" toml:"conflict_policy"`
	Cache          CacheConfig `mapstructure:"cache" toml:"cache"`
}

// Files holds the Figma file key of each tier.
type Files struct {
	Primitives string `mapstructure:"primitives" toml:"primitives"`
	Semantic   string `mapstructure:"semantic" toml:"semantic"`
	Product    string `mapstructure:"product" toml:"product"`
}

// CacheConfig selects the snapshot cache.
type CacheConfig struct {
	Backend  string `mapstructure:"backend" toml:"backend"`
	TTL      string `mapstructure:"ttl" toml:"ttl"`
	RedisURL string `mapstructure:"redis_url" toml:"redis_url,omitempty"`
	Prefix   string `mapstructure:"prefix" toml:"prefix,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Files: Files{
			Primitives: DefaultPrimitivesFile,
			Semantic:   DefaultSemanticFile,
			Product:    DefaultProductFile,
		},
		ProductName:    "etx",
		OutputDir:      "tokens",
		APIURL:         "https://api.figma.com/v1",
		ConflictPolicy: string(tokens.PolicyOverwrite),
		Cache: CacheConfig{
			Backend: string(cache.BackendFile),
			TTL:     cache.TTLSnapshot.String(),
			Prefix:  "kds:",
		},
	}
}

// Policy returns the parsed conflict policy.
func (c *Config) Policy() (tokens.ConflictPolicy, error) {
	return tokens.ParseConflictPolicy(c.ConflictPolicy)
}

// CacheTTL returns the parsed cache TTL. An empty value means no expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	if strings.TrimSpace(c.Cache.TTL) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeConfiguration, err, "invalid cache.ttl %q", c.Cache.TTL)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeConfiguration, "cache.ttl cannot be negative")
	}
	return d, nil
}

// Validate checks every setting that does not need network access. The
// token is not checked here; commands that fetch require it separately.
func (c *Config) Validate() error {
	for _, f := range []struct{ name, key string }{
		{"files.primitives", c.Files.Primitives},
		{"files.semantic", c.Files.Semantic},
		{"files.product", c.Files.Product},
	} {
		if err := errors.ValidateFileKey(f.key); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	if err := errors.ValidateOutputName(c.ProductName); err != nil {
		return fmt.Errorf("product_name: %w", err)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New(errors.ErrCodeConfiguration, "output_dir cannot be empty")
	}
	if err := errors.ValidateURL(c.APIURL); err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("conflict_policy: %w", err)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	switch cache.Backend(c.Cache.Backend) {
	case cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeConfiguration, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeConfiguration, "unknown cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	return nil
}

// RequireToken reports a configuration error when no access token is set.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.Token) == "" {
		return errors.New(errors.ErrCodeConfiguration, "FIGMA_ACCESS_TOKEN environment variable is required")
	}
	return nil
}
