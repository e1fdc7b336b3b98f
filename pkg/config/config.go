// Package config loads importer settings with Viper.
//
// Sources are layered, later ones winning:
//
//  1. built-in defaults ([DefaultConfig])
//  2. a TOML config file: --config, else ./kds-tokens.toml, else
//     $XDG_CONFIG_HOME/kds-tokens/config.toml
//  3. environment: FIGMA_ACCESS_TOKEN, and KDS_TOKENS_<KEY> with dots
//     replaced by underscores (KDS_TOKENS_CACHE_BACKEND=none)
//  4. command-line flags, passed in as [LoadOptions.Overrides]
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
)

const (
	// AppName names the per-user config directory.
	AppName = "kds-tokens"

	// ProjectFileName is looked up in the working directory.
	ProjectFileName = "kds-tokens.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "KDS_TOKENS"

	// TokenEnv holds the Figma access token.
	TokenEnv = "FIGMA_ACCESS_TOKEN"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFile is an explicit config path; it must exist.
	ConfigFile string

	// Dir is searched for ProjectFileName. Empty means the working directory.
	Dir string

	// UserDir replaces the per-user config directory. Empty means
	// [UserConfigDir]; "-" disables the lookup.
	UserDir string

	// Overrides are applied last, keyed like the config file
	// ("cache.backend").
	Overrides map[string]any
}

// UserConfigDir returns $XDG_CONFIG_HOME/kds-tokens or the platform
// equivalent.
func UserConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Load builds the effective configuration. It returns the path of the
// config file that was read, or "" when defaults and environment were
// enough.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("token", TokenEnv); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "bind %s", TokenEnv)
	}

	path, err := findConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeConfiguration, err, "read config %s", path)
		}
	}

	for key, val := range opts.Overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeConfiguration, err, "parse config")
	}
	return &cfg, path, nil
}

// setDefaults registers every key so AutomaticEnv can see it during
// Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("token", "")
	v.SetDefault("files.primitives", d.Files.Primitives)
	v.SetDefault("files.semantic", d.Files.Semantic)
	v.SetDefault("files.product", d.Files.Product)
	v.SetDefault("product_name", d.ProductName)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("conflict_policy", d.ConflictPolicy)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.prefix", d.Cache.Prefix)
}

func findConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return "", errors.New(errors.ErrCodeConfiguration, "config file not found: %s", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}

	local := filepath.Join(opts.Dir, ProjectFileName)
	if fileExists(local) {
		return local, nil
	}

	if opts.UserDir == "-" {
		return "", nil
	}
	dir := opts.UserDir
	if dir == "" {
		d, err := UserConfigDir()
		if err != nil {
			// No home directory; fall back to defaults.
			return "", nil
		}
		dir = d
	}
	if user := filepath.Join(dir, "config.toml"); fileExists(user) {
		return user, nil
	}
	return "", nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
