package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/tokens"
)

// isolate blanks every environment variable Load reads. Viper treats empty
// variables as unset.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(TokenEnv, "")
	for _, key := range []string{
		"FILES_PRIMITIVES", "FILES_SEMANTIC", "FILES_PRODUCT", "PRODUCT_NAME",
		"OUTPUT_DIR", "API_URL", "CONFLICT_POLICY", "CACHE_BACKEND", "CACHE_TTL",
		"CACHE_REDIS_URL", "CACHE_PREFIX", "TOKEN",
	} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Files.Primitives != "nFZZKbwZjwWtGhcto3Bew4" || cfg.Files.Semantic != "X9TzGj6LUcQo65RXeV6GHL" || cfg.Files.Product != "IZiHUj1t0VIuw3UOroUhgF" {
		t.Errorf("default files = %+v", cfg.Files)
	}
	if cfg.ProductName != "etx" || cfg.OutputDir != "tokens" {
		t.Errorf("product/output = %q, %q", cfg.ProductName, cfg.OutputDir)
	}
	if p, _ := cfg.Policy(); p != tokens.PolicyOverwrite {
		t.Errorf("default policy = %q", p)
	}
	if ttl, _ := cfg.CacheTTL(); ttl != time.Hour {
		t.Errorf("default ttl = %v", ttl)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, path, err := Load(LoadOptions{Dir: t.TempDir(), UserDir: "-"})
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("path = %q, want none", path)
	}
	if cfg.ProductName != "etx" || cfg.Cache.Backend != "file" {
		t.Errorf("cfg = %+v", cfg)
	}
	if err := cfg.RequireToken(); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("RequireToken() = %v, want CONFIGURATION", err)
	}
}

func TestLoadProjectFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	content := `product_name = "acme"
conflict_policy = "warn"

[files]
product = "AbC123"

[cache]
backend = "none"
ttl = "10m"
`
	if err := os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Load(LoadOptions{Dir: dir, UserDir: "-"})
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, ProjectFileName) {
		t.Errorf("path = %q", path)
	}
	if cfg.ProductName != "acme" || cfg.Files.Product != "AbC123" || cfg.ConflictPolicy != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Files.Primitives != DefaultPrimitivesFile {
		t.Error("keys missing from the file should keep their defaults")
	}
	if ttl, _ := cfg.CacheTTL(); ttl != 10*time.Minute {
		t.Errorf("ttl = %v", ttl)
	}
}

func TestLoadUserFile(t *testing.T) {
	isolate(t)
	user := t.TempDir()
	if err := os.WriteFile(filepath.Join(user, "config.toml"), []byte(`output_dir = "out"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Load(LoadOptions{Dir: t.TempDir(), UserDir: user})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "out" || !strings.HasSuffix(path, "config.toml") {
		t.Errorf("cfg.OutputDir = %q, path = %q", cfg.OutputDir, path)
	}
}

func TestLoadEnvAndOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(TokenEnv, "figd_secret")
	t.Setenv("KDS_TOKENS_CACHE_BACKEND", "none")
	t.Setenv("KDS_TOKENS_PRODUCT_NAME", "fromenv")

	cfg, _, err := Load(LoadOptions{
		Dir:       t.TempDir(),
		UserDir:   "-",
		Overrides: map[string]any{"product_name": "fromflag"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "figd_secret" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q, want env value", cfg.Cache.Backend)
	}
	if cfg.ProductName != "fromflag" {
		t.Errorf("ProductName = %q, want override to beat env", cfg.ProductName)
	}
	if err := cfg.RequireToken(); err != nil {
		t.Errorf("RequireToken() = %v", err)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolate(t)
	_, _, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Load() error = %v, want CONFIGURATION", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	_ = os.WriteFile(path, []byte("product_name = = ="), 0o644)

	if _, _, err := Load(LoadOptions{ConfigFile: path}); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Load() error = %v, want CONFIGURATION", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty file key", func(c *Config) { c.Files.Semantic = "" }},
		{"bad file key", func(c *Config) { c.Files.Product = "../x" }},
		{"product name with slash", func(c *Config) { c.ProductName = "a/b" }},
		{"empty output dir", func(c *Config) { c.OutputDir = " " }},
		{"bad api url", func(c *Config) { c.APIURL = "ftp://figma" }},
		{"unknown policy", func(c *Config) { c.ConflictPolicy = "merge" }},
		{"bad ttl", func(c *Config) { c.Cache.TTL = "soon" }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = "-1h" }},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without url", func(c *Config) { c.Cache.Backend = "redis" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Cache.Backend = "redis"
	cfg.Cache.RedisURL = "redis://localhost:6379/0"
	if err := cfg.Validate(); err != nil {
		t.Errorf("redis with url should validate: %v", err)
	}
}

func TestEncodeOmitsToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Token = "figd_secret"

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "figd_secret") {
		t.Error("encoded config must not contain the token")
	}
	for _, want := range []string{`product_name = "etx"`, "[files]", `primitives = "nFZZKbwZjwWtGhcto3Bew4"`, "[cache]"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded config missing %q:\n%s", want, out)
		}
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ProjectFileName)

	want := DefaultConfig()
	want.ProductName = "acme"
	if err := WriteFile(path, want, false); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, want, false); err == nil {
		t.Error("WriteFile() should refuse to overwrite without force")
	}
	if err := WriteFile(path, want, true); err != nil {
		t.Errorf("WriteFile(force) = %v", err)
	}

	got, _, err := Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatal(err)
	}
	if got.ProductName != "acme" || got.Files != want.Files || got.Cache != want.Cache {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
