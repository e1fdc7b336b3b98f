package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
)

const fileHeader = `# kds-tokens configuration.
# The Figma access token is read from FIGMA_ACCESS_TOKEN and never stored here.

`

// Encode writes cfg as TOML. The token is never included.
func Encode(w io.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// WriteFile writes cfg to path as a commented TOML file, creating parent
// directories. An existing file is only replaced when force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force && fileExists(path) {
		return errors.New(errors.ErrCodeConfiguration, "%s already exists (use --force to overwrite)", path)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := Encode(&buf, cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
