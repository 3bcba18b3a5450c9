// Package config loads ccq configuration and probes the process environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Output formats accepted by [output] format.
const (
	FormatTable = "table"
	FormatTSV   = "tsv"
)

// Config holds all ccq configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Output  OutputConfig  `toml:"output"`
	History HistoryConfig `toml:"history"`
}

// GeneralConfig holds discovery preferences.
type GeneralConfig struct {
	ClaudeDir string `toml:"claude_dir,omitempty"`
	Workers   int    `toml:"workers,omitempty"`
}

// OutputConfig controls one-shot query output.
type OutputConfig struct {
	Format string `toml:"format"`
}

// HistoryConfig controls interactive shell history.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Limit   int    `toml:"limit"`
	Path    string `toml:"path,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Format: FormatTable,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   1000,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccq")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccq")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// StateDir returns the XDG-compliant state directory used for shell history.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccq")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "ccq")
}

// HistoryPath returns the history database path, honoring [history] path.
func HistoryPath(cfg Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return filepath.Join(StateDir(), "history.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.Output.Format {
	case FormatTable, FormatTSV:
	case "":
		cfg.Output.Format = FormatTable
	default:
		return cfg, fmt.Errorf("parsing config: unknown output format %q", cfg.Output.Format)
	}

	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
