// Package config loads YAML defaults for the docmerge CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docmerge/internal/fileutil"
	"github.com/alnah/go-docmerge/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config value")
)

// Bounds for numeric config values.
const (
	MaxRetryCap  = 10 // wrong-password attempts per document
	MaxWorkers   = 32 // concurrent LibreOffice processes
	MaxStartPage = 3999
)

// Config holds all configuration for merge runs started from the CLI.
// Flags override config values; config values override built-in defaults.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Merge  MergeConfig  `yaml:"merge"`
	Render RenderConfig `yaml:"render"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = working directory)
}

// MergeConfig defines default merge options.
type MergeConfig struct {
	GenerateTOC    bool   `yaml:"generateToc"`
	AddPageNumbers bool   `yaml:"addPageNumbers"`
	NumberFormat   string `yaml:"numberFormat"` // "arabic", "roman"
	StartPage      int    `yaml:"startPage"`    // displayed number of the first content page
	OnError        string `yaml:"onError"`      // "skip", "abort"
	RetryCap       int    `yaml:"retryCap"`     // wrong-password attempts per document
}

// RenderConfig defines Word rendering options.
type RenderConfig struct {
	Binary  string `yaml:"binary"`  // LibreOffice binary path (empty = search PATH)
	Workers int    `yaml:"workers"` // renderer pool size (0 = auto)
}

// DefaultConfig returns a plain-concatenation configuration.
func DefaultConfig() *Config {
	return &Config{
		Merge: MergeConfig{
			NumberFormat: "arabic",
			StartPage:    1,
			OnError:      "skip",
			RetryCap:     3,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate bounds-checks config values. Called automatically by LoadConfig,
// but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Merge.NumberFormat) {
	case "arabic", "roman":
	default:
		return fmt.Errorf("%w: merge.numberFormat %q (must be arabic or roman)", ErrConfigInvalid, c.Merge.NumberFormat)
	}

	switch strings.ToLower(c.Merge.OnError) {
	case "skip", "abort":
	default:
		return fmt.Errorf("%w: merge.onError %q (must be skip or abort)", ErrConfigInvalid, c.Merge.OnError)
	}

	if c.Merge.StartPage < 1 || c.Merge.StartPage > MaxStartPage {
		return fmt.Errorf("%w: merge.startPage %d (must be 1..%d)", ErrConfigInvalid, c.Merge.StartPage, MaxStartPage)
	}
	if c.Merge.RetryCap < 1 || c.Merge.RetryCap > MaxRetryCap {
		return fmt.Errorf("%w: merge.retryCap %d (must be 1..%d)", ErrConfigInvalid, c.Merge.RetryCap, MaxRetryCap)
	}
	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers %d (must be 0..%d)", ErrConfigInvalid, c.Render.Workers, MaxWorkers)
	}
	return nil
}

// resolveConfigPath searches for a named config in standard locations:
// ./<name>.yaml, then $XDG_CONFIG_HOME/docmerge/<name>.yaml (or
// ~/.config/docmerge/<name>.yaml).
func resolveConfigPath(name string) (string, error) {
	candidates := []string{name + ".yaml", name + ".yml"}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config")
		}
	}
	if configDir != "" {
		candidates = append(candidates,
			filepath.Join(configDir, "docmerge", name+".yaml"),
			filepath.Join(configDir, "docmerge", name+".yml"),
		)
	}

	for _, candidate := range candidates {
		if fileutil.FileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s (searched %v)", ErrConfigNotFound, name, candidates)
}
