package config

import (
	"strings"

	"github.com/sdejongh/slugnorris/pkg/models"
	"github.com/sdejongh/slugnorris/pkg/rename"
)

// Config represents the application configuration
type Config struct {
	Rename  RenameConfig  `yaml:"rename"`
	Ignore  IgnoreConfig  `yaml:"ignore"`
	Limits  LimitsConfig  `yaml:"limits"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenameConfig holds slugging rules
type RenameConfig struct {
	Extensions           []string          `yaml:"extensions"`
	ExtensionMap         map[string]string `yaml:"extension_map"`
	UnderscoreExtensions []string          `yaml:"underscore_extensions"`
	Prefixes             []string          `yaml:"prefixes"`
	Suffixes             []string          `yaml:"suffixes"`
	SafeChars            string            `yaml:"safe_chars"`
	MaxLength            int               `yaml:"max_length"` // 0 = unlimited
	NumDigits            int               `yaml:"num_digits"` // 0 = keep numbers as they are
}

// IgnoreConfig holds the entries skipped by every run
type IgnoreConfig struct {
	Stems      []string `yaml:"stems"`
	Extensions []string `yaml:"extensions"`
	Globs      []string `yaml:"globs"`
}

// LimitsConfig holds path length limits
type LimitsConfig struct {
	Warn  int `yaml:"warn"`
	Error int `yaml:"error"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar on terminals
	Quiet    bool   `yaml:"quiet"`    // Failures only
	Verbose  bool   `yaml:"verbose"`  // Also unchanged and ignored entries
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "console"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Rename: RenameConfig{
			Extensions:           []string{".cmd", ".ipynb", ".md", ".ps1", ".R", ".Rmd", ".rst", ".yaml", ".yml"},
			ExtensionMap:         map[string]string{".yml": ".yaml"},
			UnderscoreExtensions: []string{".py"},
			Prefixes:             []string{"_", "."},
			Suffixes:             []string{"_"},
			SafeChars:            ".",
		},
		Ignore: IgnoreConfig{
			Stems:      []string{"__pycache__", ".DS_Store", ".git", "LICENSE", "README"},
			Extensions: []string{},
			Globs:      []string{},
		},
		Output: OutputConfig{
			Format: "human",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "json",
			Level:   "info",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Rename.MaxLength < 0 {
		return &models.ValidationError{
			Field:   "rename.max_length",
			Message: "cannot be negative",
		}
	}

	if c.Rename.NumDigits < 0 || c.Rename.NumDigits > 18 {
		return &models.ValidationError{
			Field:   "rename.num_digits",
			Message: "must be between 0 and 18",
		}
	}

	for from, to := range c.Rename.ExtensionMap {
		if !strings.HasPrefix(from, ".") || !strings.HasPrefix(to, ".") {
			return &models.ValidationError{
				Field:   "rename.extension_map",
				Message: "extensions must start with a period: " + from + " -> " + to,
			}
		}
	}

	if c.Limits.Warn < 0 || c.Limits.Error < 0 {
		return &models.ValidationError{
			Field:   "limits",
			Message: "limits cannot be negative",
		}
	}

	if pattern, ok := rename.ValidateGlobs(c.Ignore.Globs); !ok {
		return &models.ValidationError{
			Field:   "ignore.globs",
			Message: "invalid pattern: " + pattern,
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	if c.Output.Quiet && c.Output.Verbose {
		return &models.ValidationError{
			Field:   "output",
			Message: "quiet and verbose are mutually exclusive",
		}
	}

	validLogFormats := map[string]bool{"json": true, "console": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'console'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}

// Operation builds the rename operation for root from the configuration.
// The caller fills the run identity and per-invocation switches.
func (c *Config) Operation(root string) *models.RenameOperation {
	extMap := make(map[string]string, len(c.Rename.ExtensionMap))
	for from, to := range c.Rename.ExtensionMap {
		extMap[from] = to
	}

	return &models.RenameOperation{
		Root:                 root,
		Extensions:           append([]string(nil), c.Rename.Extensions...),
		ExtensionMap:         extMap,
		UnderscoreExtensions: append([]string(nil), c.Rename.UnderscoreExtensions...),
		Prefixes:             append([]string(nil), c.Rename.Prefixes...),
		Suffixes:             append([]string(nil), c.Rename.Suffixes...),
		SafeChars:            c.Rename.SafeChars,
		IgnoreStems:          append([]string(nil), c.Ignore.Stems...),
		IgnoreExtensions:     append([]string(nil), c.Ignore.Extensions...),
		IgnoreGlobs:          append([]string(nil), c.Ignore.Globs...),
		MaxLength:            c.Rename.MaxLength,
		NumDigits:            c.Rename.NumDigits,
		WarnLimit:            c.Limits.Warn,
		ErrorLimit:           c.Limits.Error,
	}
}
