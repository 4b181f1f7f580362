// Package config loads and validates conversion configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ebooklib/go-html2md/internal/fileutil"
	"github.com/ebooklib/go-html2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Limits guarding obviously broken values.
const (
	MaxWorkers           = 64
	MaxUnwrapSpanClasses = 50
)

// Config holds all configuration for a conversion run.
type Config struct {
	Pandoc  PandocConfig  `yaml:"pandoc"`
	Convert ConvertConfig `yaml:"convert"`
	Split   SplitConfig   `yaml:"split"`
	Output  OutputConfig  `yaml:"output"`
	Workers int           `yaml:"workers"` // 0 = auto-size from CPU count
}

// PandocConfig locates the pandoc executable.
type PandocConfig struct {
	Path string `yaml:"path"` // Empty = look up "pandoc" on PATH
}

// ConvertConfig tunes the rewriting and cleanup stages.
type ConvertConfig struct {
	UnwrapSpans     []string `yaml:"unwrapSpans"`     // Span classes to unwrap
	MediaFolder     string   `yaml:"mediaFolder"`     // Image directory name (default "assets")
	Postprocess     *bool    `yaml:"postprocess"`     // nil = enabled
	LanguageAliases bool     `yaml:"languageAliases"` // Canonicalize code block languages
}

// SplitConfig cuts the rendered markdown into per-section files.
type SplitConfig struct {
	Pattern string `yaml:"pattern"` // Regexp matched against lines; empty = no split
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source file
}

// PostprocessEnabled resolves the optional postprocess toggle.
func (c *ConvertConfig) PostprocessEnabled() bool {
	return c.Postprocess == nil || *c.Postprocess
}

// SplitPattern compiles the configured split pattern, nil when unset.
func (c *SplitConfig) SplitPattern() (*regexp.Regexp, error) {
	if c.Pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, fmt.Errorf("split.pattern: %w", err)
	}
	return re, nil
}

// Validate checks value ranges and that patterns compile.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers: must be between 0 and %d, got %d", MaxWorkers, c.Workers)
	}
	if len(c.Convert.UnwrapSpans) > MaxUnwrapSpanClasses {
		return fmt.Errorf("convert.unwrapSpans: too many classes (%d, max %d)",
			len(c.Convert.UnwrapSpans), MaxUnwrapSpanClasses)
	}
	for i, class := range c.Convert.UnwrapSpans {
		if strings.TrimSpace(class) == "" {
			return fmt.Errorf("convert.unwrapSpans[%d]: class cannot be blank", i)
		}
	}
	if _, err := c.Split.SplitPattern(); err != nil {
		return err
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found.
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

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations. Tries extensions in order: .yaml, .yml.
// Tries locations in order: current directory, ~/.config/go-html2md/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-html2md", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
