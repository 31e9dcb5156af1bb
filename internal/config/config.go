// Package config loads the site build configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-modernblog/internal/dateutil"
	"github.com/alnah/go-modernblog/internal/fileutil"
	"github.com/alnah/go-modernblog/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength      = 200  // Site title
	MaxDomainLength     = 253  // RFC 1035
	MaxBasePathLength   = 200  // "/ModernBlog/"
	MaxPathLength       = 4096 // Directory paths
	MaxDateFormatLength = 50   // Matches dateutil limit
	MaxStyleLength      = 255  // Style name or path
)

// MaxWorkers caps build.workers.
const MaxWorkers = 32

// Defaults applied by DefaultConfig.
const (
	DefaultSiteTitle  = "Modern Blog"
	DefaultContentDir = "content"
	DefaultImagesDir  = "public/Images"
	DefaultOutputDir  = "dist"
	DefaultStyle      = "default"
)

// Config holds all configuration for a site build.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// SiteConfig defines deployment-wide settings.
type SiteConfig struct {
	Title      string `yaml:"title"`
	Domain     string `yaml:"domain"`     // CNAME domain (empty = no CNAME)
	BasePath   string `yaml:"basePath"`   // Empty = MODERNBLOG_BASE_PATH or /ModernBlog/
	DateFormat string `yaml:"dateFormat"` // Preset or tokens, see dateutil
}

// ContentConfig defines where posts and images are read from.
type ContentConfig struct {
	Dir       string `yaml:"dir"`       // Holds the blog and signatures collections
	ImagesDir string `yaml:"imagesDir"` // Copied to <output>/Images
}

// OutputConfig defines the build destination.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// BuildConfig defines build behavior.
type BuildConfig struct {
	Workers int    `yaml:"workers"` // 0 = auto
	Style   string `yaml:"style"`   // Stylesheet name or path
	EmitAST bool   `yaml:"emitAST"` // Write <slug>.ast.json next to each page
	Drafts  bool   `yaml:"drafts"`  // Also build posts with published: false
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Theme directory (empty = embedded theme)
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.domain", c.Site.Domain, MaxDomainLength},
		{"site.basePath", c.Site.BasePath, MaxBasePathLength},
		{"site.dateFormat", c.Site.DateFormat, MaxDateFormatLength},
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"content.imagesDir", c.Content.ImagesDir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"build.style", c.Build.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	if strings.ContainsAny(c.Site.BasePath, " \t\n?#") {
		return fmt.Errorf("%w: site.basePath %q must be a URL path", ErrInvalidValue, c.Site.BasePath)
	}

	if c.Site.DateFormat != "" {
		if _, err := dateutil.Compile(c.Site.DateFormat); err != nil {
			return fmt.Errorf("%w: site.dateFormat: %v", ErrInvalidValue, err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Site:    SiteConfig{Title: DefaultSiteTitle},
		Content: ContentConfig{Dir: DefaultContentDir, ImagesDir: DefaultImagesDir},
		Output:  OutputConfig{Dir: DefaultOutputDir},
		Build:   BuildConfig{Style: DefaultStyle},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
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
	if err := yamlutil.DecodeConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// current directory, then ~/.config/go-modernblog/, each with .yaml and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-modernblog", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
