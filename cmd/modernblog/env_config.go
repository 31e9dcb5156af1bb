package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-modernblog/internal/basepath"
	"github.com/alnah/go-modernblog/internal/config"
)

// Environment variable names.
const (
	envPrefix     = "MODERNBLOG_"
	envConfigPath = "MODERNBLOG_CONFIG"
	envContentDir = "MODERNBLOG_CONTENT_DIR"
	envOutputDir  = "MODERNBLOG_OUTPUT_DIR"
	envDomain     = "MODERNBLOG_DOMAIN"
	envWorkers    = "MODERNBLOG_WORKERS"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MODERNBLOG_CONFIG: config file path
	BasePath   string // MODERNBLOG_BASE_PATH: deployment base path, normalized
	Domain     string // MODERNBLOG_DOMAIN: CNAME domain
	ContentDir string // MODERNBLOG_CONTENT_DIR: content root
	OutputDir  string // MODERNBLOG_OUTPUT_DIR: build destination
	Workers    int    // MODERNBLOG_WORKERS: parallel workers
}

// knownEnvVars lists valid MODERNBLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	basepath.EnvVar: true,
	envConfigPath:   true,
	envContentDir:   true,
	envOutputDir:    true,
	envDomain:       true,
	envWorkers:      true,
}

// processEnv is the process environment merged with the .env file.
type processEnv struct {
	lookup func(string) (string, bool)
	dotEnv map[string]string
}

// loadProcessEnv reads the .env file named by env.DotEnv. A missing file
// is not an error. Values from the file never override the real environment.
func loadProcessEnv(env *Environment) (*processEnv, error) {
	p := &processEnv{lookup: env.LookupEnv}
	if env.DotEnv == "" {
		return p, nil
	}

	values, err := godotenv.Read(env.DotEnv)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("reading %s: %w", env.DotEnv, err)
	}
	p.dotEnv = values
	return p, nil
}

// Lookup returns the value of key, preferring the real environment.
func (p *processEnv) Lookup(key string) (string, bool) {
	if v, ok := p.lookup(key); ok {
		return v, true
	}
	v, ok := p.dotEnv[key]
	return v, ok
}

// get returns the trimmed value of key, empty when unset.
func (p *processEnv) get(key string) string {
	v, _ := p.Lookup(key)
	return strings.TrimSpace(v)
}

// names returns the variable names visible through Lookup.
func (p *processEnv) names(environ []string) []string {
	var names []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		names = append(names, name)
	}
	for name := range p.dotEnv {
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MODERNBLOG_* values.
func loadEnvConfig(p *processEnv) *envConfig {
	cfg := &envConfig{
		ConfigPath: p.get(envConfigPath),
		Domain:     p.get(envDomain),
		ContentDir: p.get(envContentDir),
		OutputDir:  p.get(envOutputDir),
	}

	if p.get(basepath.EnvVar) != "" {
		cfg.BasePath = basepath.Resolve(func(name string) (string, bool) {
			v := p.get(name)
			return v, v != ""
		}).String()
	}

	// Parse int for workers
	if workers := p.get(envWorkers); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MODERNBLOG_* variables.
// Helps catch typos like MODERNBLOG_BASEPATH instead of MODERNBLOG_BASE_PATH.
func warnUnknownEnvVars(w io.Writer, names []string) {
	for _, name := range names {
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Only set variables are applied. CLI flags are applied later via mergeFlags,
// giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.BasePath != "" {
		cfg.Site.BasePath = env.BasePath
	}
	if env.Domain != "" {
		cfg.Site.Domain = env.Domain
	}
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}
