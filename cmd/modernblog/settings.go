package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-modernblog/internal/basepath"
	"github.com/alnah/go-modernblog/internal/config"
	"github.com/alnah/go-modernblog/internal/fileutil"
	"github.com/alnah/go-modernblog/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	ErrNoContent      = errors.New("content directory not found")
)

// loadSettings resolves the configuration for a command.
// Precedence: CLI flags > env vars (and .env) > config file > defaults.
// merge applies the command's flags.
func loadSettings(common *commonFlags, env *Environment, merge func(*config.Config)) (*config.Config, error) {
	penv, err := loadProcessEnv(env)
	if err != nil {
		return nil, err
	}
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr, penv.names(env.Environ()))
	}
	envCfg := loadEnvConfig(penv)

	configName := common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(configName) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(configName)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	merge(cfg)
	cfg.Site.BasePath = basepath.Normalize(cfg.Site.BasePath).String()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns the logger handed to library code: debug records on w
// in verbose mode, nothing otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// noArgs rejects positional arguments for commands that take none.
func noArgs(cmd string, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w for %s: %v", ErrUnexpectedArgs, cmd, args)
	}
	return nil
}
