package main

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/bowlrms/desktop/pkg/config"
	"github.com/bowlrms/desktop/pkg/discovery"
	"github.com/bowlrms/desktop/pkg/logging"
)

// environment is the configuration and logging shared by every command.
type environment struct {
	cfg config.Config
	mgr *config.Manager // nil when the config file could not be used

	logger *logging.Logger
	log    zerolog.Logger

	// urlOverride is set when --url replaced the configured target.
	urlOverride bool
}

// loadEnvironment reads config and sets up logging. A broken config file
// falls back to defaults; only an invalid --url is an error.
func loadEnvironment(console io.Writer) (*environment, error) {
	env := &environment{}

	var cfgErr error
	env.mgr, cfgErr = openConfig()
	if cfgErr == nil {
		env.cfg = env.mgr.Get()
	} else {
		dir, err := config.Dir()
		env.cfg = config.Default(dir)
		if err != nil {
			env.cfg.Log.Dir = ""
		}
	}

	if flagURL != "" {
		if err := config.ValidateTargetURL(flagURL); err != nil {
			return nil, fmt.Errorf("--url: %w", err)
		}
		env.cfg.Target.URL = flagURL
		env.urlOverride = true
	}

	logger, logErr := logging.New(logging.Options{
		Level:   env.cfg.Log.Level,
		Dir:     env.cfg.Log.Dir,
		Console: console,
	})
	env.logger = logger
	env.log = logger.Component("desktop")

	if logErr != nil {
		env.log.Warn().Err(logErr).Msg("File logging disabled")
	}
	if cfgErr != nil {
		env.log.Warn().Err(cfgErr).Msg("Using default configuration")
	}

	if flagSave && env.urlOverride && env.mgr != nil {
		if err := env.mgr.SetTargetURL(flagURL); err != nil {
			env.log.Warn().Err(err).Msg("Failed to save target URL")
		} else {
			env.log.Info().Str("url", flagURL).Str("path", env.mgr.Path()).Msg("Target URL saved")
		}
	}

	env.log.Debug().
		Str("target", env.cfg.Target.URL).
		Str("log_file", logger.Path()).
		Msg("Environment loaded")
	return env, nil
}

func openConfig() (*config.Manager, error) {
	if flagConfig != "" {
		return config.Open(flagConfig)
	}
	return config.NewManager()
}

// Close flushes and closes the log file.
func (e *environment) Close() {
	if e.logger != nil {
		e.logger.Close()
	}
}

// resolveTarget returns the URL to load. An explicit --url wins; otherwise
// discovery is tried when enabled, falling back to the configured target.
func resolveTarget(ctx context.Context, env *environment) string {
	target := env.cfg.Target.URL
	if env.urlOverride || !env.cfg.Discovery.Enabled {
		return target
	}

	client := discovery.NewClient(env.cfg.Discovery.Service, env.logger.Logger)
	server, err := client.Resolve(ctx, env.cfg.Discovery.Timeout)
	if err != nil {
		env.log.Warn().Err(err).Str("fallback", target).Msg("Discovery failed, using configured target")
		return target
	}
	return server.URL()
}

// originOf returns scheme://host of raw, or "" if it does not parse.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// homeURL resolves the configured home path against target.
func homeURL(cfg config.Config, target string) string {
	cfg.Target.URL = target
	return cfg.HomeURL()
}
