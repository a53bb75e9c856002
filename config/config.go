// Package config loads runtime settings from the environment, with
// sane defaults for interactive use.
package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "rummisolve"

// Config holds every runtime setting. All fields have working
// defaults; the environment overrides them with RUMMISOLVE_-prefixed
// variables (RUMMISOLVE_TIME_LIMIT_MS, RUMMISOLVE_STRATEGY, ...).
type Config struct {
	LogLevel    string
	Strategy    string
	TimeLimitMs int64
	Threads     int
}

// Load reads the configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("strategy", "minimize_tiles")
	v.SetDefault("time_limit_ms", 5000)
	v.SetDefault("threads", 1)

	return &Config{
		LogLevel:    v.GetString("log_level"),
		Strategy:    v.GetString("strategy"),
		TimeLimitMs: v.GetInt64("time_limit_ms"),
		Threads:     v.GetInt("threads"),
	}
}

// TimeBudget returns the time limit as a duration.
func (c *Config) TimeBudget() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// AdjustLogLevel applies the configured level to the global logger.
func (c *Config) AdjustLogLevel() {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		log.Err(err).Msg("invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
