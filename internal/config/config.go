package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/sonemaro/treepp/pkg/logger"
)

// Config holds the ambient settings of a run. What gets scanned and how the
// report looks is not configurable.
type Config struct {
	// Verbose sets the verbosity level
	Verbose int

	// LogFormat is the log encoding, json or console
	LogFormat string

	// NoColor disables colored console output
	NoColor bool

	// NoProgress disables the terminal status line
	NoProgress bool

	// Quiet suppresses the summary printed after the report is written
	Quiet bool
}

// Load reads configuration from TREEPP_* environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("verbose", "")
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("no_color", false)
	v.SetDefault("no_progress", false)
	v.SetDefault("quiet", false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, key := range []string{"verbose", "log_format", "no_color", "no_progress", "quiet"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	verbose, err := parseVerbosity(v.GetString("verbose"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Verbose:    verbose,
		LogFormat:  strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		NoColor:    v.GetBool("no_color"),
		NoProgress: v.GetBool("no_progress"),
		Quiet:      v.GetBool("quiet"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// parseVerbosity accepts either a number or a run of 'v's
func parseVerbosity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if strings.Trim(s, "v") != "" {
		return 0, fmt.Errorf("invalid verbosity %q: use a number or a run of 'v'", s)
	}
	return len(s), nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Verbose < 0 {
		return fmt.Errorf("verbosity must be non-negative")
	}
	if c.Verbose > MaxVerbosity {
		return fmt.Errorf("verbosity cannot exceed %d", MaxVerbosity)
	}

	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return err
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Verbose: %d, LogFormat: %s, NoColor: %v, NoProgress: %v, Quiet: %v}",
		c.Verbose, c.LogFormat, c.NoColor, c.NoProgress, c.Quiet,
	)
}
