package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/bitmeter/internal/errors"
)

// Validate checks the config for values the client cannot work with.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.DB) == "" {
		return errors.New(errors.ErrConfig,
			"No database path configured",
			"Set BITMETER_DB or pass --db")
	}

	if strings.TrimSpace(cfg.Prefix) == "" {
		return errors.New(errors.ErrConfig,
			"Preference prefix is empty",
			"An empty prefix would read every client's settings. Set 'prefix' or leave it unset for the default.")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval too short: %s", cfg.Interval),
			fmt.Sprintf("Minimum interval is %s", MinInterval))
	}

	if cfg.MinWidth < 1 || cfg.MinHeight < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid minimum size %dx%d", cfg.MinWidth, cfg.MinHeight),
			"min_width and min_height must be at least 1")
	}

	return nil
}
