package config

import "time"

// Config represents the bitmeter client configuration.
//
// Only client plumbing lives here. Visual settings (colours, scale, geometry)
// are preferences stored in the shared database, see package prefs.
type Config struct {
	// DB is the path to the BitMeter SQLite database written by the capture service.
	DB string `yaml:"db" mapstructure:"db"`

	// Prefix namespaces this client's preference rows in the shared config table.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// Interval is the graph refresh period.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// MinWidth and MinHeight are the smallest terminal (cells) the graph will draw into.
	MinWidth  int `yaml:"min_width" mapstructure:"min_width"`
	MinHeight int `yaml:"min_height" mapstructure:"min_height"`
}

// LoadOptions carries command-line overrides applied on top of file and env values.
type LoadOptions struct {
	// ConfigPath is an explicit config file (from --config). Empty means search.
	ConfigPath string

	// DB overrides the database path (from --db).
	DB string

	// Prefix overrides the preference namespace (from --prefix).
	Prefix string
}

// Default values.
const (
	DefaultPrefix    = "desktop.go."
	DefaultInterval  = time.Second
	DefaultMinWidth  = 20
	DefaultMinHeight = 4

	// MinInterval keeps the refresh loop from hammering the database.
	MinInterval = 250 * time.Millisecond
)

// DefaultConfig returns a Config with platform defaults filled in.
func DefaultConfig() *Config {
	return &Config{
		DB:        DefaultDBPath(currentGOOS),
		Prefix:    DefaultPrefix,
		Interval:  DefaultInterval,
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
	}
}
