package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for the user config file, relative to home.
	GlobalConfigDir = ".config/bitmeter"
	// GlobalConfigFile is the user config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides (BITMETER_DB, BITMETER_PREFIX, ...).
	EnvPrefix = "BITMETER"
)

// Load builds the effective config from defaults, the config file (if any),
// BITMETER_* environment variables and finally command-line overrides.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"db", "prefix", "interval", "min_width", "min_height"} {
		// BindEnv only errors without a key
		_ = v.BindEnv(key)
	}

	path, err := Find(ExpandTilde(opts.ConfigPath))
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML: "+path)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check value types in "+describeSource(path))
	}

	if opts.DB != "" {
		cfg.DB = opts.DB
	}
	if opts.Prefix != "" {
		cfg.Prefix = opts.Prefix
	}
	cfg.DB = ExpandPath(cfg.DB)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. ~/.config/bitmeter/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", nil
	}
	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// setDefaults mirrors DefaultConfig so viper knows every key for env binding.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("db", d.DB)
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("interval", d.Interval.String())
	v.SetDefault("min_width", d.MinWidth)
	v.SetDefault("min_height", d.MinHeight)
}

func describeSource(path string) string {
	if path == "" {
		return "BITMETER_* environment variables"
	}
	return path
}
