package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty dir and clears BITMETER_* so the host
// environment cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"BITMETER_DB", "BITMETER_PREFIX", "BITMETER_INTERVAL", "BITMETER_MIN_WIDTH", "BITMETER_MIN_HEIGHT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultDBPath(currentGOOS), cfg.DB)
	assert.Equal(t, "desktop.go.", cfg.Prefix)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 20, cfg.MinWidth)
	assert.Equal(t, 4, cfg.MinHeight)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
db: /tmp/test.db
prefix: tester.
interval: 2s
min_width: 40
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(LoadOptions{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.db", cfg.DB)
	assert.Equal(t, "tester.", cfg.Prefix)
	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, 40, cfg.MinWidth)
	assert.Equal(t, DefaultMinHeight, cfg.MinHeight)
}

func TestLoad_GlobalFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, GlobalConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte("db: /srv/bm.db\n"), 0644))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/srv/bm.db", cfg.DB)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: /from/file.db\n"), 0644))
	t.Setenv("BITMETER_DB", "/from/env.db")
	t.Setenv("BITMETER_INTERVAL", "3s")

	cfg, err := Load(LoadOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DB)
	assert.Equal(t, 3*time.Second, cfg.Interval)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("BITMETER_DB", "/from/env.db")

	cfg, err := Load(LoadOptions{DB: "/from/flag.db", Prefix: "flag."})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", cfg.DB)
	assert.Equal(t, "flag.", cfg.Prefix)
}

func TestLoad_ExpandsDBPath(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(LoadOptions{DB: "~/bitmeter.db"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bitmeter.db"), cfg.DB)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoad_InvalidInterval(t *testing.T) {
	isolate(t)
	t.Setenv("BITMETER_INTERVAL", "100ms")

	_, err := Load(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Interval too short")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"empty db", func(c *Config) { c.DB = " " }, "No database path"},
		{"empty prefix", func(c *Config) { c.Prefix = "" }, "prefix is empty"},
		{"interval too short", func(c *Config) { c.Interval = 10 * time.Millisecond }, "Interval too short"},
		{"minimum interval accepted", func(c *Config) { c.Interval = MinInterval }, ""},
		{"zero min width", func(c *Config) { c.MinWidth = 0 }, "Invalid minimum size"},
		{"negative min height", func(c *Config) { c.MinHeight = -1 }, "Invalid minimum size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultDBPath(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "/var/lib/bitmeter/bitmeter.db"},
		{"freebsd", "/var/lib/bitmeter/bitmeter.db"},
		{"darwin", "/Library/Application Support/BitMeter/bitmeter.db"},
		{"windows", `C:\ProgramData\BitMeterOS\bitmeter.db`},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultDBPath(tt.goos))
		})
	}
}

func TestCapabilitiesFor(t *testing.T) {
	assert.Equal(t, Capabilities{Opacity: true, ClickThrough: true}, CapabilitiesFor("windows"))
	assert.Equal(t, Capabilities{Opacity: true}, CapabilitiesFor("darwin"))
	assert.Equal(t, Capabilities{}, CapabilitiesFor("linux"))

	original := currentGOOS
	defer func() { currentGOOS = original }()
	currentGOOS = "darwin"
	assert.True(t, CurrentCapabilities().Opacity)
}
