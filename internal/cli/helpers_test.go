package cli

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/bitmeter/internal/config"
	"github.com/rileyhilliard/bitmeter/internal/store"
	"github.com/rileyhilliard/bitmeter/internal/store/storetest"
)

// testDB isolates the test from the user's config and environment and
// returns a seeded database path.
func testDB(t *testing.T, samples []store.Sample, rows map[string]string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"DB", "PREFIX", "INTERVAL", "MIN_WIDTH", "MIN_HEIGHT"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
		os.Unsetenv(config.EnvPrefix + "_" + key)
	}

	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	return storetest.NewDB(t, samples, rows)
}

func optsFor(path string) config.LoadOptions {
	return config.LoadOptions{DB: path}
}
