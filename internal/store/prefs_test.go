package store

import (
	"context"
	"testing"

	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "desktop.go."

func openTestPrefs(t *testing.T, config map[string]string) (*PreferenceStore, string) {
	t.Helper()
	path := newTestDB(t, nil, config)
	p, err := OpenPreferenceStore(path, testPrefix)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p, path
}

func TestOpenPreferenceStore_MissingFile(t *testing.T) {
	_, err := OpenPreferenceStore("/nonexistent/bitmeter.db", testPrefix)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
}

func TestPreferenceStore_LoadAll(t *testing.T) {
	p, _ := openTestPrefs(t, map[string]string{
		"desktop.go.scale":    "500",
		"desktop.go.dlcolour": "(1,2,3)",
		"client.py.scale":     "1000",
		"web.port":            "2605",
		"desktopXgoXfloat":    "True", // '.' must not act as a wildcard
		"DESKTOP.GO.opacity":  "50",   // match is case-sensitive
	})
	assert.Equal(t, testPrefix, p.Prefix())

	prefs, err := p.LoadAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"scale":    "500",
		"dlcolour": "(1,2,3)",
	}, prefs)
}

func TestPreferenceStore_LoadAllUnderscorePrefix(t *testing.T) {
	path := newTestDB(t, nil, map[string]string{
		"my_app.scale": "10",
		"myXapp.scale": "20",
	})
	p, err := OpenPreferenceStore(path, "my_app.")
	require.NoError(t, err)
	defer p.Close()

	prefs, err := p.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"scale": "10"}, prefs)
}

func TestPreferenceStore_LoadAllEmpty(t *testing.T) {
	p, _ := openTestPrefs(t, nil)

	prefs, err := p.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prefs)
	assert.NotNil(t, prefs)
}

func TestPreferenceStore_SaveAll(t *testing.T) {
	tests := []struct {
		name         string
		stored       map[string]string
		current      map[string]string
		wantInserted int
		wantUpdated  int
	}{
		{
			name:    "one changed one unchanged",
			stored:  map[string]string{"desktop.go.scale": "1000", "desktop.go.float": "True"},
			current: map[string]string{"scale": "500", "float": "True"},
			// exactly one update, zero inserts
			wantInserted: 0,
			wantUpdated:  1,
		},
		{
			name:         "one brand new key",
			stored:       map[string]string{"desktop.go.scale": "1000"},
			current:      map[string]string{"scale": "1000", "opacity": "80"},
			wantInserted: 1,
			wantUpdated:  0,
		},
		{
			name:         "nothing changed",
			stored:       map[string]string{"desktop.go.scale": "1000"},
			current:      map[string]string{"scale": "1000"},
			wantInserted: 0,
			wantUpdated:  0,
		},
		{
			name:         "other clients' rows are not ours",
			stored:       map[string]string{"client.py.scale": "1000"},
			current:      map[string]string{"scale": "1000"},
			wantInserted: 1,
			wantUpdated:  0,
		},
		{
			name:         "empty current writes nothing",
			stored:       map[string]string{"desktop.go.scale": "1000"},
			current:      map[string]string{},
			wantInserted: 0,
			wantUpdated:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := openTestPrefs(t, tt.stored)

			result, err := p.SaveAll(context.Background(), tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.wantInserted, result.Inserted)
			assert.Equal(t, tt.wantUpdated, result.Updated)

			// Whatever was saved reads back through a fresh load
			loaded, err := p.LoadAll(context.Background())
			require.NoError(t, err)
			for k, v := range tt.current {
				assert.Equal(t, v, loaded[k])
			}
		})
	}
}

func TestPreferenceStore_SaveAllWritesPrefixedKeys(t *testing.T) {
	p, path := openTestPrefs(t, map[string]string{"client.py.scale": "1000"})

	_, err := p.SaveAll(context.Background(), map[string]string{"scale": "64"})
	require.NoError(t, err)

	value, ok := readConfigRow(t, path, "desktop.go.scale")
	require.True(t, ok)
	assert.Equal(t, "64", value)

	// The other client's row is untouched
	other, ok := readConfigRow(t, path, "client.py.scale")
	require.True(t, ok)
	assert.Equal(t, "1000", other)

	// No bare key leaked into the table
	_, ok = readConfigRow(t, path, "scale")
	assert.False(t, ok)
}

func TestPreferenceStore_SaveAllRollsBackOnFailure(t *testing.T) {
	p, _ := openTestPrefs(t, nil)
	require.NoError(t, p.Close())

	_, err := p.SaveAll(context.Background(), map[string]string{"scale": "1"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
}
