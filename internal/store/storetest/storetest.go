// Package storetest builds throwaway BitMeter databases for tests in other
// packages.
package storetest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rileyhilliard/bitmeter/internal/store"
)

// Schema matches the tables the capture service creates.
const Schema = `
	CREATE TABLE data (ts INTEGER NOT NULL, dl INTEGER NOT NULL, ul INTEGER NOT NULL);
	CREATE TABLE config (key TEXT PRIMARY KEY, value TEXT);
`

// Scenario is seconds 100..104 in shuffled insertion order.
var Scenario = []store.Sample{
	{Timestamp: 103, Download: 700, Upload: 900},
	{Timestamp: 100, Download: 500, Upload: 200},
	{Timestamp: 104, Download: 1024, Upload: 1024},
	{Timestamp: 101, Download: 600, Upload: 300},
	{Timestamp: 102, Download: 0, Upload: 0},
}

// NewDB creates a database under t.TempDir seeded with samples and config
// rows and returns its path.
func NewDB(t *testing.T, samples []store.Sample, config map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bitmeter.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(Schema)
	require.NoError(t, err)

	for _, s := range samples {
		_, err := db.Exec("INSERT INTO data (ts, dl, ul) VALUES (?, ?, ?)", s.Timestamp, s.Download, s.Upload)
		require.NoError(t, err)
	}
	for k, v := range config {
		_, err := db.Exec("INSERT INTO config (key, value) VALUES (?, ?)", k, v)
		require.NoError(t, err)
	}
	return path
}

// ConfigValue reads one raw config row.
func ConfigValue(t *testing.T, path, key string) (string, bool) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var value string
	err = db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	require.NoError(t, err)
	return value, true
}
