package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
	CREATE TABLE data (ts INTEGER NOT NULL, dl INTEGER NOT NULL, ul INTEGER NOT NULL);
	CREATE TABLE config (key TEXT PRIMARY KEY, value TEXT);
`

// newTestDB creates a BitMeter-shaped database seeded with samples and
// config rows, the way the capture service would leave it.
func newTestDB(t *testing.T, samples []Sample, config map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bitmeter.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(testSchema)
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

func readConfigRow(t *testing.T, path, key string) (string, bool) {
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

// scenarioSamples are seconds 100..104 in insertion order shuffled.
var scenarioSamples = []Sample{
	{Timestamp: 103, Download: 700, Upload: 900},
	{Timestamp: 100, Download: 500, Upload: 200},
	{Timestamp: 104, Download: 1024, Upload: 1024},
	{Timestamp: 101, Download: 600, Upload: 300},
	{Timestamp: 102, Download: 0, Upload: 0},
}

func TestOpenSampleStore_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "bitmeter.db")

	s, err := OpenSampleStore(path)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
	assert.Contains(t, err.Error(), path)

	// Opening must not have created the file
	_, err = OpenSampleStore(path)
	require.Error(t, err)
}

func TestSampleStore_Query(t *testing.T) {
	path := newTestDB(t, scenarioSamples, nil)
	s, err := OpenSampleStore(path)
	require.NoError(t, err)
	defer s.Close()
	log := logger.NewBufferLogger()
	s.SetLogger(log)

	t.Run("full window ascending", func(t *testing.T) {
		pair, samples, err := s.Query(context.Background(), 100, 105)
		require.NoError(t, err)

		assert.Equal(t, Pair{Download: 1024, Upload: 1024}, pair)
		require.Len(t, samples, 5)
		for i, smp := range samples {
			assert.Equal(t, int64(100+i), smp.Timestamp)
		}
		assert.Equal(t, Sample{Timestamp: 103, Download: 700, Upload: 900}, samples[3])
	})

	t.Run("since is inclusive", func(t *testing.T) {
		_, samples, err := s.Query(context.Background(), 103, 105)
		require.NoError(t, err)
		require.Len(t, samples, 2)
		assert.Equal(t, int64(103), samples[0].Timestamp)
	})

	t.Run("pair is the second before now", func(t *testing.T) {
		pair, _, err := s.Query(context.Background(), 100, 102)
		require.NoError(t, err)
		assert.Equal(t, Pair{Download: 600, Upload: 300}, pair)
	})

	t.Run("pair is zero when that second is missing", func(t *testing.T) {
		pair, samples, err := s.Query(context.Background(), 100, 200)
		require.NoError(t, err)
		assert.Equal(t, Pair{}, pair)
		assert.Len(t, samples, 5)
	})

	t.Run("empty window", func(t *testing.T) {
		pair, samples, err := s.Query(context.Background(), 500, 600)
		require.NoError(t, err)
		assert.Equal(t, Pair{}, pair)
		assert.Empty(t, samples)
	})

	assert.True(t, log.HasLevel(logger.LevelDebug), "each query is logged at debug")
}

func TestSampleStore_QueryWithoutDataTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE config (key TEXT PRIMARY KEY, value TEXT)")
	require.NoError(t, err)
	db.Close()

	s, err := OpenSampleStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, _, err = s.Query(context.Background(), 0, 10)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
}

func TestSampleStore_QueryAfterClose(t *testing.T) {
	path := newTestDB(t, scenarioSamples, nil)
	s, err := OpenSampleStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Query(context.Background(), 0, 10)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
}

// The capture service can write two rows for the same second. Readers take
// the one written last.
func TestSampleStore_DuplicateTimestamps(t *testing.T) {
	path := newTestDB(t, []Sample{
		{Timestamp: 100, Download: 1, Upload: 1},
		{Timestamp: 101, Download: 10, Upload: 20},
		{Timestamp: 101, Download: 30, Upload: 40},
	}, nil)
	s, err := OpenSampleStore(path)
	require.NoError(t, err)
	defer s.Close()

	pair, samples, err := s.Query(context.Background(), 100, 102)
	require.NoError(t, err)
	assert.Equal(t, Pair{Download: 30, Upload: 40}, pair)
	require.Len(t, samples, 3)
	assert.Equal(t, Sample{Timestamp: 101, Download: 10, Upload: 20}, samples[1])
	assert.Equal(t, Sample{Timestamp: 101, Download: 30, Upload: 40}, samples[2])

	latest, ok, err := s.Latest(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Sample{Timestamp: 101, Download: 30, Upload: 40}, latest)
}

func TestSampleStore_Latest(t *testing.T) {
	path := newTestDB(t, scenarioSamples, nil)
	s, err := OpenSampleStore(path)
	require.NoError(t, err)
	defer s.Close()

	latest, ok, err := s.Latest(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Sample{Timestamp: 104, Download: 1024, Upload: 1024}, latest)

	emptyPath := newTestDB(t, nil, nil)
	empty, err := OpenSampleStore(emptyPath)
	require.NoError(t, err)
	defer empty.Close()

	_, ok, err = empty.Latest(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSampleStore_GlobalSetting(t *testing.T) {
	path := newTestDB(t, nil, map[string]string{
		"web.port":       "8080",
		"desktop.go.web": "not global",
	})
	s, err := OpenSampleStore(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	port, err := s.GlobalSetting(ctx, "web.port", "2605")
	require.NoError(t, err)
	assert.Equal(t, "8080", port)

	missing, err := s.GlobalSetting(ctx, "web.allow_remote", "0")
	require.NoError(t, err)
	assert.Equal(t, "0", missing)

	// Global lookups are never prefixed
	web, err := s.GlobalSetting(ctx, "web", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", web)
}

func TestSaveResult_Writes(t *testing.T) {
	assert.Equal(t, 0, SaveResult{}.Writes())
	assert.Equal(t, 3, SaveResult{Inserted: 1, Updated: 2}.Writes())
}
