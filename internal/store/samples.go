package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/logger"
)

// SampleStore is a read-only view of the bandwidth log.
type SampleStore struct {
	db     *sql.DB
	logger logger.Logger
}

// OpenSampleStore opens the database at path for sample queries.
// The file must already exist.
func OpenSampleStore(path string) (*SampleStore, error) {
	db, err := openDB(path, true)
	if err != nil {
		return nil, err
	}
	return &SampleStore{
		db:     db,
		logger: logger.Noop(),
	}, nil
}

// SetLogger replaces the store's logger.
func (s *SampleStore) SetLogger(l logger.Logger) {
	s.logger = l
}

// Query returns every sample with timestamp >= since, oldest first, together
// with the counts of the second ending at now (timestamp now-1). The pair is
// zero when that second has no row. Rows sharing a timestamp come back in
// insertion order, so the last one written wins.
func (s *SampleStore) Query(ctx context.Context, since, now int64) (Pair, []Sample, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT ts, dl, ul FROM data WHERE ts >= ? ORDER BY ts, rowid", since)
	if err != nil {
		return Pair{}, nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to read bandwidth samples", "")
	}
	defer rows.Close()

	var (
		latest  Pair
		samples []Sample
	)
	for rows.Next() {
		var smp Sample
		if err := rows.Scan(&smp.Timestamp, &smp.Download, &smp.Upload); err != nil {
			return Pair{}, nil, errors.WrapWithCode(err, errors.ErrStore,
				"Failed to read bandwidth samples", "")
		}
		if smp.Timestamp == now-1 {
			latest = Pair{Download: smp.Download, Upload: smp.Upload}
		}
		samples = append(samples, smp)
	}
	if err := rows.Err(); err != nil {
		return Pair{}, nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to read bandwidth samples", "")
	}

	s.logger.Debug("query since=%d now=%d returned %d samples", since, now, len(samples))
	return latest, samples, nil
}

// Latest returns the newest sample in the log, or false when the log is empty.
func (s *SampleStore) Latest(ctx context.Context) (Sample, bool, error) {
	var smp Sample
	err := s.db.QueryRowContext(ctx,
		"SELECT ts, dl, ul FROM data ORDER BY ts DESC, rowid DESC LIMIT 1").
		Scan(&smp.Timestamp, &smp.Download, &smp.Upload)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Sample{}, false, nil
	}
	if err != nil {
		return Sample{}, false, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to read the latest sample", "")
	}
	return smp, true, nil
}

// GlobalSetting returns an unprefixed value from the shared config table,
// or def when the key is absent. These are settings of the capture service
// itself (for example web.port), shared by every client.
func (s *SampleStore) GlobalSetting(ctx context.Context, name, def string) (string, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", name).Scan(&value)
	if stderrors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrStore,
			"Failed to read setting '"+name+"'", "")
	}
	if !value.Valid {
		return def, nil
	}
	return value.String, nil
}

// Close releases the database handle.
func (s *SampleStore) Close() error {
	return s.db.Close()
}
