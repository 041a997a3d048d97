package store

import (
	"context"
	"database/sql"
	"sort"
	"unicode/utf8"

	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/logger"
)

// SaveResult reports how many rows a SaveAll call wrote.
type SaveResult struct {
	Inserted int
	Updated  int
}

// Writes returns the total number of rows written.
func (r SaveResult) Writes() int {
	return r.Inserted + r.Updated
}

// PreferenceStore reads and writes one client's rows of the config table.
// Every key it touches is prefix+name; callers only deal in bare names.
type PreferenceStore struct {
	db     *sql.DB
	prefix string
	logger logger.Logger
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// OpenPreferenceStore opens the database at path for the given namespace prefix.
func OpenPreferenceStore(path, prefix string) (*PreferenceStore, error) {
	db, err := openDB(path, false)
	if err != nil {
		return nil, err
	}
	return &PreferenceStore{
		db:     db,
		prefix: prefix,
		logger: logger.Noop(),
	}, nil
}

// SetLogger replaces the store's logger.
func (p *PreferenceStore) SetLogger(l logger.Logger) {
	p.logger = l
}

// Prefix returns the namespace prefix.
func (p *PreferenceStore) Prefix() string {
	return p.prefix
}

// LoadAll returns every stored preference of this client keyed by bare name.
func (p *PreferenceStore) LoadAll(ctx context.Context) (map[string]string, error) {
	prefs, err := p.loadAll(ctx, p.db)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to load preferences", "")
	}
	return prefs, nil
}

// SaveAll writes current back to the store. Names missing from the store are
// inserted, names whose stored value differs are updated, everything else is
// left alone so unchanged rows are never rewritten.
func (p *PreferenceStore) SaveAll(ctx context.Context, current map[string]string) (SaveResult, error) {
	var result SaveResult

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return result, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to save preferences", "")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	stored, err := p.loadAll(ctx, tx)
	if err != nil {
		return result, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to save preferences", "")
	}

	names := make([]string, 0, len(current))
	for name := range current {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := current[name]
		original, ok := stored[name]
		switch {
		case !ok:
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO config (key, value) VALUES (?, ?)", p.prefix+name, value); err != nil {
				return SaveResult{}, errors.WrapWithCode(err, errors.ErrStore,
					"Failed to save preference '"+name+"'", "")
			}
			result.Inserted++
		case original != value:
			if _, err := tx.ExecContext(ctx,
				"UPDATE config SET value = ? WHERE key = ?", value, p.prefix+name); err != nil {
				return SaveResult{}, errors.WrapWithCode(err, errors.ErrStore,
					"Failed to save preference '"+name+"'", "")
			}
			result.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to save preferences", "")
	}

	p.logger.Debug("saved preferences: %d inserted, %d updated", result.Inserted, result.Updated)
	return result, nil
}

// loadAll matches the prefix literally; LIKE would treat '_' as a wildcard
// and compare case-insensitively.
func (p *PreferenceStore) loadAll(ctx context.Context, q queryer) (map[string]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT key, value FROM config WHERE substr(key, 1, ?) = ?",
		utf8.RuneCountInString(p.prefix), p.prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prefs := make(map[string]string)
	for rows.Next() {
		var (
			key   string
			value sql.NullString
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		prefs[key[len(p.prefix):]] = value.String
	}
	return prefs, rows.Err()
}

// Close releases the database handle.
func (p *PreferenceStore) Close() error {
	return p.db.Close()
}
