package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/rileyhilliard/bitmeter/internal/errors"

	_ "modernc.org/sqlite"
)

// Sample is one second of recorded traffic.
type Sample struct {
	Timestamp int64 // epoch seconds
	Download  int64 // bytes
	Upload    int64 // bytes
}

// Pair is the download/upload byte counts of a single second.
type Pair struct {
	Download int64
	Upload   int64
}

// busyTimeout covers the capture service holding a write lock for a moment.
const busyTimeout = 2 * time.Second

// openDB opens path with a single pooled connection.
// readOnly sets query_only so a bug here can never write samples.
func openDB(path string, readOnly bool) (*sql.DB, error) {
	// sqlite would happily create a missing file; the capture service owns it.
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewStoreUnavailable(path, err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", path, busyTimeout.Milliseconds())
	if readOnly {
		dsn += "&_pragma=query_only(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewStoreUnavailable(path, err)
	}

	// One handle per accessor; the core never issues concurrent queries.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), busyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewStoreUnavailable(path, err)
	}

	return db, nil
}
