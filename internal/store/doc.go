// Package store reads the BitMeter SQLite database.
//
// The database is owned by the capture service, which writes one row per
// second into the data table and keeps shared settings in the config table:
//
//	data(ts INTEGER, dl INTEGER, ul INTEGER)
//	config(key TEXT PRIMARY KEY, value TEXT)
//
// Two accessors sit on top of it, each holding exactly one connection for the
// life of the process:
//
//	SampleStore      - read-only window queries over data, plus unprefixed
//	                   global settings such as web.port
//	PreferenceStore  - this client's config rows, addressed by bare name with
//	                   the namespace prefix stripped on read and re-applied on
//	                   write; SaveAll only writes rows whose value changed
//
// Failures to open or query the database are returned as errors.ErrStore
// coded errors. Nothing here retries; the caller decides whether a failure is
// fatal (startup) or skippable (a refresh tick).
//
// The driver is modernc.org/sqlite, so no cgo is needed.
package store
