// Package sqlite provides the SQLite-backed library store.
//
// The store keeps book records and per-owner read cursors in a single
// database file with WAL journaling, created on first use and migrated
// from the embedded SQL files in the migrations subpackage.
package sqlite
