// Package database provides SQLite-based storage for validation history.
//
// Each stored run keeps the full manifest as JSON next to its summary
// counters, keyed by the absolute root directory that was validated. The
// manifest file in the wordlist repository is still overwritten on every
// run; the history database is the optional, separate record of earlier
// runs that the history command compares against.
//
// The driver is modernc.org/sqlite, which needs no cgo. The database is a
// single file under the XDG data directory by default.
package database
