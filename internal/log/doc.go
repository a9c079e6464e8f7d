// Package log provides structured logging for wordlist, built on top of the
// standard slog package.
//
// Wordlists are collections of candidate passwords and secrets, so their
// entries must never end up in log files. The RedactHandler masks attribute
// values whose key names an entry (entry, line, word, password, ...) and
// values that look like credentials, before handing the record to the
// underlying handler.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("duplicate dropped", "entry", "hunter2") // entry=***REDACTED***
//	slog.SetDefault(logger)
package log
