package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Callers use errors.Is() for programmatic handling; the messages are
// written for the terminal.
var (
	// ErrNoExtensions is returned when no wordlist extension is configured.
	// Without at least one extension, discovery would never match a file.
	ErrNoExtensions = errors.New("no wordlist extensions configured: provide at least one (e.g. .txt)")

	// ErrInvalidExtension is returned when an extension does not start with a dot.
	ErrInvalidExtension = errors.New("invalid extension: must start with '.'")

	// ErrInvalidJobs is returned when the number of validation jobs is not positive.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrInvalidSampleLines is returned when the binary sample size is not positive.
	// Zero would silently disable binary content detection.
	ErrInvalidSampleLines = errors.New("invalid binary sample lines: must be positive")

	// ErrEmptyManifestName is returned when the manifest file name is empty.
	ErrEmptyManifestName = errors.New("manifest file name must not be empty")
)
