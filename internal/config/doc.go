// Package config provides configuration structures and utilities for wordlist.
// It defines the discovery rules shared by the deduplicator and the validator,
// the manifest location, and the optional validation history settings.
package config
