// Package model defines the data structures shared by the wordlist
// components and report writers.
//
// This package contains the following main types:
//   - WordlistFile: the validation result of a single wordlist
//   - ErrorResult: the error-only result for a file that cannot be validated
//   - Manifest and Summary: the aggregate report of a validation run
//   - DeduplicationResult: the counts of one deduplication run
//
// The types carry JSON tags matching the manifest format and are also
// stored verbatim in the history database.
package model
