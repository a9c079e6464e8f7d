// Package report renders validation and deduplication results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable progress and summaries for the terminal
//   - JSONWriter: the manifest and single-file results as JSON
//   - MarkdownWriter: a shareable Markdown report of a validation run
//
// WriteManifestFile persists a manifest to disk under an advisory file
// lock, replacing any previous manifest atomically.
package report
