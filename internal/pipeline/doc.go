// Package pipeline validates wordlist files as an ordered sequence of steps.
//
// Each file gets its own Analysis, which carries the WordlistFile being
// built plus the intermediate state (raw bytes, decoded text, lines) that
// later steps read. Steps run in order: stat, read, decode, count,
// duplicates, lengths and binary. A step may halt the analysis of its file
// (for example when the content cannot be decoded) without failing it.
//
// Failures are isolated per file. An error or panic inside a step is
// recorded on that file's result and never reaches other files.
//
// BatchProcessor runs one fresh pipeline per file with errgroup. The
// default concurrency is 1, which processes files one at a time in
// discovery order; results are index-addressed so their order never
// depends on the concurrency level.
package pipeline
