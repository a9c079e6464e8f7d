// Package dedup removes duplicate entries from wordlist files.
//
// A file is read whole, decoded best-effort (invalid UTF-8 sequences are
// dropped), split into lines, and each line is trimmed of trailing
// whitespace. Blank lines are dropped. The remaining lines are reduced with
// one of two policies:
//
//   - PreserveOrder keeps the first occurrence of every line, in input order.
//   - Sorted keeps the distinct lines in lexicographic order, discarding the
//     original ordering.
//
// Every kept line is written back with a trailing newline, to the output
// path or in place. The counts are returned as a model.DeduplicationResult;
// printing them is left to the caller. All accumulates a BatchResult
// instead of sharing a counter between files.
package dedup
