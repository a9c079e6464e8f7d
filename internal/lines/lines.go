// Package lines splits wordlist text into logical lines.
//
// Two conventions are provided. Split recognises every standard line
// boundary and is used for validation statistics. SplitNewlines normalises
// CRLF and CR to LF and splits on LF only, and is used by the deduplicator.
// Neither produces an extra empty line for a trailing terminator.
package lines

import (
	"strings"
	"unicode"
)

// isBoundary reports whether r terminates a line on its own.
// '\r' is handled separately because of the two-rune CRLF sequence.
func isBoundary(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Split splits text on any standard line terminator: LF, CRLF, CR, VT, FF,
// the file/group/record separators, NEL, LINE SEPARATOR and PARAGRAPH
// SEPARATOR. Terminators are not included in the returned lines.
func Split(text string) []string {
	if text == "" {
		return []string{}
	}

	result := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i, r := range text {
		if i < start {
			// second rune of a CRLF pair
			continue
		}
		switch {
		case r == '\r':
			result = append(result, text[start:i])
			start = i + 1
			if start < len(text) && text[start] == '\n' {
				start++
			}
		case isBoundary(r):
			result = append(result, text[start:i])
			start = i + len(string(r))
		}
	}
	if start < len(text) {
		result = append(result, text[start:])
	}
	return result
}

// SplitNewlines converts CRLF and lone CR to LF and splits on LF.
func SplitNewlines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// TrimTrailing removes trailing whitespace, including any terminator.
func TrimTrailing(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// IsBlank reports whether line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
