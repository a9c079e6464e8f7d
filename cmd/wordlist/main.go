// Package main provides the entry point for the wordlist CLI.
//
// wordlist maintains a directory of password wordlists: it removes
// duplicate entries and validates every list, writing a JSON manifest
// that describes the collection.
//
// Usage:
//
//	wordlist dedup <input> [output]
//	wordlist dedup --all
//	wordlist validate
//	wordlist validate --file <path>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
