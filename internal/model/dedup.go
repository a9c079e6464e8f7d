package model

// DeduplicationResult describes one deduplication run over a single file.
type DeduplicationResult struct {
	// Input is the file that was read.
	Input string `json:"input"`

	// Output is the file that was written; equal to Input for in-place runs.
	Output string `json:"output"`

	// Original is the number of lines read, blank lines included.
	Original int `json:"original"`

	// Unique is the number of lines written.
	Unique int `json:"unique"`

	// Removed is Original minus Unique.
	Removed int `json:"removed"`

	// Percentage is Removed as a percentage of Original, 0 for empty input.
	Percentage float64 `json:"percentage"`
}

// NewDeduplicationResult derives Removed and Percentage from the counts.
// Unique can never exceed Original because every kept line was read.
func NewDeduplicationResult(input, output string, original, unique int) *DeduplicationResult {
	removed := original - unique
	var pct float64
	if original > 0 {
		pct = float64(removed) / float64(original) * 100
	}
	return &DeduplicationResult{
		Input:      input,
		Output:     output,
		Original:   original,
		Unique:     unique,
		Removed:    removed,
		Percentage: pct,
	}
}
