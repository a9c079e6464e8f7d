package pipeline

import "github.com/nao1215/wordlist/internal/model"

// Analysis is the per-file state passed through the validation steps.
type Analysis struct {
	// File is the result being built.
	File *model.WordlistFile

	// Source is the path used to access the file on disk.
	Source string

	// Raw holds the file content once the read step ran.
	Raw []byte

	// Text holds the decoded content once the decode step ran.
	Text string

	// Lines holds every logical line once the count step ran.
	Lines []string

	// NonEmpty holds the lines that are not blank, in file order.
	NonEmpty []string

	// Performed lists the names of the steps that ran, in order.
	Performed []string

	halted bool
}

// NewAnalysis creates the state for validating source, reported as path.
func NewAnalysis(source, path string) *Analysis {
	return &Analysis{
		File:   model.NewWordlistFile(path),
		Source: source,
	}
}

// Halt stops the remaining steps for this file.
// The result keeps whatever was recorded so far.
func (a *Analysis) Halt() {
	a.halted = true
}

// Halted reports whether a step called Halt.
func (a *Analysis) Halted() bool {
	return a.halted
}
