package report

import (
	"io"

	"github.com/nao1215/wordlist/internal/model"
)

// Writer defines the interface for manifest output.
// Implementations render a validation run in a specific format.
type Writer interface {
	// WriteManifest outputs the manifest to the configured destination.
	// Returns the number of bytes written and any error encountered.
	WriteManifest(m *model.Manifest) (int, error)
}

// WriterFactory creates a Writer bound to an output destination.
type WriterFactory func(output io.Writer) Writer

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
