package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/wordlist/internal/model"
)

const (
	markPass = "✓"
	markFail = "✗"

	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English)

// SimpleWriter outputs human-readable progress and summaries.
// Pass and fail marks are colorized only when enabled, which by default
// means the output is a terminal.
type SimpleWriter struct {
	baseWriter

	// colorize wraps pass/fail marks in ANSI colors.
	colorize bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor overrides terminal detection.
func WithColor(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.colorize = enabled
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		colorize:   IsTerminal(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// IsTerminal reports whether output is a terminal.
func IsTerminal(output io.Writer) bool {
	file, ok := output.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WriteStart announces a validation run over total files.
func (w *SimpleWriter) WriteStart(total int) (int, error) {
	return fmt.Fprintf(w.output, "🔍 Validating %d wordlist files...\n\n", total)
}

// WriteProgress writes the progress line of one validated file.
func (w *SimpleWriter) WriteProgress(f *model.WordlistFile) (int, error) {
	return fmt.Fprintf(w.output, "  Checking %s... %s\n", filepath.Base(f.Path), w.mark(f.Valid))
}

// WriteManifest writes the summary block of a validation run.
func (w *SimpleWriter) WriteManifest(m *model.Manifest) (int, error) {
	s := m.Summary

	var sb strings.Builder
	sb.WriteString("\n📊 Validation Summary:\n")
	fmt.Fprintf(&sb, "  Total files: %d\n", m.TotalFiles)
	fmt.Fprintf(&sb, "  Valid: %d %s\n", s.ValidFiles, w.mark(true))
	fmt.Fprintf(&sb, "  Invalid: %d %s\n", s.InvalidFiles, w.mark(false))
	fmt.Fprintf(&sb, "  Warnings: %d\n", s.TotalWarnings)
	fmt.Fprintf(&sb, "  Total size: %s\n", formatMegabytes(s.TotalSizeBytes))
	fmt.Fprintf(&sb, "  Total entries: %s\n", formatCount(s.TotalEntries))
	fmt.Fprintf(&sb, "  Unique entries: %s\n", formatCount(s.TotalUniqueEntries))

	return io.WriteString(w.output, sb.String())
}

// WriteSaved reports where a file was written.
func (w *SimpleWriter) WriteSaved(path string) (int, error) {
	return fmt.Fprintf(w.output, "\n💾 Manifest saved to %s\n", path)
}

// WriteDedup writes the progress block of one deduplicated file.
func (w *SimpleWriter) WriteDedup(r *model.DeduplicationResult) (int, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Processing %s...\n", filepath.Base(r.Input))
	fmt.Fprintf(&sb, "  Original: %s lines\n", formatCount(r.Original))
	fmt.Fprintf(&sb, "  Unique: %s lines\n", formatCount(r.Unique))
	fmt.Fprintf(&sb, "  Removed: %s duplicates (%.1f%%)\n", formatCount(r.Removed), r.Percentage)
	fmt.Fprintf(&sb, "  %s Saved to %s\n\n", w.mark(true), filepath.Base(r.Output))

	return io.WriteString(w.output, sb.String())
}

// WriteDedupStart announces a batch deduplication over total files.
func (w *SimpleWriter) WriteDedupStart(total int) (int, error) {
	return fmt.Fprintf(w.output, "🔄 Deduplicating %d wordlists...\n\n", total)
}

// WriteDedupDone writes the closing line of a batch deduplication.
func (w *SimpleWriter) WriteDedupDone(totalRemoved int) (int, error) {
	return fmt.Fprintf(w.output, "✨ Complete! Removed %s total duplicates.\n", formatCount(totalRemoved))
}

// mark returns the pass or fail mark, colorized when enabled.
func (w *SimpleWriter) mark(ok bool) string {
	mark, color := markPass, ansiGreen
	if !ok {
		mark, color = markFail, ansiRed
	}
	if !w.colorize {
		return mark
	}
	return color + mark + ansiReset
}

// formatCount formats n with thousands separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatMegabytes formats a byte count as megabytes with two decimals.
func formatMegabytes(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}
