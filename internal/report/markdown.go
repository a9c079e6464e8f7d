package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/wordlist/internal/model"
)

// MarkdownWriter outputs a validation run as a Markdown document with a
// summary table, a mermaid pie chart and a per-file table.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteManifest outputs the manifest in Markdown format.
func (w *MarkdownWriter) WriteManifest(m *model.Manifest) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, m)
	w.writeSummary(md, m)
	w.writeFiles(md, m)
	w.writeProblems(md, m)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, m *model.Manifest) {
	md.H1("Wordlist Validation Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Validation Date", m.ValidationDate},
			{"Total Files", strconv.Itoa(m.TotalFiles)},
			{"Total Size", formatMegabytes(m.Summary.TotalSizeBytes)},
			{"Status", statusText(m)},
		},
	})
	md.PlainText("")
}

func statusText(m *model.Manifest) string {
	if m.Passed() {
		return "✅ Passed"
	}
	return fmt.Sprintf("❌ Failed (%d invalid)", m.Summary.InvalidFiles)
}

// writeSummary writes the aggregate counters, chart and alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, m *model.Manifest) {
	s := m.Summary

	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"✅ Valid files", strconv.Itoa(s.ValidFiles)},
			{"❌ Invalid files", strconv.Itoa(s.InvalidFiles)},
			{"⚠️ Warnings", strconv.Itoa(s.TotalWarnings)},
			{"Total entries", formatCount(s.TotalEntries)},
			{"Unique entries", formatCount(s.TotalUniqueEntries)},
		},
	})
	md.PlainText("")

	if m.TotalFiles > 0 {
		w.writePieChart(md, m)
	}

	w.writeAlert(md, m)
}

// writePieChart writes a mermaid pie chart of valid versus invalid files.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, m *model.Manifest) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("File Validity"),
		piechart.WithShowData(true),
	)

	if m.Summary.ValidFiles > 0 {
		chart.LabelAndIntValue("Valid", uint64(m.Summary.ValidFiles))
	}
	if m.Summary.InvalidFiles > 0 {
		chart.LabelAndIntValue("Invalid", uint64(m.Summary.InvalidFiles))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert that matches the overall outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, m *model.Manifest) {
	switch {
	case m.Summary.InvalidFiles > 0:
		md.Cautionf("%d wordlist(s) failed validation.", m.Summary.InvalidFiles)
	case m.Summary.TotalWarnings > 0:
		md.Warningf("All wordlists are valid, with %d warning(s).", m.Summary.TotalWarnings)
	case m.TotalFiles == 0:
		md.Note("No wordlists were found.")
	default:
		md.Tip("All wordlists are valid.")
	}
	md.PlainText("")
}

// writeFiles writes one table row per wordlist.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, m *model.Manifest) {
	md.H2("Files")
	md.PlainText("")

	if len(m.Files) == 0 {
		md.PlainText("No wordlists found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(m.Files))
	for i, f := range m.Files {
		status := "✅"
		if !f.Valid {
			status = "❌"
		}
		encoding := f.Encoding
		if encoding == "" {
			encoding = "-"
		}
		rows[i] = []string{
			"`" + f.Path + "`",
			status,
			encoding,
			formatCount(f.NonEmptyLines),
			formatCount(f.UniqueEntries),
			formatCount(f.Duplicates()),
			formatMegabytes(f.SizeBytes),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Path", "Valid", "Encoding", "Entries", "Unique", "Duplicates", "Size"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeProblems lists errors and warnings per file.
func (w *MarkdownWriter) writeProblems(md *markdown.Markdown, m *model.Manifest) {
	var flagged []*model.WordlistFile
	for _, f := range m.Files {
		if len(f.Errors) > 0 || len(f.Warnings) > 0 {
			flagged = append(flagged, f)
		}
	}
	if len(flagged) == 0 {
		return
	}

	md.H2("Problems")
	md.PlainText("")

	for _, f := range flagged {
		items := make([]string, 0, len(f.Errors)+len(f.Warnings))
		for _, e := range f.Errors {
			items = append(items, "❌ "+e)
		}
		for _, warn := range f.Warnings {
			items = append(items, "⚠️ "+warn)
		}
		md.Details(f.Path, strings.Join(items, "\n"))
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wordlist](https://github.com/nao1215/wordlist)*")
}
