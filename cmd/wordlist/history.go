package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/wordlist/internal/database"
	"github.com/nao1215/wordlist/internal/model"
	"github.com/nao1215/wordlist/internal/report"
	"github.com/spf13/cobra"
)

// timestampLayout is how run timestamps are displayed.
const timestampLayout = "2006-01-02 15:04:05"

// HistoryComparison is the JSON form of a comparison between two stored runs.
type HistoryComparison struct {
	// Root is the absolute directory both runs validated.
	Root string `json:"root"`

	PreviousRun database.RunMetadata `json:"previous_run"`
	CurrentRun  database.RunMetadata `json:"current_run"`

	Comparison *model.Comparison `json:"comparison"`
}

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [root]",
		Short: "Show and compare stored validation runs",
		Long: `History shows the validation runs stored with 'wordlist validate --history'.

Runs are grouped by the absolute path of the validated root directory.
Without --compare the runs of the root are listed, newest first.

Comparison identifies:
- Added wordlists (present only in the newer run)
- Removed wordlists (present only in the older run)
- Changed wordlists (different SHA-256 digest)
- Changes in entry counts and invalid files

Examples:
  # List the runs of the current directory
  wordlist history

  # Compare the latest run with the previous one
  wordlist history --compare ./wordlists

  # Compare the latest run with a specific run
  wordlist history --with-run-id 3 ./wordlists

  # Output the comparison as JSON
  wordlist history --compare --json

  # List every root with stored runs
  wordlist history --list-roots`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Bool("compare", false,
		"Compare the latest run with the previous one")
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare the latest run with the run of this ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output as JSON")
	cmd.Flags().BoolP("list-roots", "L", false,
		"List every root directory with stored runs")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	compare, err := cmd.Flags().GetBool("compare")
	if err != nil {
		return err
	}
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	listRoots, err := cmd.Flags().GetBool("list-roots")
	if err != nil {
		return err
	}

	root := cfg.Root
	if len(args) == 1 {
		root = args[0]
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}

	logger := setupLogger(cmd, cfg)
	ctx, cancel := setupContext(cmd, logger)
	defer cancel()

	out := cmd.OutOrStdout()

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		fmt.Fprintln(out, "No validation history found.")
		fmt.Fprintln(out, "\nUse 'wordlist validate --history' to record validation runs.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	switch {
	case listRoots:
		return listHistoryRoots(ctx, out, db)
	case compare || withRunID != 0:
		return runHistoryComparison(ctx, out, db, root, withRunID, jsonOutput)
	default:
		return listHistoryRuns(ctx, out, db, root, jsonOutput)
	}
}

// listHistoryRoots lists all roots that have stored runs.
func listHistoryRoots(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	roots, err := db.ListRoots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roots: %w", err)
	}

	if len(roots) == 0 {
		fmt.Fprintln(out, "No validation runs found in the database.")
		return nil
	}

	fmt.Fprintf(out, "Validated roots (%d):\n\n", len(roots))
	for _, root := range roots {
		fmt.Fprintf(out, "  • %s\n", root)
	}
	fmt.Fprintln(out, "\nUse 'wordlist history <root>' to see the runs of a root.")

	return nil
}

// listHistoryRuns lists the stored runs of root, newest first.
func listHistoryRuns(ctx context.Context, out io.Writer, db *database.HistoryDB, root string, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to get validation history: %w", err)
	}

	if jsonOutput {
		if runs == nil {
			runs = []database.RunMetadata{}
		}
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(runs)
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No validation history found for %s\n", root)
		fmt.Fprintln(out, "\nUse 'wordlist validate --history' to record validation runs.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			run.Timestamp.Format(timestampLayout),
			run.ValidationDate,
			strconv.Itoa(run.TotalFiles),
			strconv.Itoa(run.Summary.ValidFiles),
			strconv.Itoa(run.Summary.InvalidFiles),
			strconv.Itoa(run.Summary.TotalWarnings),
			strconv.Itoa(run.Summary.TotalEntries),
			strconv.Itoa(run.Summary.TotalUniqueEntries),
		})
	}

	fmt.Fprintf(out, "Validation history for %s (%d runs):\n\n", root, len(runs))
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Stored", "Date", "Files", "Valid", "Invalid", "Warnings", "Entries", "Unique"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	fmt.Fprintln(out, "\nUse 'wordlist history --compare' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'wordlist history --with-run-id <id>' to compare with a specific run.")

	return nil
}

// runHistoryComparison compares the latest run of root with the previous
// run, or with the run withRunID when it is non-zero.
func runHistoryComparison(ctx context.Context, out io.Writer, db *database.HistoryDB, root string, withRunID int64, jsonOutput bool) error {
	latest, err := db.LatestRuns(ctx, root, 2)
	if err != nil {
		return err
	}

	var previous, current *database.Run
	if withRunID != 0 {
		if len(latest) == 0 {
			return fmt.Errorf("no validation runs found for %s", root)
		}
		current = latest[0]

		previous, err = db.GetRun(ctx, withRunID)
		if err != nil {
			return err
		}
		if previous.Root != root {
			return fmt.Errorf("run %d belongs to %s, not %s", withRunID, previous.Root, root)
		}
		if previous.ID == current.ID {
			return fmt.Errorf("run %d is the latest run; choose an older run to compare with", withRunID)
		}
	} else {
		if len(latest) < 2 {
			fmt.Fprintf(out, "Need at least 2 validation runs of %s to compare (found %d).\n", root, len(latest))
			return nil
		}
		current, previous = latest[0], latest[1]
	}

	result := &HistoryComparison{
		Root:        root,
		PreviousRun: previous.RunMetadata,
		CurrentRun:  current.RunMetadata,
		Comparison:  model.Compare(previous.Manifest, current.Manifest),
	}

	if jsonOutput {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(result)
		return err
	}
	outputComparisonText(out, result)
	return nil
}

// outputComparisonText outputs the comparison in human-readable text format.
func outputComparisonText(out io.Writer, result *HistoryComparison) {
	c := result.Comparison
	prev, curr := result.PreviousRun, result.CurrentRun

	fmt.Fprintf(out, "Validation Comparison: %s\n", result.Root)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nTrend: %s\n", formatTrend(c.Trend))

	fmt.Fprintf(out, "\nPrevious run: #%d (%s)\n", prev.ID, prev.Timestamp.Format(timestampLayout))
	fmt.Fprintf(out, "Current run:  #%d (%s)\n", curr.ID, curr.Timestamp.Format(timestampLayout))

	metric := func(name string, before, after int) []string {
		return []string{name, strconv.Itoa(before), strconv.Itoa(after), formatDelta(after - before)}
	}
	fmt.Fprintln(out, "\nSummary:")
	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Previous", "Current", "Change"},
		[][]string{
			metric("Files", prev.TotalFiles, curr.TotalFiles),
			metric("Valid", prev.Summary.ValidFiles, curr.Summary.ValidFiles),
			metric("Invalid", prev.Summary.InvalidFiles, curr.Summary.InvalidFiles),
			metric("Warnings", prev.Summary.TotalWarnings, curr.Summary.TotalWarnings),
			metric("Entries", prev.Summary.TotalEntries, curr.Summary.TotalEntries),
			metric("Unique", prev.Summary.TotalUniqueEntries, curr.Summary.TotalUniqueEntries),
		},
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	))

	if len(c.AddedFiles) > 0 {
		fmt.Fprintf(out, "\nAdded Files (%d):\n", len(c.AddedFiles))
		for _, path := range c.AddedFiles {
			fmt.Fprintf(out, "  [+] %s\n", path)
		}
	}

	if len(c.RemovedFiles) > 0 {
		fmt.Fprintf(out, "\nRemoved Files (%d):\n", len(c.RemovedFiles))
		for _, path := range c.RemovedFiles {
			fmt.Fprintf(out, "  [-] %s\n", path)
		}
	}

	if len(c.ChangedFiles) > 0 {
		fmt.Fprintf(out, "\nChanged Files (%d):\n", len(c.ChangedFiles))
		for _, change := range c.ChangedFiles {
			line := fmt.Sprintf("  [~] %s (entries %s)", change.Path, formatDelta(change.EntriesDelta))
			if change.ValidityChanged {
				line += ", validity changed"
			}
			fmt.Fprintln(out, line)
		}
	}

	if c.UnchangedCount > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d files\n", c.UnchangedCount)
	}
}

// formatTrend formats the comparison trend for display.
func formatTrend(trend string) string {
	switch trend {
	case model.TrendImproved:
		return "IMPROVED (fewer invalid files)"
	case model.TrendWorsened:
		return "WORSENED (more invalid files)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
