package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/wordlist/internal/config"
	"github.com/nao1215/wordlist/internal/database"
	"github.com/nao1215/wordlist/internal/model"
	"github.com/nao1215/wordlist/internal/report"
	"github.com/nao1215/wordlist/internal/validator"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate wordlists and write the manifest",
		Long: `Validate checks every wordlist below the root directory and writes a
JSON manifest describing the collection.

Each file is checked for a readable text encoding (UTF-8, then Latin-1),
counted (lines, entries, unique entries, line lengths) and inspected for
duplicates and control characters. Duplicates and control characters
are warnings; unreadable files are errors.

The command exits with status 1 if any wordlist is invalid.

Examples:
  # Validate the wordlists in the current directory
  wordlist validate

  # Validate another directory using 4 workers
  wordlist validate --root ./wordlists --jobs 4

  # Also write a Markdown report and record the run in history
  wordlist validate --markdown report.md --history

  # Validate a single file and print the result as JSON
  wordlist validate --file passwords.txt`,
		Args: cobra.NoArgs,
		RunE: runValidateCmd,
	}

	cmd.Flags().StringP("root", "r", config.DefaultRoot,
		"Wordlist root directory")
	cmd.Flags().StringP("manifest", "m", config.DefaultManifestName,
		"Manifest file, relative to the root unless absolute")
	cmd.Flags().String("markdown", "",
		"Also write a Markdown report to this path")
	cmd.Flags().IntP("jobs", "j", config.DefaultJobs,
		"Number of files validated concurrently")
	cmd.Flags().Bool("history", false,
		"Store the run in the validation history database")
	cmd.Flags().StringP("file", "f", "",
		"Validate a single file and print the result as JSON")

	return cmd
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)
	ctx, cancel := setupContext(cmd, logger)
	defer cancel()

	v := validator.New(cfg, validator.WithLogger(logger))
	if file != "" {
		return validateSingleFile(ctx, cmd.OutOrStdout(), v, file)
	}
	return validateRoot(ctx, cmd.OutOrStdout(), cfg, v, logger)
}

// validateSingleFile prints the result of one file as JSON.
func validateSingleFile(ctx context.Context, out io.Writer, v *validator.Validator, path string) error {
	result, err := v.ValidateFile(ctx, path)
	if err != nil {
		return err
	}

	if _, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(result.Value()); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if !result.Valid() {
		return ErrValidationFailed
	}
	return nil
}

// validateRoot validates every wordlist of the root and writes the manifest.
func validateRoot(ctx context.Context, out io.Writer, cfg *config.Config, v *validator.Validator, logger *slog.Logger) error {
	files, err := v.Discover()
	if err != nil {
		return err
	}

	w := report.NewSimpleWriter(out)
	if _, err := w.WriteStart(len(files)); err != nil {
		return err
	}

	m, err := v.ValidatePaths(ctx, files, func(f *model.WordlistFile, _ int) {
		_, _ = w.WriteProgress(f)
	})
	if err != nil {
		return err
	}

	if _, err := w.WriteManifest(m); err != nil {
		return err
	}

	manifestPath := cfg.ManifestPath()
	if err := report.WriteManifestFile(ctx, manifestPath, m); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	if _, err := w.WriteSaved(manifestPath); err != nil {
		return err
	}

	if cfg.MarkdownReport != "" {
		if err := report.WriteReportFile(ctx, cfg.MarkdownReport, m, newMarkdownWriter); err != nil {
			return fmt.Errorf("failed to save markdown report: %w", err)
		}
		fmt.Fprintf(out, "📝 Markdown report saved to %s\n", cfg.MarkdownReport)
	}

	if cfg.SaveHistory {
		if err := saveHistory(ctx, out, cfg, m, logger); err != nil {
			return err
		}
	}

	if !m.Passed() {
		return ErrValidationFailed
	}
	return nil
}

func newMarkdownWriter(output io.Writer) report.Writer {
	return report.NewMarkdownWriter(output)
}

// saveHistory stores m as a run of the absolute root directory.
func saveHistory(ctx context.Context, out io.Writer, cfg *config.Config, m *model.Manifest, logger *slog.Logger) error {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, root, m)
	if err != nil {
		return err
	}

	logger.Debug("validation run stored", "id", id, "database", db.Path())
	fmt.Fprintf(out, "🗂  Run #%d stored in history\n", id)
	return nil
}
