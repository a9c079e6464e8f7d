package main

import (
	"context"
	"errors"

	"github.com/nao1215/wordlist/internal/config"
	"github.com/nao1215/wordlist/internal/dedup"
	"github.com/nao1215/wordlist/internal/model"
	"github.com/nao1215/wordlist/internal/report"
	"github.com/spf13/cobra"
)

// NewDedupCmd creates the dedup command.
func NewDedupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedup [input] [output]",
		Short: "Remove duplicate lines from wordlists",
		Long: `Dedup removes duplicate lines from a wordlist, keeping the first
occurrence of each line. Trailing whitespace and line terminators are not
part of a line, so "admin" and "admin  " are the same entry.

Without an output file the input is rewritten in place.

Examples:
  # Deduplicate a wordlist in place
  wordlist dedup passwords.txt

  # Write the result to another file
  wordlist dedup passwords.txt passwords.clean.txt

  # Sort the output instead of keeping the input order
  wordlist dedup --sort passwords.txt

  # Deduplicate every wordlist directly inside the root directory
  wordlist dedup --all --root ./wordlists`,
		Args: cobra.MaximumNArgs(2),
		RunE: runDedupCmd,
	}

	cmd.Flags().BoolP("all", "a", false,
		"Deduplicate every wordlist directly inside the root directory, in place")
	cmd.Flags().StringP("root", "r", config.DefaultRoot,
		"Wordlist root directory (used with --all)")
	cmd.Flags().BoolP("sort", "s", false,
		"Sort the output instead of preserving first-occurrence order")

	return cmd
}

// runDedupCmd executes the dedup command.
func runDedupCmd(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	// Validate arguments before doing any work
	if all && len(args) > 0 {
		return errors.New("--all does not take file arguments")
	}
	if !all && len(args) == 0 {
		return errors.New("input file is required (or use --all)")
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)
	ctx, cancel := setupContext(cmd, logger)
	defer cancel()

	policy := dedup.PreserveOrder
	if cfg.SortDedup {
		policy = dedup.Sorted
	}
	opts := []dedup.Option{dedup.WithPolicy(policy), dedup.WithLogger(logger)}
	w := report.NewSimpleWriter(cmd.OutOrStdout())

	if all {
		return runDedupAll(ctx, cfg, w, opts)
	}

	var output string
	if len(args) == 2 {
		output = args[1]
	}

	result, err := dedup.File(ctx, args[0], output, opts...)
	if err != nil {
		return err
	}
	_, err = w.WriteDedup(result)
	return err
}

// runDedupAll deduplicates every top-level wordlist of the root in place.
func runDedupAll(ctx context.Context, cfg *config.Config, w *report.SimpleWriter, opts []dedup.Option) error {
	files, err := dedup.Discover(cfg.Root, cfg.Extensions)
	if err != nil {
		return err
	}
	if _, err := w.WriteDedupStart(len(files)); err != nil {
		return err
	}

	batch, err := dedup.All(ctx, cfg.Root, cfg.Extensions, func(r *model.DeduplicationResult) {
		_, _ = w.WriteDedup(r)
	}, opts...)
	if err != nil {
		return err
	}

	_, err = w.WriteDedupDone(batch.TotalRemoved)
	return err
}
