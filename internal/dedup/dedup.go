package dedup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/nao1215/wordlist/internal/charset"
	"github.com/nao1215/wordlist/internal/lines"
	"github.com/nao1215/wordlist/internal/model"
)

// Policy selects how duplicates are removed.
type Policy int

const (
	// PreserveOrder keeps first occurrences in input order.
	PreserveOrder Policy = iota
	// Sorted emits the distinct lines in sorted order.
	Sorted
)

// String returns the policy name used in logs.
func (p Policy) String() string {
	switch p {
	case PreserveOrder:
		return "preserve-order"
	case Sorted:
		return "sorted"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ErrUnknownPolicy is returned for a Policy value outside the defined set.
var ErrUnknownPolicy = errors.New("unknown deduplication policy")

// defaultFileMode is used when the output file does not exist yet.
const defaultFileMode fs.FileMode = 0644

type options struct {
	policy Policy
	logger *slog.Logger
}

// Option configures File and All.
type Option func(*options)

// WithPolicy selects the deduplication policy. The default is PreserveOrder.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{policy: PreserveOrder, logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Lines decodes data best-effort and splits it into lines.
// The returned slice length is the "original" count of a run.
func Lines(data []byte) []string {
	return lines.SplitNewlines(charset.Lossy(data))
}

// Apply trims each line, drops blanks, and removes duplicates per policy.
func Apply(input []string, policy Policy) ([]string, error) {
	switch policy {
	case PreserveOrder:
		seen := make(map[string]struct{}, len(input))
		kept := make([]string, 0, len(input))
		for _, line := range input {
			trimmed := lines.TrimTrailing(line)
			if trimmed == "" {
				continue
			}
			if _, dup := seen[trimmed]; dup {
				continue
			}
			seen[trimmed] = struct{}{}
			kept = append(kept, trimmed)
		}
		return kept, nil
	case Sorted:
		kept := make([]string, 0, len(input))
		for _, line := range input {
			if trimmed := lines.TrimTrailing(line); trimmed != "" {
				kept = append(kept, trimmed)
			}
		}
		slices.Sort(kept)
		return slices.Compact(kept), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(policy))
	}
}

// File deduplicates input and writes the result to output.
// An empty output overwrites input in place.
func File(ctx context.Context, input, output string, opts ...Option) (*model.DeduplicationResult, error) {
	o := newOptions(opts)
	if output == "" {
		output = input
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(input) //nolint:gosec // Wordlist path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", input, err)
	}

	original := Lines(data)
	kept, err := Apply(original, o.policy)
	if err != nil {
		return nil, err
	}

	if err := write(output, kept, fileMode(input, output)); err != nil {
		return nil, err
	}

	result := model.NewDeduplicationResult(input, output, len(original), len(kept))
	o.logger.Debug("deduplicated wordlist",
		"input", input,
		"output", output,
		"policy", o.policy.String(),
		"original", result.Original,
		"unique", result.Unique,
		"removed", result.Removed,
	)
	return result, nil
}

// write replaces path with the kept lines, each terminated by a newline.
func write(path string, kept []string, mode fs.FileMode) error {
	var sb strings.Builder
	for _, line := range kept {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// fileMode keeps the permission bits of an existing output, else of the input.
func fileMode(input, output string) fs.FileMode {
	for _, path := range []string{output, input} {
		if info, err := os.Stat(path); err == nil {
			return info.Mode().Perm()
		}
	}
	return defaultFileMode
}
