package dedup

import (
	"context"
	"fmt"

	"github.com/nao1215/wordlist/internal/discovery"
	"github.com/nao1215/wordlist/internal/model"
)

// BatchResult aggregates an All run.
type BatchResult struct {
	// Results holds one entry per file, in sorted path order.
	Results []*model.DeduplicationResult

	// TotalRemoved is the sum of Removed over Results.
	TotalRemoved int
}

// Add folds a single-file result into the batch.
func (b *BatchResult) Add(r *model.DeduplicationResult) {
	b.Results = append(b.Results, r)
	b.TotalRemoved += r.Removed
}

// Discover returns the files All would process: wordlists directly in root.
func Discover(root string, extensions []string) ([]string, error) {
	return discovery.TopLevel(root, extensions)
}

// All deduplicates every wordlist directly inside root, in place.
// The callback, if non-nil, is invoked after each file; it is how callers
// report progress. The first failing file stops the batch.
func All(ctx context.Context, root string, extensions []string, callback func(*model.DeduplicationResult), opts ...Option) (*BatchResult, error) {
	files, err := Discover(root, extensions)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{Results: make([]*model.DeduplicationResult, 0, len(files))}
	for _, path := range files {
		result, err := File(ctx, path, "", opts...)
		if err != nil {
			return batch, fmt.Errorf("deduplication of %s failed: %w", path, err)
		}
		batch.Add(result)
		if callback != nil {
			callback(result)
		}
	}
	return batch, nil
}
