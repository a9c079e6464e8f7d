package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/wordlist/internal/charset"
	"github.com/nao1215/wordlist/internal/config"
	"github.com/nao1215/wordlist/internal/discovery"
	"github.com/nao1215/wordlist/internal/model"
	"github.com/nao1215/wordlist/internal/pipeline"
)

// ErrFileNotFound is returned when a validated path does not exist.
var ErrFileNotFound = pipeline.ErrFileNotFound

// DateFormat is the layout of Manifest.ValidationDate.
const DateFormat = time.DateOnly

// Validator validates the wordlists below one root directory.
type Validator struct {
	root        string
	discovery   discovery.Options
	sampleLines int
	jobs        int
	attempts    []charset.Attempt
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger passed down to the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithClock sets the clock used for the validation date.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithDecoders replaces the ordered decoding attempts.
func WithDecoders(attempts ...charset.Attempt) Option {
	return func(v *Validator) {
		v.attempts = attempts
	}
}

// New creates a Validator from cfg.
func New(cfg *config.Config, opts ...Option) *Validator {
	v := &Validator{
		root: cfg.Root,
		discovery: discovery.Options{
			Extensions: cfg.Extensions,
			SkipDirs:   cfg.SkipDirs,
		},
		sampleLines: cfg.BinarySampleLines,
		jobs:        cfg.Jobs,
		now:         time.Now,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Root returns the directory the validator is bound to.
func (v *Validator) Root() string {
	return v.root
}

// FileResult is the outcome of ValidateFile. Exactly one of File and
// Missing is set.
type FileResult struct {
	// File is the validation result of an existing path.
	File *model.WordlistFile

	// Missing is set when the path does not exist.
	Missing *model.ErrorResult
}

// Valid reports whether the path exists and passed validation.
func (r *FileResult) Valid() bool {
	return r.File != nil && r.File.Valid
}

// Value returns whichever result is set, for serialization.
func (r *FileResult) Value() any {
	if r.Missing != nil {
		return r.Missing
	}
	return r.File
}

// ValidateFile validates a single path. The only error returned is a
// context error; every problem with the file itself is part of the result.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*FileResult, error) {
	a := pipeline.NewAnalysis(path, v.displayPath(path))
	err := v.newPipeline().Execute(ctx, a)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if errors.Is(err, ErrFileNotFound) {
		return &FileResult{Missing: &model.ErrorResult{
			Path:  a.File.Path,
			Error: model.ErrMsgNotExist,
		}}, nil
	}
	return &FileResult{File: a.File}, nil
}

// Discover returns every wordlist below the root, sorted by path.
func (v *Validator) Discover() ([]string, error) {
	files, err := discovery.Walk(v.root, v.discovery)
	if err != nil {
		return nil, fmt.Errorf("failed to discover wordlists: %w", err)
	}
	return files, nil
}

// ValidatePaths validates files and aggregates them into a manifest, in the
// order given. Per-file failures are recorded in the manifest; only a
// context error is returned.
//
// The callback, if non-nil, is invoked once per file in order, as soon as
// the file and all files before it are done.
func (v *Validator) ValidatePaths(ctx context.Context, files []string, callback func(f *model.WordlistFile, index int)) (*model.Manifest, error) {
	targets := make([]pipeline.Target, len(files))
	for i, path := range files {
		targets[i] = pipeline.Target{Source: path, Path: v.displayPath(path)}
	}

	bp := pipeline.NewBatchProcessor(v.newPipeline,
		pipeline.WithConcurrency(v.jobs),
		pipeline.WithBatchLogger(v.logger),
	)
	results, err := bp.ProcessBatch(ctx, targets, callback)
	if err != nil {
		return nil, err
	}

	manifest := model.NewManifest(v.now().Format(DateFormat))
	for _, f := range results {
		manifest.Add(f)
	}

	v.logger.Debug("validation complete",
		"root", v.root,
		"total_files", manifest.TotalFiles,
		"invalid_files", manifest.Summary.InvalidFiles,
	)
	return manifest, nil
}

// ValidateAll discovers and validates every wordlist below the root.
func (v *Validator) ValidateAll(ctx context.Context, callback func(f *model.WordlistFile, index int)) (*model.Manifest, error) {
	files, err := v.Discover()
	if err != nil {
		return nil, err
	}
	return v.ValidatePaths(ctx, files, callback)
}

func (v *Validator) newPipeline() *pipeline.Pipeline {
	return pipeline.NewValidation(v.sampleLines, v.attempts, pipeline.WithLogger(v.logger))
}

// displayPath returns path relative to the root when it lies under it,
// otherwise path unchanged.
func (v *Validator) displayPath(path string) string {
	absRoot, err := filepath.Abs(v.root)
	if err != nil {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
