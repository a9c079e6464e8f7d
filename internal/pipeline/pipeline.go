package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/wordlist/internal/model"
)

// ValidationErrorPrefix prefixes every unexpected step failure recorded
// on a WordlistFile.
const ValidationErrorPrefix = "Validation error: "

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each receiving the analysis built by the
// previous ones.
type Step interface {
	// Do executes the step. Expected findings (warnings, decode failures)
	// are recorded on the analysis and Do returns nil. A returned error is
	// treated as an unexpected failure of the file.
	Do(ctx context.Context, a *Analysis) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep running the
// remaining steps after one fails. The failure is still recorded and the
// file is still invalid. The default is to stop at the first failure,
// because later steps depend on the state earlier ones produce.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence against a.
//
// Cancellation is checked before each step; a cancelled context is
// returned as is and nothing is recorded on the file. Any other step
// failure, including a panic, is recorded on a.File, which becomes
// invalid. The first such error is returned so callers can tell a missing
// file (ErrFileNotFound) from other outcomes; it never needs to be
// recorded again.
func (p *Pipeline) Execute(ctx context.Context, a *Analysis) error {
	var first error
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"file", a.File.Path,
				"reason", err,
			)
			return err
		}

		if a.Halted() {
			p.logger.Debug("analysis halted",
				"step", step.Name(),
				"file", a.File.Path,
			)
			break
		}

		if err := p.run(ctx, step, a); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"file", a.File.Path,
				"error", err,
			)
			record(a.File, err)
			if first == nil {
				first = err
			}
			if !p.continueOnError {
				return err
			}
		}

		a.Performed = append(a.Performed, step.Name())
	}

	return first
}

// run executes one step, converting a panic into ErrStepPanic.
func (p *Pipeline) run(ctx context.Context, step Step, a *Analysis) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %w: %v", step.Name(), ErrStepPanic, r)
		}
	}()
	return step.Do(ctx, a)
}

// record stores a step failure on the file result.
func record(f *model.WordlistFile, err error) {
	if errors.Is(err, ErrFileNotFound) {
		f.AddError(model.ErrMsgNotExist)
		return
	}
	f.AddError(ValidationErrorPrefix + err.Error())
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
