package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/nao1215/wordlist/internal/charset"
	"github.com/nao1215/wordlist/internal/config"
	"github.com/nao1215/wordlist/internal/lines"
	"github.com/nao1215/wordlist/internal/model"
)

// EncodingErrorPrefix prefixes the error recorded when no decoder accepts a file.
const EncodingErrorPrefix = "Encoding error: "

// StatStep checks that the file exists and records its size.
type StatStep struct{}

// Name returns the step name.
func (s *StatStep) Name() string {
	return "stat"
}

// Do executes the stat step.
func (s *StatStep) Do(_ context.Context, a *Analysis) error {
	info, err := os.Stat(a.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, a.Source)
		}
		return fmt.Errorf("failed to stat %s: %w", a.Source, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, a.Source)
	}
	a.File.SizeBytes = info.Size()
	return nil
}

// ReadStep reads the whole file and records its SHA-256 digest.
type ReadStep struct{}

// Name returns the step name.
func (s *ReadStep) Name() string {
	return "read"
}

// Do executes the read step.
func (s *ReadStep) Do(_ context.Context, a *Analysis) error {
	raw, err := os.ReadFile(a.Source) //nolint:gosec // Wordlist path comes from discovery or the user
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", a.Source, err)
	}
	sum := sha256.Sum256(raw)
	a.Raw = raw
	a.File.SHA256 = hex.EncodeToString(sum[:])
	return nil
}

// DecodeStep decodes the raw bytes with an ordered list of attempts.
// When every attempt fails the file is marked invalid and analysis halts.
type DecodeStep struct {
	attempts []charset.Attempt
}

// NewDecodeStep creates a decode step. With no attempts given,
// charset.DefaultAttempts is used.
func NewDecodeStep(attempts ...charset.Attempt) *DecodeStep {
	if len(attempts) == 0 {
		attempts = charset.DefaultAttempts()
	}
	return &DecodeStep{attempts: attempts}
}

// Name returns the step name.
func (s *DecodeStep) Name() string {
	return "decode"
}

// Do executes the decode step.
func (s *DecodeStep) Do(_ context.Context, a *Analysis) error {
	decoded, err := charset.Decode(a.Raw, s.attempts...)
	if err != nil {
		a.File.AddError(EncodingErrorPrefix + err.Error())
		a.Halt()
		return nil
	}
	a.File.Encoding = decoded.Encoding
	if decoded.Encoding != model.EncodingUTF8 {
		a.File.AddWarning(model.WarnNonUTF8)
	}
	a.Text = decoded.Text
	return nil
}

// CountStep splits the text into lines and counts total, non-empty and
// distinct entries. Distinct entries compare the untrimmed line.
type CountStep struct{}

// Name returns the step name.
func (s *CountStep) Name() string {
	return "count"
}

// Do executes the count step.
func (s *CountStep) Do(_ context.Context, a *Analysis) error {
	a.Lines = lines.Split(a.Text)
	a.NonEmpty = make([]string, 0, len(a.Lines))
	unique := make(map[string]struct{}, len(a.Lines))
	for _, line := range a.Lines {
		if lines.IsBlank(line) {
			continue
		}
		a.NonEmpty = append(a.NonEmpty, line)
		unique[line] = struct{}{}
	}

	a.File.TotalLines = len(a.Lines)
	a.File.NonEmptyLines = len(a.NonEmpty)
	a.File.UniqueEntries = len(unique)
	return nil
}

// DuplicatesStep warns when some non-empty lines repeat.
type DuplicatesStep struct{}

// Name returns the step name.
func (s *DuplicatesStep) Name() string {
	return "duplicates"
}

// Do executes the duplicates step.
func (s *DuplicatesStep) Do(_ context.Context, a *Analysis) error {
	n := a.File.NonEmptyLines - a.File.UniqueEntries
	if n <= 0 {
		return nil
	}
	a.File.DuplicateCount = &n
	a.File.AddWarning(fmt.Sprintf("%d duplicate entries found", n))
	return nil
}

// LengthsStep records min, max and mean length of the non-empty lines,
// measured in characters.
type LengthsStep struct{}

// Name returns the step name.
func (s *LengthsStep) Name() string {
	return "lengths"
}

// Do executes the lengths step.
func (s *LengthsStep) Do(_ context.Context, a *Analysis) error {
	if len(a.NonEmpty) == 0 {
		return nil
	}

	minLen, maxLen, sum := -1, 0, 0
	for _, line := range a.NonEmpty {
		n := utf8.RuneCountInString(line)
		if minLen < 0 || n < minLen {
			minLen = n
		}
		maxLen = max(maxLen, n)
		sum += n
	}
	avg := float64(sum) / float64(len(a.NonEmpty))

	a.File.MinLength = &minLen
	a.File.MaxLength = &maxLen
	a.File.AvgLength = &avg
	return nil
}

// BinaryStep looks for control characters in the first sampleLines lines.
// Only a sample is scanned; later lines are never inspected.
type BinaryStep struct {
	sampleLines int
}

// NewBinaryStep creates a binary content step. A non-positive sampleLines
// falls back to config.DefaultBinarySampleLines.
func NewBinaryStep(sampleLines int) *BinaryStep {
	if sampleLines <= 0 {
		sampleLines = config.DefaultBinarySampleLines
	}
	return &BinaryStep{sampleLines: sampleLines}
}

// Name returns the step name.
func (s *BinaryStep) Name() string {
	return "binary"
}

// Do executes the binary step.
func (s *BinaryStep) Do(_ context.Context, a *Analysis) error {
	sample := a.Lines[:min(s.sampleLines, len(a.Lines))]
	for _, line := range sample {
		if hasControl(line) {
			a.File.AddWarning(model.WarnBinaryContent)
			return nil
		}
	}
	return nil
}

// hasControl reports whether line holds a C0 control other than tab, LF or CR.
func hasControl(line string) bool {
	for _, r := range line {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

// ValidationSteps returns the ordered steps that validate one wordlist.
func ValidationSteps(sampleLines int, attempts ...charset.Attempt) []Step {
	return []Step{
		&StatStep{},
		&ReadStep{},
		NewDecodeStep(attempts...),
		&CountStep{},
		&DuplicatesStep{},
		&LengthsStep{},
		NewBinaryStep(sampleLines),
	}
}

// NewValidation creates a pipeline running ValidationSteps.
func NewValidation(sampleLines int, attempts []charset.Attempt, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(ValidationSteps(sampleLines, attempts...)...)
	return p
}
