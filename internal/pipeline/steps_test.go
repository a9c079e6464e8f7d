package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/wordlist/internal/charset"
	"github.com/nao1215/wordlist/internal/model"
)

// validate runs the full validation pipeline over content written to a temp file.
func validate(t *testing.T, content []byte, attempts ...charset.Attempt) *model.WordlistFile {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write wordlist: %v", err)
	}

	a := NewAnalysis(path, "words.txt")
	_ = NewValidation(0, attempts).Execute(context.Background(), a) //nolint:errcheck // Errors are recorded on the file
	return a.File
}

func checkInvariants(t *testing.T, f *model.WordlistFile) {
	t.Helper()

	if f.UniqueEntries > f.NonEmptyLines || f.NonEmptyLines > f.TotalLines {
		t.Errorf("counts out of order: unique=%d non_empty=%d total=%d",
			f.UniqueEntries, f.NonEmptyLines, f.TotalLines)
	}
}

// TestValidation tests the full step sequence on typical files.
func TestValidation(t *testing.T) {
	t.Parallel()

	t.Run("counts duplicates in a small file", func(t *testing.T) {
		t.Parallel()

		content := []byte("a\na\nb\n")
		f := validate(t, content)
		checkInvariants(t, f)

		if !f.Valid {
			t.Errorf("expected valid file, errors: %q", f.Errors)
		}
		if f.TotalLines != 3 || f.NonEmptyLines != 3 || f.UniqueEntries != 2 {
			t.Errorf("unexpected counts %d/%d/%d", f.TotalLines, f.NonEmptyLines, f.UniqueEntries)
		}
		if f.DuplicateCount == nil || *f.DuplicateCount != 1 {
			t.Errorf("expected duplicate count 1, got %v", f.DuplicateCount)
		}
		if !slices.Equal(f.Warnings, []string{"1 duplicate entries found"}) {
			t.Errorf("unexpected warnings %q", f.Warnings)
		}
		if f.Encoding != model.EncodingUTF8 {
			t.Errorf("expected utf-8, got %q", f.Encoding)
		}
		if f.SizeBytes != int64(len(content)) {
			t.Errorf("expected size %d, got %d", len(content), f.SizeBytes)
		}
		sum := sha256.Sum256(content)
		if f.SHA256 != hex.EncodeToString(sum[:]) {
			t.Errorf("unexpected digest %q", f.SHA256)
		}
	})

	t.Run("computes length statistics over non-empty lines", func(t *testing.T) {
		t.Parallel()

		f := validate(t, []byte("ab\n\n   \nabcd\nüñí\n"))
		checkInvariants(t, f)

		if f.TotalLines != 5 || f.NonEmptyLines != 3 {
			t.Errorf("unexpected counts total=%d non_empty=%d", f.TotalLines, f.NonEmptyLines)
		}
		if f.MinLength == nil || *f.MinLength != 2 {
			t.Errorf("expected min 2, got %v", f.MinLength)
		}
		if f.MaxLength == nil || *f.MaxLength != 4 {
			t.Errorf("expected max 4, got %v", f.MaxLength)
		}
		if f.AvgLength == nil || *f.AvgLength != 3 {
			t.Errorf("expected avg 3, got %v", f.AvgLength)
		}
		if f.DuplicateCount != nil {
			t.Errorf("expected no duplicate count, got %d", *f.DuplicateCount)
		}
	})

	t.Run("unique entries compare untrimmed lines", func(t *testing.T) {
		t.Parallel()

		f := validate(t, []byte("pass\npass \n"))
		if f.UniqueEntries != 2 || len(f.Warnings) != 0 {
			t.Errorf("expected 2 distinct entries without warnings, got %d %q", f.UniqueEntries, f.Warnings)
		}
	})

	t.Run("empty file has no statistics", func(t *testing.T) {
		t.Parallel()

		f := validate(t, nil)
		if !f.Valid || f.TotalLines != 0 || f.MinLength != nil || f.AvgLength != nil {
			t.Errorf("unexpected result %+v", f)
		}
	})

	t.Run("falls back to latin-1 with a warning", func(t *testing.T) {
		t.Parallel()

		f := validate(t, []byte("caf\xe9\nna\xefve\n"))
		checkInvariants(t, f)

		if !f.Valid {
			t.Errorf("expected valid file, errors: %q", f.Errors)
		}
		if f.Encoding != model.EncodingLatin1 {
			t.Errorf("expected latin-1, got %q", f.Encoding)
		}
		if !slices.Contains(f.Warnings, model.WarnNonUTF8) {
			t.Errorf("expected non-UTF-8 warning, got %q", f.Warnings)
		}
		if f.MinLength == nil || *f.MinLength != 4 {
			t.Errorf("expected min length 4 characters, got %v", f.MinLength)
		}
	})

	t.Run("undecodable file is invalid and analysis stops", func(t *testing.T) {
		t.Parallel()

		reject := charset.Attempt{
			Name: "strict",
			Decode: func([]byte) (string, error) {
				return "", errors.New("rejected")
			},
		}
		f := validate(t, []byte("\xff\xfe\n"), charset.UTF8, reject)

		if f.Valid {
			t.Error("expected invalid file")
		}
		if len(f.Errors) != 1 || !strings.HasPrefix(f.Errors[0], EncodingErrorPrefix) {
			t.Errorf("unexpected errors %q", f.Errors)
		}
		if f.Encoding != "" || f.TotalLines != 0 {
			t.Errorf("expected no analysis after decode failure, got %+v", f)
		}
		if f.SHA256 == "" {
			t.Error("expected digest to be recorded before decoding")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		a := NewAnalysis(filepath.Join(t.TempDir(), "nope.txt"), "nope.txt")
		err := NewValidation(0, nil).Execute(context.Background(), a)

		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("expected ErrFileNotFound, got %v", err)
		}
		if a.File.Valid || !slices.Equal(a.File.Errors, []string{model.ErrMsgNotExist}) {
			t.Errorf("unexpected result %+v", a.File)
		}
	})

	t.Run("directory is not a wordlist", func(t *testing.T) {
		t.Parallel()

		a := NewAnalysis(t.TempDir(), "dir.txt")
		err := NewValidation(0, nil).Execute(context.Background(), a)

		if !errors.Is(err, ErrNotRegularFile) {
			t.Errorf("expected ErrNotRegularFile, got %v", err)
		}
		if a.File.Valid {
			t.Error("expected invalid result")
		}
	})
}

// TestLineTerminators tests that every standard terminator splits lines.
func TestLineTerminators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		total   int
	}{
		{name: "LF", content: "a\nb\n", total: 2},
		{name: "CRLF", content: "a\r\nb\r\n", total: 2},
		{name: "CR", content: "a\rb", total: 2},
		{name: "form feed", content: "a\fb", total: 2},
		{name: "line separator", content: "a\u2028b\u2029c", total: 3},
		{name: "no trailing terminator", content: "a\nb", total: 2},
		{name: "blank lines count", content: "\n\n\n", total: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := validate(t, []byte(tt.content))
			if f.TotalLines != tt.total {
				t.Errorf("expected %d lines, got %d", tt.total, f.TotalLines)
			}
			checkInvariants(t, f)
		})
	}
}

// TestBinaryStep tests control character sampling.
func TestBinaryStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		lines       []string
		sampleLines int
		want        bool
	}{
		{name: "plain text", lines: []string{"abc", "tab\tok"}, sampleLines: 100, want: false},
		{name: "NUL byte", lines: []string{"ab\x00c"}, sampleLines: 100, want: true},
		{name: "escape", lines: []string{"ok", "\x1b[31m"}, sampleLines: 100, want: true},
		{name: "outside sample", lines: []string{"ok", "ok", "\x01"}, sampleLines: 2, want: false},
		{name: "no lines", lines: nil, sampleLines: 100, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := NewAnalysis("words.txt", "words.txt")
			a.Lines = tt.lines
			if err := NewBinaryStep(tt.sampleLines).Do(context.Background(), a); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := slices.Contains(a.File.Warnings, model.WarnBinaryContent)
			if got != tt.want {
				t.Errorf("expected binary warning %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("non-positive sample uses default", func(t *testing.T) {
		t.Parallel()

		if s := NewBinaryStep(0); s.sampleLines != 100 {
			t.Errorf("expected default sample of 100, got %d", s.sampleLines)
		}
	})
}
