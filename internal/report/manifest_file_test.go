package report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"github.com/nao1215/wordlist/internal/model"
)

// failingWriter is a Writer that always fails.
type failingWriter struct{}

func (failingWriter) WriteManifest(*model.Manifest) (int, error) {
	return 0, errors.New("render failed")
}

// TestWriteManifestFile tests manifest persistence.
func TestWriteManifestFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes indented manifest", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "manifest.json")
		if err := WriteManifestFile(ctx, path, createTestManifest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read manifest: %v", err)
		}
		var decoded model.Manifest
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("manifest is not valid JSON: %v", err)
		}
		if decoded.TotalFiles != 3 || decoded.Summary.InvalidFiles != 1 {
			t.Errorf("unexpected manifest %+v", decoded.Summary)
		}
		if !strings.HasPrefix(string(data), "{\n  \"validation_date\"") {
			t.Errorf("expected two-space indentation, got %q", string(data)[:30])
		}
	})

	t.Run("overwrites previous manifest", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "manifest.json")
		if err := os.WriteFile(path, []byte("stale content that is longer than nothing"), 0600); err != nil {
			t.Fatalf("failed to seed manifest: %v", err)
		}

		if err := WriteManifestFile(ctx, path, model.NewManifest("2025-11-16")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read manifest: %v", err)
		}
		if strings.Contains(string(data), "stale") {
			t.Error("expected previous manifest to be replaced")
		}
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := WriteManifestFile(ctx, filepath.Join(dir, "manifest.json"), createTestManifest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to list dir: %v", err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("unexpected temporary file %s", e.Name())
			}
		}
	})

	t.Run("render failure keeps previous file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.md")
		if err := os.WriteFile(path, []byte("previous"), 0600); err != nil {
			t.Fatalf("failed to seed report: %v", err)
		}

		err := WriteReportFile(ctx, path, createTestManifest(), func(io.Writer) Writer { return failingWriter{} })
		if err == nil {
			t.Fatal("expected error")
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			t.Fatalf("failed to read report: %v", readErr)
		}
		if string(data) != "previous" {
			t.Errorf("expected previous content, got %q", data)
		}
	})

	t.Run("waits for lock until context is done", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "manifest.json")
		holder := flock.New(path + LockSuffix)
		if err := holder.Lock(); err != nil {
			t.Fatalf("failed to hold lock: %v", err)
		}
		defer holder.Unlock() //nolint:errcheck // Test cleanup

		lctx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
		defer cancel()

		err := WriteManifestFile(lctx, path, createTestManifest())
		if !errors.Is(err, ErrLocked) {
			t.Errorf("expected ErrLocked, got %v", err)
		}
		if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
			t.Error("expected no manifest to be written while locked")
		}
	})

	t.Run("markdown report through the same path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.md")
		err := WriteReportFile(ctx, path, createTestManifest(), func(w io.Writer) Writer {
			return NewMarkdownWriter(w)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.HasPrefix(string(data), "# Wordlist Validation Report") {
			t.Errorf("unexpected report start %q", string(data)[:20])
		}
	})
}
