package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestNewDedupCmd(t *testing.T) {
	t.Parallel()

	cmd := NewDedupCmd()

	if cmd.Use != "dedup [input] [output]" {
		t.Errorf("unexpected Use: got %q", cmd.Use)
	}

	flagsWithShort := map[string]string{
		"all":  "a",
		"root": "r",
		"sort": "s",
	}
	for flag, shorthand := range flagsWithShort {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("expected flag %q to exist", flag)
			continue
		}
		if f.Shorthand != shorthand {
			t.Errorf("flag %q: expected shorthand %q, got %q", flag, shorthand, f.Shorthand)
		}
	}
}

func TestRunDedupCmd(t *testing.T) {
	t.Run("deduplicates in place", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "passwords.txt")
		writeFile(t, input, "b\na\nb\n")

		out, err := executeCommand(t, writeTestConfig(t, t.TempDir(), ""), "dedup", input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := readFile(t, input); got != "b\na\n" {
			t.Errorf("file content = %q, want %q", got, "b\na\n")
		}
		for _, want := range []string{
			"📋 Processing passwords.txt...",
			"Original: 3 lines",
			"Unique: 2 lines",
			"Removed: 1 duplicates (33.3%)",
			"Saved to passwords.txt",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("writes to output file", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "in.txt")
		output := filepath.Join(dir, "out.txt")
		writeFile(t, input, "x\nx\n")

		if _, err := executeCommand(t, writeTestConfig(t, t.TempDir(), ""), "dedup", input, output); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := readFile(t, output); got != "x\n" {
			t.Errorf("output content = %q, want %q", got, "x\n")
		}
		if got := readFile(t, input); got != "x\nx\n" {
			t.Errorf("input was modified: %q", got)
		}
	})

	t.Run("sorts with --sort", func(t *testing.T) {
		input := filepath.Join(t.TempDir(), "in.txt")
		writeFile(t, input, "c\na\nc\nb\n")

		if _, err := executeCommand(t, writeTestConfig(t, t.TempDir(), ""), "dedup", "--sort", input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := readFile(t, input); got != "a\nb\nc\n" {
			t.Errorf("file content = %q, want %q", got, "a\nb\nc\n")
		}
	})

	t.Run("all top-level wordlists", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.txt"), "1\n1\n")
		writeFile(t, filepath.Join(root, "b.lst"), "2\n2\n2\n")
		writeFile(t, filepath.Join(root, "sub", "c.txt"), "3\n3\n")

		out, err := executeCommand(t, writeTestConfig(t, t.TempDir(), ""), "dedup", "--all", "--root", root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out, "🔄 Deduplicating 2 wordlists...") {
			t.Errorf("output missing start line:\n%s", out)
		}
		if !strings.Contains(out, "✨ Complete! Removed 3 total duplicates.") {
			t.Errorf("output missing completion line:\n%s", out)
		}
		if got := readFile(t, filepath.Join(root, "b.lst")); got != "2\n" {
			t.Errorf("b.lst = %q, want %q", got, "2\n")
		}
		if got := readFile(t, filepath.Join(root, "sub", "c.txt")); got != "3\n3\n" {
			t.Errorf("nested file was modified: %q", got)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.txt")
		if _, err := executeCommand(t, writeTestConfig(t, t.TempDir(), ""), "dedup", missing); err == nil {
			t.Error("expected error for missing input")
		}
	})

	t.Run("requires input without --all", func(t *testing.T) {
		_, err := executeCommand(t, writeTestConfig(t, t.TempDir(), ""), "dedup")
		if err == nil || !strings.Contains(err.Error(), "input file is required") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects files with --all", func(t *testing.T) {
		_, err := executeCommand(t, writeTestConfig(t, t.TempDir(), ""), "dedup", "--all", "a.txt")
		if err == nil || !strings.Contains(err.Error(), "--all does not take file arguments") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
