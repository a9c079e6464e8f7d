package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/nao1215/wordlist/internal/model"
)

// ErrLocked is returned when another process holds the report lock until
// the context is done.
var ErrLocked = errors.New("report file is locked by another process")

// LockSuffix is appended to a report path to name its lock file.
const LockSuffix = ".lock"

// reportFileMode is the permission of written report files.
const reportFileMode = 0o644

// lockRetryDelay is the pause between lock attempts.
const lockRetryDelay = 50 * time.Millisecond

// WriteManifestFile writes m to path as indented JSON, replacing any
// previous manifest.
func WriteManifestFile(ctx context.Context, path string, m *model.Manifest) error {
	return WriteReportFile(ctx, path, m, func(output io.Writer) Writer {
		return NewJSONWriter(output, WithPrettyPrint())
	})
}

// WriteReportFile renders m with the writer newWriter creates and stores
// the result at path.
//
// The write holds an advisory lock on path+LockSuffix, goes to a temporary
// file in the same directory and is renamed over path, so readers see
// either the previous report or the complete new one.
func WriteReportFile(ctx context.Context, path string, m *model.Manifest, newWriter WriterFactory) error {
	lock := flock.New(path + LockSuffix)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrLocked, path, ctxErr)
		}
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer lock.Unlock() //nolint:errcheck // Best effort; the lock is released on process exit anyway

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Already renamed on success

	if _, err := newWriter(tmp).WriteManifest(m); err != nil {
		tmp.Close() //nolint:errcheck,gosec // Write error takes precedence
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, reportFileMode); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
