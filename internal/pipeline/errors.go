package pipeline

import "errors"

var (
	// ErrFileNotFound is returned by the stat step when the wordlist does not exist.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrNotRegularFile is returned by the stat step for directories and devices.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrStepPanic wraps a value recovered from a panicking step.
	ErrStepPanic = errors.New("step panicked")
)
