// Package charset decodes raw wordlist bytes into text.
//
// Decoding is an ordered list of attempts: the first attempt that accepts
// the input wins and its name is reported alongside the text. When every
// attempt rejects the input, Decode returns a *DecodeError describing each
// failure. No attempt ever panics or partially succeeds.
package charset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/nao1215/wordlist/internal/model"
)

// Attempt is one decoding strategy.
type Attempt struct {
	// Name is the encoding name reported on success.
	Name string

	// Decode converts raw bytes to text or rejects them.
	Decode func(raw []byte) (string, error)
}

// Decoded is the successful outcome of Decode.
type Decoded struct {
	// Encoding is the Name of the attempt that succeeded.
	Encoding string

	// Text is the decoded content.
	Text string

	// Fallback is true when the first attempt was rejected.
	Fallback bool
}

// DecodeError is returned when no attempt accepted the input.
type DecodeError struct {
	// Failures holds one error per attempt, in attempt order.
	Failures []error
}

// Error implements error.
func (e *DecodeError) Error() string {
	if len(e.Failures) == 0 {
		return "no decoder configured"
	}
	msgs := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *DecodeError) Unwrap() []error {
	return e.Failures
}

// ErrInvalidUTF8 is the failure reported by the UTF-8 attempt.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 byte sequence")

// UTF8 accepts input that is entirely valid UTF-8.
var UTF8 = Attempt{
	Name: model.EncodingUTF8,
	Decode: func(raw []byte) (string, error) {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("'%s' codec: %w at byte %d", model.EncodingUTF8, ErrInvalidUTF8, firstInvalid(raw))
		}
		return string(raw), nil
	},
}

// Latin1 maps every byte to the code point of the same value (ISO 8859-1).
var Latin1 = Attempt{
	Name: model.EncodingLatin1,
	Decode: func(raw []byte) (string, error) {
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("'%s' codec: %w", model.EncodingLatin1, err)
		}
		return string(out), nil
	},
}

// DefaultAttempts returns UTF-8 followed by Latin-1.
func DefaultAttempts() []Attempt {
	return []Attempt{UTF8, Latin1}
}

// Decode tries each attempt in order. With no attempts given,
// DefaultAttempts is used.
func Decode(raw []byte, attempts ...Attempt) (Decoded, error) {
	if len(attempts) == 0 {
		attempts = DefaultAttempts()
	}

	failures := make([]error, 0, len(attempts))
	for i, attempt := range attempts {
		text, err := attempt.Decode(raw)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		return Decoded{Encoding: attempt.Name, Text: text, Fallback: i > 0}, nil
	}
	return Decoded{}, &DecodeError{Failures: failures}
}

// Lossy decodes raw as UTF-8, dropping invalid byte sequences.
func Lossy(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "")
}

// firstInvalid returns the offset of the first byte that does not start a
// valid UTF-8 sequence.
func firstInvalid(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(raw)
}
