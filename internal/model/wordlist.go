package model

// Encoding names recorded in WordlistFile.Encoding.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// Warning and error messages recorded on a WordlistFile.
const (
	WarnNonUTF8       = "Non-UTF-8 encoding detected"
	WarnBinaryContent = "Possible binary content detected"
	ErrMsgNotExist    = "File does not exist"
)

// WordlistFile is the validation result for one wordlist.
// It is computed fresh on every validation run and only persisted as part
// of a manifest.
//
// The optional statistics are pointers so that "not computed" (no non-empty
// lines, or analysis stopped early) is distinguishable from zero.
type WordlistFile struct {
	// Path is relative to the validation root when the file lies under it.
	Path string `json:"path"`

	// SizeBytes is the raw byte size of the file.
	SizeBytes int64 `json:"size_bytes"`

	// SHA256 is the lowercase hex SHA-256 digest of the raw bytes.
	SHA256 string `json:"sha256,omitempty"`

	// Encoding is EncodingUTF8 or EncodingLatin1; empty when decoding failed.
	Encoding string `json:"encoding,omitempty"`

	// Valid is false when any error was recorded.
	Valid bool `json:"valid"`

	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	TotalLines    int `json:"total_lines"`
	NonEmptyLines int `json:"non_empty_lines"`
	UniqueEntries int `json:"unique_entries"`

	DuplicateCount *int     `json:"duplicate_count,omitempty"`
	MinLength      *int     `json:"min_length,omitempty"`
	MaxLength      *int     `json:"max_length,omitempty"`
	AvgLength      *float64 `json:"avg_length,omitempty"`
}

// NewWordlistFile creates a valid, empty result for path.
// Errors and Warnings are non-nil so they serialize as [] rather than null.
func NewWordlistFile(path string) *WordlistFile {
	return &WordlistFile{
		Path:     path,
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

// AddError records an error and marks the file invalid.
func (w *WordlistFile) AddError(msg string) {
	w.Errors = append(w.Errors, msg)
	w.Valid = false
}

// AddWarning records a warning. Warnings never affect validity.
func (w *WordlistFile) AddWarning(msg string) {
	w.Warnings = append(w.Warnings, msg)
}

// Duplicates returns the duplicate count, or 0 when none were found.
func (w *WordlistFile) Duplicates() int {
	if w.DuplicateCount == nil {
		return 0
	}
	return *w.DuplicateCount
}

// ErrorResult is the error-only result returned for a file that could not
// be validated at all, such as a path that does not exist. It carries no
// statistics.
type ErrorResult struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}
