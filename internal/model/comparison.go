package model

import "slices"

// Validity trend of a Comparison.
const (
	TrendImproved  = "improved"
	TrendWorsened  = "worsened"
	TrendUnchanged = "unchanged"
)

// FileChange describes a wordlist present in both runs whose content changed.
type FileChange struct {
	Path           string `json:"path"`
	PreviousSHA256 string `json:"previous_sha256"`
	CurrentSHA256  string `json:"current_sha256"`

	// EntriesDelta is the change in non-empty lines.
	EntriesDelta int `json:"entries_delta"`

	// ValidityChanged is true when the file passed in one run and failed
	// in the other.
	ValidityChanged bool `json:"validity_changed"`
}

// Comparison is the difference between two manifests of the same root.
type Comparison struct {
	PreviousDate string `json:"previous_date"`
	CurrentDate  string `json:"current_date"`

	AddedFiles   []string     `json:"added_files"`
	RemovedFiles []string     `json:"removed_files"`
	ChangedFiles []FileChange `json:"changed_files"`

	// UnchangedCount is the number of files with identical digests.
	UnchangedCount int `json:"unchanged_count"`

	EntriesDelta       int `json:"entries_delta"`
	UniqueEntriesDelta int `json:"unique_entries_delta"`
	InvalidFilesDelta  int `json:"invalid_files_delta"`

	// Trend is TrendImproved when fewer files are invalid than before,
	// TrendWorsened when more are.
	Trend string `json:"trend"`
}

// HasChanges reports whether any file was added, removed or changed.
func (c *Comparison) HasChanges() bool {
	return len(c.AddedFiles) > 0 || len(c.RemovedFiles) > 0 || len(c.ChangedFiles) > 0
}

// Compare computes the difference from previous to current.
// Files are matched by path and compared by SHA-256 digest.
func Compare(previous, current *Manifest) *Comparison {
	c := &Comparison{
		PreviousDate:       previous.ValidationDate,
		CurrentDate:        current.ValidationDate,
		AddedFiles:         []string{},
		RemovedFiles:       []string{},
		ChangedFiles:       []FileChange{},
		EntriesDelta:       current.Summary.TotalEntries - previous.Summary.TotalEntries,
		UniqueEntriesDelta: current.Summary.TotalUniqueEntries - previous.Summary.TotalUniqueEntries,
		InvalidFilesDelta:  current.Summary.InvalidFiles - previous.Summary.InvalidFiles,
	}

	before := make(map[string]*WordlistFile, len(previous.Files))
	for _, f := range previous.Files {
		before[f.Path] = f
	}
	after := make(map[string]*WordlistFile, len(current.Files))
	for _, f := range current.Files {
		after[f.Path] = f
	}

	for _, cur := range current.Files {
		prev, ok := before[cur.Path]
		if !ok {
			c.AddedFiles = append(c.AddedFiles, cur.Path)
			continue
		}
		if prev.SHA256 == cur.SHA256 && prev.Valid == cur.Valid {
			c.UnchangedCount++
			continue
		}
		c.ChangedFiles = append(c.ChangedFiles, FileChange{
			Path:            cur.Path,
			PreviousSHA256:  prev.SHA256,
			CurrentSHA256:   cur.SHA256,
			EntriesDelta:    cur.NonEmptyLines - prev.NonEmptyLines,
			ValidityChanged: prev.Valid != cur.Valid,
		})
	}
	for _, prev := range previous.Files {
		if _, ok := after[prev.Path]; !ok {
			c.RemovedFiles = append(c.RemovedFiles, prev.Path)
		}
	}

	slices.Sort(c.AddedFiles)
	slices.Sort(c.RemovedFiles)

	switch {
	case c.InvalidFilesDelta < 0:
		c.Trend = TrendImproved
	case c.InvalidFilesDelta > 0:
		c.Trend = TrendWorsened
	default:
		c.Trend = TrendUnchanged
	}

	return c
}
