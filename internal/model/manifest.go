package model

// Summary holds the aggregate counters of a validation run.
type Summary struct {
	ValidFiles         int   `json:"valid_files"`
	InvalidFiles       int   `json:"invalid_files"`
	TotalWarnings      int   `json:"total_warnings"`
	TotalSizeBytes     int64 `json:"total_size_bytes"`
	TotalEntries       int   `json:"total_entries"`
	TotalUniqueEntries int   `json:"total_unique_entries"`
}

// Manifest is the aggregate report of one validation run.
// It is serialized once per run and overwrites the previous manifest.
type Manifest struct {
	// ValidationDate is the run date in YYYY-MM-DD form.
	ValidationDate string `json:"validation_date"`

	// TotalFiles is the number of discovered wordlists.
	TotalFiles int `json:"total_files"`

	// Files holds one result per wordlist, in discovery order.
	Files []*WordlistFile `json:"files"`

	Summary Summary `json:"summary"`
}

// NewManifest creates an empty manifest stamped with date.
func NewManifest(date string) *Manifest {
	return &Manifest{
		ValidationDate: date,
		Files:          []*WordlistFile{},
	}
}

// Add appends a file result and folds it into the summary.
// TotalFiles tracks the number of results added.
func (m *Manifest) Add(f *WordlistFile) {
	m.Files = append(m.Files, f)
	m.TotalFiles = len(m.Files)

	if f.Valid {
		m.Summary.ValidFiles++
	} else {
		m.Summary.InvalidFiles++
	}
	m.Summary.TotalWarnings += len(f.Warnings)
	m.Summary.TotalSizeBytes += f.SizeBytes
	m.Summary.TotalEntries += f.NonEmptyLines
	m.Summary.TotalUniqueEntries += f.UniqueEntries
}

// Passed reports whether no file in the manifest is invalid.
func (m *Manifest) Passed() bool {
	return m.Summary.InvalidFiles == 0
}

// InvalidFiles returns the results that failed validation, in manifest order.
func (m *Manifest) InvalidFiles() []*WordlistFile {
	var invalid []*WordlistFile
	for _, f := range m.Files {
		if !f.Valid {
			invalid = append(invalid, f)
		}
	}
	return invalid
}
