package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths
	// and the history database file name.
	AppName = "wordlist"

	// DefaultRoot is the directory scanned when no root is given.
	DefaultRoot = "."

	// DefaultManifestName is the manifest file written into the root directory.
	DefaultManifestName = "manifest.json"

	// DefaultBinarySampleLines is how many lines are inspected for control
	// characters. Only a prefix of the file is sampled; a control character
	// after this point does not produce a warning.
	DefaultBinarySampleLines = 100

	// DefaultJobs of 1 validates files one at a time, in discovery order.
	DefaultJobs = 1
)

// DefaultExtensions returns the file extensions treated as wordlists.
func DefaultExtensions() []string {
	return []string{".txt", ".lst"}
}

// DefaultSkipDirs returns the reserved directory names excluded from
// recursive discovery: version control metadata, dependency caches,
// the tool's own scripts directory and bytecode caches.
func DefaultSkipDirs() []string {
	return []string{".git", "node_modules", "scripts", "__pycache__"}
}

// Config holds all configuration options for wordlist.
// It is populated from defaults, then the optional config file, then CLI
// flags, and is passed explicitly to the components that need it.
type Config struct {
	// Root is the directory containing the wordlists.
	Root string

	// Extensions lists the file extensions (with leading dot) that identify
	// wordlist files. Matching is case-sensitive.
	Extensions []string

	// SkipDirs lists directory names that are never descended into during
	// recursive discovery.
	SkipDirs []string

	// ManifestName is the file name of the manifest, relative to Root.
	// An absolute path is used as-is.
	ManifestName string

	// BinarySampleLines is the number of leading lines scanned for control characters.
	BinarySampleLines int

	// Jobs is the number of files validated concurrently.
	Jobs int

	// SortDedup selects sort-based deduplication instead of order-preserving.
	SortDedup bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit config file path from --config.
	ConfigFilePath string

	// MarkdownReport is an optional path for a Markdown validation report.
	MarkdownReport string

	// SaveHistory stores each validation run in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Root:              DefaultRoot,
		Extensions:        DefaultExtensions(),
		SkipDirs:          DefaultSkipDirs(),
		ManifestName:      DefaultManifestName,
		BinarySampleLines: DefaultBinarySampleLines,
		Jobs:              DefaultJobs,
		DBDir:             XDGDataDir(),
	}
}

// ManifestPath returns the full path of the manifest file.
func (c *Config) ManifestPath() string {
	if filepath.IsAbs(c.ManifestName) {
		return c.ManifestName
	}
	return filepath.Join(c.Root, c.ManifestName)
}

// XDGDataDir returns the XDG data directory for wordlist.
// On Linux: ~/.local/share/wordlist
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wordlist.
// On Linux: ~/.config/wordlist
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return ErrInvalidExtension
		}
	}

	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}

	if c.BinarySampleLines <= 0 {
		return ErrInvalidSampleLines
	}

	if strings.TrimSpace(c.ManifestName) == "" {
		return ErrEmptyManifestName
	}

	return nil
}
