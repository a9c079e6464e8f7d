package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wordlist"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .wordlist configuration file.
// Every field is optional; unset fields keep the value already in Config.
type File struct {
	// Root is the wordlist directory.
	Root string `yaml:"root,omitempty"`

	// Extensions replaces the default wordlist extensions.
	Extensions []string `yaml:"extensions,omitempty"`

	// SkipDirs replaces the default reserved directory names.
	SkipDirs []string `yaml:"skipDirs,omitempty"`

	// Manifest is the manifest file name or absolute path.
	Manifest string `yaml:"manifest,omitempty"`

	// BinarySampleLines overrides the number of lines scanned for control characters.
	BinarySampleLines int `yaml:"binarySampleLines,omitempty"`

	// Jobs overrides the number of concurrent validations.
	Jobs int `yaml:"jobs,omitempty"`

	// Dedup holds deduplication settings.
	Dedup DedupSection `yaml:"dedup,omitempty"`

	// History holds validation history settings.
	History HistorySection `yaml:"history,omitempty"`
}

// DedupSection configures the deduplicator.
type DedupSection struct {
	// Sort selects sort-based deduplication.
	Sort bool `yaml:"sort,omitempty"`
}

// HistorySection configures the validation history database.
type HistorySection struct {
	// Enabled stores every validation run.
	Enabled bool `yaml:"enabled,omitempty"`

	// Dir overrides the database directory.
	Dir string `yaml:"dir,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply overlays the non-zero settings of the file onto cfg.
func (cf *File) Apply(cfg *Config) {
	if cf.Root != "" {
		cfg.Root = cf.Root
	}
	if len(cf.Extensions) > 0 {
		cfg.Extensions = cf.Extensions
	}
	if len(cf.SkipDirs) > 0 {
		cfg.SkipDirs = cf.SkipDirs
	}
	if cf.Manifest != "" {
		cfg.ManifestName = cf.Manifest
	}
	if cf.BinarySampleLines != 0 {
		cfg.BinarySampleLines = cf.BinarySampleLines
	}
	if cf.Jobs != 0 {
		cfg.Jobs = cf.Jobs
	}
	if cf.Dedup.Sort {
		cfg.SortDedup = true
	}
	if cf.History.Enabled {
		cfg.SaveHistory = true
	}
	if cf.History.Dir != "" {
		cfg.DBDir = cf.History.Dir
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .wordlist in the current directory
// 3. Look for .wordlist in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
