package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wikiqual"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .wikiqual configuration file.
// Every field is optional; unset fields leave the corresponding Config
// value untouched, so CLI flags and file settings compose naturally.
type File struct {
	// RuleFile is the path to a YAML grammar rule file.
	RuleFile string `yaml:"ruleFile,omitempty"`

	// CacheDir overrides the rule cache directory.
	CacheDir string `yaml:"cacheDir,omitempty"`

	// NoCache disables the rule cache.
	NoCache bool `yaml:"noCache,omitempty"`

	// Format selects the report format: "text", "json", or "markdown".
	Format string `yaml:"format,omitempty"`

	// BatchSize sets the number of concurrent scorings.
	BatchSize int `yaml:"batchSize,omitempty"`

	// RedundancyThreshold sets the near-duplicate similarity cutoff.
	RedundancyThreshold float64 `yaml:"redundancyThreshold,omitempty"`
}

// LoadConfigFile loads settings from a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
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

// Apply copies the file's set fields onto the given Config.
// CLI flags should be applied after this so they win over file settings.
func (cf *File) Apply(c *Config) {
	if cf.RuleFile != "" {
		c.RuleFile = cf.RuleFile
	}
	if cf.CacheDir != "" {
		c.CacheDir = cf.CacheDir
	}
	if cf.NoCache {
		c.NoCache = true
	}
	switch cf.Format {
	case "json":
		c.JSONReport = true
	case "markdown":
		c.MarkdownReport = true
	}
	if cf.BatchSize > 0 {
		c.BatchSize = cf.BatchSize
	}
	if cf.RedundancyThreshold > 0 {
		c.RedundancyThreshold = cf.RedundancyThreshold
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .wikiqual in the current directory
// 3. Look for .wikiqual in the XDG config directory
// 4. Look for .wikiqual in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
