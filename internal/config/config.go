package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen to keep single-document scoring fast while
// leaving headroom for batch runs over article dumps.
const (
	// DefaultBatchSize of 4 concurrent scorings balances throughput with
	// resource usage. Scoring is CPU-bound regular-expression work, so
	// values far above the core count buy nothing.
	DefaultBatchSize = 4

	// DefaultMaxArticleSize limits the size of article documents read
	// from disk. 20MB is far beyond any real encyclopedia article and
	// guards against accidentally pointing the tool at a dump file.
	DefaultMaxArticleSize = 20 * 1024 * 1024 // 20MB

	// DefaultRedundancyThreshold is the sentence-similarity ratio above
	// which two sentences count as near-duplicates.
	DefaultRedundancyThreshold = 0.85

	// AppName is the application name used for XDG directory paths.
	AppName = "wikiqual"
)

// Config holds all configuration options for wikiqual.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., RuleConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// RuleFile is the path to a YAML grammar rule file.
	// When empty, the built-in default rules are used.
	RuleFile string

	// CacheDir is the directory for the sqlite rule cache.
	// When empty, the XDG cache directory is used. Caching can be
	// disabled entirely with NoCache.
	CacheDir string

	// NoCache disables the rule cache. Rule files are then parsed and
	// compiled on every run.
	NoCache bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent scorings when processing
	// multiple articles. Higher values increase throughput but compete
	// for the same cores.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .wikiqual in the current directory,
	// the XDG config directory, and the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON report output instead of human-readable format.
	// When true, outputs the full report with all axis details.
	// When false, outputs a human-readable text report (default).
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable format.
	// When true, outputs GitHub Flavored Markdown with tables, alerts, and pie charts.
	// When false, outputs a human-readable text report (default).
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Articles is the list of article document paths to score.
	// Must contain at least one path.
	Articles []string

	// RedundancyThreshold is the sentence-similarity ratio above which
	// two sentences count as near-duplicates. Must be in (0, 1].
	RedundancyThreshold float64

	// MaxArticleSize is the maximum article document size in bytes to read.
	// Documents larger than this are rejected before decoding.
	// Set to 0 to use the default (20MB).
	MaxArticleSize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., batch size,
// similarity threshold). This also serves as documentation of what the
// defaults are.
func NewConfig() *Config {
	return &Config{
		BatchSize:           DefaultBatchSize,
		RedundancyThreshold: DefaultRedundancyThreshold,
		MaxArticleSize:      DefaultMaxArticleSize,
	}
}

// XDGDataDir returns the XDG data directory for wikiqual.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/wikiqual
// On macOS: ~/Library/Application Support/wikiqual
// On Windows: %LOCALAPPDATA%\wikiqual
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wikiqual.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/wikiqual
// On macOS: ~/Library/Application Support/wikiqual
// On Windows: %APPDATA%\wikiqual
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for wikiqual.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/wikiqual
// On macOS: ~/Library/Caches/wikiqual
// On Windows: %LOCALAPPDATA%\wikiqual\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// RuleCacheDir returns the effective rule cache directory: the configured
// CacheDir when set, otherwise the XDG cache directory. An empty string
// is returned when caching is disabled.
func (c *Config) RuleCacheDir() string {
	if c.NoCache {
		return ""
	}
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return XDGCacheDir()
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scoring begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one article to score
	if len(c.Articles) == 0 {
		return ErrNoArticle
	}

	// BatchSize must be positive; zero would mean no scoring
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// RedundancyThreshold must be in (0, 1]
	if c.RedundancyThreshold <= 0 || c.RedundancyThreshold > 1 {
		return ErrInvalidRedundancyThreshold
	}

	// MaxArticleSize must be non-negative; zero means the default
	if c.MaxArticleSize < 0 {
		return ErrInvalidMaxArticleSize
	}

	return nil
}
