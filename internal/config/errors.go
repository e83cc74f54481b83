package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoArticle is returned when no article document is specified.
	// This error occurs when neither --list nor a positional argument
	// provides an article path.
	ErrNoArticle = errors.New("no article specified: provide an article document path or use --list")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scorings, effectively
	// stopping the run.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidRedundancyThreshold is returned when the similarity
	// threshold falls outside (0, 1].
	ErrInvalidRedundancyThreshold = errors.New("invalid redundancy threshold: must be in (0, 1]")

	// ErrInvalidMaxArticleSize is returned when the max article size is
	// negative. Use 0 to fall back to the default limit.
	ErrInvalidMaxArticleSize = errors.New("invalid max article size: must be non-negative")
)
