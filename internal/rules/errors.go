package rules

import "errors"

var (
	// ErrEmptyPattern is returned when a rule carries no pattern source
	// and no precompiled matcher.
	ErrEmptyPattern = errors.New("rule has no pattern")

	// ErrUnsafePattern is returned when a pattern is heuristically
	// flagged as prone to catastrophic backtracking.
	ErrUnsafePattern = errors.New("rule pattern is unsafe")

	// ErrRuleFileNotFound is returned when the given rule file does not
	// exist.
	ErrRuleFileNotFound = errors.New("rule file not found")
)
