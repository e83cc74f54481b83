package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one grammar rule: a pattern plus the description and
// suggestion shown when it matches.
//
// Design decision: a rule is a tagged variant. It either wraps an
// already-compiled matcher or carries a raw pattern source with flags,
// compiled exactly once by Compile. This keeps externally supplied rule
// lists (which arrive as strings) and built-in rules (declared with
// MustCompile) behind one type without per-call re-interpretation.
type Rule struct {
	// Name identifies the rule in hit reports and logs.
	Name string `yaml:"name"`

	// Pattern is the raw regular expression source. Ignored when the
	// rule was constructed around a precompiled matcher.
	Pattern string `yaml:"pattern"`

	// Flags holds regex flags; only "i" (case-insensitive) is honored.
	Flags string `yaml:"flags,omitempty"`

	// Description explains the problem the rule detects.
	Description string `yaml:"description"`

	// Suggestion proposes the fix.
	Suggestion string `yaml:"suggestion,omitempty"`

	// compiled is the matcher, set by Compile or NewCompiledRule.
	compiled *regexp.Regexp
}

// NewCompiledRule wraps an already-compiled matcher into a Rule.
func NewCompiledRule(name string, re *regexp.Regexp, description, suggestion string) Rule {
	return Rule{
		Name:        name,
		Pattern:     re.String(),
		Description: description,
		Suggestion:  suggestion,
		compiled:    re,
	}
}

// dangerousShapes flag pattern sources prone to catastrophic
// backtracking. The regexp package cannot backtrack, but rule files are
// shared with backtracking engines, so unsafe shapes are rejected here
// to keep the rule set portable.
var dangerousShapes = []*regexp.Regexp{
	regexp.MustCompile(`\([^)]*\)\+\+`),
	regexp.MustCompile(`\([^)]*\)\*\*`),
	regexp.MustCompile(`\([^)]*\)\+\*`),
	regexp.MustCompile(`\(.*\)\+\(`),
	regexp.MustCompile(`\{0,999\}`),
}

// IsSafePattern reports whether a pattern source passes the
// catastrophic-backtracking heuristic.
func IsSafePattern(pattern string) bool {
	for _, shape := range dangerousShapes {
		if shape.MatchString(pattern) {
			return false
		}
	}
	return true
}

// Compile validates and compiles the rule's pattern. It is a no-op for
// rules built around a precompiled matcher. Unsafe patterns are
// rejected before compilation.
func (r *Rule) Compile() error {
	if r.compiled != nil {
		return nil
	}
	if strings.TrimSpace(r.Pattern) == "" {
		return ErrEmptyPattern
	}
	if !IsSafePattern(r.Pattern) {
		return fmt.Errorf("%w: %s", ErrUnsafePattern, r.Pattern)
	}

	pattern := r.Pattern
	if strings.Contains(r.Flags, "i") {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compile rule %q: %w", r.Name, err)
	}
	r.compiled = re
	return nil
}

// Matcher returns the compiled matcher, compiling first if needed.
func (r *Rule) Matcher() (*regexp.Regexp, error) {
	if err := r.Compile(); err != nil {
		return nil, err
	}
	return r.compiled, nil
}
