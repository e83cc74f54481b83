package rules

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the YAML shape of an external rule file.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadResult carries a loaded rule set plus the number of rules the
// loader had to skip.
type LoadResult struct {
	// Rules are the validated, compiled rules in file order.
	Rules []Rule

	// Skipped counts rules dropped for malformed or unsafe patterns.
	Skipped int
}

// LoadFile reads a YAML rule file and returns the validated, compiled
// rules. Malformed or unsafe patterns are skipped with a warning, never
// aborting the batch. A missing file returns ErrRuleFileNotFound so
// callers can decide whether that is fatal.
func LoadFile(path string, logger *slog.Logger) (*LoadResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided rule path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRuleFileNotFound
		}
		return nil, err
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rule file %s: %w", path, err)
	}

	return compileAll(rf.Rules, logger), nil
}

// compileAll validates and compiles each rule, dropping the ones that
// fail with a warning.
func compileAll(in []Rule, logger *slog.Logger) *LoadResult {
	result := &LoadResult{Rules: make([]Rule, 0, len(in))}
	for _, r := range in {
		if err := r.Compile(); err != nil {
			logger.Warn("skipping invalid rule",
				"rule", r.Name,
				"pattern", r.Pattern,
				"error", err)
			result.Skipped++
			continue
		}
		result.Rules = append(result.Rules, r)
	}
	return result
}

// Load returns the rule set for the given path. An empty path yields
// the built-in default rules.
func Load(path string, logger *slog.Logger) (*LoadResult, error) {
	if path == "" {
		return &LoadResult{Rules: DefaultRules()}, nil
	}
	return LoadFile(path, logger)
}
