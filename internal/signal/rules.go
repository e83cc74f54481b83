package signal

import (
	"log/slog"

	"github.com/wikiqual/wikiqual/internal/rules"
)

// maxRuleHits caps the number of distinct rule hits reported per call.
const maxRuleHits = 10

// maxHitExamples caps the matched-text examples kept per rule hit.
const maxHitExamples = 2

// Hit records one rule that matched the text.
type Hit struct {
	// Name is the matching rule's name.
	Name string

	// Count is how many times the rule matched.
	Count int

	// Examples holds up to two matched strings.
	Examples []string

	// Description and Suggestion come from the rule itself.
	Description string
	Suggestion  string
}

// RuleReport is the result of applying a rule list to a text span.
type RuleReport struct {
	// Count sums matches across all valid rules.
	Count int

	// Hits lists matching rules in rule order, capped at maxRuleHits.
	Hits []Hit

	// Skipped counts rules dropped for failing validation.
	Skipped int
}

// ApplyRules matches every supplied rule against text. Rules that fail
// to validate or compile are skipped with a warning and never abort the
// batch. Rule evaluation order is the list order.
func ApplyRules(text string, ruleList []rules.Rule, logger *slog.Logger) RuleReport {
	if logger == nil {
		logger = slog.Default()
	}

	var report RuleReport
	if text == "" {
		return report
	}

	for i := range ruleList {
		r := &ruleList[i]
		matcher, err := r.Matcher()
		if err != nil {
			logger.Warn("skipping invalid grammar rule",
				"rule", r.Name,
				"error", err)
			report.Skipped++
			continue
		}

		matches := matcher.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}

		report.Count += len(matches)
		if len(report.Hits) >= maxRuleHits {
			continue
		}

		examples := matches
		if len(examples) > maxHitExamples {
			examples = examples[:maxHitExamples]
		}
		report.Hits = append(report.Hits, Hit{
			Name:        r.Name,
			Count:       len(matches),
			Examples:    examples,
			Description: r.Description,
			Suggestion:  r.Suggestion,
		})
	}
	return report
}
