package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/rules"
	"github.com/wikiqual/wikiqual/internal/signal"
	"github.com/wikiqual/wikiqual/internal/textutil"
)

// translationTemplateKeywords mark articles tagged as raw machine
// translations.
var translationTemplateKeywords = []string{
	"ترجمة آلية", "translated",
}

// GrammarAnalyzer applies the spelling and style rules to the leading
// paragraphs and scores the violation count.
type GrammarAnalyzer struct {
	rules  []rules.Rule
	logger *slog.Logger
}

// NewGrammarAnalyzer creates a grammar analyzer over the given rules.
func NewGrammarAnalyzer(ruleList []rules.Rule, logger *slog.Logger) *GrammarAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &GrammarAnalyzer{rules: ruleList, logger: logger}
}

// Name returns the axis name.
func (g *GrammarAnalyzer) Name() string { return model.AxisGrammar }

// Max returns the axis score ceiling.
func (g *GrammarAnalyzer) Max() float64 { return 5 }

// Analyze applies the rule set to the first substantial paragraphs.
// Running over the lead only bounds the regexp work on very long
// articles while still catching systematic errors.
func (g *GrammarAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: g.Max(), Details: map[string]any{}}
	if article.FullText == "" {
		result.Details["violations"] = 0
		return result, nil
	}

	clean := textutil.CleanWikiMarkup(article.FullText)
	text := leadingParagraphs(textutil.SegmentParagraphs(clean))
	report := signal.ApplyRules(text, g.rules, g.logger)

	var score float64
	switch {
	case report.Count == 0:
		score = 5
	case report.Count <= 2:
		score = 3
	case report.Count <= 5:
		score = 2
	case report.Count <= 10:
		score = 1
	}

	translated := false
	for _, kw := range translationTemplateKeywords {
		if article.HasTemplate(kw) {
			translated = true
			break
		}
	}
	if translated {
		score -= 2
	}

	result.Details["violations"] = report.Count
	result.Details["skipped_rules"] = report.Skipped
	result.Details["rule_hits"] = grammarHitExamples(report.Hits)
	result.Details["translation_tagged"] = translated

	result.Score = math.Max(0, score)
	result.Notes = g.notes(report, translated)
	result.Clamp()
	return result, nil
}

func (g *GrammarAnalyzer) notes(report signal.RuleReport, translated bool) []string {
	var notes []string

	if report.Count > 0 {
		notes = append(notes, fmt.Sprintf("%d spelling or style violations were found in the lead paragraphs.", report.Count))
	}
	for i, hit := range report.Hits {
		if i == 3 {
			break
		}
		if hit.Suggestion != "" {
			notes = append(notes, fmt.Sprintf("Rule %q matched %d times: %s", hit.Name, hit.Count, hit.Suggestion))
		}
	}
	if translated {
		notes = append(notes, "The article is tagged as a machine translation; review the prose thoroughly.")
	}
	return notes
}

var _ AxisAnalyzer = (*GrammarAnalyzer)(nil)
