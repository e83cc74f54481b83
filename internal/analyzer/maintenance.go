package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wikiqual/wikiqual/internal/model"
)

// maintenanceTemplateKeywords mark cleanup and sourcing banners. Any
// transcluded template whose name contains one of these counts as a
// maintenance template.
var maintenanceTemplateKeywords = []string{
	"غير مراجعة", "يتيم", "تنظيف", "بذرة", "مصدر", "لا مصدر",
	"توضيح", "تدقيق", "وصلات قليلة", "غير مصنفة",
	"orphan", "stub", "cleanup", "unreferenced", "citation needed",
}

// Flag keyword pairs for the dedicated maintenance flags.
var (
	orphanKeywords  = []string{"يتيم", "orphan"}
	stubKeywords    = []string{"بذرة", "stub"}
	cleanupKeywords = []string{"تنظيف", "cleanup"}
)

// MaintenanceAnalyzer evaluates the article's upkeep state: maintenance
// banners, categorization, and orphan/stub/cleanup flags.
//
// The axis ceiling is 20; the scoring engine clamps it into the
// maintenance weight of 15 so a spotless article still cannot dominate
// the total through upkeep alone.
type MaintenanceAnalyzer struct{}

// NewMaintenanceAnalyzer creates a maintenance analyzer.
func NewMaintenanceAnalyzer() *MaintenanceAnalyzer { return &MaintenanceAnalyzer{} }

// Name returns the axis name.
func (m *MaintenanceAnalyzer) Name() string { return model.AxisMaintenance }

// Max returns the axis score ceiling.
func (m *MaintenanceAnalyzer) Max() float64 { return 20 }

// Analyze evaluates the article's maintenance state.
func (m *MaintenanceAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: m.Max(), Details: map[string]any{}}
	if article.FullText == "" {
		result.Details["maintenance_templates"] = 0
		return result, nil
	}

	maintenance := 0
	for _, tpl := range article.Templates {
		lower := strings.ToLower(tpl)
		for _, kw := range maintenanceTemplateKeywords {
			if strings.Contains(lower, kw) {
				maintenance++
				break
			}
		}
	}

	categories := len(article.Categories)
	orphan := hasAnyTemplate(article, orphanKeywords)
	stub := hasAnyTemplate(article, stubKeywords)
	cleanup := hasAnyTemplate(article, cleanupKeywords)

	var score float64
	switch {
	case maintenance == 0:
		score = 12
	case maintenance == 1:
		score = 8
	case maintenance == 2:
		score = 5
	case maintenance <= 4:
		score = 2
	}

	switch {
	case categories >= 5:
		score += 8
	case categories >= 3:
		score += 6
	case categories >= 1:
		score += 4
	}

	result.Details["maintenance_templates"] = maintenance
	result.Details["categories"] = categories
	result.Details["is_orphan"] = orphan
	result.Details["is_stub_tagged"] = stub
	result.Details["needs_cleanup"] = cleanup

	result.Score = score
	result.Notes = m.notes(maintenance, categories, orphan, stub, cleanup)
	result.Clamp()
	return result, nil
}

func hasAnyTemplate(article *model.Article, keywords []string) bool {
	for _, kw := range keywords {
		if article.HasTemplate(kw) {
			return true
		}
	}
	return false
}

func (m *MaintenanceAnalyzer) notes(maintenance, categories int, orphan, stub, cleanup bool) []string {
	var notes []string

	if maintenance > 0 {
		notes = append(notes, fmt.Sprintf("%d maintenance banners are present; resolve the flagged issues.", maintenance))
	}
	if categories == 0 {
		notes = append(notes, "The article is uncategorized; add appropriate categories.")
	} else if categories < 3 {
		notes = append(notes, fmt.Sprintf("Only %d categories are set; richer categorization aids discovery.", categories))
	}
	if orphan {
		notes = append(notes, "The article is tagged as orphaned; link to it from related articles.")
	}
	if stub {
		notes = append(notes, "The article carries a stub tag; expand it and remove the tag.")
	}
	if cleanup {
		notes = append(notes, "The article carries a cleanup tag; address the listed problems.")
	}
	return notes
}

var _ AxisAnalyzer = (*MaintenanceAnalyzer)(nil)
