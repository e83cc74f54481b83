package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/textutil"
)

// Revision axis thresholds, in runes.
const (
	largeSectionLen = 4000
	smallSectionLen = 80
)

// lastEditDateRes match last-edited footers in either language.
var lastEditDateRes = []*regexp.Regexp{
	regexp.MustCompile(`آخر تعديل.*?\d{1,2}\s+(?:يناير|فبراير|مارس|أبريل|مايو|يونيو|يوليو|أغسطس|سبتمبر|أكتوبر|نوفمبر|ديسمبر)\s+\d{4}`),
	regexp.MustCompile(`Last edited.*?\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}`),
	regexp.MustCompile(`تم التعديل.*?\d{4}-\d{2}-\d{2}`),
}

// lowReviewTemplates suggest few reviewers have touched the article.
var lowReviewTemplates = []string{
	"غير مراجعة", "يتيمة", "تنظيف", "بذرة", "مصدر", "لا مصدر", "توضيح",
}

// editWarKeywords flag edit-conflict banners and revert summaries.
var editWarKeywords = []string{
	"تعارض تحرير", "خلاف تحريري", "نزاع محايد",
	"reverted", "استرجاع", "تراجع عن تعديل", "undid", "revert",
}

// protectionKeywords flag page protection notices.
var protectionKeywords = []string{
	"هذه الصفحة محمية", "صفحة محمية", "محمية كلياً", "محمية جزئياً",
	"padlock", "قفل",
}

// RevisionAnalyzer estimates editorial stability from textual signals.
// The axis is informational: it carries no weight in the total but its
// notes surface instability the weighted axes cannot see.
//
// Without revision history the edit and editor counts are heuristics
// over article size, sourcing, and maintenance tagging. The buckets are
// deliberately coarse.
type RevisionAnalyzer struct{}

// NewRevisionAnalyzer creates a revision-stability analyzer.
func NewRevisionAnalyzer() *RevisionAnalyzer { return &RevisionAnalyzer{} }

// Name returns the axis name.
func (r *RevisionAnalyzer) Name() string { return model.AxisRevision }

// Max returns the axis score ceiling.
func (r *RevisionAnalyzer) Max() float64 { return 10 }

// Analyze estimates the article's editorial stability.
func (r *RevisionAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: r.Max(), Details: map[string]any{}}
	if article.FullText == "" {
		result.Details["stability_score"] = 0
		return result, nil
	}

	length := article.Length()
	hasRefs := hasReferenceSection(article)

	edits := estimateRecentEdits(article.FullText, length, hasRefs)
	editors := estimateUniqueEditors(article, length, hasRefs)
	largeEdits, largeExamples := unbalancedSections(article)
	editWars := containsAnyFold(article, editWarKeywords)
	protection := containsAnyFold(article, protectionKeywords)

	score := 10.0
	if edits > 40 {
		score -= 2
	}
	if editors < 2 {
		score--
	}
	if largeEdits > 3 {
		score -= 2
	}
	if editWars {
		score -= 3
	}
	if protection {
		score--
	}
	if score < 0 {
		score = 0
	}

	result.Details["estimated_recent_edits"] = edits
	result.Details["estimated_unique_editors"] = editors
	result.Details["unbalanced_sections"] = largeEdits
	result.Details["unbalanced_examples"] = largeExamples
	result.Details["has_edit_wars"] = editWars
	result.Details["has_protection"] = protection
	result.Details["stability_score"] = score

	result.Score = score
	result.Notes = r.notes(&result)
	result.Clamp()
	return result, nil
}

// estimateRecentEdits guesses the recent edit volume. A last-edited
// footer implies an actively maintained article; size and sourcing
// scale the guess.
func estimateRecentEdits(text string, length int, hasRefs bool) int {
	found := false
	for _, re := range lastEditDateRes {
		if re.MatchString(text) {
			found = true
			break
		}
	}

	if found {
		switch {
		case length > 5000 && hasRefs:
			return 30
		case length > 2000:
			return 20
		default:
			return 10
		}
	}
	if length > 3000 {
		return 15
	}
	return 5
}

// estimateUniqueEditors guesses the editor count from maintenance
// tagging and article quality.
func estimateUniqueEditors(article *model.Article, length int, hasRefs bool) int {
	tagged := 0
	for _, tpl := range lowReviewTemplates {
		if article.HasTemplate(tpl) {
			tagged++
		}
	}

	switch {
	case tagged > 3:
		return 1
	case tagged > 1:
		return 2
	}

	sections := len(article.Sections)
	switch {
	case length > 5000 && hasRefs && sections >= 5:
		return 5
	case length > 3000 && sections >= 3:
		return 4
	case length > 1500:
		return 3
	default:
		return 2
	}
}

// unbalancedSections counts sections that are far too large or too
// small, skipping the reference and external-link appendices.
func unbalancedSections(article *model.Article) (count int, examples []string) {
	for _, sec := range article.Sections {
		n := textutil.RuneLen(sec.Content)
		switch {
		case n > largeSectionLen:
			count++
			if len(examples) < 3 {
				examples = append(examples, fmt.Sprintf("%s: oversized section (%d characters)", sec.Title, n))
			}
		case n > 0 && n < smallSectionLen:
			if referenceSectionRe.MatchString(sec.Title) || externalLinksRe.MatchString(sec.Title) {
				continue
			}
			count++
			if len(examples) < 3 {
				examples = append(examples, fmt.Sprintf("%s: undersized section (%d characters)", sec.Title, n))
			}
		}
	}
	return count, examples
}

func containsAnyFold(article *model.Article, keywords []string) bool {
	lowerText := strings.ToLower(article.FullText)
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	for _, tpl := range article.Templates {
		lower := strings.ToLower(tpl)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

func (r *RevisionAnalyzer) notes(res *model.AxisResult) []string {
	var notes []string

	edits := res.IntDetail("estimated_recent_edits")
	if edits > 40 {
		notes = append(notes, "The article sees heavy recent editing; it may be active or unstable.")
	} else if edits < 10 {
		notes = append(notes, "The article sees little editorial activity; it may need updating.")
	}
	if res.IntDetail("estimated_unique_editors") < 2 {
		notes = append(notes, "The article appears to have a single editor; collaborative review improves quality.")
	}
	if unbalanced := res.IntDetail("unbalanced_sections"); unbalanced > 3 {
		notes = append(notes, fmt.Sprintf("%d sections are unbalanced in size; redistribute the content.", unbalanced))
	}
	if res.BoolDetail("has_edit_wars") {
		notes = append(notes, "Edit-war signals were detected; the article may need neutral review.")
	}
	if res.BoolDetail("has_protection") {
		notes = append(notes, "The page is protected, which may indicate past disputes or sensitive content.")
	}
	if res.FloatDetail("stability_score") >= 8 && !res.BoolDetail("has_edit_wars") {
		notes = append(notes, "The article appears editorially stable.")
	}
	return notes
}

var _ AxisAnalyzer = (*RevisionAnalyzer)(nil)
