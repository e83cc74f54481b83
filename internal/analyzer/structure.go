package analyzer

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/textutil"
)

// Structure axis thresholds.
const (
	stubSectionMax     = 1
	stubLengthMax      = 1500
	shortArticleLen    = 2500
	externalLinksGate  = 3000
	seeAlsoGate        = 5000
	emptySectionLen    = 50
	longIntroSentence  = 200
	introRatioLow      = 0.10
	introRatioHigh     = 0.20
	balanceLongLen     = 3000
	balanceShortLen    = 2000
	balanceMinSections = 2
	balanceMaxSections = 5
)

var introSentenceRe = regexp.MustCompile(`[.!؟?؛;]+`)

// Section title matchers for expected sections.
var (
	referenceSectionRe = regexp.MustCompile(`(?i)مراجع|references|مصادر`)
	externalLinksRe    = regexp.MustCompile(`(?i)وصلات خارجية|external links|روابط خارجية`)
	seeAlsoRe          = regexp.MustCompile(`(?i)انظر أيضا|انظر أيضاً|see also|طالع أيضا`)
	earlyLifeRe        = regexp.MustCompile(`(?i)حياته|نشأته|سيرته|early life|biography`)
)

// StructureAnalyzer evaluates the article skeleton: lead proportion,
// heading hierarchy, expected sections, and section balance.
type StructureAnalyzer struct{}

// NewStructureAnalyzer creates a structure analyzer.
func NewStructureAnalyzer() *StructureAnalyzer { return &StructureAnalyzer{} }

// Name returns the axis name.
func (s *StructureAnalyzer) Name() string { return model.AxisStructure }

// Max returns the axis score ceiling.
func (s *StructureAnalyzer) Max() float64 { return 25 }

// Analyze evaluates the article structure.
func (s *StructureAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: s.Max(), Details: map[string]any{}}
	if article.FullText == "" {
		result.Details["is_stub"] = true
		return result, nil
	}

	length := article.Length()
	introLen := textutil.RuneLen(article.IntroText)
	introRatio := 0.0
	if length > 0 {
		introRatio = float64(introLen) / float64(length)
	}

	levelCounts := make(map[int]int)
	for _, sec := range article.Sections {
		levelCounts[sec.Level]++
	}
	h2 := levelCounts[2]
	depth := headingDepth(levelCounts)

	isStub := len(article.Sections) <= stubSectionMax && length < stubLengthMax

	introScore := introProportionScore(introLen, introRatio)
	sectionScore := sectionHierarchyScore(isStub, length, h2, depth)

	missing, presentBonus := expectedSections(article, length)
	balanced := isBalanced(length, h2)

	emptySections := 0
	for _, sec := range article.Sections {
		if textutil.RuneLen(sec.Content) < emptySectionLen {
			emptySections++
		}
	}

	longIntro := longIntroSentences(article.IntroText)

	score := float64(introScore + sectionScore + presentBonus)
	if balanced {
		score += 3
	}
	score -= math.Min(3, float64(emptySections))
	if article.Type() != model.TypeMedical {
		score -= math.Min(2, float64(longIntro))
	}

	result.Details["intro_length"] = introLen
	result.Details["intro_ratio"] = math.Round(introRatio*1000) / 1000
	result.Details["section_count"] = len(article.Sections)
	result.Details["h2_count"] = h2
	result.Details["heading_depth"] = depth
	result.Details["missing_sections"] = missing
	result.Details["empty_sections"] = emptySections
	result.Details["long_intro_sentences"] = longIntro
	result.Details["is_stub"] = isStub
	result.Details["balanced"] = balanced

	result.Score = score
	result.Notes = s.notes(article, &result, length)
	result.Clamp()
	return result, nil
}

// introProportionScore rewards a lead that covers 10 to 20 percent of
// the article, with a length-only fallback outside the band.
func introProportionScore(introLen int, ratio float64) int {
	if ratio >= introRatioLow && ratio <= introRatioHigh {
		return 10
	}
	switch {
	case introLen >= 400:
		return 8
	case introLen >= 300:
		return 6
	case introLen >= 200:
		return 4
	case introLen >= 150:
		return 2
	default:
		return 0
	}
}

// sectionHierarchyScore rates the heading skeleton. Stubs score zero
// regardless of headings.
func sectionHierarchyScore(isStub bool, length, h2, depth int) int {
	if isStub {
		return 0
	}
	if length < shortArticleLen {
		return 6
	}

	score := 0
	switch {
	case h2 >= 4:
		score = 10
	case h2 >= 3:
		score = 8
	case h2 >= 2:
		score = 6
	case h2 == 1:
		score = 3
	}
	switch {
	case depth >= 3:
		score += 2
	case depth == 2:
		score++
	}
	return score
}

// headingDepth counts the distinct heading levels in use.
func headingDepth(levelCounts map[int]int) int {
	depth := 0
	for level := 2; level <= 6; level++ {
		if levelCounts[level] > 0 {
			depth++
		}
	}
	return depth
}

// expectedSections returns the expected-but-missing section names and
// the bonus for the expected ones present. A references section is
// always expected; external links and see-also only past the length
// gates; an early-life section only for biographies.
func expectedSections(article *model.Article, length int) (missing []string, bonus int) {
	type expectation struct {
		name    string
		matcher *regexp.Regexp
		scored  bool
	}
	expected := []expectation{
		{"مراجع", referenceSectionRe, true},
	}
	if length > externalLinksGate {
		expected = append(expected, expectation{"وصلات خارجية", externalLinksRe, true})
	}
	if length > seeAlsoGate {
		expected = append(expected, expectation{"انظر أيضاً", seeAlsoRe, true})
	}
	if article.Type() == model.TypeBiography {
		expected = append(expected, expectation{"نشأته", earlyLifeRe, false})
	}

	for _, e := range expected {
		found := false
		for _, sec := range article.Sections {
			if e.matcher.MatchString(sec.Title) {
				found = true
				break
			}
		}
		if found {
			if e.scored {
				bonus++
			}
			continue
		}
		missing = append(missing, e.name)
	}
	return missing, bonus
}

// isBalanced reports whether the section count fits the article length.
func isBalanced(length, h2 int) bool {
	if length > balanceLongLen && h2 < balanceMinSections {
		return false
	}
	if length < balanceShortLen && h2 > balanceMaxSections {
		return false
	}
	return true
}

// longIntroSentences counts lead sentences over the length threshold.
func longIntroSentences(intro string) int {
	count := 0
	for _, s := range introSentenceRe.Split(intro, -1) {
		if textutil.RuneLen(strings.TrimSpace(s)) > longIntroSentence {
			count++
		}
	}
	return count
}

func (s *StructureAnalyzer) notes(article *model.Article, r *model.AxisResult, length int) []string {
	var notes []string

	if r.BoolDetail("is_stub") {
		notes = append(notes, "The article is stub-like; expand the content and add sections.")
	}
	if missing, ok := r.Detail("missing_sections").([]string); ok && len(missing) > 0 {
		notes = append(notes, fmt.Sprintf("Expected sections are missing: %s.", strings.Join(missing, "، ")))
	}
	if !r.BoolDetail("balanced") {
		if length > balanceLongLen {
			notes = append(notes, "The article is long but has few top-level sections; split the content.")
		} else {
			notes = append(notes, "The article is short but heavily sectioned; merge related sections.")
		}
	}
	if empty := r.IntDetail("empty_sections"); empty > 0 {
		notes = append(notes, fmt.Sprintf("%d sections are nearly empty; fill or remove them.", empty))
	}
	if long := r.IntDetail("long_intro_sentences"); long > 0 && article.Type() != model.TypeMedical {
		notes = append(notes, fmt.Sprintf("%d lead sentences are overly long; split them.", long))
	}
	if r.IntDetail("intro_length") > 0 && r.FloatDetail("intro_ratio") < introRatioLow && length > stubLengthMax {
		notes = append(notes, "The lead is short relative to the article; summarize the main points in it.")
	}
	return notes
}

var _ AxisAnalyzer = (*StructureAnalyzer)(nil)
