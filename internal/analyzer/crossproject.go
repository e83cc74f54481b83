package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wikiqual/wikiqual/internal/model"
)

// wikidataTemplates bind the article to a Wikidata item.
var wikidataTemplates = []string{
	"ويكي بيانات", "wikidata", "استشهاد بويكي بيانات", "cite q",
}

// interwikiTemplates link to articles in other language editions.
var interwikiTemplates = []string{
	"وإو", "interlanguage link", "ill", "ill-wd", "interlang",
	"وصلة بين لغوية",
}

// sisterProjectTemplates link to sibling Wikimedia projects.
var sisterProjectTemplates = []string{
	"شقيقات ويكيميديا", "روابط شقيقة", "commons", "wikisource",
	"wiktionary", "wikiquote", "wikibooks", "wikinews", "wikiversity",
	"wikivoyage", "كومنز", "ويكي مصدر", "ويكاموس", "ويكي الاقتباس",
}

// sisterProjectDomains are direct sister-project link hosts.
var sisterProjectDomains = []string{
	"commons.wikimedia.org", "wikidata.org", "wikisource.org",
	"wiktionary.org", "wikiquote.org", "wikibooks.org", "wikinews.org",
}

var qidRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)wikidata\.org/entity/(Q\d+)`),
	regexp.MustCompile(`(?i)wikidata\.org/wiki/(Q\d+)`),
	regexp.MustCompile(`\bQ(\d{3,})\b`),
}

// CrossProjectAnalyzer evaluates integration with Wikidata and the
// sister Wikimedia projects. Like the revision axis it is informational:
// unweighted, but required, and a source of notes.
type CrossProjectAnalyzer struct{}

// NewCrossProjectAnalyzer creates a cross-project integration analyzer.
func NewCrossProjectAnalyzer() *CrossProjectAnalyzer { return &CrossProjectAnalyzer{} }

// Name returns the axis name.
func (c *CrossProjectAnalyzer) Name() string { return model.AxisCrossProject }

// Max returns the axis score ceiling.
func (c *CrossProjectAnalyzer) Max() float64 { return 10 }

// Analyze evaluates the article's cross-project integration.
func (c *CrossProjectAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: c.Max(), Details: map[string]any{}}
	if article.FullText == "" {
		result.Details["linked_to_wikidata"] = false
		return result, nil
	}

	linked, itemID := wikidataBinding(article)
	interwiki := countTemplateUses(article, interwikiTemplates)
	sisterBoxes := countTemplateUses(article, sisterProjectTemplates)

	lowerText := strings.ToLower(article.FullText)
	for _, domain := range sisterProjectDomains {
		if strings.Contains(lowerText, domain) {
			sisterBoxes++
		}
	}

	missingSisterLinks := interwiki == 0 && sisterBoxes == 0

	score := 10.0
	if !linked {
		score -= 4
	}
	if missingSisterLinks {
		score -= 2
	}
	if sisterBoxes == 0 {
		score--
	}
	if itemID != "" {
		score++
	}
	if interwiki >= 3 {
		score++
	}
	if sisterBoxes >= 2 {
		score++
	}

	result.Details["linked_to_wikidata"] = linked
	result.Details["wikidata_item_id"] = itemID
	result.Details["interwiki_links"] = interwiki
	result.Details["sister_project_boxes"] = sisterBoxes
	result.Details["missing_sister_links"] = missingSisterLinks

	result.Score = score
	result.Notes = c.notes(linked, itemID, interwiki, sisterBoxes)
	result.Clamp()
	return result, nil
}

// wikidataBinding looks for evidence of a Wikidata binding: templates,
// keywords, or an explicit item identifier.
func wikidataBinding(article *model.Article) (linked bool, itemID string) {
	lowerText := strings.ToLower(article.FullText)
	if strings.Contains(lowerText, "wikidata") || strings.Contains(lowerText, "wikibase") {
		linked = true
	}
	for _, tpl := range wikidataTemplates {
		if article.HasTemplate(tpl) {
			linked = true
			break
		}
	}

	for _, re := range qidRes {
		m := re.FindStringSubmatch(article.FullText)
		if m == nil {
			continue
		}
		itemID = m[1]
		if !strings.HasPrefix(itemID, "Q") {
			itemID = "Q" + itemID
		}
		linked = true
		break
	}
	return linked, itemID
}

// countTemplateUses counts transclusions of the named templates, both
// in the template list and inline in the wikitext.
func countTemplateUses(article *model.Article, names []string) int {
	count := 0
	for _, tpl := range article.Templates {
		lower := strings.ToLower(tpl)
		for _, name := range names {
			if strings.Contains(lower, name) {
				count++
				break
			}
		}
	}

	lowerText := strings.ToLower(article.FullText)
	for _, name := range names {
		count += strings.Count(lowerText, "{{"+name)
	}
	return count
}

func (c *CrossProjectAnalyzer) notes(linked bool, itemID string, interwiki, sisterBoxes int) []string {
	var notes []string

	if !linked {
		notes = append(notes, "The article is not bound to a Wikidata item; add the binding to improve integration.")
	} else if itemID != "" {
		notes = append(notes, fmt.Sprintf("The article is bound to Wikidata item %s.", itemID))
	}

	switch {
	case interwiki == 0:
		notes = append(notes, "No interlanguage link templates were found; they connect readers to other editions.")
	case interwiki >= 3:
		notes = append(notes, fmt.Sprintf("%d interlanguage links are present.", interwiki))
	}

	if sisterBoxes == 0 {
		notes = append(notes, "No sister-project links were found; link to Commons, Wikisource, and the other projects where relevant.")
	}
	return notes
}

var _ AxisAnalyzer = (*CrossProjectAnalyzer)(nil)
