package analyzer

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/textutil"
)

// Reference counting patterns over raw wikitext.
var (
	refTagRe        = regexp.MustCompile(`<ref[\s>]`)
	refNamedRe      = regexp.MustCompile(`<ref\s+name\s*=`)
	refReuseRe      = regexp.MustCompile(`<ref\s+name\s*=[^>]*/>`)
	refBlockStripRe = regexp.MustCompile(`(?s)<ref[^>/]*>.*?</ref>`)
	citationRe      = regexp.MustCompile(`(?i)\{\{\s*(?:cite|استشهاد)[\s_][^}]+\}\}`)
	reflistStripRe  = regexp.MustCompile(`(?i)\{\{\s*(?:مراجع|reflist)[^}]*\}\}`)
	bareURLRe       = regexp.MustCompile(`https?://\S+`)
	citeYearRe      = regexp.MustCompile(`(?i)(?:year|سنة|date|تاريخ)\s*=\s*[^|}]*?(\d{4})`)
	languageFieldRe = regexp.MustCompile(`(?i)(?:language|لغة)\s*=\s*([^|}\s]+)`)

	refSectionTitleRe = regexp.MustCompile(`(?i)مراجع|references|مصادر|ملاحظات|الهوامش`)
)

// Citation field matchers for completeness checks.
var (
	citeTitleRe     = regexp.MustCompile(`(?i)(?:title|عنوان)\s*=\s*[^|}]+`)
	citeAuthorRe    = regexp.MustCompile(`(?i)(?:author|مؤلف|last)\s*=\s*[^|}]+`)
	citeDateRe      = regexp.MustCompile(`(?i)(?:date|تاريخ|year|سنة)\s*=\s*[^|}]+`)
	citePublisherRe = regexp.MustCompile(`(?i)(?:publisher|ناشر|work|موقع)\s*=\s*[^|}]+`)
	citeURLRe       = regexp.MustCompile(`(?i)(?:url|مسار)\s*=\s*[^|}]+`)
)

// Source type matchers.
var (
	bookRefRe     = regexp.MustCompile(`(?i)استشهاد بكتاب|cite book|isbn`)
	journalRefRe  = regexp.MustCompile(`(?i)استشهاد بدورية|استشهاد بمجلة|cite journal|doi|issn`)
	newsRefRe     = regexp.MustCompile(`(?i)استشهاد بخبر|cite news|aljazeera\.net|bbc\.|reuters\.|cnn\.`)
	webRefRe      = regexp.MustCompile(`(?i)استشهاد ويب|استشهاد بموقع|cite web`)
	archiveRefRe  = regexp.MustCompile(`(?i)web\.archive\.org|archive\.org`)
	wikidataRefRe = regexp.MustCompile(`(?i)استشهاد بويكي بيانات|cite q\d+`)
)

// reliableDomains is a small allowlist of publishers generally treated
// as dependable sources.
var reliableDomains = []string{
	"britannica.com", "nature.com", "science.org", "nejm.org",
	"who.int", "archive.org", "jstor.org", "springer.com",
	"cambridge.org", "oxford", "bbc.", "aljazeera.net",
}

const (
	earliestCiteYear = 1900
	latestCiteYear   = 2025
	recentCiteYear   = 2015
)

// ReferenceAnalyzer evaluates sourcing: citation counts, completeness,
// recency, reliability, type diversity, and language diversity.
type ReferenceAnalyzer struct{}

// NewReferenceAnalyzer creates a reference analyzer.
func NewReferenceAnalyzer() *ReferenceAnalyzer { return &ReferenceAnalyzer{} }

// Name returns the axis name.
func (r *ReferenceAnalyzer) Name() string { return model.AxisReferences }

// Max returns the axis score ceiling.
func (r *ReferenceAnalyzer) Max() float64 { return 25 }

// Analyze evaluates the article's sourcing from the raw wikitext.
func (r *ReferenceAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: r.Max(), Details: map[string]any{}}
	text := article.FullText
	if text == "" {
		result.Details["total_refs"] = 0
		return result, nil
	}

	totalRefs := len(refTagRe.FindAllString(text, -1))
	namedRefs := len(refNamedRe.FindAllString(text, -1))
	reusedRefs := len(refReuseRe.FindAllString(text, -1))

	citations := citationRe.FindAllString(text, -1)
	complete, incomplete, incompleteExamples := citationCompleteness(citations)

	recent, _ := citationYears(citations)
	reliable := reliableCount(text)
	types := sourceTypes(citations, text)
	languages := sourceLanguages(citations)

	bare := bareURLCount(text)
	hasRefSection := hasReferenceSection(article)

	result.Details["total_refs"] = totalRefs
	result.Details["named_refs"] = namedRefs
	result.Details["reused_refs"] = reusedRefs
	result.Details["citations"] = len(citations)
	result.Details["complete_citations"] = complete
	result.Details["incomplete_citations"] = incomplete
	result.Details["incomplete_examples"] = incompleteExamples
	result.Details["recent_refs"] = recent
	result.Details["reliable_refs"] = reliable
	result.Details["book_refs"] = types["book"]
	result.Details["journal_refs"] = types["journal"]
	result.Details["news_refs"] = types["news"]
	result.Details["web_refs"] = types["web"]
	result.Details["archive_refs"] = types["archive"]
	result.Details["wikidata_refs"] = types["wikidata"]
	result.Details["source_languages"] = languages
	result.Details["bare_urls"] = bare
	result.Details["has_reference_section"] = hasRefSection

	result.Score = referenceScore(totalRefs, complete, len(citations), recent, reliable, bare, hasRefSection)
	result.Notes = r.notes(&result)
	result.Clamp()
	return result, nil
}

// referenceScore is the bucketed base score before the scoring engine's
// diversity adjustments.
func referenceScore(totalRefs, complete, citations, recent, reliable, bare int, hasRefSection bool) float64 {
	var score float64
	switch {
	case totalRefs == 0:
		score = 0
	case totalRefs == 1:
		score = 3
	case totalRefs <= 3:
		score = 7
	case totalRefs <= 7:
		score = 11
	case totalRefs <= 15:
		score = 14
	default:
		score = 15
	}

	if citations > 0 {
		ratio := float64(complete) / float64(citations)
		switch {
		case ratio >= 0.8:
			score += 4
		case ratio >= 0.6:
			score += 3
		case ratio >= 0.4:
			score += 2
		default:
			score++
		}
	}

	switch {
	case recent >= 5:
		score += 3
	case recent >= 3:
		score += 2
	case recent >= 1:
		score++
	}

	switch {
	case reliable >= 5:
		score += 3
	case reliable >= 2:
		score += 2
	case reliable >= 1:
		score++
	}

	score -= math.Min(6, float64(bare)*2)
	if !hasRefSection && totalRefs > 0 {
		score -= 2
	}
	return math.Max(0, math.Min(25, score))
}

// citationCompleteness classifies each citation template. A citation is
// complete when it carries at least two of title, author, and date; it
// counts as incomplete when at least two of title, publisher, date, and
// URL are absent.
func citationCompleteness(citations []string) (complete, incomplete int, examples []string) {
	for _, c := range citations {
		have := 0
		if citeTitleRe.MatchString(c) {
			have++
		}
		if citeAuthorRe.MatchString(c) {
			have++
		}
		if citeDateRe.MatchString(c) {
			have++
		}
		if have >= 2 {
			complete++
		}

		missing := 0
		for _, re := range []*regexp.Regexp{citeTitleRe, citePublisherRe, citeDateRe, citeURLRe} {
			if !re.MatchString(c) {
				missing++
			}
		}
		if missing >= 2 {
			incomplete++
			if len(examples) < 3 {
				examples = append(examples, textutil.TruncateRunes(c, 80))
			}
		}
	}
	return complete, incomplete, examples
}

// citationYears extracts plausible publication years and counts the
// recent ones.
func citationYears(citations []string) (recent, total int) {
	for _, c := range citations {
		for _, m := range citeYearRe.FindAllStringSubmatch(c, -1) {
			year, err := strconv.Atoi(m[1])
			if err != nil || year < earliestCiteYear || year > latestCiteYear {
				continue
			}
			total++
			if year >= recentCiteYear {
				recent++
			}
		}
	}
	return recent, total
}

func reliableCount(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, domain := range reliableDomains {
		count += strings.Count(lower, domain)
	}
	return count
}

// sourceTypes counts citations per source type. Type matchers overlap
// on purpose; a book citation with a DOI counts for both.
func sourceTypes(citations []string, text string) map[string]int {
	types := map[string]int{}
	for _, c := range citations {
		if bookRefRe.MatchString(c) {
			types["book"]++
		}
		if journalRefRe.MatchString(c) {
			types["journal"]++
		}
		if newsRefRe.MatchString(c) {
			types["news"]++
		}
		if webRefRe.MatchString(c) {
			types["web"]++
		}
		if archiveRefRe.MatchString(c) {
			types["archive"]++
		}
	}
	types["wikidata"] = len(wikidataRefRe.FindAllString(text, -1))
	return types
}

// sourceLanguages counts the distinct explicit language fields across
// citations.
func sourceLanguages(citations []string) int {
	seen := make(map[string]bool)
	for _, c := range citations {
		for _, m := range languageFieldRe.FindAllStringSubmatch(c, -1) {
			lang := strings.ToLower(strings.TrimSpace(m[1]))
			if lang != "" {
				seen[lang] = true
			}
		}
	}
	return len(seen)
}

// bareURLCount counts URLs left outside any citation structure.
func bareURLCount(text string) int {
	stripped := refBlockStripRe.ReplaceAllString(text, "")
	stripped = citationRe.ReplaceAllString(stripped, "")
	stripped = reflistStripRe.ReplaceAllString(stripped, "")
	return len(bareURLRe.FindAllString(stripped, -1))
}

func hasReferenceSection(article *model.Article) bool {
	for _, sec := range article.Sections {
		if refSectionTitleRe.MatchString(sec.Title) {
			return true
		}
	}
	return false
}

func (r *ReferenceAnalyzer) notes(res *model.AxisResult) []string {
	var notes []string

	total := res.IntDetail("total_refs")
	switch {
	case total == 0:
		notes = append(notes, "The article cites no references; add reliable sources.")
	case total < 5:
		notes = append(notes, fmt.Sprintf("Only %d references are cited; broaden the sourcing.", total))
	}
	if incomplete := res.IntDetail("incomplete_citations"); incomplete > 0 {
		notes = append(notes, fmt.Sprintf("%d citations are missing key fields such as title, publisher, or date.", incomplete))
	}
	if bare := res.IntDetail("bare_urls"); bare > 0 {
		notes = append(notes, fmt.Sprintf("%d bare URLs appear outside citation templates; wrap them in proper citations.", bare))
	}
	if !res.BoolDetail("has_reference_section") && total > 0 {
		notes = append(notes, "No references section was found; add one holding the citation list.")
	}
	if res.IntDetail("recent_refs") == 0 && total > 0 {
		notes = append(notes, "No recent sources were found; check whether the article needs updating.")
	}
	if res.IntDetail("book_refs") == 0 && res.IntDetail("journal_refs") == 0 && total > 3 {
		notes = append(notes, "The sourcing relies on web references; add books or journal articles.")
	}
	return notes
}

var _ AxisAnalyzer = (*ReferenceAnalyzer)(nil)
