package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/wikiqual/wikiqual/internal/model"
)

// TestReferencesComplete tests a sourced article with a complete
// citation.
func TestReferencesComplete(t *testing.T) {
	t.Parallel()

	r := NewReferenceAnalyzer()
	article := &model.Article{
		FullText: textOfRunes(500) +
			"{{استشهاد ويب|عنوان=تاريخ المدينة|ناشر=دار النشر|تاريخ=2020-01-01|مسار=https://example.org/city}} <ref>مصدر أول</ref>",
		Sections: []model.Section{
			{Level: 2, Title: "مراجع", Content: "{{مراجع}}"},
		},
	}
	result, err := r.Analyze(context.Background(), article)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	// One ref tag (3), full completeness ratio (4), one recent source (1).
	if result.Score != 8 {
		t.Errorf("Score = %v, expected 8", result.Score)
	}
	if got := result.IntDetail("total_refs"); got != 1 {
		t.Errorf("total_refs = %d, expected 1", got)
	}
	if got := result.IntDetail("complete_citations"); got != 1 {
		t.Errorf("complete_citations = %d, expected 1", got)
	}
	if got := result.IntDetail("incomplete_citations"); got != 0 {
		t.Errorf("incomplete_citations = %d, expected 0", got)
	}
	if got := result.IntDetail("recent_refs"); got != 1 {
		t.Errorf("recent_refs = %d, expected 1", got)
	}
}

// TestReferencesBareURL tests that URLs outside citation structures are
// counted and penalized.
func TestReferencesBareURL(t *testing.T) {
	t.Parallel()

	r := NewReferenceAnalyzer()
	article := &model.Article{
		FullText: textOfRunes(500) + "انظر https://example.com/page للمزيد.",
	}
	result, err := r.Analyze(context.Background(), article)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if got := result.IntDetail("bare_urls"); got != 1 {
		t.Errorf("bare_urls = %d, expected 1", got)
	}
	if result.Score != 0 {
		t.Errorf("Score = %v, expected 0 for an unsourced article", result.Score)
	}
}

// TestReferencesIncompleteCitation tests the incomplete-citation detail
// used by the scoring engine's penalty.
func TestReferencesIncompleteCitation(t *testing.T) {
	t.Parallel()

	r := NewReferenceAnalyzer()
	article := &model.Article{
		FullText: textOfRunes(200) + "{{استشهاد ويب|عنوان=صفحة ما}}",
	}
	result, err := r.Analyze(context.Background(), article)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if got := result.IntDetail("incomplete_citations"); got != 1 {
		t.Errorf("incomplete_citations = %d, expected 1", got)
	}
	examples, _ := result.Detail("incomplete_examples").([]string)
	if len(examples) != 1 {
		t.Errorf("got %d incomplete examples, expected 1", len(examples))
	}
}

// TestReferencesSourceTypes tests the overlapping type matchers.
func TestReferencesSourceTypes(t *testing.T) {
	t.Parallel()

	citations := []string{
		"{{استشهاد بكتاب|عنوان=كتاب|ISBN=123}}",
		"{{cite journal|title=Paper|doi=10.1/abc}}",
		"{{استشهاد بخبر|عنوان=خبر}}",
		"{{cite web|title=Page|url=https://example.com}}",
	}
	types := sourceTypes(citations, strings.Join(citations, " "))

	expected := map[string]int{"book": 1, "journal": 1, "news": 1, "web": 1, "wikidata": 0}
	for key, want := range expected {
		if types[key] != want {
			t.Errorf("types[%q] = %d, expected %d", key, types[key], want)
		}
	}
}

// TestReferencesSourceLanguages tests distinct language counting.
func TestReferencesSourceLanguages(t *testing.T) {
	t.Parallel()

	citations := []string{
		"{{استشهاد ويب|عنوان=أ|لغة=ar}}",
		"{{cite web|title=b|language=en}}",
		"{{cite web|title=c|language=EN}}",
	}
	if got := sourceLanguages(citations); got != 2 {
		t.Errorf("sourceLanguages = %d, expected 2 distinct", got)
	}
}

// TestReferencesYearBounds tests that implausible years are ignored.
func TestReferencesYearBounds(t *testing.T) {
	t.Parallel()

	citations := []string{
		"{{cite web|title=a|year=1850}}",
		"{{cite web|title=b|year=2019}}",
		"{{cite web|title=c|year=3000}}",
	}
	recent, total := citationYears(citations)
	if total != 1 {
		t.Errorf("total plausible years = %d, expected 1", total)
	}
	if recent != 1 {
		t.Errorf("recent years = %d, expected 1", recent)
	}
}
