package signal

import "regexp"

// Group is one ordered library of fixed-intent patterns. All matches
// across all patterns in a group accumulate into a single count;
// first-match-wins does not apply.
type Group struct {
	// Name identifies the group in details and logs.
	Name string

	// Patterns are evaluated in declaration order.
	Patterns []*regexp.Regexp
}

// MachineTranslation matches phrasing typical of machine-translated
// Arabic prose (passive تم/قام constructions, calqued connectives).
var MachineTranslation = Group{
	Name: "machine_translation",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?:^|\s)تم\s+\p{L}+`),
		regexp.MustCompile(`(?:^|\s)قام\s+ب`),
		regexp.MustCompile(`(?:^|\s)حوالي\s+\d+`),
		regexp.MustCompile(`(?:^|\s)وفقًا\s+ل`),
		regexp.MustCompile(`(?:^|\s)وفقاً\s+ل`),
		regexp.MustCompile(`(?:^|\s)في\s+سنة\s+\d+`),
		regexp.MustCompile(`(?:^|\s)في\s+عام\s+\d+`),
		regexp.MustCompile(`(?:^|\s)يُذكر\s+أن`),
		regexp.MustCompile(`(?:^|\s)يذكر\s+أن`),
		regexp.MustCompile(`(?:^|\s)كما\s+يلي`),
		regexp.MustCompile(`(?:^|\s)الجدير\s+بالذكر`),
		regexp.MustCompile(`(?:^|\s)من\s+الجدير\s+بالذكر`),
		regexp.MustCompile(`(?:^|\s)على\s+سبيل\s+المثال`),
		regexp.MustCompile(`(?:^|\s)بشكل\s+خاص`),
		regexp.MustCompile(`(?:^|\s)بصفة\s+خاصة`),
	},
}

// Filler matches padding phrases that add length without content.
var Filler = Group{
	Name: "filler",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?:^|\s)بشكل\s+عام`),
		regexp.MustCompile(`(?:^|\s)بصورة\s+عامة`),
		regexp.MustCompile(`(?:^|\s)بصفة\s+عامة`),
		regexp.MustCompile(`(?:^|\s)من\s+ناحية\s+أخرى`),
		regexp.MustCompile(`(?:^|\s)من\s+جهة\s+أخرى`),
		regexp.MustCompile(`(?:^|\s)في\s+الواقع`),
		regexp.MustCompile(`(?:^|\s)في\s+الحقيقة`),
		regexp.MustCompile(`(?:^|\s)بطبيعة\s+الحال`),
		regexp.MustCompile(`(?:^|\s)في\s+نهاية\s+المطاف`),
		regexp.MustCompile(`(?:^|\s)في\s+نهاية\s+الأمر`),
		regexp.MustCompile(`(?:^|\s)كما\s+هو\s+معروف`),
		regexp.MustCompile(`(?:^|\s)كما\s+هو\s+واضح`),
	},
}

// WeakOpening matches sentence openings that bury the subject behind a
// prepositional or attributive lead-in. Patterns are anchored and meant
// to be tested per sentence.
var WeakOpening = Group{
	Name: "weak_opening",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`^في\s+\p{L}+`),
		regexp.MustCompile(`^على\s+\p{L}+`),
		regexp.MustCompile(`^من\s+\p{L}+`),
		regexp.MustCompile(`^عند\s+\p{L}+`),
		regexp.MustCompile(`^وفقًا\s+`),
		regexp.MustCompile(`^وفقاً\s+`),
		regexp.MustCompile(`^حسب\s+`),
		regexp.MustCompile(`^بحسب\s+`),
	},
}

// PrepositionOpening matches sentences led by a preposition. A high
// ratio of such sentences reads as translated or listy prose.
var PrepositionOpening = Group{
	Name: "preposition_opening",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`^في\s+`),
		regexp.MustCompile(`^من\s+`),
		regexp.MustCompile(`^على\s+`),
		regexp.MustCompile(`^إلى\s+`),
		regexp.MustCompile(`^عن\s+`),
		regexp.MustCompile(`^حتى\s+`),
		regexp.MustCompile(`^لدى\s+`),
		regexp.MustCompile(`^عند\s+`),
		regexp.MustCompile(`^نحو\s+`),
		regexp.MustCompile(`^حسب\s+`),
		regexp.MustCompile(`^بحسب\s+`),
		regexp.MustCompile(`^وفقًا\s+لـ`),
		regexp.MustCompile(`^وفقاً\s+لـ`),
		regexp.MustCompile(`^بناءً\s+على`),
		regexp.MustCompile(`^بناء\s+على`),
		regexp.MustCompile(`^في\s+عام\s+`),
		regexp.MustCompile(`^في\s+سنة\s+`),
	},
}

// NarrativeWeakness matches storytelling openers, padded connectives,
// and editorializing phrases unsuited to encyclopedic register.
var NarrativeWeakness = Group{
	Name: "narrative_weakness",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`تدور\s+القصة\s+حول`),
		regexp.MustCompile(`وتبدأ\s+الأحداث`),
		regexp.MustCompile(`وتدور\s+أحداث`),
		regexp.MustCompile(`كان\s+يا\s+ما\s+كان`),
		regexp.MustCompile(`في\s+قديم\s+الزمان`),
		regexp.MustCompile(`من\s+الجدير\s+بالذكر`),
		regexp.MustCompile(`يجدر\s+بالذكر`),
		regexp.MustCompile(`كما\s+يلي`),
		regexp.MustCompile(`يمكن\s+القول\s+بأن`),
		regexp.MustCompile(`يُذكر\s+أن`),
		regexp.MustCompile(`يذكر\s+أن`),
		regexp.MustCompile(`من\s+المعروف\s+أن`),
		regexp.MustCompile(`كما\s+هو\s+معروف`),
		regexp.MustCompile(`بشكل\s+عام`),
		regexp.MustCompile(`بصورة\s+عامة`),
		regexp.MustCompile(`من\s+ناحية\s+أخرى`),
		regexp.MustCompile(`من\s+جهة\s+أخرى`),
		regexp.MustCompile(`بالإضافة\s+إلى\s+ذلك`),
		regexp.MustCompile(`بالإضافة\s+لذلك`),
		regexp.MustCompile(`علاوة\s+على\s+ذلك`),
		regexp.MustCompile(`فضلاً\s+عن\s+ذلك`),
		regexp.MustCompile(`في\s+الواقع`),
		regexp.MustCompile(`في\s+الحقيقة`),
		regexp.MustCompile(`بطبيعة\s+الحال`),
	},
}

// Detection is the result of matching one group against a text span.
type Detection struct {
	// Count sums all matches across every pattern in the group.
	Count int

	// Examples holds the first unique matches, capped by the caller.
	Examples []string
}

// Detect matches every pattern of the group against text, accumulating
// all match counts. The first maxExamples unique matched strings
// populate Examples. Given identical text and group the result is
// deterministic.
func Detect(text string, group Group, maxExamples int) Detection {
	var d Detection
	if text == "" {
		return d
	}

	seen := make(map[string]bool)
	for _, p := range group.Patterns {
		matches := p.FindAllString(text, -1)
		d.Count += len(matches)
		for _, m := range matches {
			if len(d.Examples) >= maxExamples {
				break
			}
			if seen[m] {
				continue
			}
			seen[m] = true
			d.Examples = append(d.Examples, m)
		}
	}
	return d
}

// MatchesStart reports whether the sentence matches any anchored
// pattern of the group. Intended for the opening groups, whose patterns
// all carry a ^ anchor.
func (g Group) MatchesStart(sentence string) bool {
	for _, p := range g.Patterns {
		if p.MatchString(sentence) {
			return true
		}
	}
	return false
}

// CountOpenings returns how many sentences match the group's anchored
// patterns.
func CountOpenings(sentences []string, group Group) int {
	count := 0
	for _, s := range sentences {
		if group.MatchesStart(s) {
			count++
		}
	}
	return count
}
