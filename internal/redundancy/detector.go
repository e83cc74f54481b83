package redundancy

import (
	"strings"

	"github.com/wikiqual/wikiqual/internal/textutil"
)

// Default detector bounds.
const (
	// DefaultThreshold is the similarity at or above which a pair is
	// redundant.
	DefaultThreshold = 0.85

	// DefaultMinSentenceLen excludes short sentences (in runes) from
	// the scan.
	DefaultMinSentenceLen = 30

	// DefaultLengthCeiling switches the similarity measure to token
	// overlap when either normalized string is longer (in runes).
	DefaultLengthCeiling = 500

	// DefaultMaxExamples bounds the reported example pairs.
	DefaultMaxExamples = 3

	// DefaultMaxSentences bounds how many eligible sentences enter the
	// pairwise scan.
	DefaultMaxSentences = 300

	// DefaultMaxComparisons bounds the total pair comparisons.
	DefaultMaxComparisons = 50000

	// examplePrefixLen is the rune length of the first sentence's
	// prefix kept in an example pair.
	examplePrefixLen = 70
)

// Pair is one reported near-duplicate example.
type Pair struct {
	// First is a prefix of the earlier sentence.
	First string `json:"first"`

	// Second is the later sentence.
	Second string `json:"second"`

	// Similarity is the similarity as an integer percentage.
	Similarity int `json:"similarity"`
}

// Result is the outcome of one redundancy scan.
type Result struct {
	// Count is the number of redundant pairs found.
	Count int `json:"count"`

	// Examples holds up to MaxExamples illustrative pairs.
	Examples []Pair `json:"examples,omitempty"`

	// Partial reports that a scan bound tripped before all pairs were
	// compared.
	Partial bool `json:"partial,omitempty"`
}

// Detector runs bounded near-duplicate scans. The zero value is not
// usable; construct with NewDetector.
type Detector struct {
	threshold      float64
	minSentenceLen int
	lengthCeiling  int
	maxExamples    int
	maxSentences   int
	maxComparisons int
}

// Option configures a Detector.
type Option func(*Detector)

// WithThreshold overrides the redundancy similarity threshold.
func WithThreshold(t float64) Option {
	return func(d *Detector) { d.threshold = t }
}

// WithMaxSentences overrides the sentence cap for the pairwise scan.
func WithMaxSentences(n int) Option {
	return func(d *Detector) { d.maxSentences = n }
}

// WithMaxComparisons overrides the pair-comparison budget.
func WithMaxComparisons(n int) Option {
	return func(d *Detector) { d.maxComparisons = n }
}

// NewDetector creates a Detector with default bounds, adjusted by opts.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		threshold:      DefaultThreshold,
		minSentenceLen: DefaultMinSentenceLen,
		lengthCeiling:  DefaultLengthCeiling,
		maxExamples:    DefaultMaxExamples,
		maxSentences:   DefaultMaxSentences,
		maxComparisons: DefaultMaxComparisons,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect scans sentences for near-duplicate pairs. Sentences shorter
// than the minimum length are excluded first; fewer than two eligible
// sentences yield a zero result. The scan walks unordered pairs (i, j)
// with i < j over the normalized forms and counts every pair whose
// similarity meets the threshold.
func (d *Detector) Detect(sentences []string) Result {
	var result Result

	eligible := make([]string, 0, len(sentences))
	normalized := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if textutil.RuneLen(s) < d.minSentenceLen {
			continue
		}
		eligible = append(eligible, s)
		normalized = append(normalized, textutil.NormalizeForComparison(s))
	}

	if len(eligible) > d.maxSentences {
		eligible = eligible[:d.maxSentences]
		normalized = normalized[:d.maxSentences]
		result.Partial = true
	}
	if len(eligible) < 2 {
		return result
	}

	comparisons := 0
	for i := 0; i < len(normalized); i++ {
		for j := i + 1; j < len(normalized); j++ {
			if comparisons >= d.maxComparisons {
				result.Partial = true
				return result
			}
			comparisons++

			sim := d.similarity(normalized[i], normalized[j])
			if sim < d.threshold {
				continue
			}

			result.Count++
			if len(result.Examples) < d.maxExamples {
				result.Examples = append(result.Examples, Pair{
					First:      textutil.TruncateRunes(eligible[i], examplePrefixLen),
					Second:     eligible[j],
					Similarity: int(sim * 100),
				})
			}
		}
	}
	return result
}

// Similarity computes the similarity of two normalized strings with the
// default detector's measure selection.
func Similarity(a, b string) float64 {
	return NewDetector().similarity(a, b)
}

// similarity returns a score in [0, 1]. Identical strings short-circuit
// to 1; strings past the length ceiling use token overlap; everything
// else uses edit distance.
func (d *Detector) similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	lenA, lenB := textutil.RuneLen(a), textutil.RuneLen(b)
	if lenA > d.lengthCeiling || lenB > d.lengthCeiling {
		return tokenOverlap(a, b)
	}

	dist := levenshtein(a, b)
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	return 1 - float64(dist)/float64(maxLen)
}

// tokenOverlap is the Jaccard similarity over whitespace-split tokens.
func tokenOverlap(a, b string) float64 {
	setA := make(map[string]bool)
	for _, tok := range strings.Fields(a) {
		setA[tok] = true
	}
	setB := make(map[string]bool)
	for _, tok := range strings.Fields(b) {
		setB[tok] = true
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// levenshtein computes classic edit distance with unit costs over
// runes, using two rolling rows instead of the full matrix.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
