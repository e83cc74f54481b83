package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// comparisonPunctuation is the fixed punctuation set stripped before
// sentence comparison, covering both scripts' marks.
const comparisonPunctuation = ".,،؛:;!؟?()[]{}«»\"'“”‘’"

// diacriticStripper removes combining marks (Arabic harakat included) by
// decomposing, dropping the marks, and recomposing.
var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeForComparison produces the canonical form of a sentence used
// for near-duplicate detection: diacritics stripped, punctuation
// stripped, whitespace collapsed, case folded. The function is pure,
// deterministic, and idempotent.
func NormalizeForComparison(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		// Malformed UTF-8 passes through undecomposed.
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if strings.ContainsRune(comparisonPunctuation, r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	return strings.ToLower(collapsed)
}

// RuneLen returns the length of s in runes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// TruncateRunes returns at most n leading runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// HasArabic reports whether s contains at least one rune from the
// Arabic block.
func HasArabic(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}
