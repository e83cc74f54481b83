package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/redundancy"
	"github.com/wikiqual/wikiqual/internal/rules"
	"github.com/wikiqual/wikiqual/internal/signal"
	"github.com/wikiqual/wikiqual/internal/textutil"
)

// Language axis thresholds, in runes.
const (
	longSentenceLen       = 200
	shortSentenceLen      = 20
	emptyParagraphLen     = 50
	commaFreeLen          = 250
	grammarParagraphMin   = 30
	grammarParagraphCount = 3
	exampleCap            = 3
	mtPhraseCap           = 8
	prepositionPrefixLen  = 80
)

var (
	arabicPunctRe  = regexp.MustCompile(`[،؛؟]`)
	latinPunctRe   = regexp.MustCompile(`[,;?!.]`)
	waawOpeningRe  = regexp.MustCompile(`^و\s+\p{L}+`)
	nonArabicRunRe = regexp.MustCompile(`[^\x{0600}-\x{06FF}\s]`)
)

// LanguageAnalyzer evaluates prose quality: sentence and paragraph
// statistics, machine-translation and weak-style signals, grammar-rule
// violations, punctuation script usage, and sentence-level redundancy.
type LanguageAnalyzer struct {
	rules    []rules.Rule
	detector *redundancy.Detector
	logger   *slog.Logger
}

// NewLanguageAnalyzer creates a language analyzer using the given
// grammar rules and redundancy detector.
func NewLanguageAnalyzer(ruleList []rules.Rule, detector *redundancy.Detector, logger *slog.Logger) *LanguageAnalyzer {
	if detector == nil {
		detector = redundancy.NewDetector()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LanguageAnalyzer{rules: ruleList, detector: detector, logger: logger}
}

// Name returns the axis name.
func (l *LanguageAnalyzer) Name() string { return model.AxisLanguage }

// Max returns the axis score ceiling.
func (l *LanguageAnalyzer) Max() float64 { return 10 }

// Analyze evaluates the article prose. The computation mirrors the
// scoring engine's recompute so the axis score and the engine's weighted
// score agree.
func (l *LanguageAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: l.Max(), Details: map[string]any{}}
	if article.FullText == "" {
		l.fillZeroDetails(&result)
		return result, nil
	}

	clean := textutil.CleanWikiMarkup(article.FullText)
	sentences := textutil.SegmentSentences(clean)
	paragraphs := textutil.SegmentParagraphs(clean)

	longCount, shortCount, avgLen, longExamples := sentenceStats(sentences)
	emptyParas, nonStandardParas := paragraphStats(paragraphs)

	mt := signal.Detect(clean, signal.MachineTranslation, mtPhraseCap)
	mtCount := mt.Count
	for _, s := range sentences {
		if signal.WeakOpening.MatchesStart(s) {
			mtCount++
		}
	}

	filler := signal.Detect(clean, signal.Filler, exampleCap)
	weakStyle := weakStyleScore(clean, sentences, filler.Count)

	grammarText := leadingParagraphs(paragraphs)
	grammar := signal.ApplyRules(grammarText, l.rules, l.logger)

	punctScore, punctRatio := punctuationScore(clean)

	prepCount, prepExamples := prepositionStarts(sentences)
	narrative := signal.Detect(clean, signal.NarrativeWeakness, exampleCap)
	redundant := l.detector.Detect(sentences)

	result.Details["sentence_count"] = len(sentences)
	result.Details["long_sentences"] = longCount
	result.Details["short_sentences"] = shortCount
	result.Details["avg_sentence_length"] = avgLen
	result.Details["paragraph_count"] = len(paragraphs)
	result.Details["empty_paragraphs"] = emptyParas
	result.Details["non_standard_paragraphs"] = nonStandardParas
	result.Details["machine_translation_signals"] = mtCount
	result.Details["weak_style_signals"] = weakStyle
	result.Details["filler_words"] = filler.Count
	result.Details["grammar_violations"] = grammar.Count
	result.Details["punctuation_score"] = punctScore
	result.Details["punctuation_ratio"] = punctRatio
	result.Details["preposition_start_sentences"] = prepCount
	result.Details["narrative_weakness_signals"] = narrative.Count
	result.Details["redundant_sentences"] = redundant.Count
	result.Details["redundancy_partial"] = redundant.Partial
	result.Details["examples"] = map[string]any{
		"long_sentences":              longExamples,
		"machine_translation_phrases": mt.Examples,
		"grammar_rule_hits":           grammarHitExamples(grammar.Hits),
		"preposition_start_sentences": prepExamples,
		"narrative_weakness":          narrative.Examples,
		"redundant_sentences":         redundant.Examples,
	}

	result.Score = languageScore(&result)
	result.Notes = l.notes(&result)
	result.Clamp()
	return result, nil
}

// languageScore computes the axis score from the recorded details. The
// scoring engine runs the identical computation during its recompute
// pass, reading the same detail keys.
func languageScore(r *model.AxisResult) float64 {
	score := 10.0
	score -= math.Min(float64(r.IntDetail("machine_translation_signals"))*0.1, 2)
	score -= math.Min(float64(r.IntDetail("weak_style_signals"))*0.1, 2)
	score -= math.Min(float64(r.IntDetail("grammar_violations"))*0.15, 2)

	if long := r.IntDetail("long_sentences"); long > 5 {
		score -= math.Min(float64(long-5)*0.2, 1.5)
	}
	if empty := r.IntDetail("empty_paragraphs"); empty > 2 {
		score -= math.Min(float64(empty-2)*0.3, 1)
	}
	if filler := r.IntDetail("filler_words"); filler > 10 {
		score -= math.Min(float64(filler-10)*0.05, 1)
	}

	score -= math.Min(float64(r.IntDetail("preposition_start_sentences"))*0.08, 1.5)
	score -= math.Min(float64(r.IntDetail("narrative_weakness_signals"))*0.12, 1.5)
	score -= math.Min(float64(r.IntDetail("redundant_sentences"))*0.25, 2)

	if r.IntDetail("punctuation_score") > 70 {
		score += 0.5
	}
	return math.Max(0, math.Min(10, score))
}

func (l *LanguageAnalyzer) fillZeroDetails(r *model.AxisResult) {
	for _, key := range []string{
		"sentence_count", "long_sentences", "short_sentences",
		"paragraph_count", "empty_paragraphs", "non_standard_paragraphs",
		"machine_translation_signals", "weak_style_signals",
		"filler_words", "grammar_violations", "punctuation_score",
		"preposition_start_sentences", "narrative_weakness_signals",
		"redundant_sentences",
	} {
		r.Details[key] = 0
	}
	r.Details["avg_sentence_length"] = 0.0
}

// sentenceStats counts long and short sentences and collects examples
// of the long ones.
func sentenceStats(sentences []string) (long, short int, avg float64, examples []string) {
	totalLen := 0
	for _, s := range sentences {
		n := textutil.RuneLen(s)
		totalLen += n
		switch {
		case n > longSentenceLen:
			long++
			if len(examples) < exampleCap {
				examples = append(examples, textutil.TruncateRunes(s, prepositionPrefixLen)+"...")
			}
		case n < shortSentenceLen:
			short++
		}
	}
	if len(sentences) > 0 {
		avg = math.Round(float64(totalLen)/float64(len(sentences))*10) / 10
	}
	return long, short, avg, examples
}

// paragraphStats counts near-empty paragraphs and paragraphs opening
// with a weak construction.
func paragraphStats(paragraphs []string) (empty, nonStandard int) {
	for _, p := range paragraphs {
		if textutil.RuneLen(p) < emptyParagraphLen {
			empty++
			continue
		}
		if signal.WeakOpening.MatchesStart(p) {
			nonStandard++
		}
	}
	return empty, nonStandard
}

// weakStyleScore accumulates filler matches, excessive word repetition,
// comma-free long sentences, and conjunction-led openings into one
// rounded signal count.
func weakStyleScore(text string, sentences []string, fillerCount int) int {
	score := float64(fillerCount)

	counts := countArabicWords(text)
	for _, n := range counts {
		if n > 15 {
			score += 2
		}
	}

	for _, s := range sentences {
		if textutil.RuneLen(s) > commaFreeLen && !strings.ContainsAny(s, "،,") {
			score++
		}
		if waawOpeningRe.MatchString(s) {
			score += 0.5
		}
	}
	return int(math.Round(score))
}

// countArabicWords tallies Arabic tokens longer than three runes.
func countArabicWords(text string) map[string]int {
	stripped := nonArabicRunRe.ReplaceAllString(text, "")
	counts := make(map[string]int)
	for _, w := range strings.Fields(stripped) {
		if textutil.RuneLen(w) > 3 {
			counts[w]++
		}
	}
	return counts
}

// leadingParagraphs joins the first few substantial paragraphs; grammar
// rules only run over this span to bound the regexp work.
func leadingParagraphs(paragraphs []string) string {
	picked := make([]string, 0, grammarParagraphCount)
	for _, p := range paragraphs {
		if textutil.RuneLen(p) < grammarParagraphMin {
			continue
		}
		picked = append(picked, p)
		if len(picked) == grammarParagraphCount {
			break
		}
	}
	return strings.Join(picked, "\n\n")
}

// punctuationScore rates the share of Arabic punctuation marks against
// Latin ones.
func punctuationScore(text string) (score, ratio int) {
	arabic := len(arabicPunctRe.FindAllString(text, -1))
	latin := len(latinPunctRe.FindAllString(text, -1))
	total := arabic + latin
	if total == 0 {
		return 25, 0
	}

	r := float64(arabic) / float64(total) * 100
	switch {
	case r > 70:
		score = 100
	case r > 50:
		score = 75
	case r > 30:
		score = 50
	default:
		score = 25
	}
	return score, int(math.Round(r))
}

// prepositionStarts counts sentences led by a preposition and keeps
// prefix examples.
func prepositionStarts(sentences []string) (count int, examples []string) {
	for _, s := range sentences {
		if !signal.PrepositionOpening.MatchesStart(s) {
			continue
		}
		count++
		if len(examples) < exampleCap {
			ex := textutil.TruncateRunes(s, prepositionPrefixLen)
			if textutil.RuneLen(s) > prepositionPrefixLen {
				ex += "..."
			}
			examples = append(examples, ex)
		}
	}
	return count, examples
}

func grammarHitExamples(hits []signal.Hit) []map[string]any {
	capped := hits
	if len(capped) > 5 {
		capped = capped[:5]
	}
	out := make([]map[string]any, 0, len(capped))
	for _, h := range capped {
		out = append(out, map[string]any{
			"name":     h.Name,
			"count":    h.Count,
			"examples": h.Examples,
		})
	}
	return out
}

func (l *LanguageAnalyzer) notes(r *model.AxisResult) []string {
	var notes []string

	if mt := r.IntDetail("machine_translation_signals"); mt > 3 {
		notes = append(notes, fmt.Sprintf("The prose shows %d machine-translation signals; rephrase the flagged constructions in natural Arabic.", mt))
	}
	if long := r.IntDetail("long_sentences"); long > 5 {
		notes = append(notes, fmt.Sprintf("%d sentences exceed %d characters; split them for readability.", long, longSentenceLen))
	}
	if filler := r.IntDetail("filler_words"); filler > 10 {
		notes = append(notes, fmt.Sprintf("The text contains %d filler phrases; trim padding that adds no information.", filler))
	}
	if prep := r.IntDetail("preposition_start_sentences"); prep > 5 {
		notes = append(notes, fmt.Sprintf("%d sentences open with a preposition; vary the sentence openings.", prep))
	}
	if narrative := r.IntDetail("narrative_weakness_signals"); narrative > 3 {
		notes = append(notes, fmt.Sprintf("%d storytelling or editorializing phrases weaken the encyclopedic register.", narrative))
	}
	if redundant := r.IntDetail("redundant_sentences"); redundant > 0 {
		notes = append(notes, fmt.Sprintf("%d near-duplicate sentence pairs were found; merge or remove the repetition.", redundant))
	}
	if grammar := r.IntDetail("grammar_violations"); grammar > 0 {
		notes = append(notes, fmt.Sprintf("%d spelling or style rule violations were found in the lead paragraphs.", grammar))
	}
	if r.IntDetail("punctuation_score") < 50 {
		notes = append(notes, "Latin punctuation dominates; prefer Arabic punctuation marks.")
	}
	return notes
}

var _ AxisAnalyzer = (*LanguageAnalyzer)(nil)
