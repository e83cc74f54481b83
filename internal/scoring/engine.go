package scoring

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/wikiqual/wikiqual/internal/model"
)

// Weights maps each weighted axis to its share of the 100-point total.
// The informational axes (grammar, revision, crossproject) carry no
// weight but are still required: their notes join the report.
var Weights = map[string]float64{
	model.AxisStructure:   25,
	model.AxisReferences:  25,
	model.AxisMaintenance: 15,
	model.AxisLinks:       15,
	model.AxisMedia:       10,
	model.AxisLanguage:    10,
}

// requiredAxes lists every axis the engine refuses to proceed without,
// in the fixed note-merge order.
var requiredAxes = []string{
	model.AxisStructure,
	model.AxisReferences,
	model.AxisMedia,
	model.AxisLinks,
	model.AxisGrammar,
	model.AxisMaintenance,
	model.AxisLanguage,
	model.AxisRevision,
	model.AxisCrossProject,
}

// Engine computes the weighted total from a complete axis result map.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a scoring engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Calculate validates the axis map, recomputes the detail-driven axes,
// clamps every weighted axis into its weight, and assembles the report.
// The first missing axis aborts with an error naming it.
func (e *Engine) Calculate(title string, results map[string]model.AxisResult) (*model.Report, error) {
	for _, axis := range requiredAxes {
		if _, ok := results[axis]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingAxis, axis)
		}
	}

	scores := map[string]float64{
		model.AxisStructure:   results[model.AxisStructure].Score,
		model.AxisReferences:  recomputeReferences(results[model.AxisReferences]),
		model.AxisMaintenance: results[model.AxisMaintenance].Score,
		model.AxisLinks:       results[model.AxisLinks].Score,
		model.AxisMedia:       recomputeMedia(results[model.AxisMedia]),
		model.AxisLanguage:    recomputeLanguage(results[model.AxisLanguage]),
	}

	total := 0.0
	for axis, weight := range Weights {
		scores[axis] = math.Max(0, math.Min(weight, scores[axis]))
		total += scores[axis]
	}

	rounded := int(math.Round(total))
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 100 {
		rounded = 100
	}

	report := model.NewReport(title, rounded)
	for axis, weight := range Weights {
		report.AxisScores[axis] = scores[axis]
		report.AxisMax[axis] = weight
	}
	for _, axis := range []string{model.AxisGrammar, model.AxisRevision, model.AxisCrossProject} {
		r := results[axis]
		report.AxisScores[axis] = r.Score
		report.AxisMax[axis] = r.Max
	}
	for axis, r := range results {
		report.Details[axis] = r
	}
	for _, axis := range requiredAxes {
		report.Notes = append(report.Notes, results[axis].Notes...)
	}

	e.logger.Debug("scoring complete",
		"title", title,
		"total", report.Total,
		"tier", report.TierName)
	return report, nil
}

// recomputeLanguage rebuilds the language score from the axis details.
// Mirrors the language analyzer's own computation; keeping the formula
// here lets the engine stay authoritative over the weighted value even
// when a custom analyzer fills the axis.
func recomputeLanguage(r model.AxisResult) float64 {
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

// recomputeReferences adjusts the axis base score with diversity
// bonuses and completeness penalties.
func recomputeReferences(r model.AxisResult) float64 {
	score := r.Score

	score -= math.Min(float64(r.IntDetail("incomplete_citations"))*0.15, 2)

	book := r.IntDetail("book_refs")
	journal := r.IntDetail("journal_refs")
	news := r.IntDetail("news_refs")
	web := r.IntDetail("web_refs")

	score += math.Min(float64(book)*0.2, 1)
	score += math.Min(float64(journal)*0.2, 1)
	if web > book+journal+news {
		score -= 0.5
	}
	score += math.Min(float64(r.IntDetail("wikidata_refs"))*0.25, 1)

	switch total := r.IntDetail("total_refs"); {
	case total < 10:
		score -= 2
	case total <= 20:
		score--
	case total <= 50:
		// Neutral band.
	default:
		score += 0.5
	}

	if r.IntDetail("source_languages") >= 2 {
		score += 0.5
	}
	return math.Max(0, math.Min(25, score))
}

// recomputeMedia rebuilds the media score entirely from the details.
func recomputeMedia(r model.AxisResult) float64 {
	var score float64

	switch informative := r.IntDetail("informative_images"); {
	case informative >= 5:
		score = 5
	case informative >= 3:
		score = 4
	case informative >= 1:
		score = 3
	}

	if r.IntDetail("infobox_images") > 0 {
		score += 2
	}
	if r.BoolDetail("has_video_audio") {
		score++
	}

	if r.IntDetail("corrected_count") > 0 {
		switch density := r.FloatDetail("density"); {
		case density > 1.5:
			score += 1.5
		case density >= 0.3:
			score++
		}
	}

	score -= math.Min(float64(r.IntDetail("non_free"))*0.3, 2)
	score -= math.Min(float64(r.IntDetail("bad_alt"))*0.2, 2)

	commons := r.IntDetail("commons_images")
	if commons > 0 && float64(r.IntDetail("arabic_descriptions")) >= float64(commons)/2 {
		score += 0.5
	}
	if r.IntDetail("filtered_images") > r.IntDetail("informative_images") {
		score--
	}
	return math.Max(0, math.Min(10, score))
}
