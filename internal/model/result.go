package model

// Axis names used as keys in axis-result maps. Centralizing them keeps
// the analyzers, the scoring engine, and the writers in agreement.
const (
	AxisLanguage     = "language"
	AxisStructure    = "structure"
	AxisReferences   = "references"
	AxisMedia        = "media"
	AxisLinks        = "links"
	AxisGrammar      = "grammar"
	AxisMaintenance  = "maintenance"
	AxisRevision     = "revision"
	AxisCrossProject = "crossproject"
)

// AxisResult is the output of one axis analyzer.
//
// Invariant: 0 <= Score <= Max, enforced by clamping at the end of every
// axis computation. Details carries axis-specific sub-results that the
// scoring engine reads during its recompute pass; Notes are improvement
// suggestions in the order the axis produced them.
type AxisResult struct {
	// Score is the axis score in [0, Max].
	Score float64 `json:"score"`

	// Max is the axis score ceiling.
	Max float64 `json:"max"`

	// Details holds axis-specific sub-results keyed by name.
	Details map[string]any `json:"details,omitempty"`

	// Notes lists improvement suggestions in emission order.
	Notes []string `json:"notes,omitempty"`
}

// Clamp bounds Score into [0, Max] in place.
func (r *AxisResult) Clamp() {
	if r.Score < 0 {
		r.Score = 0
	}
	if r.Score > r.Max {
		r.Score = r.Max
	}
}

// Detail returns a named detail value, or nil when absent.
func (r *AxisResult) Detail(key string) any {
	if r.Details == nil {
		return nil
	}
	return r.Details[key]
}

// IntDetail returns a named detail as an int, or zero when absent or of
// another type.
func (r *AxisResult) IntDetail(key string) int {
	switch v := r.Detail(key).(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// FloatDetail returns a named detail as a float64, or zero when absent
// or of another type.
func (r *AxisResult) FloatDetail(key string) float64 {
	switch v := r.Detail(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// BoolDetail returns a named detail as a bool, or false when absent or
// of another type.
func (r *AxisResult) BoolDetail(key string) bool {
	v, _ := r.Detail(key).(bool)
	return v
}

// Report is the aggregated result of one full analysis pass. It is
// created once by the scoring engine and is immutable after
// construction.
type Report struct {
	// Title is the analyzed article's title.
	Title string `json:"title"`

	// Total is the weighted overall score, an integer in [0, 100].
	Total int `json:"total"`

	// Tier is the quality level mapped from Total.
	Tier Tier `json:"tier"`

	// TierName is the string form of Tier, carried for serialization.
	TierName string `json:"tier_name"`

	// AxisScores maps each axis name to its final weighted score.
	AxisScores map[string]float64 `json:"axis_scores"`

	// AxisMax maps each axis name to its weight ceiling.
	AxisMax map[string]float64 `json:"axis_max"`

	// Details maps each axis name to its full analyzer result.
	Details map[string]AxisResult `json:"details"`

	// Notes is the merged note list in the fixed axis order.
	Notes []string `json:"notes"`
}

// NewReport creates a Report for the given title and total score, with
// the tier derived from the total.
func NewReport(title string, total int) *Report {
	tier := TierForScore(total)
	return &Report{
		Title:      title,
		Total:      total,
		Tier:       tier,
		TierName:   tier.String(),
		AxisScores: make(map[string]float64),
		AxisMax:    make(map[string]float64),
		Details:    make(map[string]AxisResult),
	}
}
