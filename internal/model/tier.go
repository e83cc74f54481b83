package model

// Tier represents the discrete quality level assigned to an article
// from its total score.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Tier int

const (
	// TierStub indicates a very short article with little usable content.
	TierStub Tier = iota

	// TierStubPlus indicates an article that has grown past a bare stub
	// but still lacks most of the expected structure and sourcing.
	TierStubPlus

	// TierStart indicates an article with acceptable basic coverage.
	TierStart

	// TierAdvanced indicates a well-developed article that still falls
	// short of the good-article bar.
	TierAdvanced

	// TierGood indicates an article meeting the good-article criteria.
	TierGood

	// TierFeatured indicates an article at the highest quality level.
	TierFeatured
)

// String returns a human-readable representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierFeatured:
		return "featured"
	case TierGood:
		return "good"
	case TierAdvanced:
		return "advanced"
	case TierStart:
		return "start"
	case TierStubPlus:
		return "stub-plus"
	case TierStub:
		return "stub"
	default:
		return "unknown"
	}
}

// tierThreshold binds a minimum total score to a tier. The table is
// evaluated top-down and the first threshold the total meets or exceeds
// wins.
type tierThreshold struct {
	min  int
	tier Tier
}

// tierThresholds is the ordered threshold table for TierForScore.
// This centralized table ensures the CLI, writers, and tests all agree
// on the tier boundaries.
var tierThresholds = []tierThreshold{
	{min: 90, tier: TierFeatured},
	{min: 80, tier: TierGood},
	{min: 65, tier: TierAdvanced},
	{min: 50, tier: TierStart},
	{min: 30, tier: TierStubPlus},
}

// TierForScore maps a total score to its quality tier. Scores below the
// lowest threshold map to TierStub.
func TierForScore(total int) Tier {
	for _, t := range tierThresholds {
		if total >= t.min {
			return t.tier
		}
	}
	return TierStub
}
