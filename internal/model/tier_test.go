package model

import "testing"

// TestTierString tests the String method of Tier.
func TestTierString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		tier     Tier
		expected string
	}{
		{TierStub, "stub"},
		{TierStubPlus, "stub-plus"},
		{TierStart, "start"},
		{TierAdvanced, "advanced"},
		{TierGood, "good"},
		{TierFeatured, "featured"},
		{Tier(999), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.tier.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.tier.String(), tc.expected)
			}
		})
	}
}

// TestTierForScore tests threshold boundaries, including inclusivity at
// each breakpoint.
func TestTierForScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		total    int
		expected Tier
	}{
		{"perfect score", 100, TierFeatured},
		{"high score", 92, TierFeatured},
		{"featured boundary", 90, TierFeatured},
		{"just below featured", 89, TierGood},
		{"good boundary", 80, TierGood},
		{"just below good", 79, TierAdvanced},
		{"advanced boundary", 65, TierAdvanced},
		{"just below advanced", 64, TierStart},
		{"start range", 51, TierStart},
		{"start boundary", 50, TierStart},
		{"just below start", 49, TierStubPlus},
		{"stub-plus boundary", 30, TierStubPlus},
		{"just below stub-plus", 29, TierStub},
		{"zero", 0, TierStub},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := TierForScore(tc.total)
			if result != tc.expected {
				t.Errorf("TierForScore(%d) = %v, expected %v", tc.total, result, tc.expected)
			}
		})
	}
}

// TestTierOrdering tests that tiers are ordered correctly.
// Stub < StubPlus < Start < Advanced < Good < Featured
func TestTierOrdering(t *testing.T) {
	t.Parallel()

	if TierStub >= TierStubPlus {
		t.Error("expected TierStub < TierStubPlus")
	}
	if TierStubPlus >= TierStart {
		t.Error("expected TierStubPlus < TierStart")
	}
	if TierStart >= TierAdvanced {
		t.Error("expected TierStart < TierAdvanced")
	}
	if TierAdvanced >= TierGood {
		t.Error("expected TierAdvanced < TierGood")
	}
	if TierGood >= TierFeatured {
		t.Error("expected TierGood < TierFeatured")
	}
}
