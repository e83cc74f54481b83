package analyzer

import (
	"context"
	"testing"

	"github.com/wikiqual/wikiqual/internal/model"
)

// TestMaintenanceScoring tests banner and category buckets.
func TestMaintenanceScoring(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		templates  []string
		categories []string
		expected   float64
	}{
		{
			name:       "clean and well categorized",
			templates:  []string{"صندوق معلومات مدينة"},
			categories: []string{"أ", "ب", "ج", "د", "هـ"},
			expected:   20,
		},
		{
			name:       "one banner, few categories",
			templates:  []string{"بذرة"},
			categories: []string{"أ", "ب", "ج", "د"},
			expected:   14,
		},
		{
			name:       "heavily tagged and uncategorized",
			templates:  []string{"بذرة", "تنظيف", "لا مصدر", "يتيم", "توضيح"},
			categories: nil,
			expected:   0,
		},
	}

	m := NewMaintenanceAnalyzer()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			article := &model.Article{
				FullText:   textOfRunes(1000),
				Templates:  tc.templates,
				Categories: tc.categories,
			}
			result, err := m.Analyze(context.Background(), article)
			if err != nil {
				t.Fatalf("Analyze returned error: %v", err)
			}
			if result.Score != tc.expected {
				t.Errorf("Score = %v, expected %v", result.Score, tc.expected)
			}
		})
	}
}

// TestMaintenanceFlags tests the orphan, stub, and cleanup details.
func TestMaintenanceFlags(t *testing.T) {
	t.Parallel()

	m := NewMaintenanceAnalyzer()
	article := &model.Article{
		FullText:  textOfRunes(500),
		Templates: []string{"بذرة جغرافيا", "يتيم"},
	}
	result, err := m.Analyze(context.Background(), article)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if !result.BoolDetail("is_stub_tagged") {
		t.Error("expected is_stub_tagged")
	}
	if !result.BoolDetail("is_orphan") {
		t.Error("expected is_orphan")
	}
	if result.BoolDetail("needs_cleanup") {
		t.Error("unexpected needs_cleanup")
	}
}
