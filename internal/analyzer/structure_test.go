package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/textutil"
)

// textOfRunes builds Arabic filler text of at least n runes.
func textOfRunes(n int) string {
	var b strings.Builder
	for textutil.RuneLen(b.String()) < n {
		b.WriteString("كلمة ")
	}
	return b.String()
}

// TestStructureStub tests stub classification and its floor score.
func TestStructureStub(t *testing.T) {
	t.Parallel()

	s := NewStructureAnalyzer()
	article := &model.Article{
		Title:    "بذرة",
		FullText: textOfRunes(300),
	}
	result, err := s.Analyze(context.Background(), article)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if !result.BoolDetail("is_stub") {
		t.Error("expected is_stub for a short sectionless article")
	}
	// No intro, no hierarchy, references missing; only the balance
	// bonus survives.
	if result.Score != 3 {
		t.Errorf("Score = %v, expected 3", result.Score)
	}
	missing, _ := result.Detail("missing_sections").([]string)
	if len(missing) != 1 || missing[0] != "مراجع" {
		t.Errorf("missing_sections = %v, expected the references section", missing)
	}
}

// TestStructureWellFormed tests a complete article hitting the ceiling.
func TestStructureWellFormed(t *testing.T) {
	t.Parallel()

	s := NewStructureAnalyzer()
	full := textOfRunes(6000)
	article := &model.Article{
		Title:     "مقالة مكتملة",
		FullText:  full,
		IntroText: textOfRunes(900),
		Sections: []model.Section{
			{Level: 2, Title: "التاريخ", Content: textOfRunes(800)},
			{Level: 3, Title: "البدايات", Content: textOfRunes(400)},
			{Level: 2, Title: "الجغرافيا", Content: textOfRunes(700)},
			{Level: 2, Title: "انظر أيضاً", Content: textOfRunes(100)},
			{Level: 2, Title: "وصلات خارجية", Content: textOfRunes(100)},
			{Level: 2, Title: "مراجع", Content: textOfRunes(100)},
		},
	}
	result, err := s.Analyze(context.Background(), article)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	// Intro in the ideal band (10), five top-level sections over two
	// levels (11), all expected sections (3), balanced (3): clamped to
	// the ceiling.
	if result.Score != 25 {
		t.Errorf("Score = %v, expected 25", result.Score)
	}
	if result.BoolDetail("is_stub") {
		t.Error("unexpected stub classification")
	}
	if missing, _ := result.Detail("missing_sections").([]string); len(missing) != 0 {
		t.Errorf("missing_sections = %v, expected none", missing)
	}
}

// TestStructureExpectedSectionsGates tests the length gates on expected
// sections.
func TestStructureExpectedSectionsGates(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		length          int
		expectedMissing []string
	}{
		{"short article expects references only", 2000, []string{"مراجع"}},
		{"medium article also expects external links", 4000, []string{"مراجع", "وصلات خارجية"}},
		{"long article also expects see-also", 6000, []string{"مراجع", "وصلات خارجية", "انظر أيضاً"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			article := &model.Article{
				FullText: textOfRunes(tc.length),
				Sections: []model.Section{
					{Level: 2, Title: "التاريخ", Content: textOfRunes(200)},
					{Level: 2, Title: "الوصف", Content: textOfRunes(200)},
				},
			}
			missing, _ := expectedSections(article, article.Length())
			if len(missing) != len(tc.expectedMissing) {
				t.Fatalf("missing = %v, expected %v", missing, tc.expectedMissing)
			}
			for i := range missing {
				if missing[i] != tc.expectedMissing[i] {
					t.Errorf("missing[%d] = %q, expected %q", i, missing[i], tc.expectedMissing[i])
				}
			}
		})
	}
}

// TestStructureBalance tests the balance heuristic.
func TestStructureBalance(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		length   int
		h2       int
		balanced bool
	}{
		{"long article with one section", 4000, 1, false},
		{"short article with many sections", 1500, 6, false},
		{"proportional article", 4000, 4, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := isBalanced(tc.length, tc.h2); got != tc.balanced {
				t.Errorf("isBalanced(%d, %d) = %v, expected %v", tc.length, tc.h2, got, tc.balanced)
			}
		})
	}
}

// TestStructureMedicalIntroException tests that medical articles skip
// the long-lead-sentence penalty.
func TestStructureMedicalIntroException(t *testing.T) {
	t.Parallel()

	s := NewStructureAnalyzer()
	longSentence := textOfRunes(250)
	base := model.Article{
		FullText:  textOfRunes(3000),
		IntroText: longSentence,
		Sections: []model.Section{
			{Level: 2, Title: "مراجع", Content: textOfRunes(100)},
		},
	}

	plain := base
	plain.Title = "موضوع عام"
	medical := base
	medical.Title = "مرض نادر"

	plainResult, err := s.Analyze(context.Background(), &plain)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	medicalResult, err := s.Analyze(context.Background(), &medical)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if medicalResult.Score <= plainResult.Score {
		t.Errorf("medical score %v should exceed plain score %v", medicalResult.Score, plainResult.Score)
	}
}
