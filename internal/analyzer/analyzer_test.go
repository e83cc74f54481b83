package analyzer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/wikiqual/wikiqual/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sampleArticle builds a reasonably complete article fixture.
func sampleArticle() *model.Article {
	body := strings.Repeat("المدينة القديمة تقع على ضفاف النهر وتشتهر بأسواقها التاريخية. ", 80)
	return &model.Article{
		Title:     "مدينة قديمة",
		FullText:  body + "{{استشهاد ويب|عنوان=تاريخ المدينة|ناشر=دار النشر|تاريخ=2020-05-01|مسار=https://example.org/city}} <ref>مصدر أول</ref>",
		IntroText: strings.Repeat("المدينة القديمة مركز تجاري مهم. ", 20),
		Sections: []model.Section{
			{Level: 2, Title: "التاريخ", Content: strings.Repeat("نشأت المدينة قبل قرون. ", 20)},
			{Level: 3, Title: "العصر الحديث", Content: strings.Repeat("توسعت المدينة حديثاً. ", 10)},
			{Level: 2, Title: "الجغرافيا", Content: strings.Repeat("تقع المدينة على النهر. ", 15)},
			{Level: 2, Title: "مراجع", Content: "{{مراجع}}"},
		},
		Templates:  []string{"صندوق معلومات مدينة"},
		Categories: []string{"مدن", "تاريخ", "جغرافيا"},
		Images: []model.Image{
			{Source: "old_city.jpg", Alt: "منظر عام للمدينة", Width: 300},
		},
		Links: model.Links{Internal: 24, External: 3, Red: 1},
	}
}

// TestCoordinatorAnalyze tests that all built-in axes run and report
// bounded scores.
func TestCoordinatorAnalyze(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(WithLogger(discardLogger()))
	results, err := c.Analyze(context.Background(), sampleArticle())
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	axes := []string{
		model.AxisLanguage, model.AxisStructure, model.AxisReferences,
		model.AxisMedia, model.AxisLinks, model.AxisGrammar,
		model.AxisMaintenance, model.AxisRevision, model.AxisCrossProject,
	}
	if len(results) != len(axes) {
		t.Errorf("got %d axis results, expected %d", len(results), len(axes))
	}
	for _, axis := range axes {
		r, ok := results[axis]
		if !ok {
			t.Errorf("axis %q missing from results", axis)
			continue
		}
		if r.Score < 0 || r.Score > r.Max {
			t.Errorf("axis %q score %v out of [0, %v]", axis, r.Score, r.Max)
		}
	}
}

// TestCoordinatorEmptyArticle tests that every axis yields its zero
// result for an article with no text.
func TestCoordinatorEmptyArticle(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(WithLogger(discardLogger()))
	results, err := c.Analyze(context.Background(), &model.Article{Title: "فارغة"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	for axis, r := range results {
		if r.Score != 0 {
			t.Errorf("axis %q score = %v for empty article, expected 0", axis, r.Score)
		}
	}
}

// TestCoordinatorCancellation tests that a cancelled context aborts the
// fan-out.
func TestCoordinatorCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoordinator(WithLogger(discardLogger()))
	if _, err := c.Analyze(ctx, sampleArticle()); err == nil {
		t.Error("expected error from cancelled context")
	}
}

// stubAxis is a minimal analyzer for registration tests.
type stubAxis struct{}

func (stubAxis) Name() string { return "stub" }
func (stubAxis) Max() float64 { return 1 }
func (stubAxis) Analyze(_ context.Context, _ *model.Article) (model.AxisResult, error) {
	return model.AxisResult{Score: 1, Max: 1}, nil
}

// TestCoordinatorRegister tests that custom analyzers join the fan-out.
func TestCoordinatorRegister(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(WithLogger(discardLogger()))
	c.Register(stubAxis{})

	results, err := c.Analyze(context.Background(), sampleArticle())
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if r, ok := results["stub"]; !ok || r.Score != 1 {
		t.Errorf("custom analyzer result missing or wrong: %+v", r)
	}
}
