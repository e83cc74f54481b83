package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/wikiqual/wikiqual/internal/model"
)

// discardLogger returns a logger that swallows all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeArticle writes an article document to a temp file and returns its path.
func writeArticle(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// sampleArticleJSON is a minimal valid article document.
const sampleArticleJSON = `{
	"title": "مدينة قديمة",
	"full_text": "المدينة القديمة هي منطقة تاريخية تقع في قلب العاصمة. تحتوي على أسواق وأبنية أثرية عديدة.",
	"intro_text": "المدينة القديمة هي منطقة تاريخية.",
	"sections": [{"level": 2, "title": "التاريخ", "content": "بنيت المدينة قبل قرون عديدة."}],
	"templates": ["صندوق معلومات"],
	"categories": ["مدن"],
	"links": {"internal": 5, "external": 1, "red": 0}
}`

// TestLoadArticleStep tests the article loading step.
func TestLoadArticleStep(t *testing.T) {
	t.Parallel()

	t.Run("loads and decodes the document", func(t *testing.T) {
		t.Parallel()

		path := writeArticle(t, "article.json", sampleArticleJSON)
		run := NewRun(path)

		step := NewLoadArticleStep(WithArticleLogger(discardLogger()))
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("Do returned error: %v", err)
		}

		if run.Article == nil {
			t.Fatal("Article not set on the run")
		}
		if run.Article.Title != "مدينة قديمة" {
			t.Errorf("Title = %q, expected the document title", run.Article.Title)
		}
		if len(run.Article.Sections) != 1 {
			t.Errorf("Sections = %d, expected 1", len(run.Article.Sections))
		}
	})

	t.Run("falls back to the file name for a missing title", func(t *testing.T) {
		t.Parallel()

		path := writeArticle(t, "untitled.json", `{"full_text": "نص قصير."}`)
		run := NewRun(path)

		if err := NewLoadArticleStep(WithArticleLogger(discardLogger())).Do(context.Background(), run); err != nil {
			t.Fatalf("Do returned error: %v", err)
		}
		if run.Article.Title != "untitled" {
			t.Errorf("Title = %q, expected the file name without extension", run.Article.Title)
		}
	})

	t.Run("missing file returns ErrArticleNotFound", func(t *testing.T) {
		t.Parallel()

		run := NewRun(filepath.Join(t.TempDir(), "missing.json"))
		err := NewLoadArticleStep(WithArticleLogger(discardLogger())).Do(context.Background(), run)
		if !errors.Is(err, ErrArticleNotFound) {
			t.Errorf("Do returned %v, expected ErrArticleNotFound", err)
		}
	})

	t.Run("oversized file returns ErrArticleTooLarge", func(t *testing.T) {
		t.Parallel()

		path := writeArticle(t, "big.json", sampleArticleJSON)
		run := NewRun(path)

		step := NewLoadArticleStep(
			WithArticleMaxSize(10),
			WithArticleLogger(discardLogger()),
		)
		if err := step.Do(context.Background(), run); !errors.Is(err, ErrArticleTooLarge) {
			t.Errorf("Do returned %v, expected ErrArticleTooLarge", err)
		}
	})

	t.Run("malformed JSON returns error", func(t *testing.T) {
		t.Parallel()

		path := writeArticle(t, "broken.json", `{"title": `)
		run := NewRun(path)

		if err := NewLoadArticleStep(WithArticleLogger(discardLogger())).Do(context.Background(), run); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})
}

// TestLoadRulesStep tests the rule loading step.
func TestLoadRulesStep(t *testing.T) {
	t.Parallel()

	t.Run("empty path loads built-in rules", func(t *testing.T) {
		t.Parallel()

		run := NewRun("article.json")
		step := NewLoadRulesStep("", WithRulesLogger(discardLogger()))
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("Do returned error: %v", err)
		}
		if len(run.Rules) == 0 {
			t.Error("expected built-in rules to be loaded")
		}
	})

	t.Run("loads rules from a YAML file", func(t *testing.T) {
		t.Parallel()

		rulePath := filepath.Join(t.TempDir(), "rules.yml")
		content := `rules:
  - name: test-rule
    pattern: "ذالك"
    description: "common misspelling"
    suggestion: "ذلك"
`
		if err := os.WriteFile(rulePath, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		run := NewRun("article.json")
		step := NewLoadRulesStep(rulePath, WithRulesLogger(discardLogger()))
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("Do returned error: %v", err)
		}
		if len(run.Rules) != 1 {
			t.Fatalf("Rules = %d, expected 1", len(run.Rules))
		}
		if run.Rules[0].Name != "test-rule" {
			t.Errorf("rule name = %q, expected test-rule", run.Rules[0].Name)
		}
	})

	t.Run("caches rule files when a cache dir is set", func(t *testing.T) {
		t.Parallel()

		rulePath := filepath.Join(t.TempDir(), "rules.yml")
		content := `rules:
  - name: cached-rule
    pattern: "إنشاء الله"
    description: "misspelling"
`
		if err := os.WriteFile(rulePath, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cacheDir := t.TempDir()
		step := NewLoadRulesStep(rulePath,
			WithRuleCacheDir(cacheDir),
			WithRulesLogger(discardLogger()),
		)

		// First run populates the cache, second run reads from it.
		for i := 0; i < 2; i++ {
			run := NewRun("article.json")
			if err := step.Do(context.Background(), run); err != nil {
				t.Fatalf("run %d returned error: %v", i, err)
			}
			if len(run.Rules) != 1 {
				t.Fatalf("run %d loaded %d rules, expected 1", i, len(run.Rules))
			}
		}
	})
}

// TestAnalyzeStep tests the analysis step.
func TestAnalyzeStep(t *testing.T) {
	t.Parallel()

	t.Run("requires a loaded article", func(t *testing.T) {
		t.Parallel()

		run := NewRun("article.json")
		step := NewAnalyzeStep(WithAnalyzeLogger(discardLogger()))
		if err := step.Do(context.Background(), run); !errors.Is(err, ErrNoLoadedArticle) {
			t.Errorf("Do returned %v, expected ErrNoLoadedArticle", err)
		}
	})

	t.Run("produces results for every axis", func(t *testing.T) {
		t.Parallel()

		run := NewRun("article.json")
		run.Article = &model.Article{
			Title:    "مدينة قديمة",
			FullText: "المدينة القديمة منطقة تاريخية. تقع في قلب العاصمة وتحتوي على أسواق عديدة.",
		}

		step := NewAnalyzeStep(WithAnalyzeLogger(discardLogger()))
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("Do returned error: %v", err)
		}
		if len(run.Results) != 9 {
			t.Errorf("Results = %d axes, expected 9", len(run.Results))
		}
	})
}

// TestScoreStep tests the scoring step.
func TestScoreStep(t *testing.T) {
	t.Parallel()

	t.Run("requires a loaded article", func(t *testing.T) {
		t.Parallel()

		run := NewRun("article.json")
		step := NewScoreStep(WithScoreLogger(discardLogger()))
		if err := step.Do(context.Background(), run); !errors.Is(err, ErrNoLoadedArticle) {
			t.Errorf("Do returned %v, expected ErrNoLoadedArticle", err)
		}
	})

	t.Run("requires axis results", func(t *testing.T) {
		t.Parallel()

		run := NewRun("article.json")
		run.Article = &model.Article{Title: "مقالة"}

		step := NewScoreStep(WithScoreLogger(discardLogger()))
		if err := step.Do(context.Background(), run); !errors.Is(err, ErrNoAxisResults) {
			t.Errorf("Do returned %v, expected ErrNoAxisResults", err)
		}
	})

	t.Run("produces the final report from a full run", func(t *testing.T) {
		t.Parallel()

		run := NewRun("article.json")
		run.Article = &model.Article{
			Title:    "مدينة قديمة",
			FullText: "المدينة القديمة منطقة تاريخية. تقع في قلب العاصمة وتحتوي على أسواق عديدة.",
		}

		analyze := NewAnalyzeStep(WithAnalyzeLogger(discardLogger()))
		if err := analyze.Do(context.Background(), run); err != nil {
			t.Fatalf("analyze returned error: %v", err)
		}

		score := NewScoreStep(WithScoreLogger(discardLogger()))
		if err := score.Do(context.Background(), run); err != nil {
			t.Fatalf("score returned error: %v", err)
		}

		if run.Report == nil {
			t.Fatal("Report not set on the run")
		}
		if run.Report.Total < 0 || run.Report.Total > 100 {
			t.Errorf("Total = %d, expected a value in [0, 100]", run.Report.Total)
		}
		if run.Report.Title != "مدينة قديمة" {
			t.Errorf("Title = %q, expected the article title", run.Report.Title)
		}
	})
}

// TestDefaultPipeline tests the default pipeline wiring.
func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("wires the standard steps in order", func(t *testing.T) {
		t.Parallel()

		p := DefaultPipeline(
			[]Option{WithLogger(discardLogger())},
			WithPipelineStepLogger(discardLogger()),
		)

		expected := []string{"load_article", "load_rules", "analyze", "score"}
		names := p.StepNames()
		if len(names) != len(expected) {
			t.Fatalf("StepNames = %v, expected %v", names, expected)
		}
		for i, name := range expected {
			if names[i] != name {
				t.Errorf("step %d: got %q, expected %q", i, names[i], name)
			}
		}
	})

	t.Run("scores a document end to end", func(t *testing.T) {
		t.Parallel()

		path := writeArticle(t, "article.json", sampleArticleJSON)

		p := DefaultPipeline(
			[]Option{WithLogger(discardLogger())},
			WithPipelineStepLogger(discardLogger()),
		)

		run := NewRun(path)
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}

		if run.Report == nil {
			t.Fatal("Report not set after a full pipeline run")
		}
		if run.Report.TierName == "" {
			t.Error("report is missing the tier name")
		}
	})
}
