package rules

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestIsSafePattern tests the catastrophic-backtracking heuristic.
func TestIsSafePattern(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		pattern string
		safe    bool
	}{
		{"plain literal", `هاذا`, true},
		{"anchored group", `(?:^|\s)تم\s+`, true},
		{"nested plus quantifiers", `(a+)++`, false},
		{"nested star quantifiers", `(a*)**`, false},
		{"plus star", `(a+)+*`, false},
		{"adjacent quantified groups", `(a)+(b)`, false},
		{"excessive range", `a{0,999}`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsSafePattern(tc.pattern); got != tc.safe {
				t.Errorf("IsSafePattern(%q) = %v, expected %v", tc.pattern, got, tc.safe)
			}
		})
	}
}

// TestRuleCompile tests validation and one-time compilation.
func TestRuleCompile(t *testing.T) {
	t.Parallel()

	t.Run("valid pattern compiles", func(t *testing.T) {
		t.Parallel()

		r := Rule{Name: "test", Pattern: `ذالك`}
		if err := r.Compile(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		m, err := r.Matcher()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !m.MatchString("ومن ذالك الوقت") {
			t.Error("expected compiled rule to match")
		}
	})

	t.Run("case-insensitive flag honored", func(t *testing.T) {
		t.Parallel()

		r := Rule{Name: "flag", Pattern: `translated`, Flags: "gi"}
		m, err := r.Matcher()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !m.MatchString("TRANSLATED") {
			t.Error("expected case-insensitive match")
		}
	})

	t.Run("empty pattern rejected", func(t *testing.T) {
		t.Parallel()

		r := Rule{Name: "empty"}
		if err := r.Compile(); err != ErrEmptyPattern {
			t.Errorf("got %v, expected ErrEmptyPattern", err)
		}
	})

	t.Run("invalid regex rejected", func(t *testing.T) {
		t.Parallel()

		r := Rule{Name: "broken", Pattern: `[unterminated`}
		if err := r.Compile(); err == nil {
			t.Error("expected compile error for invalid regex")
		}
	})

	t.Run("unsafe pattern rejected before compilation", func(t *testing.T) {
		t.Parallel()

		r := Rule{Name: "unsafe", Pattern: `(a+)++`}
		err := r.Compile()
		if err == nil {
			t.Fatal("expected error for unsafe pattern")
		}
	})

	t.Run("precompiled rule passes through", func(t *testing.T) {
		t.Parallel()

		rules := DefaultRules()
		for _, r := range rules {
			if err := r.Compile(); err != nil {
				t.Errorf("default rule %q failed to compile: %v", r.Name, err)
			}
		}
	})
}

// TestDefaultRules tests the built-in rule set.
func TestDefaultRules(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if len(rules) == 0 {
		t.Fatal("expected non-empty default rule set")
	}

	// Mutating the returned slice must not affect later callers.
	rules[0].Name = "mutated"
	if DefaultRules()[0].Name == "mutated" {
		t.Error("DefaultRules returned shared state")
	}

	text := "هاذا النص فيه ذالك الخطأ"
	matched := 0
	for _, r := range DefaultRules() {
		m, err := r.Matcher()
		if err != nil {
			t.Fatalf("rule %q: %v", r.Name, err)
		}
		matched += len(m.FindAllString(text, -1))
	}
	if matched != 2 {
		t.Errorf("expected 2 default-rule matches, got %d", matched)
	}
}

// TestLoadFile tests YAML rule loading with skip-on-invalid semantics.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file loads all rules", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yml")
		content := `rules:
  - name: thaalika
    pattern: "ذالك"
    description: misspelling
    suggestion: use ذلك
  - name: doubled
    pattern: "!!"
    description: excessive punctuation
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		result, err := LoadFile(path, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Rules) != 2 {
			t.Errorf("got %d rules, expected 2", len(result.Rules))
		}
		if result.Skipped != 0 {
			t.Errorf("got %d skipped, expected 0", result.Skipped)
		}
	})

	t.Run("invalid rule skipped without aborting", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yml")
		content := `rules:
  - name: broken
    pattern: "[unterminated"
    description: bad
  - name: good
    pattern: "معضم"
    description: misspelling
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		result, err := LoadFile(path, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Rules) != 1 {
			t.Errorf("got %d rules, expected 1", len(result.Rules))
		}
		if result.Skipped != 1 {
			t.Errorf("got %d skipped, expected 1", result.Skipped)
		}
	})

	t.Run("missing file returns sentinel", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"), discardLogger())
		if err != ErrRuleFileNotFound {
			t.Errorf("got %v, expected ErrRuleFileNotFound", err)
		}
	})

	t.Run("empty path falls back to defaults", func(t *testing.T) {
		t.Parallel()

		result, err := Load("", discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Rules) != len(DefaultRules()) {
			t.Errorf("got %d rules, expected default set of %d",
				len(result.Rules), len(DefaultRules()))
		}
	})
}

// TestCache tests the pull-through rule cache.
func TestCache(t *testing.T) {
	t.Parallel()

	writeRuleFile := func(t *testing.T, dir string) string {
		t.Helper()
		path := filepath.Join(dir, "rules.yml")
		content := `rules:
  - name: thaalika
    pattern: "ذالك"
    description: misspelling
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("miss then hit", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cache, err := OpenCache(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer cache.Close()

		path := writeRuleFile(t, dir)
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}

		ctx := context.Background()

		got, err := cache.Get(ctx, path, info.ModTime())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatal("expected cache miss on empty cache")
		}

		loaded, err := LoadWithCache(ctx, path, cache, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(loaded.Rules) != 1 {
			t.Fatalf("got %d rules, expected 1", len(loaded.Rules))
		}

		got, err = cache.Get(ctx, path, info.ModTime())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil {
			t.Fatal("expected cache hit after LoadWithCache")
		}
		if len(got.Rules) != 1 {
			t.Errorf("cached set has %d rules, expected 1", len(got.Rules))
		}
	})

	t.Run("stale mod time is a miss", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cache, err := OpenCache(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer cache.Close()

		ctx := context.Background()
		now := time.Now()
		result := &LoadResult{Rules: []Rule{{Name: "r", Pattern: "x"}}}
		if err := cache.Put(ctx, "source.yml", now, result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := cache.Get(ctx, "source.yml", now.Add(time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Error("expected miss for changed mod time")
		}
	})

	t.Run("nil cache falls back to direct load", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeRuleFile(t, dir)

		result, err := LoadWithCache(context.Background(), path, nil, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Rules) != 1 {
			t.Errorf("got %d rules, expected 1", len(result.Rules))
		}
	})
}
