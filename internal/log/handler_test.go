package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTruncatingHandler_CapsLongValues tests that long string attributes
// are cut at the rune cap.
func TestTruncatingHandler_CapsLongValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncatingHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	long := strings.Repeat("كلمة ", 60) // 300 runes
	logger.Info("excerpt attached", "excerpt", long)

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("long value was not capped")
	}
	if !strings.Contains(out, ellipsis) {
		t.Error("capped value is missing the ellipsis marker")
	}
}

// TestTruncatingHandler_KeepsShortValues tests that short values pass
// through untouched.
func TestTruncatingHandler_KeepsShortValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncatingHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.Info("short excerpt", "excerpt", "جملة قصيرة")

	out := buf.String()
	if !strings.Contains(out, "جملة قصيرة") {
		t.Error("short value should pass through unchanged")
	}
	if strings.Contains(out, ellipsis) {
		t.Error("short value should not carry an ellipsis")
	}
}

// TestTruncatingHandler_NonStringValues tests that non-string attributes
// are never modified.
func TestTruncatingHandler_NonStringValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncatingHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.Info("counts", "sentences", 42, "ratio", 0.85)

	out := buf.String()
	if !strings.Contains(out, "sentences=42") {
		t.Errorf("int attribute altered: %s", out)
	}
	if !strings.Contains(out, "ratio=0.85") {
		t.Errorf("float attribute altered: %s", out)
	}
}

// TestTruncatingHandler_Groups tests that grouped attributes are capped
// recursively.
func TestTruncatingHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncatingHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	long := strings.Repeat("x", MaxAttrLen+50)
	logger.Info("grouped",
		slog.Group("hit",
			slog.String("excerpt", long),
			slog.Int("count", 3),
		),
	)

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("grouped long value was not capped")
	}
	if !strings.Contains(out, "hit.count=3") {
		t.Errorf("grouped int attribute lost: %s", out)
	}
}

// TestTruncatingHandler_WithAttrs tests that pre-bound attributes are capped.
func TestTruncatingHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncatingHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	long := strings.Repeat("y", MaxAttrLen+1)
	logger.With("context", long).Info("bound")

	if strings.Contains(buf.String(), long) {
		t.Error("pre-bound long value was not capped")
	}
}

// TestNewLogger tests the level selection of the constructor.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("default level hides info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("hidden")
		logger.Warn("visible")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Error("info logged at default level")
		}
		if !strings.Contains(out, "visible") {
			t.Error("warning not logged at default level")
		}
	})

	t.Run("verbose level shows debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("details")

		if !strings.Contains(buf.String(), "details") {
			t.Error("debug not logged in verbose mode")
		}
	})
}

// TestNewJSONLogger tests the JSON constructor.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)

	logger.Debug("structured", "axis", "language")

	out := buf.String()
	if !strings.Contains(out, `"axis":"language"`) {
		t.Errorf("expected JSON output, got: %s", out)
	}
}
