package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/wikiqual/wikiqual/internal/model"
)

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables the per-axis detail dump in the output.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with per-axis details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *TextWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeAxisScores(&sb, report)
	w.writeNotes(&sb, report)
	if w.verbose {
		w.writeDetails(&sb, report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with the total and tier.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       ARTICLE QUALITY REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Article: %s\n", report.Title))
	sb.WriteString(fmt.Sprintf("Total:   %d/100\n", report.Total))
	sb.WriteString(fmt.Sprintf("Tier:    %s\n", report.TierName))
	sb.WriteString("\n")
}

// writeAxisScores writes the per-axis score table in the fixed display
// order.
func (w *TextWriter) writeAxisScores(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("AXIS SCORES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, axis := range displayOrder {
		max, ok := report.AxisMax[axis]
		if !ok {
			continue
		}
		score := report.AxisScores[axis]

		percent := 0.0
		if max > 0 {
			percent = score / max * 100
		}
		sb.WriteString(fmt.Sprintf("  %-14s %5.1f / %-4.0f (%3.0f%%)\n", axis, score, max, percent))
	}
	sb.WriteString("\n")
}

// writeNotes writes the numbered improvement notes.
func (w *TextWriter) writeNotes(sb *strings.Builder, report *model.Report) {
	if len(report.Notes) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("IMPROVEMENT NOTES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for i, note := range report.Notes {
		sb.WriteString(fmt.Sprintf("  %2d. %s\n", i+1, note))
	}
	sb.WriteString("\n")
}

// writeDetails dumps the per-axis detail maps.
func (w *TextWriter) writeDetails(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("AXIS DETAILS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, axis := range displayOrder {
		detail, ok := report.Details[axis]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("[%s] score %.1f of %.0f\n", axis, detail.Score, detail.Max))
		for _, key := range sortedDetailKeys(detail.Details) {
			sb.WriteString(fmt.Sprintf("    %s: %v\n", key, detail.Details[key]))
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *TextWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by wikiqual\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
