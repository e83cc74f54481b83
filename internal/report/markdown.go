package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/wikiqual/wikiqual/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAxisScores(md, report)
	w.writeNotes(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with the total and tier.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Article Quality Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Article", report.Title},
			{"Total Score", strconv.Itoa(report.Total) + "/100"},
			{"Tier", report.TierName},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
}

// writeAlert writes an appropriate alert based on the tier.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch report.Tier {
	case model.TierFeatured:
		md.Tip(fmt.Sprintf("The article scores %d/100 and meets featured-level quality.", report.Total))
	case model.TierGood:
		md.Note(fmt.Sprintf("The article scores %d/100 and meets good-article quality.", report.Total))
	case model.TierAdvanced:
		md.Importantf("The article scores %d/100; a focused push can reach good-article level.", report.Total)
	case model.TierStart, model.TierStubPlus:
		md.Warningf("The article scores %d/100 and needs substantial work.", report.Total)
	default:
		md.Cautionf("The article scores %d/100 and is effectively a stub.", report.Total)
	}
	md.PlainText("")
}

// writeAxisScores writes the per-axis score table and a score
// distribution chart.
func (w *MarkdownWriter) writeAxisScores(md *markdown.Markdown, report *model.Report) {
	md.H2("Axis Scores")
	md.PlainText("")

	rows := make([][]string, 0, len(displayOrder))
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
		rows = append(rows, []string{
			axis,
			fmt.Sprintf("%.1f / %.0f", score, max),
			fmt.Sprintf("%.0f%%", percent),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Axis", "Score", "Share"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, report)
}

// writePieChart writes a mermaid pie chart of the weighted axis scores.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Weighted Score Distribution"),
		piechart.WithShowData(true),
	)

	plotted := false
	for _, axis := range displayOrder {
		score := report.AxisScores[axis]
		if score <= 0 {
			continue
		}
		chart.LabelAndIntValue(axis, uint64(score))
		plotted = true
	}
	if !plotted {
		return
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeNotes writes the improvement notes as a numbered list.
func (w *MarkdownWriter) writeNotes(md *markdown.Markdown, report *model.Report) {
	md.H2("Improvement Notes")
	md.PlainText("")

	if len(report.Notes) == 0 {
		md.PlainText("No improvement notes.")
		md.PlainText("")
		return
	}

	md.OrderedList(report.Notes...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by wikiqual*")
}
