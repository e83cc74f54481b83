package textutil

import (
	"regexp"
	"strings"
)

// Markup-stripping patterns applied by CleanWikiMarkup, in order.
var (
	// templateRe matches one non-nested template transclusion. It is
	// applied repeatedly so nested templates collapse inside out.
	templateRe = regexp.MustCompile(`\{\{[^{}]*\}\}`)

	// pipedLinkRe collapses [[target|display]] to its display text.
	pipedLinkRe = regexp.MustCompile(`\[\[[^\[\]|]*\|([^\[\]]*)\]\]`)

	// bareLinkRe collapses [[target]] to the target text.
	bareLinkRe = regexp.MustCompile(`\[\[([^\[\]]*)\]\]`)

	// externalLinkRe collapses [url display] to the display text and
	// drops bare [url] brackets.
	externalLinkRe = regexp.MustCompile(`\[https?://\S*\s*([^\]]*)\]`)

	// refBlockRe removes citation blocks and self-closing ref tags.
	refBlockRe       = regexp.MustCompile(`(?s)<ref[^>/]*>.*?</ref>`)
	refSelfClosingRe = regexp.MustCompile(`<ref[^>]*/>`)

	// headingRe removes heading markers and their titles.
	headingRe = regexp.MustCompile(`(?m)^=+[^=]+=+\s*$`)

	// listMarkerRe removes leading list and definition markers.
	listMarkerRe = regexp.MustCompile(`(?m)^[*#:;]+\s*`)

	// htmlTagRe removes residual markup tags.
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)

	// whitespaceRe collapses runs of whitespace to one space.
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// sentenceSplitRe splits on runs of sentence-terminal punctuation from
// either script, followed by whitespace or end of input.
var sentenceSplitRe = regexp.MustCompile(`[.!؟?]+(\s+|$)`)

// paragraphSplitRe splits on blank-line boundaries.
var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

// CleanWikiMarkup strips markup noise from article text: template
// transclusions, link syntax (collapsed to display text), citation
// blocks, heading markers, list markers, and residual tags. Whitespace
// is collapsed afterwards.
func CleanWikiMarkup(text string) string {
	if text == "" {
		return ""
	}

	// Nested templates collapse one layer per pass.
	for i := 0; i < 10 && templateRe.MatchString(text); i++ {
		text = templateRe.ReplaceAllString(text, " ")
	}

	text = refBlockRe.ReplaceAllString(text, " ")
	text = refSelfClosingRe.ReplaceAllString(text, " ")
	text = pipedLinkRe.ReplaceAllString(text, "$1")
	text = bareLinkRe.ReplaceAllString(text, "$1")
	text = externalLinkRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, " ")
	text = listMarkerRe.ReplaceAllString(text, "")
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// SegmentSentences splits article text into prose sentences. Markup is
// stripped first, then the text is split on sentence-terminal
// punctuation. Fragments that are list items, citation remnants, or
// template remnants are filtered out. Empty input returns an empty
// slice, never an error.
func SegmentSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cleaned := CleanWikiMarkup(text)
	parts := sentenceSplitRe.Split(cleaned, -1)

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		if isStructuralNoise(s) {
			continue
		}
		sentences = append(sentences, s)
	}
	return sentences
}

// isStructuralNoise reports whether a segmented fragment is leftover
// structure rather than prose.
func isStructuralNoise(s string) bool {
	switch s[0] {
	case '*', '#', ':', ';', '|':
		return true
	}
	if strings.Contains(s, "<ref") || strings.Contains(s, "</ref") {
		return true
	}
	if strings.Contains(s, "{{") || strings.Contains(s, "}}") {
		return true
	}
	return false
}

// SegmentParagraphs splits text on blank-line boundaries, trims each
// paragraph, and drops empty entries.
func SegmentParagraphs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := paragraphSplitRe.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
