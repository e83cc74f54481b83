package model

import (
	"strings"
	"unicode/utf8"
)

// ArticleType classifies an article into a broad topic family. A few
// axis analyzers adjust their expectations by type (for example medical
// articles are allowed longer intro sentences, biographies are expected
// to carry an early-life section).
type ArticleType int

const (
	// TypeGeneral is the default classification.
	TypeGeneral ArticleType = iota

	// TypeBiography marks articles about a person.
	TypeBiography

	// TypeMedical marks medicine and health articles.
	TypeMedical

	// TypeGeographic marks places and other coordinate-bearing subjects.
	TypeGeographic
)

// String returns a human-readable representation of the article type.
func (t ArticleType) String() string {
	switch t {
	case TypeBiography:
		return "biography"
	case TypeMedical:
		return "medical"
	case TypeGeographic:
		return "geographic"
	case TypeGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// Section is one heading-delimited span of the article body.
type Section struct {
	// Level is the heading level (2 for top-level sections, up to 6).
	Level int `json:"level"`

	// Title is the heading text without markup.
	Title string `json:"title"`

	// Content is the body text between this heading and the next.
	Content string `json:"content"`
}

// Image describes one embedded image. Only descriptor-level fields are
// carried; the engine never sees image bytes.
type Image struct {
	// Source is the image filename or URL as referenced by the article.
	Source string `json:"source"`

	// Alt is the alternative text, empty when absent.
	Alt string `json:"alt"`

	// Width is the rendered width in pixels, zero when unknown.
	Width int `json:"width"`

	// InInfobox reports whether the image lives inside an infobox or
	// navigation template rather than the article body.
	InInfobox bool `json:"in_infobox"`
}

// Links carries pre-extracted link counts for the article.
type Links struct {
	// Internal is the number of resolvable wiki links.
	Internal int `json:"internal"`

	// External is the number of external URLs outside citations.
	External int `json:"external"`

	// Red is the number of wiki links pointing at missing pages.
	Red int `json:"red"`
}

// Article is the normalized, pre-extracted document model the engine
// consumes. It is supplied by an external document-model provider and is
// read-only to every analyzer.
//
// Design decision: analyzers receive this flat struct instead of raw
// markup or a parsed tree because it keeps every axis a pure function
// over plain data. Tree-shaped questions ("first N paragraphs", "heading
// followed by content") become slice operations over Sections.
type Article struct {
	// Title is the article title.
	Title string `json:"title"`

	// FullText is the complete article source text. It is the only
	// required field; an empty FullText yields the defined zero result
	// from every analyzer.
	FullText string `json:"full_text"`

	// IntroText is the lead text before the first heading.
	IntroText string `json:"intro_text"`

	// Sections lists the heading-delimited spans in document order.
	Sections []Section `json:"sections"`

	// Templates lists transcluded template names.
	Templates []string `json:"templates"`

	// Categories lists the article's category names.
	Categories []string `json:"categories"`

	// Images lists embedded image descriptors.
	Images []Image `json:"images"`

	// Links carries the pre-extracted link counts.
	Links Links `json:"links"`
}

// Length returns the article length in runes.
func (a *Article) Length() int {
	return utf8.RuneCountInString(a.FullText)
}

// WordCount returns the number of whitespace-separated tokens in the
// article text.
func (a *Article) WordCount() int {
	return len(strings.Fields(a.FullText))
}

// biographyTemplates are infobox names that mark an article as a
// biography.
var biographyTemplates = []string{
	"صندوق معلومات شخص",
	"infobox person",
	"سيرة ذاتية",
}

// medicalKeywords mark medicine and health articles when found in the
// title or categories.
var medicalKeywords = []string{
	"طب", "طبي", "مرض", "علاج", "دواء", "جراحة",
}

// geographicTemplates mark coordinate-bearing subjects.
var geographicTemplates = []string{
	"إحداثيات", "coord",
}

// Type classifies the article from its templates, categories, and title.
// Medical wins over geographic wins over biography when several match,
// matching how the expectations they drive stack up.
func (a *Article) Type() ArticleType {
	lowerTitle := strings.ToLower(a.Title)
	for _, kw := range medicalKeywords {
		if strings.Contains(lowerTitle, kw) {
			return TypeMedical
		}
		for _, c := range a.Categories {
			if strings.Contains(strings.ToLower(c), kw) {
				return TypeMedical
			}
		}
	}

	for _, tpl := range a.Templates {
		lower := strings.ToLower(tpl)
		for _, geo := range geographicTemplates {
			if strings.Contains(lower, geo) {
				return TypeGeographic
			}
		}
	}

	for _, tpl := range a.Templates {
		lower := strings.ToLower(tpl)
		for _, bio := range biographyTemplates {
			if strings.Contains(lower, bio) {
				return TypeBiography
			}
		}
	}

	return TypeGeneral
}

// HasTemplate reports whether any transcluded template name contains the
// given substring, case-insensitively.
func (a *Article) HasTemplate(substr string) bool {
	lower := strings.ToLower(substr)
	for _, tpl := range a.Templates {
		if strings.Contains(strings.ToLower(tpl), lower) {
			return true
		}
	}
	return false
}
