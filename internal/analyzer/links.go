package analyzer

import (
	"context"
	"fmt"
	"math"

	"github.com/wikiqual/wikiqual/internal/model"
)

// LinkAnalyzer evaluates wiki-link connectivity: internal link counts,
// link density per hundred words, external links, and red-link ratio.
type LinkAnalyzer struct{}

// NewLinkAnalyzer creates a link analyzer.
func NewLinkAnalyzer() *LinkAnalyzer { return &LinkAnalyzer{} }

// Name returns the axis name.
func (l *LinkAnalyzer) Name() string { return model.AxisLinks }

// Max returns the axis score ceiling.
func (l *LinkAnalyzer) Max() float64 { return 15 }

// Analyze evaluates the article's link connectivity.
func (l *LinkAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: l.Max(), Details: map[string]any{}}
	if article.FullText == "" {
		result.Details["internal_links"] = 0
		return result, nil
	}

	links := article.Links
	words := article.WordCount()

	density := 0.0
	if words > 0 {
		density = float64(links.Internal) / float64(words) * 100
	}
	redRatio := 0.0
	if links.Internal > 0 {
		redRatio = float64(links.Red) / float64(links.Internal)
	}

	var score float64
	switch {
	case links.Internal >= 30:
		score = 10
	case links.Internal >= 20:
		score = 8
	case links.Internal >= 10:
		score = 6
	case links.Internal >= 5:
		score = 4
	case links.Internal >= 2:
		score = 2
	}

	if links.External >= 1 {
		score += 2
	}

	switch {
	case density >= 1.5 && density <= 5:
		score += 3
	case density >= 0.5 && density < 1.5:
		score += 2
	case density >= 0.2:
		score++
	}

	switch {
	case redRatio > 0.4:
		score -= 4
	case redRatio > 0.2:
		score -= 2
	}

	result.Details["internal_links"] = links.Internal
	result.Details["external_links"] = links.External
	result.Details["red_links"] = links.Red
	result.Details["link_density"] = math.Round(density*100) / 100
	result.Details["red_link_ratio"] = math.Round(redRatio*100) / 100

	result.Score = score
	result.Notes = l.notes(article, density, redRatio)
	result.Clamp()
	return result, nil
}

func (l *LinkAnalyzer) notes(article *model.Article, density, redRatio float64) []string {
	var notes []string
	links := article.Links

	if links.Internal < 5 {
		notes = append(notes, "The article has very few internal links; link key terms to related articles.")
	} else if links.Internal < 10 && article.Length() >= 2000 {
		notes = append(notes, "The article is substantial but sparsely linked; add more internal links.")
	}
	if redRatio > 0.3 {
		notes = append(notes, fmt.Sprintf("%d of %d internal links are red; create the targets or unlink them.", links.Red, links.Internal))
	}
	if density > 0 && density < 0.5 {
		notes = append(notes, "Link density is low; link roughly one term per hundred words.")
	} else if density > 7 {
		notes = append(notes, "Link density is excessive; unlink everyday terms.")
	}
	return notes
}

var _ AxisAnalyzer = (*LinkAnalyzer)(nil)
