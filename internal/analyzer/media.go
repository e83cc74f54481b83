package analyzer

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/textutil"
)

// Media axis thresholds.
const (
	decorativeWidthMax = 60
	badAltMinLen       = 5
)

// decorativeKeywords mark images that decorate rather than inform.
var decorativeKeywords = []string{
	"flag_of", "علم_", "icon-", "أيقونة",
}

// filterKeywords mark symbol-class images excluded from the informative
// count.
var filterKeywords = []string{
	"flag", "علم", "logo", "رمز", "icon", "أيقونة", "symbol",
}

// nonFreeKeywords mark images under restricted licensing.
var nonFreeKeywords = []string{
	"fair use", "fair-use", "non-free", "nonfree", "غير حر", "غير حرة",
}

var (
	commonsSourceRe = regexp.MustCompile(`(?i)commons|upload\.wikimedia\.org|\.(?:jpe?g|png|svg|gif|webp)$`)
	avSourceRe      = regexp.MustCompile(`(?i)\.(?:ogv|webm|ogg|oga|mp3|wav|mid)$`)
)

// MediaAnalyzer evaluates image use: informative versus decorative
// images, alt text quality, licensing, and visual density.
type MediaAnalyzer struct{}

// NewMediaAnalyzer creates a media analyzer.
func NewMediaAnalyzer() *MediaAnalyzer { return &MediaAnalyzer{} }

// Name returns the axis name.
func (m *MediaAnalyzer) Name() string { return model.AxisMedia }

// Max returns the axis score ceiling.
func (m *MediaAnalyzer) Max() float64 { return 10 }

// Analyze evaluates the article's media from the image descriptors.
func (m *MediaAnalyzer) Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.AxisResult{}, err
	}

	result := model.AxisResult{Max: m.Max(), Details: map[string]any{}}
	if article.FullText == "" {
		result.Details["informative_images"] = 0
		return result, nil
	}

	var (
		informative   int
		decorative    int
		filtered      int
		infobox       int
		withoutAlt    int
		badAlt        int
		nonFree       int
		commons       int
		arabicDesc    int
		hasVideoAudio bool
	)

	for _, img := range article.Images {
		lowerSrc := strings.ToLower(img.Source)

		if avSourceRe.MatchString(lowerSrc) {
			hasVideoAudio = true
		}
		if img.InInfobox {
			infobox++
		}
		if containsAny(lowerSrc, nonFreeKeywords) || containsAny(strings.ToLower(img.Alt), nonFreeKeywords) {
			nonFree++
		}
		if commonsSourceRe.MatchString(lowerSrc) {
			commons++
		}
		if textutil.HasArabic(img.Source) || textutil.HasArabic(img.Alt) {
			arabicDesc++
		}

		switch {
		case img.Width > 0 && img.Width < decorativeWidthMax,
			containsAny(lowerSrc, decorativeKeywords):
			decorative++
		case containsAny(lowerSrc, filterKeywords):
			filtered++
		default:
			informative++
			if img.Alt == "" {
				withoutAlt++
			}
			if textutil.RuneLen(img.Alt) < badAltMinLen {
				badAlt++
			}
		}
	}

	// Images counted for density exclude infobox placements on top of
	// the decorative and symbol filters.
	corrected := 0
	for _, img := range article.Images {
		lowerSrc := strings.ToLower(img.Source)
		if img.InInfobox || (img.Width > 0 && img.Width < decorativeWidthMax) {
			continue
		}
		if containsAny(lowerSrc, decorativeKeywords) || containsAny(lowerSrc, filterKeywords) {
			continue
		}
		corrected++
	}

	density := 0.0
	if words := article.WordCount(); words > 0 {
		density = float64(corrected) / float64(words) * 100
	}

	result.Details["total_images"] = len(article.Images)
	result.Details["informative_images"] = informative
	result.Details["decorative_images"] = decorative
	result.Details["filtered_images"] = filtered
	result.Details["infobox_images"] = infobox
	result.Details["images_without_alt"] = withoutAlt
	result.Details["bad_alt"] = badAlt
	result.Details["non_free"] = nonFree
	result.Details["commons_images"] = commons
	result.Details["arabic_descriptions"] = arabicDesc
	result.Details["corrected_count"] = corrected
	result.Details["density"] = math.Round(density*100) / 100
	result.Details["has_video_audio"] = hasVideoAudio

	result.Score = mediaScore(informative, infobox, withoutAlt, hasVideoAudio)
	result.Notes = m.notes(&result)
	result.Clamp()
	return result, nil
}

// mediaScore is the axis-internal score before the scoring engine's
// full recompute from the details.
func mediaScore(informative, infobox, withoutAlt int, hasVideoAudio bool) float64 {
	var score float64
	switch {
	case informative >= 5:
		score = 6
	case informative >= 3:
		score = 5
	case informative >= 2:
		score = 4
	case informative >= 1:
		score = 3
	}
	if infobox > 0 {
		score += 2
	}
	if hasVideoAudio {
		score += 2
	}
	score -= math.Min(2, float64(withoutAlt)*0.5)
	return math.Max(0, math.Min(10, score))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func (m *MediaAnalyzer) notes(r *model.AxisResult) []string {
	var notes []string

	if r.IntDetail("informative_images") == 0 {
		notes = append(notes, "The article has no informative images; add illustrative media.")
	}
	if r.IntDetail("infobox_images") == 0 && r.IntDetail("total_images") > 0 {
		notes = append(notes, "No infobox image was found; add one if an infobox exists.")
	}
	if withoutAlt := r.IntDetail("images_without_alt"); withoutAlt > 0 {
		notes = append(notes, fmt.Sprintf("%d images lack alt text; add descriptions for accessibility.", withoutAlt))
	}
	if nonFree := r.IntDetail("non_free"); nonFree > 0 {
		notes = append(notes, fmt.Sprintf("%d images appear to be non-free; prefer freely licensed media.", nonFree))
	}
	if density := r.FloatDetail("density"); density > 1.5 {
		notes = append(notes, "The image density is high relative to the text; trim decorative media.")
	}
	return notes
}

var _ AxisAnalyzer = (*MediaAnalyzer)(nil)
