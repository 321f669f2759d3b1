// Package scoring implements the six-component rule-based ATS scorer and the
// recommendation rules evaluated on its breakdown.
package scoring

import (
	"math"

	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/skills"
	"github.com/jonathan/ats-scorer/internal/types"
)

// Component maxima. They sum to 100.
const (
	MaxContact    = 15.0
	MaxFormatting = 20.0
	MaxSkills     = 25.0
	MaxExperience = 20.0
	MaxEducation  = 10.0
	MaxKeywords   = 10.0
)

// Grade thresholds on the final score.
const (
	ExcellentThreshold = 75.0
	GoodThreshold      = 60.0
	FairThreshold      = 45.0
)

// Input is the per-document data the scorer reads.
type Input struct {
	// Text is the cleaned document text.
	Text     string
	Sections parsing.Sections
	// Skills is the canonical skill set of the whole document.
	Skills []string
}

// Result is the scored document.
type Result struct {
	Breakdown         types.ScoreBreakdown
	RawScore          float64
	QualityMultiplier float64
	FinalScore        float64
	Grade             string
	WordCount         int
}

// Scorer is read-only after construction and safe for concurrent use.
type Scorer struct {
	canon *skills.Canonicalizer
}

// NewScorer creates a Scorer that uses canon for soft-skill, in-demand and
// experience-section skill lookups.
func NewScorer(canon *skills.Canonicalizer) *Scorer {
	return &Scorer{canon: canon}
}

// Score computes every component, the quality multiplier, and the grade.
func (s *Scorer) Score(in Input) Result {
	wordCount := parsing.CountWords(in.Text)

	breakdown := types.ScoreBreakdown{
		ContactInfo: scoreContact(in.Text),
		Formatting:  scoreFormatting(in.Text, in.Sections),
		Skills:      s.scoreSkills(in.Skills, in.Sections.Text(parsing.SectionExperience)),
		Experience:  scoreExperience(in.Text),
		Education:   scoreEducation(in.Text),
		Keywords:    scoreKeywords(in.Text),
	}

	raw := round(breakdown.RawTotal(), 2)
	multiplier := QualityMultiplier(wordCount)
	final := clamp(round(raw*multiplier, 1), 0, 100)

	return Result{
		Breakdown:         breakdown,
		RawScore:          raw,
		QualityMultiplier: multiplier,
		FinalScore:        final,
		Grade:             Grade(final),
		WordCount:         wordCount,
	}
}

// QualityMultiplier scales the raw total by document length.
func QualityMultiplier(wordCount int) float64 {
	switch {
	case wordCount < 200:
		return 0.70
	case wordCount < 350:
		return 0.85
	case wordCount < 600:
		return 1.00
	case wordCount < 800:
		return 0.95
	default:
		return 0.90
	}
}

// Grade maps a final score to its label.
func Grade(score float64) string {
	switch {
	case score >= ExcellentThreshold:
		return types.GradeExcellent
	case score >= GoodThreshold:
		return types.GradeGood
	case score >= FairThreshold:
		return types.GradeFair
	default:
		return types.GradeNeedsImprovement
	}
}

// experienceSkills counts skills literally mentioned in the experience
// section. Implied parents do not count.
func (s *Scorer) experienceSkills(skillSet []string, experienceText string) int {
	if experienceText == "" || len(skillSet) == 0 || s.canon == nil {
		return 0
	}
	inSection := make(map[string]bool)
	for _, skill := range s.canon.ExtractDirect(ingestion.NormalizeForMatching(experienceText)) {
		inSection[skill] = true
	}
	count := 0
	for _, skill := range skillSet {
		if inSection[skill] {
			count++
		}
	}
	return count
}

func component(earned, max float64, status func(float64) string) types.ComponentScore {
	earned = clamp(earned, 0, max)
	return types.ComponentScore{
		PointsEarned: earned,
		MaxPoints:    max,
		Percentage:   round(earned/max*100, 1),
		Status:       status(earned),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
