// Package ensemble computes the relevance score with the trained regressor or
// its deterministic heuristic fallback, and blends it with the skill-match and
// completeness signals.
package ensemble

import (
	"context"
	"math"

	"github.com/jonathan/ats-scorer/internal/features"
	"github.com/jonathan/ats-scorer/internal/model"
	"github.com/jonathan/ats-scorer/internal/types"
	"go.uber.org/zap"
)

// Heuristic group weights. They sum to 1.
const (
	contactWeight     = 0.10
	contentWeight     = 0.15
	sectionsWeight    = 0.15
	experienceWeight  = 0.15
	skillsWeight      = 0.20
	skillMatchWeight  = 0.20
	formattingWeight  = 0.05
	yearsForFullScore = 5.0
	skillsForFullMark = 15.0
)

// Strategy produces the relevance score for a feature vector. The source
// identifies which variant actually produced the score.
type Strategy interface {
	Relevance(ctx context.Context, v features.Vector) (score float64, source string)
	Name() string
}

// SelectStrategy picks the variant once, at construction time.
func SelectStrategy(reg model.Regressor, logger *zap.Logger) Strategy {
	if reg == nil || !reg.Trained() {
		return HeuristicFallbackStrategy{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainedModelStrategy{regressor: reg, logger: logger}
}

// HeuristicFallbackStrategy combines seven feature groups under fixed weights.
type HeuristicFallbackStrategy struct{}

// Name returns the relevance source reported for this strategy.
func (HeuristicFallbackStrategy) Name() string {
	return types.RelevanceHeuristicFallback
}

// Relevance returns the weighted group score on a 0-100 scale.
func (HeuristicFallbackStrategy) Relevance(_ context.Context, v features.Vector) (float64, string) {
	return HeuristicScore(v), types.RelevanceHeuristicFallback
}

// HeuristicScore is the fallback relevance score, rounded to 2 decimals.
func HeuristicScore(v features.Vector) float64 {
	contact := mean(
		v.Get(features.HasName),
		v.Get(features.HasEmail),
		v.Get(features.HasPhone),
		v.Get(features.HasLocation),
	)
	content := math.Min(v.Get(features.WordCountNormalized), 1)
	sections := mean(
		v.Get(features.HasExperienceSection),
		v.Get(features.HasEducationSection),
		v.Get(features.HasSkillsSection),
		v.Get(features.HasProjectsSection),
	)
	experience := math.Min(v.Get(features.YearsOfExperience)/yearsForFullScore, 1)
	skills := math.Min(v.Get(features.TotalSkills)/skillsForFullMark, 1)
	match := v.Get(features.SkillMatchPercentage) / 100
	formatting := math.Min((v.Get(features.ActionVerbCount)+
		v.Get(features.HasBulletPoints)+
		v.Get(features.ProperCapitalization))/3, 1)

	score := contact*contactWeight +
		content*contentWeight +
		sections*sectionsWeight +
		experience*experienceWeight +
		skills*skillsWeight +
		match*skillMatchWeight +
		formatting*formattingWeight

	return round(score*100, 2)
}

// TrainedModelStrategy asks the regressor and uses the heuristic for any
// document the regressor fails on.
type TrainedModelStrategy struct {
	regressor model.Regressor
	logger    *zap.Logger
}

// Name returns the relevance source reported for this strategy.
func (s *TrainedModelStrategy) Name() string {
	return types.RelevanceTrainedModel
}

// Relevance returns the regressor's prediction, rounded to 2 decimals.
func (s *TrainedModelStrategy) Relevance(ctx context.Context, v features.Vector) (float64, string) {
	score, err := s.regressor.Predict(ctx, v.Values())
	if err != nil || math.IsNaN(score) {
		s.logger.Warn("regressor failed, using heuristic relevance",
			zap.String("signal", "relevance"),
			zap.Error(err),
		)
		return HeuristicScore(v), types.RelevanceHeuristicFallback
	}
	return round(math.Max(0, math.Min(100, score)), 2), types.RelevanceTrainedModel
}

func mean(values ...float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
