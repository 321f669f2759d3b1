package ensemble

import (
	"context"

	"github.com/jonathan/ats-scorer/internal/features"
	"github.com/jonathan/ats-scorer/internal/types"
)

// Blend weights.
const (
	relevanceBlend    = 0.50
	skillMatchBlend   = 0.30
	completenessBlend = 0.20
)

// Completeness is 100 x the mean of the name, email and core section flags.
func Completeness(v features.Vector) float64 {
	return round(100*mean(
		v.Get(features.HasName),
		v.Get(features.HasEmail),
		v.Get(features.HasExperienceSection),
		v.Get(features.HasEducationSection),
		v.Get(features.HasSkillsSection),
	), 2)
}

// Combine blends the three signals and rounds to 2 decimals.
func Combine(relevance, skillMatchPercentage, completeness float64) float64 {
	return round(relevanceBlend*relevance+
		skillMatchBlend*skillMatchPercentage+
		completenessBlend*completeness, 2)
}

// Evaluate runs the strategy and the combiner over one vector.
func Evaluate(ctx context.Context, strategy Strategy, v features.Vector) types.EnsembleScore {
	if strategy == nil {
		strategy = HeuristicFallbackStrategy{}
	}
	relevance, source := strategy.Relevance(ctx, v)
	match := v.Get(features.SkillMatchPercentage)
	completeness := Completeness(v)

	return types.EnsembleScore{
		RelevanceScore:       relevance,
		RelevanceSource:      source,
		SkillMatchPercentage: round(match, 2),
		Completeness:         completeness,
		CombinedScore:        Combine(relevance, match, completeness),
	}
}
