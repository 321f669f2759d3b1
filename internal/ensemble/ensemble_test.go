package ensemble

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jonathan/ats-scorer/internal/features"
	"github.com/jonathan/ats-scorer/internal/model"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRegressor struct {
	score float64
	err   error
}

func (f fakeRegressor) Trained() bool { return true }

func (f fakeRegressor) Predict(context.Context, []float64) (float64, error) {
	return f.score, f.err
}

func vectorOf(t *testing.T, values map[string]float64) features.Vector {
	t.Helper()
	raw := make([]float64, features.Count)
	for name, value := range values {
		i := features.Index(name)
		require.GreaterOrEqual(t, i, 0, name)
		raw[i] = value
	}
	v, err := features.FromValues(raw)
	require.NoError(t, err)
	return v
}

func fullVector(t *testing.T) features.Vector {
	return vectorOf(t, map[string]float64{
		features.HasName:              1,
		features.HasEmail:             1,
		features.HasPhone:             1,
		features.HasLocation:          1,
		features.WordCountNormalized:  1,
		features.HasExperienceSection: 1,
		features.HasEducationSection:  1,
		features.HasSkillsSection:     1,
		features.HasProjectsSection:   1,
		features.YearsOfExperience:    10,
		features.TotalSkills:          20,
		features.SkillMatchPercentage: 100,
		features.ActionVerbCount:      5,
		features.HasBulletPoints:      1,
		features.ProperCapitalization: 1,
	})
}

func partialVector(t *testing.T) features.Vector {
	return vectorOf(t, map[string]float64{
		features.HasName:              1,
		features.HasEmail:             1,
		features.WordCountNormalized:  0.4,
		features.HasExperienceSection: 1,
		features.HasEducationSection:  1,
		features.YearsOfExperience:    2.5,
		features.TotalSkills:          6,
		features.SkillMatchPercentage: 50,
		features.HasBulletPoints:      1,
		features.ProperCapitalization: 1,
	})
}

func TestHeuristicScore(t *testing.T) {
	assert.Equal(t, 100.0, HeuristicScore(fullVector(t)))
	assert.Equal(t, 0.0, HeuristicScore(vectorOf(t, nil)))
	// 5 + 6 + 7.5 + 7.5 + 8 + 10 + 3.33
	assert.Equal(t, 47.33, HeuristicScore(partialVector(t)))
}

func TestHeuristicScore_FormattingGroupCapped(t *testing.T) {
	many := vectorOf(t, map[string]float64{features.ActionVerbCount: 40})
	assert.Equal(t, 5.0, HeuristicScore(many))
}

func TestCompleteness(t *testing.T) {
	assert.Equal(t, 100.0, Completeness(fullVector(t)))
	assert.Equal(t, 80.0, Completeness(partialVector(t)))
	assert.Equal(t, 0.0, Completeness(vectorOf(t, nil)))
}

func TestCombine(t *testing.T) {
	assert.Equal(t, 75.0, Combine(80, 50, 100))
	assert.Equal(t, 0.0, Combine(0, 0, 0))
	assert.Equal(t, 100.0, Combine(100, 100, 100))
}

func TestSelectStrategy(t *testing.T) {
	assert.IsType(t, HeuristicFallbackStrategy{}, SelectStrategy(nil, nil))
	assert.IsType(t, HeuristicFallbackStrategy{}, SelectStrategy(model.Untrained{}, nil))

	s := SelectStrategy(fakeRegressor{score: 70}, nil)
	assert.IsType(t, &TrainedModelStrategy{}, s)
	assert.Equal(t, types.RelevanceTrainedModel, s.Name())
}

func TestTrainedModelStrategy(t *testing.T) {
	ctx := context.Background()
	v := partialVector(t)

	tests := []struct {
		name   string
		reg    fakeRegressor
		score  float64
		source string
	}{
		{"prediction", fakeRegressor{score: 88.123}, 88.12, types.RelevanceTrainedModel},
		{"clamped", fakeRegressor{score: 150}, 100, types.RelevanceTrainedModel},
		{"error falls back", fakeRegressor{err: errors.New("boom")}, 47.33, types.RelevanceHeuristicFallback},
		{"NaN falls back", fakeRegressor{score: math.NaN()}, 47.33, types.RelevanceHeuristicFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, source := SelectStrategy(tt.reg, nil).Relevance(ctx, v)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.source, source)
		})
	}
}

func TestTrainedModelStrategy_LogsFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := SelectStrategy(fakeRegressor{err: errors.New("boom")}, zap.New(core))

	_, source := s.Relevance(context.Background(), partialVector(t))
	assert.Equal(t, types.RelevanceHeuristicFallback, source)

	entries := logs.FilterField(zap.String("signal", "relevance")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestEvaluate(t *testing.T) {
	got := Evaluate(context.Background(), HeuristicFallbackStrategy{}, partialVector(t))

	assert.Equal(t, 47.33, got.RelevanceScore)
	assert.Equal(t, types.RelevanceHeuristicFallback, got.RelevanceSource)
	assert.Equal(t, 50.0, got.SkillMatchPercentage)
	assert.Equal(t, 80.0, got.Completeness)
	assert.Equal(t, Combine(47.33, 50, 80), got.CombinedScore)
	assert.InDelta(t, 54.67, got.CombinedScore, 0.01)
}

func TestEvaluate_NilStrategyUsesHeuristic(t *testing.T) {
	got := Evaluate(context.Background(), nil, fullVector(t))
	assert.Equal(t, types.RelevanceHeuristicFallback, got.RelevanceSource)
	assert.Equal(t, 100.0, got.CombinedScore)
}

func TestEvaluate_Deterministic(t *testing.T) {
	v := partialVector(t)
	first := Evaluate(context.Background(), HeuristicFallbackStrategy{}, v)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(context.Background(), HeuristicFallbackStrategy{}, v))
	}
}
