// Package similarity scores résumé skills against a target skill list
// through an embedding collaborator.
package similarity

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
	"go.uber.org/zap"
)

// Embedder is the embedding-similarity collaborator contract.
type Embedder interface {
	// Matrix returns the |a|x|b| cosine-similarity matrix.
	Matrix(ctx context.Context, a, b []string) ([][]float64, error)
	// Similarity returns the cosine similarity of two strings.
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Default thresholds
const (
	DefaultThreshold      = 0.7
	DefaultExactThreshold = 0.95
)

// Config controls when a target counts as matched.
type Config struct {
	// Threshold is the minimum best similarity for a target to be matched.
	Threshold float64
	// ExactThreshold is the similarity above which a match is reported as exact.
	ExactThreshold float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, ExactThreshold: DefaultExactThreshold}
}

// Matcher is the Similarity Adapter. It never returns an error: collaborator
// failures degrade to a zero-match result.
type Matcher struct {
	embedder Embedder
	config   Config
	logger   *zap.Logger
}

// NewMatcher creates a Matcher. A nil logger discards degradation warnings.
func NewMatcher(embedder Embedder, config Config, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{embedder: embedder, config: config, logger: logger}
}

// Match finds, for each target, the résumé skill with the highest similarity.
// The first résumé skill wins ties.
func (m *Matcher) Match(ctx context.Context, resumeSkills, targets []string) types.SimilarityResult {
	if len(targets) == 0 {
		return types.EmptySimilarity()
	}
	if len(resumeSkills) == 0 || m == nil || m.embedder == nil {
		return types.NoMatches(targets)
	}

	matrix, err := m.safeMatrix(ctx, resumeSkills, targets)
	if err != nil {
		m.logger.Warn("similarity collaborator failed",
			zap.String("signal", "similarity"),
			zap.Error(err))
		return types.NoMatches(targets)
	}

	result := types.EmptySimilarity()
	result.TotalRequired = len(targets)
	for j, target := range targets {
		best, bestScore := 0, matrix[0][j]
		for i := 1; i < len(resumeSkills); i++ {
			if matrix[i][j] > bestScore {
				best, bestScore = i, matrix[i][j]
			}
		}
		if bestScore < m.config.Threshold {
			result.MissingSkills = append(result.MissingSkills, target)
			continue
		}
		matchType := types.MatchSimilar
		if bestScore > m.config.ExactThreshold {
			matchType = types.MatchExact
		}
		result.MatchedSkills = append(result.MatchedSkills, target)
		result.SkillMatches = append(result.SkillMatches, types.SkillMatch{
			JobSkill:    target,
			ResumeSkill: resumeSkills[best],
			Similarity:  round(bestScore, 4),
			MatchType:   matchType,
		})
	}

	result.MatchCount = len(result.MatchedSkills)
	result.OverallSimilarity = round(100*float64(result.MatchCount)/float64(max(result.TotalRequired, 1)), 2)
	return result
}

// safeMatrix calls the collaborator, converting panics and malformed
// matrices into errors.
func (m *Matcher) safeMatrix(ctx context.Context, a, b []string) (matrix [][]float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			matrix, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	matrix, err = m.embedder.Matrix(ctx, a, b)
	if err != nil {
		return nil, err
	}
	if len(matrix) != len(a) {
		return nil, fmt.Errorf("similarity matrix has %d rows, want %d", len(matrix), len(a))
	}
	for i, row := range matrix {
		if len(row) != len(b) {
			return nil, fmt.Errorf("similarity matrix row %d has %d columns, want %d", i, len(row), len(b))
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("similarity matrix row %d contains %v", i, v)
			}
		}
	}
	return matrix, nil
}

// TextSimilarity returns the embedding similarity of the full résumé text
// and a job description, rounded to four places. An empty side or a
// collaborator failure yields 0.
func (m *Matcher) TextSimilarity(ctx context.Context, resumeText, jobText string) float64 {
	if m == nil || m.embedder == nil || strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return 0
	}
	v, err := m.safeSimilarity(ctx, resumeText, jobText)
	if err != nil {
		m.logger.Warn("text similarity collaborator failed",
			zap.String("signal", "similarity"),
			zap.Error(err))
		return 0
	}
	return round(v, 4)
}

func (m *Matcher) safeSimilarity(ctx context.Context, a, b string) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = 0, fmt.Errorf("panic: %v", r)
		}
	}()

	v, err = m.embedder.Similarity(ctx, a, b)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("text similarity is %v", v)
	}
	return v, nil
}

// Cosine returns the cosine similarity of two vectors, or 0 when either has
// zero magnitude or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
