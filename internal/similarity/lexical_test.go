package similarity

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapFolder map[string]string

func (f mapFolder) CanonicalName(name string) string {
	if c, ok := f[strings.ToLower(name)]; ok {
		return c
	}
	return name
}

func TestLexicalEmbedder_Similarity(t *testing.T) {
	e := NewLexicalEmbedder(nil)
	ctx := context.Background()

	same, err := e.Similarity(ctx, "Python", "python")
	require.NoError(t, err)
	assert.Equal(t, 1.0, same)

	disjoint, err := e.Similarity(ctx, "Go", "Rust")
	require.NoError(t, err)
	assert.Equal(t, 0.0, disjoint)

	partial, err := e.Similarity(ctx, "React", "React Native")
	require.NoError(t, err)
	assert.InDelta(t, 5/(2.2360679775*3.4641016151), partial, 1e-6)
	assert.Less(t, partial, DefaultThreshold)

	empty, err := e.Similarity(ctx, "", "Go")
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty)
}

func TestLexicalEmbedder_FoldsAliases(t *testing.T) {
	e := NewLexicalEmbedder(mapFolder{"golang": "Go", "k8s": "Kubernetes"})

	m, err := e.Matrix(context.Background(), []string{"Go", "Kubernetes"}, []string{"golang", "k8s", "Rust"})
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, []float64{1, 0, 0}, m[0])
	assert.Equal(t, 1.0, m[1][1])
}

func TestLexicalEmbedder_Deterministic(t *testing.T) {
	e := NewLexicalEmbedder(nil)
	a := []string{"Machine Learning", "Data Analysis", "PostgreSQL"}
	b := []string{"Deep Learning", "Data Visualization", "Postgres"}

	first, err := e.Matrix(context.Background(), a, b)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.Matrix(context.Background(), a, b)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatcher_WithLexicalEmbedder(t *testing.T) {
	m := NewMatcher(NewLexicalEmbedder(mapFolder{"golang": "Go"}), DefaultConfig(), nil)

	got := m.Match(context.Background(), []string{"Go", "Docker"}, []string{"golang", "Docker", "Haskell"})
	assert.Equal(t, []string{"golang", "Docker"}, got.MatchedSkills)
	assert.Equal(t, []string{"Haskell"}, got.MissingSkills)
	assert.InDelta(t, 66.67, got.OverallSimilarity, 1e-9)
}

func TestMatcher_TextSimilarityWithLexicalEmbedder(t *testing.T) {
	m := NewMatcher(NewLexicalEmbedder(nil), DefaultConfig(), nil)
	ctx := context.Background()
	resume := "Backend engineer building Go services on Kubernetes"

	assert.Equal(t, 1.0, m.TextSimilarity(ctx, resume, "backend engineer  building go services on kubernetes"))
	related := m.TextSimilarity(ctx, resume, "Hiring a backend Go engineer for Kubernetes services")
	unrelated := m.TextSimilarity(ctx, resume, "Pastry chef wanted")
	assert.Greater(t, related, unrelated)
	assert.Less(t, related, 1.0)
}
