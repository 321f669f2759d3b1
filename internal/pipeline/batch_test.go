package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBatch_OrderAndErrors(t *testing.T) {
	a := newAnalyzer(t, Options{})
	thin := strings.Replace(sampleResume, "jane.doe@example.com", "", 1)
	docs := []Document{
		{ID: "full", Text: sampleResume},
		{ID: "short", Text: "too short"},
		{ID: "thin", Text: thin, Targets: []string{"AWS"}},
	}

	results, err := a.AnalyzeBatch(context.Background(), docs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, docs[i].ID, r.ID)
	}
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Report)

	var contentErr *ingestion.InsufficientContentError
	assert.ErrorAs(t, results[1].Err, &contentErr)
	assert.Nil(t, results[1].Report)

	require.NotNil(t, results[2].Report)
	assert.Equal(t, []string{"AWS"}, results[2].Report.SkillGaps)
}

func TestAnalyzeBatch_ConcurrentMatchesSequential(t *testing.T) {
	a := newAnalyzer(t, Options{})
	docs := make([]Document, 20)
	for i := range docs {
		docs[i] = Document{ID: fmt.Sprint(i), Text: sampleResume, Targets: []string{"Go", "AWS"}}
	}

	want, err := a.Analyze(context.Background(), sampleResume, []string{"Go", "AWS"})
	require.NoError(t, err)

	results, err := a.AnalyzeBatch(context.Background(), docs, 8)
	require.NoError(t, err)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, want, r.Report)
	}
}

func TestAnalyzeBatch_JobDescription(t *testing.T) {
	a := newAnalyzer(t, Options{})
	job := "Backend engineer with Go and Kubernetes"
	docs := []Document{
		{ID: "with-job", Text: sampleResume, JobDescription: job},
		{ID: "without-job", Text: sampleResume},
	}

	results, err := a.AnalyzeBatch(context.Background(), docs, 2)
	require.NoError(t, err)

	want, err := a.AnalyzeWithJob(context.Background(), sampleResume, nil, job)
	require.NoError(t, err)
	assert.Equal(t, want.SkillMatch.TextSimilarity, results[0].Report.SkillMatch.TextSimilarity)
	assert.Greater(t, results[0].Report.SkillMatch.TextSimilarity, 0.0)
	assert.Zero(t, results[1].Report.SkillMatch.TextSimilarity)
}

func TestAnalyzeBatch_CanceledContext(t *testing.T) {
	a := newAnalyzer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AnalyzeBatch(ctx, []Document{{Text: sampleResume}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	a := newAnalyzer(t, Options{})
	results, err := a.AnalyzeBatch(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRank(t *testing.T) {
	report := func(score float64) *types.FinalReport {
		return &types.FinalReport{FinalATSScore: score}
	}
	results := []BatchResult{
		{Index: 0, ID: "a", Report: report(50)},
		{Index: 1, ID: "b", Report: report(80)},
		{Index: 2, ID: "c", Err: fmt.Errorf("failed")},
		{Index: 3, ID: "d", Report: report(50)},
		{Index: 4, ID: "e", Report: report(90)},
	}

	ranked := Rank(results)
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"e", "b", "a", "d"}, ids)
	assert.Equal(t, "a", results[0].ID)
}
