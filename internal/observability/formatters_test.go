package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *types.FinalReport {
	component := func(points, max float64, status string) types.ComponentScore {
		return types.ComponentScore{PointsEarned: points, MaxPoints: max, Percentage: points / max * 100, Status: status}
	}
	r := &types.FinalReport{
		FinalATSScore:     67.8,
		Grade:             types.GradeGood,
		RawScore:          67.8,
		QualityMultiplier: 1,
		WordCount:         500,
		SkillCount:        16,
		Ensemble:          types.EnsembleScore{CombinedScore: 54.67, RelevanceSource: types.RelevanceHeuristicFallback},
		Recommendations: []types.Recommendation{
			{Category: "Skill Gaps", Priority: types.PriorityHigh, Message: "Develop these skills: AWS"},
		},
	}
	r.ScoreBreakdown.ContactInfo.ComponentScore = component(11, 15, "partial")
	r.ScoreBreakdown.Formatting.ComponentScore = component(16, 20, "excellent")
	r.ScoreBreakdown.Skills.ComponentScore = component(25, 25, "excellent")
	r.ScoreBreakdown.Experience.ComponentScore = component(8, 20, "fair")
	r.ScoreBreakdown.Education.ComponentScore = component(7, 10, "adequate")
	r.ScoreBreakdown.Keywords.ComponentScore = component(0.8, 10, "weak")
	return r
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(sampleReport())
	output := buf.String()

	assert.Contains(t, output, "ATS SCORE")
	assert.Contains(t, output, "67.8 (Good)")
	assert.Contains(t, output, "heuristic_fallback")
	assert.Contains(t, output, "SCORE BREAKDOWN")
	assert.Contains(t, output, "partial")
	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "Develop these skills: AWS")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(nil)

	assert.Contains(t, buf.String(), "NO RECOMMENDATIONS")
}

func TestPrintSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkills(map[string][]string{
		"programming_languages": {"Go", "Java", "Python", "Ruby", "Rust", "Scala", "Swift"},
		"databases":             {"Redis"},
		"soft":                  {},
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED SKILLS")
	assert.Contains(t, output, "programming_languages (7)")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "Redis")
	assert.NotContains(t, output, "soft")
	assert.Less(t, strings.Index(output, "programming_languages"), strings.Index(output, "databases"))
}

func TestPrintSkills_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSkills(nil)
	assert.Contains(t, buf.String(), "No skills found")
}

func TestPrintFeatures(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFeatures([]types.Feature{{Name: "has_email", Value: 1}, {Name: "skill_density", Value: 0.032}})
	output := buf.String()

	assert.Contains(t, output, "FEATURE VECTOR")
	assert.Contains(t, output, "has_email")
	assert.Contains(t, output, "0.0320")
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRanking([]RankEntry{
		{ID: "alice.txt", Report: &types.FinalReport{FinalATSScore: 81.2, Grade: types.GradeExcellent}},
		{ID: "bob.txt", Report: &types.FinalReport{FinalATSScore: 52, Grade: types.GradeFair}},
	})
	output := buf.String()

	assert.Contains(t, output, " 1. alice.txt")
	assert.Contains(t, output, " 2. bob.txt")
	assert.Less(t, strings.Index(output, "alice.txt"), strings.Index(output, "bob.txt"))
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}
