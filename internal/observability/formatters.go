// Package observability provides logging, run metrics, and formatted output
// utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// categoryOrder fixes the order categories are printed in.
var categoryOrder = []string{
	"programming_languages", "frameworks", "databases", "cloud_devops",
	"ml_ai", "methodologies", "tools", "soft",
}

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// RankEntry is one row of a batch ranking.
type RankEntry struct {
	ID     string
	Report *types.FinalReport
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs the score summary, the component breakdown, and the
// recommendations of a report.
func (p *Printer) PrintReport(report *types.FinalReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Final score:  %.1f (%s)\n", report.FinalATSScore, report.Grade))
	sb.WriteString(fmt.Sprintf("Raw score:    %.2f x %.2f\n", report.RawScore, report.QualityMultiplier))
	sb.WriteString(fmt.Sprintf("Word count:   %d\n", report.WordCount))
	sb.WriteString(fmt.Sprintf("Skills:       %d\n", report.SkillCount))
	sb.WriteString(fmt.Sprintf("Combined:     %.2f (%s)", report.Ensemble.CombinedScore, report.Ensemble.RelevanceSource))
	p.printBox("ATS SCORE", sb.String())

	p.PrintBreakdown(report.ScoreBreakdown)
	p.PrintRecommendations(report.Recommendations)
}

// PrintBreakdown outputs one line per scoring component.
func (p *Printer) PrintBreakdown(b types.ScoreBreakdown) {
	rows := []struct {
		name  string
		score types.ComponentScore
	}{
		{"Contact info", b.ContactInfo.ComponentScore},
		{"Formatting", b.Formatting.ComponentScore},
		{"Skills", b.Skills.ComponentScore},
		{"Experience", b.Experience.ComponentScore},
		{"Education", b.Education.ComponentScore},
		{"Keywords", b.Keywords.ComponentScore},
	}

	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%-13s %5.2f / %-4.0f %s", row.name, row.score.PointsEarned, row.score.MaxPoints, row.score.Status))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("SCORE BREAKDOWN", sb.String())
}

// PrintSkills outputs skills grouped by category. Empty categories are skipped.
func (p *Printer) PrintSkills(categorized map[string][]string) {
	var sb strings.Builder
	for _, category := range categoryOrder {
		skills := categorized[category]
		if len(skills) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", category, len(skills)))
		count := min(len(skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
		}
		if len(skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("No skills found\n")
	}
	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeatures outputs the feature vector as name/value rows.
func (p *Printer) PrintFeatures(named []types.Feature) {
	var sb strings.Builder
	for i, f := range named {
		sb.WriteString(fmt.Sprintf("%-26s %10.4f", f.Name, f.Value))
		if i < len(named)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("FEATURE VECTOR", sb.String())
}

// PrintRecommendations outputs the recommendation list.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO RECOMMENDATIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, r := range recs {
		sb.WriteString(fmt.Sprintf("⚠ [%s] %s\n", r.Priority, r.Category))
		sb.WriteString(fmt.Sprintf("  %s", r.Message))
		if i < len(recs)-1 {
			sb.WriteString("\n\n")
		}
	}
	p.printBox("RECOMMENDATIONS", sb.String())
}

// PrintRanking outputs batch results in the order given.
func (p *Printer) PrintRanking(entries []RankEntry) {
	var sb strings.Builder
	for i, e := range entries {
		if e.Report == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%2d. %-30s %5.1f %s\n", i+1, e.ID, e.Report.FinalATSScore, e.Report.Grade))
	}
	if sb.Len() == 0 {
		sb.WriteString("No documents scored\n")
	}
	p.printBox("RANKING", strings.TrimSuffix(sb.String(), "\n"))
}
