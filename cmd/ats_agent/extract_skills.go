package main

import (
	"fmt"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "List the canonical skills found in a résumé",
	Long:  "Extracts canonical skill names from a résumé file, applying aliases and skill implications, and prints them with their categories.",
	RunE:  runExtractSkills,
}

var (
	extractSkillsInput   string
	extractSkillsOutput  string
	extractSkillsVerbose bool
)

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractSkillsInput, "file", "f", "", "Path to résumé file, or - for stdin (required)")
	extractSkillsCmd.Flags().StringVarP(&extractSkillsOutput, "out", "o", "", "Path to output JSON (default stdout)")
	extractSkillsCmd.Flags().BoolVarP(&extractSkillsVerbose, "verbose", "v", false, "Print skills grouped by category")

	if err := extractSkillsCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(extractSkillsCmd)
}

// skillsOutput is the JSON document written by extract-skills.
type skillsOutput struct {
	Skills            []string            `json:"skills"`
	SkillCount        int                 `json:"skill_count"`
	CategorizedSkills map[string][]string `json:"categorized_skills"`
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), settings, configPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.logger.Warn("cleanup failed", zap.Error(cerr))
		}
	}()

	out, err := extractSkills(a, extractSkillsInput)
	if err != nil {
		return err
	}

	if err := writeJSON(cmd.OutOrStdout(), extractSkillsOutput, out); err != nil {
		return err
	}
	if extractSkillsVerbose {
		observability.NewPrinter(verboseWriter(cmd, extractSkillsOutput)).PrintSkills(out.CategorizedSkills)
	}
	return nil
}

func extractSkills(a *app, path string) (*skillsOutput, error) {
	text, _, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	found := a.analyzer.ExtractSkills(text)
	if found == nil {
		found = []string{}
	}
	return &skillsOutput{
		Skills:            found,
		SkillCount:        len(found),
		CategorizedSkills: a.analyzer.Canonicalizer().Categorize(found),
	}, nil
}
