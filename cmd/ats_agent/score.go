package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé and emit a JSON report",
	Long:  "Scores a résumé file (.txt, .md, .html, or - for stdin) against ATS heuristics and writes the FinalReport JSON, optionally matching a list of target skills.",
	RunE:  runScore,
}

var (
	scoreInput       string
	scoreTargets     string
	scoreTargetsFile string
	scoreJobFile     string
	scoreOutput      string
	scoreValidate    bool
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "file", "f", "", "Path to résumé file, or - for stdin (required)")
	scoreCmd.Flags().StringVarP(&scoreTargets, "targets", "t", "", "Comma-separated target skills")
	scoreCmd.Flags().StringVar(&scoreTargetsFile, "targets-file", "", "File with one target skill per line")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job-description", "", "Job description file compared with the whole résumé")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output report JSON (default stdout)")
	scoreCmd.Flags().BoolVar(&scoreValidate, "validate", false, "Validate the report against the embedded JSON schema")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a human-readable summary")

	if err := scoreCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, settings, configPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.logger.Warn("cleanup failed", zap.Error(cerr))
		}
	}()

	targets, err := parseTargets(scoreTargets, scoreTargetsFile)
	if err != nil {
		return err
	}

	job, err := readJobDescription(scoreJobFile)
	if err != nil {
		return err
	}

	report, err := scoreDocument(ctx, a, scoreInput, targets, job)
	if err != nil {
		return err
	}

	if scoreValidate {
		data, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := schemas.ValidateReport(data); err != nil {
			return fmt.Errorf("report failed schema validation: %w", err)
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), scoreOutput, report); err != nil {
		return err
	}

	if scoreVerbose {
		printVerboseReport(verboseWriter(cmd, scoreOutput), report)
	}
	return nil
}

// scoreDocument analyzes one file and stamps the report with a request ID.
// job is the optional job description text.
func scoreDocument(ctx context.Context, a *app, path string, targets []string, job string) (*types.FinalReport, error) {
	text, meta, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	report, err := a.analyzer.AnalyzeWithJob(ctx, text, targets, job)
	if err != nil {
		return nil, describeError(path, err)
	}

	report.RequestID = uuid.NewString()
	a.logger.Info("document scored",
		zap.String("request_id", report.RequestID),
		zap.String("file", path),
		zap.String("content_hash", meta.Hash),
		zap.String("source_format", meta.Format),
		zap.Float64("final_score", report.FinalATSScore),
		zap.String("grade", report.Grade))
	return report, nil
}

func printVerboseReport(w io.Writer, report *types.FinalReport) {
	printer := observability.NewPrinter(w)
	printer.PrintReport(report)
	printer.PrintSkills(report.CategorizedSkills)
}

// verboseWriter keeps stdout machine-readable: the summary goes to stdout
// only when the JSON went to a file.
func verboseWriter(cmd *cobra.Command, outPath string) io.Writer {
	if outPath != "" {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}
