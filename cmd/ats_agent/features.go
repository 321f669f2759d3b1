package main

import (
	"context"
	"fmt"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Print the feature vector of a résumé",
	Long:  "Builds the fixed-order feature vector used by the relevance strategies and prints it as named values.",
	RunE:  runFeatures,
}

var (
	featuresInput       string
	featuresTargets     string
	featuresTargetsFile string
	featuresOutput      string
	featuresVerbose     bool
)

func init() {
	featuresCmd.Flags().StringVarP(&featuresInput, "file", "f", "", "Path to résumé file, or - for stdin (required)")
	featuresCmd.Flags().StringVarP(&featuresTargets, "targets", "t", "", "Comma-separated target skills")
	featuresCmd.Flags().StringVar(&featuresTargetsFile, "targets-file", "", "File with one target skill per line")
	featuresCmd.Flags().StringVarP(&featuresOutput, "out", "o", "", "Path to output JSON (default stdout)")
	featuresCmd.Flags().BoolVarP(&featuresVerbose, "verbose", "v", false, "Print the vector as a table")

	if err := featuresCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, _ []string) error {
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

	targets, err := parseTargets(featuresTargets, featuresTargetsFile)
	if err != nil {
		return err
	}

	named, err := documentFeatures(ctx, a, featuresInput, targets)
	if err != nil {
		return err
	}

	if err := writeJSON(cmd.OutOrStdout(), featuresOutput, named); err != nil {
		return err
	}
	if featuresVerbose {
		observability.NewPrinter(verboseWriter(cmd, featuresOutput)).PrintFeatures(named)
	}
	return nil
}

func documentFeatures(ctx context.Context, a *app, path string, targets []string) ([]types.Feature, error) {
	text, _, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	vector, err := a.analyzer.Features(ctx, text, targets)
	if err != nil {
		return nil, describeError(path, err)
	}
	return vector.Named(), nil
}
