package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Score several résumés and rank them",
	Long:  "Scores each résumé file concurrently against the same target skills and prints them ranked by final ATS score. Documents with too little text are reported as rejected instead of failing the batch.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var (
	batchTargets     string
	batchTargetsFile string
	batchJobFile     string
	batchConcurrency int
	batchOutput      string
)

func init() {
	batchCmd.Flags().StringVarP(&batchTargets, "targets", "t", "", "Comma-separated target skills")
	batchCmd.Flags().StringVar(&batchTargetsFile, "targets-file", "", "File with one target skill per line")
	batchCmd.Flags().StringVar(&batchJobFile, "job-description", "", "Job description file compared with every résumé")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Documents scored in parallel (default from config)")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Path to output ranked results JSON")

	rootCmd.AddCommand(batchCmd)
}

// batchEntry is one element of the batch JSON output. Rejected documents
// carry Error and no Report.
type batchEntry struct {
	Rank         int                `json:"rank,omitempty"`
	ID           string             `json:"id"`
	ContentHash  string             `json:"content_hash"`
	SourceFormat string             `json:"source_format"`
	Report       *types.FinalReport `json:"report,omitempty"`
	Error        string             `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
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

	targets, err := parseTargets(batchTargets, batchTargetsFile)
	if err != nil {
		return err
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = a.cfg.Concurrency
	}

	job, err := readJobDescription(batchJobFile)
	if err != nil {
		return err
	}

	entries, err := scoreBatch(ctx, a, args, targets, job, concurrency)
	if err != nil {
		return err
	}

	printRanking(cmd.OutOrStdout(), entries)
	if batchOutput != "" {
		if err := writeJSON(cmd.OutOrStdout(), batchOutput, entries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results: %s\n", batchOutput)
	}
	return nil
}

// scoreBatch reads every file, analyzes them concurrently, and returns the
// scored documents ranked first followed by the rejected ones in input order.
func scoreBatch(ctx context.Context, a *app, paths []string, targets []string, job string, concurrency int) ([]batchEntry, error) {
	docs := make([]pipeline.Document, len(paths))
	metas := make([]*ingestion.Metadata, len(paths))
	for i, path := range paths {
		text, meta, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		docs[i] = pipeline.Document{ID: path, Text: text, Targets: targets, JobDescription: job}
		metas[i] = meta
	}

	results, err := a.analyzer.AnalyzeBatch(ctx, docs, concurrency)
	if err != nil {
		return nil, fmt.Errorf("batch scoring failed: %w", err)
	}

	entries := make([]batchEntry, 0, len(results))
	for i, r := range pipeline.Rank(results) {
		r.Report.RequestID = uuid.NewString()
		entries = append(entries, newBatchEntry(r, metas[r.Index], i+1))
	}
	for _, r := range results {
		if r.Err != nil {
			a.logger.Warn("document rejected",
				zap.String("file", r.ID),
				zap.String("content_hash", metas[r.Index].Hash),
				zap.Error(r.Err))
			entry := newBatchEntry(r, metas[r.Index], 0)
			entry.Error = describeError(r.ID, r.Err).Error()
			entries = append(entries, entry)
		}
	}

	a.logger.Info("batch scored",
		zap.Int("documents", len(results)),
		zap.Int("rejected", len(results)-countScored(entries)))
	return entries, nil
}

func newBatchEntry(r pipeline.BatchResult, meta *ingestion.Metadata, rank int) batchEntry {
	return batchEntry{
		Rank:         rank,
		ID:           r.ID,
		ContentHash:  meta.Hash,
		SourceFormat: meta.Format,
		Report:       r.Report,
	}
}

func countScored(entries []batchEntry) int {
	n := 0
	for _, e := range entries {
		if e.Report != nil {
			n++
		}
	}
	return n
}

func printRanking(w io.Writer, entries []batchEntry) {
	ranked := make([]observability.RankEntry, 0, len(entries))
	for _, e := range entries {
		if e.Report != nil {
			ranked = append(ranked, observability.RankEntry{ID: e.ID, Report: e.Report})
		}
	}
	observability.NewPrinter(w).PrintRanking(ranked)

	for _, e := range entries {
		if e.Error != "" {
			fmt.Fprintf(w, "Rejected: %s\n", e.Error)
		}
	}
}
