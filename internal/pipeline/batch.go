package pipeline

import (
	"context"
	"errors"
	"sort"

	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds AnalyzeBatch when the caller passes 0.
const DefaultConcurrency = 4

// Document is one batch input.
type Document struct {
	ID      string
	Text    string
	Targets []string
	// JobDescription is optional; see Analyzer.AnalyzeWithJob.
	JobDescription string
}

// BatchResult is the outcome for one Document. Exactly one of Report and Err
// is set.
type BatchResult struct {
	Index  int
	ID     string
	Report *types.FinalReport
	Err    error
}

// AnalyzeBatch analyzes documents concurrently, at most concurrency at a
// time. Results are in input order. A document that fails its content check
// gets its own Err; any other error aborts the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, docs []Document, concurrency int) ([]BatchResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	results := make([]BatchResult, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			report, err := a.analyze(gCtx, i, doc.Text, doc.Targets, doc.JobDescription)
			results[i] = BatchResult{Index: i, ID: doc.ID, Report: report}
			if err != nil {
				var contentErr *ingestion.InsufficientContentError
				if !errors.As(err, &contentErr) {
					return err
				}
				results[i].Err = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Rank returns the scored results ordered by final score, highest first.
// Equal scores keep input order. Failed results are dropped.
func Rank(results []BatchResult) []BatchResult {
	ranked := make([]BatchResult, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Report != nil {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Report.FinalATSScore > ranked[j].Report.FinalATSScore
	})
	return ranked
}
