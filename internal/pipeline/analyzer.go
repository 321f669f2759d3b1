// Package pipeline orchestrates one scoring invocation, from raw text to the
// final report, and runs independent invocations concurrently.
package pipeline

import (
	"context"
	"errors"

	"github.com/jonathan/ats-scorer/internal/ensemble"
	"github.com/jonathan/ats-scorer/internal/entities"
	"github.com/jonathan/ats-scorer/internal/features"
	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/similarity"
	"github.com/jonathan/ats-scorer/internal/skills"
	"github.com/jonathan/ats-scorer/internal/types"
	"go.uber.org/zap"
)

// Step names reported through ProgressCallback.
const (
	StepNormalize       = "normalize"
	StepSkills          = "extract_skills"
	StepEntities        = "extract_entities"
	StepSimilarity      = "match_targets"
	StepTextSimilarity  = "compare_job_description"
	StepFeatures        = "build_features"
	StepScore           = "score"
	StepEnsemble        = "ensemble"
	StepRecommendations = "recommendations"
)

// ProgressEvent represents a progress update during analysis
type ProgressEvent struct {
	Step    string `json:"step"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// ProgressCallback is called after each analysis step
type ProgressCallback func(event ProgressEvent)

// Recorder receives one observation per invocation.
type Recorder interface {
	ReportScored(report *types.FinalReport)
	DocumentRejected(reason string)
}

// Options configures an Analyzer. Only Canonicalizer is required.
type Options struct {
	Canonicalizer *skills.Canonicalizer
	Entities      *entities.Adapter
	Matcher       *similarity.Matcher
	Strategy      ensemble.Strategy
	Recorder      Recorder
	Logger        *zap.Logger
	// OnProgress may be called concurrently from AnalyzeBatch.
	OnProgress ProgressCallback
}

// Analyzer is immutable after construction and safe for concurrent use.
type Analyzer struct {
	canon      *skills.Canonicalizer
	entities   *entities.Adapter
	matcher    *similarity.Matcher
	scorer     *scoring.Scorer
	strategy   ensemble.Strategy
	recorder   Recorder
	logger     *zap.Logger
	onProgress ProgressCallback
}

// NewAnalyzer fills unset collaborators with the deterministic defaults:
// the heuristic recognizer, the lexical embedder, and the heuristic strategy.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if opts.Canonicalizer == nil {
		return nil, errors.New("canonicalizer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	adapter := opts.Entities
	if adapter == nil {
		adapter = entities.NewAdapter(entities.NewHeuristicRecognizer(), logger)
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = similarity.NewMatcher(similarity.NewLexicalEmbedder(opts.Canonicalizer), similarity.DefaultConfig(), logger)
	}
	strategy := opts.Strategy
	if strategy == nil {
		strategy = ensemble.HeuristicFallbackStrategy{}
	}

	return &Analyzer{
		canon:      opts.Canonicalizer,
		entities:   adapter,
		matcher:    matcher,
		scorer:     scoring.NewScorer(opts.Canonicalizer),
		strategy:   strategy,
		recorder:   opts.Recorder,
		logger:     logger,
		onProgress: opts.OnProgress,
	}, nil
}

// Strategy returns the relevance strategy selected at construction.
func (a *Analyzer) Strategy() ensemble.Strategy {
	return a.strategy
}

// Canonicalizer returns the canonicalizer the analyzer matches skills with.
func (a *Analyzer) Canonicalizer() *skills.Canonicalizer {
	return a.canon
}

// Analyze scores one document against an optional target skill list.
// Text with fewer than ingestion.MinContentChars non-whitespace characters
// fails with *ingestion.InsufficientContentError before any scoring runs.
func (a *Analyzer) Analyze(ctx context.Context, text string, targets []string) (*types.FinalReport, error) {
	return a.analyze(ctx, 0, text, targets, "")
}

// AnalyzeWithJob is Analyze plus a job description: the report's
// skill_match.text_similarity carries the embedding similarity of the whole
// résumé and jobDescription. A blank jobDescription leaves it at 0.
func (a *Analyzer) AnalyzeWithJob(ctx context.Context, text string, targets []string, jobDescription string) (*types.FinalReport, error) {
	return a.analyze(ctx, 0, text, targets, jobDescription)
}

func (a *Analyzer) analyze(ctx context.Context, index int, text string, targets []string, jobDescription string) (*types.FinalReport, error) {
	cleaned := ingestion.CleanText(text)
	if err := ingestion.CheckContent(cleaned); err != nil {
		if a.recorder != nil {
			a.recorder.DocumentRejected("insufficient_content")
		}
		return nil, err
	}
	normalized := ingestion.NormalizeForMatching(cleaned)
	sections := parsing.ExtractSections(cleaned)
	a.emit(StepNormalize, index, "text normalized")

	found := a.canon.Extract(normalized)
	categorized := a.canon.Categorize(found)
	a.emit(StepSkills, index, "skills extracted")

	ents := a.entities.Extract(ctx, cleaned)
	a.emit(StepEntities, index, "entities extracted")

	match := a.matcher.Match(ctx, found, skills.NormalizeTargets(targets, a.canon))
	a.emit(StepSimilarity, index, "targets matched")

	if jobDescription != "" {
		match.TextSimilarity = a.matcher.TextSimilarity(ctx, cleaned, ingestion.CleanText(jobDescription))
		a.emit(StepTextSimilarity, index, "job description compared")
	}

	vector := features.Build(features.Input{
		Text:           cleaned,
		Entities:       ents,
		Sections:       sections,
		Skills:         found,
		CategoryCounts: a.canon.CategoryCounts(found),
		Similarity:     &match,
	})
	a.emit(StepFeatures, index, "features built")

	result := a.scorer.Score(scoring.Input{Text: cleaned, Sections: sections, Skills: found})
	a.emit(StepScore, index, "document scored")

	ens := ensemble.Evaluate(ctx, a.strategy, vector)
	a.emit(StepEnsemble, index, "ensemble evaluated")

	recs := scoring.Recommend(result, len(found), match.MissingSkills)
	a.emit(StepRecommendations, index, "recommendations generated")

	report := &types.FinalReport{
		FinalATSScore:     result.FinalScore,
		Grade:             result.Grade,
		RawScore:          result.RawScore,
		QualityMultiplier: result.QualityMultiplier,
		WordCount:         result.WordCount,
		ScoreBreakdown:    result.Breakdown,
		ExtractedSkills:   found,
		SkillCount:        len(found),
		CategorizedSkills: categorized,
		SkillGaps:         match.MissingSkills,
		SkillMatch:        match,
		Entities:          ents,
		Ensemble:          ens,
		Features:          vector.Named(),
		Recommendations:   recs,
	}

	a.logger.Debug("document analyzed",
		zap.Float64("final_score", report.FinalATSScore),
		zap.String("grade", report.Grade),
		zap.Int("skill_count", report.SkillCount),
		zap.Int("word_count", report.WordCount),
	)
	if a.recorder != nil {
		a.recorder.ReportScored(report)
	}
	return report, nil
}

// ExtractSkills returns the canonical skills of text without scoring it.
func (a *Analyzer) ExtractSkills(text string) []string {
	return a.canon.Extract(ingestion.NormalizeForMatching(ingestion.CleanText(text)))
}

// Features returns the feature vector of text without scoring it.
func (a *Analyzer) Features(ctx context.Context, text string, targets []string) (features.Vector, error) {
	cleaned := ingestion.CleanText(text)
	if err := ingestion.CheckContent(cleaned); err != nil {
		return features.Vector{}, err
	}
	found := a.canon.Extract(ingestion.NormalizeForMatching(cleaned))
	match := a.matcher.Match(ctx, found, skills.NormalizeTargets(targets, a.canon))
	return features.Build(features.Input{
		Text:           cleaned,
		Entities:       a.entities.Extract(ctx, cleaned),
		Sections:       parsing.ExtractSections(cleaned),
		Skills:         found,
		CategoryCounts: a.canon.CategoryCounts(found),
		Similarity:     &match,
	}), nil
}

func (a *Analyzer) emit(step string, index int, message string) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Index: index, Message: message})
	}
}
