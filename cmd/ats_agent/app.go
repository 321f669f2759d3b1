package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/ensemble"
	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/lexicon"
	"github.com/jonathan/ats-scorer/internal/llm"
	"github.com/jonathan/ats-scorer/internal/model"
	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/similarity"
	"github.com/jonathan/ats-scorer/internal/skills"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds the collaborators shared by every command.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Metrics
	analyzer *pipeline.Analyzer
	closer   io.Closer
}

// newApp loads configuration and wires the analyzer. The lexicon, the
// regression model, and the embedding backend are resolved once here.
func newApp(ctx context.Context, v *viper.Viper, path string) (*app, error) {
	cfg, err := config.LoadWith(v, path)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	canon, err := loadCanonicalizer(cfg.LexiconPath)
	if err != nil {
		return nil, err
	}

	regressor, err := loadRegressor(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	strategy := ensemble.SelectStrategy(regressor, logger)
	logger.Debug("relevance strategy selected", zap.String("strategy", strategy.Name()))

	embedder, closer, err := newEmbedder(ctx, cfg, canon)
	if err != nil {
		return nil, err
	}
	matcher := similarity.NewMatcher(embedder, similarity.Config{
		Threshold:      cfg.Similarity.Threshold,
		ExactThreshold: cfg.Similarity.ExactThreshold,
	}, logger)

	metrics := observability.NewMetrics()
	analyzer, err := pipeline.NewAnalyzer(pipeline.Options{
		Canonicalizer: canon,
		Matcher:       matcher,
		Strategy:      strategy,
		Recorder:      metrics,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		analyzer: analyzer,
		closer:   closer,
	}, nil
}

// Close writes the metrics textfile when configured and releases the
// embedding backend.
func (a *app) Close() error {
	var errs []error
	if a.cfg.MetricsOut != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsOut); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close embedder: %w", err))
		}
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}

func loadCanonicalizer(path string) (*skills.Canonicalizer, error) {
	var (
		lex *lexicon.Lexicon
		err error
	)
	if path == "" {
		lex, err = lexicon.Default()
	} else {
		lex, err = lexicon.LoadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return skills.NewCanonicalizer(lex), nil
}

func loadRegressor(path string) (model.Regressor, error) {
	if path == "" {
		return model.Untrained{}, nil
	}
	reg, err := model.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return reg, nil
}

func newEmbedder(ctx context.Context, cfg *config.Config, canon *skills.Canonicalizer) (similarity.Embedder, io.Closer, error) {
	if cfg.Similarity.Backend != config.BackendGemini {
		return similarity.NewLexicalEmbedder(canon), nil, nil
	}

	llmConfig := &llm.Config{
		Provider:       llm.ProviderGemini,
		EmbeddingModel: cfg.Gemini.EmbeddingModel,
		BatchSize:      cfg.Gemini.BatchSize,
	}
	embedder, err := llm.NewGeminiEmbedder(ctx, llmConfig, cfg.Gemini.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gemini embedder: %w", err)
	}
	return embedder, embedder, nil
}

// readDocument returns the cleaned text and metadata of path, or of stdin
// when path is "-".
func readDocument(path string) (string, *ingestion.Metadata, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text := ingestion.CleanText(string(content))
		return text, ingestion.NewMetadata(text, "stdin", "text"), nil
	}
	text, meta, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to ingest %s: %w", path, err)
	}
	return text, meta, nil
}

// readJobDescription returns the cleaned text of the job description at
// path, or "" when path is empty.
func readJobDescription(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	text, _, err := readDocument(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return text, nil
}

// parseTargets merges a comma-separated list with a file holding one target
// per line (commas also split). Blank entries are dropped; canonicalization
// happens in the analyzer.
func parseTargets(list, path string) ([]string, error) {
	var targets []string
	add := func(s string) {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				targets = append(targets, part)
			}
		}
	}

	add(list)
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read targets file: %w", err)
		}
		for _, line := range strings.Split(string(content), "\n") {
			add(line)
		}
	}
	return targets, nil
}

// describeError adds the document name to an analysis error and keeps
// the rejection reason recognizable for errors.As callers.
func describeError(name string, err error) error {
	var short *ingestion.InsufficientContentError
	if errors.As(err, &short) {
		return fmt.Errorf("%s was rejected: %w", name, err)
	}
	var unsupported *ingestion.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return fmt.Errorf("%s cannot be scored: %w", name, err)
	}
	return fmt.Errorf("failed to analyze %s: %w", name, err)
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
