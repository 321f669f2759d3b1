package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/ats-scorer/internal/similarity"
	"google.golang.org/api/option"
)

// Backend turns texts into embedding vectors, one per input, in order.
type Backend interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

// Embedder implements similarity.Embedder on top of an embedding Backend.
type Embedder struct {
	backend   Backend
	batchSize int
}

var _ similarity.Embedder = (*Embedder)(nil)

// NewEmbedder wraps a Backend.
func NewEmbedder(backend Backend, config *Config) *Embedder {
	return &Embedder{backend: backend, batchSize: config.GetBatchSize()}
}

// NewGeminiEmbedder creates an Embedder backed by the Gemini embedding API
func NewGeminiEmbedder(ctx context.Context, config *Config, apiKey string) (*Embedder, error) {
	if config == nil {
		config = DefaultConfig()
	}
	backend, err := NewGeminiBackend(ctx, config, apiKey)
	if err != nil {
		return nil, err
	}
	return NewEmbedder(backend, config), nil
}

// Matrix implements similarity.Embedder.
func (e *Embedder) Matrix(ctx context.Context, a, b []string) ([][]float64, error) {
	left, err := e.embedAll(ctx, a)
	if err != nil {
		return nil, err
	}
	right, err := e.embedAll(ctx, b)
	if err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(a))
	for i := range left {
		matrix[i] = make([]float64, len(b))
		for j := range right {
			matrix[i][j] = similarity.Cosine(left[i], right[j])
		}
	}
	return matrix, nil
}

// Similarity implements similarity.Embedder.
func (e *Embedder) Similarity(ctx context.Context, a, b string) (float64, error) {
	m, err := e.Matrix(ctx, []string{a}, []string{b})
	if err != nil {
		return 0, err
	}
	return m[0][0], nil
}

// Close releases resources held by the backend
func (e *Embedder) Close() error {
	if e.backend != nil {
		return e.backend.Close()
	}
	return nil
}

func (e *Embedder) embedAll(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		vectors, err := e.backend.Embed(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to embed texts: %w", err)
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("embedding backend returned %d vectors for %d texts", len(vectors), end-start)
		}
		for _, v := range vectors {
			out = append(out, widen(v))
		}
	}
	return out, nil
}

func widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// GeminiBackend implements Backend for Google Gemini
type GeminiBackend struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

// NewGeminiBackend creates a new Gemini embedding backend
func NewGeminiBackend(ctx context.Context, config *Config, apiKey string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.EmbeddingModel(config.GetModel())
	model.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiBackend{client: client, model: model}, nil
}

// Embed sends texts as one batch request.
func (b *GeminiBackend) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	batch := b.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := b.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("no embeddings in response")
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	for _, embedding := range resp.Embeddings {
		if embedding == nil {
			return nil, fmt.Errorf("empty embedding in response")
		}
		vectors = append(vectors, embedding.Values)
	}
	return vectors, nil
}

// Close releases resources held by the client
func (b *GeminiBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}
