// Package llm provides the Gemini embedding collaborator used by the
// optional semantic similarity backend.
package llm

// Provider represents an embedding provider
type Provider string

// Provider constants define supported embedding providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultEmbeddingModel is used when no model is configured.
const DefaultEmbeddingModel = "text-embedding-004"

// DefaultBatchSize bounds how many texts go into one embedding request.
const DefaultBatchSize = 100

// Config holds the embedding configuration
type Config struct {
	Provider       Provider
	EmbeddingModel string
	BatchSize      int
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		EmbeddingModel: DefaultEmbeddingModel,
		BatchSize:      DefaultBatchSize,
	}
}

// GetModel returns the configured embedding model, falling back to the default.
func (c *Config) GetModel() string {
	if c == nil || c.EmbeddingModel == "" {
		return DefaultEmbeddingModel
	}
	return c.EmbeddingModel
}

// GetBatchSize returns the configured batch size, falling back to the default.
func (c *Config) GetBatchSize() int {
	if c == nil || c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}
