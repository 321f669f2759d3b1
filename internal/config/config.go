// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Similarity backends.
const (
	BackendLexical = "lexical"
	BackendGemini  = "gemini"
)

// DefaultFileName is looked up in the working directory when no --config
// path is given. A missing default file is not an error.
const DefaultFileName = "ats.yaml"

// EnvPrefix is prepended to every environment override (ATS_SIMILARITY_THRESHOLD).
const EnvPrefix = "ATS"

// Config is the resolved CLI configuration.
type Config struct {
	LexiconPath string           `mapstructure:"lexicon_path"` // Optional lexicon JSON replacing the embedded one
	ModelPath   string           `mapstructure:"model_path"`   // Optional linear model artifact; absent means heuristic relevance
	Concurrency int              `mapstructure:"concurrency" validate:"min=1,max=64"`
	MetricsOut  string           `mapstructure:"metrics_out"` // Prometheus textfile written after a run
	Similarity  SimilarityConfig `mapstructure:"similarity"`
	Gemini      GeminiConfig     `mapstructure:"gemini"`
	Log         LogConfig        `mapstructure:"log"`
}

// SimilarityConfig selects the embedding collaborator and its thresholds.
type SimilarityConfig struct {
	Backend        string  `mapstructure:"backend" validate:"oneof=lexical gemini"`
	Threshold      float64 `mapstructure:"threshold" validate:"gt=0,lte=1"`
	ExactThreshold float64 `mapstructure:"exact_threshold" validate:"gtefield=Threshold,lte=1"`
}

// GeminiConfig holds the Gemini embedding settings.
type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	EmbeddingModel string `mapstructure:"embedding_model" validate:"required"`
	BatchSize      int    `mapstructure:"batch_size" validate:"min=1,max=100"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers every key with its default so env overrides apply
// to keys absent from the file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("lexicon_path", "")
	v.SetDefault("model_path", "")
	v.SetDefault("concurrency", 4)
	v.SetDefault("metrics_out", "")
	v.SetDefault("similarity.backend", BackendLexical)
	v.SetDefault("similarity.threshold", 0.7)
	v.SetDefault("similarity.exact_threshold", 0.95)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.embedding_model", "text-embedding-004")
	v.SetDefault("gemini.batch_size", 100)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads configuration from path (or DefaultFileName when path is empty)
// and the environment.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-owned viper instance, so that CLI flags bound
// to v take precedence over file and environment values.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, ".yaml"))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file %s: %w", DefaultFileName, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges, the backend credentials, and that configured
// files exist.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Similarity.Backend == BackendGemini && strings.TrimSpace(c.Gemini.APIKey) == "" {
		return fmt.Errorf("config error: 'gemini.api_key' is required for the gemini backend")
	}

	if c.LexiconPath != "" {
		if _, err := os.Stat(c.LexiconPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: lexicon file not found: %s", c.LexiconPath)
		}
	}
	if c.ModelPath != "" {
		if _, err := os.Stat(c.ModelPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: model file not found: %s", c.ModelPath)
		}
	}

	return nil
}
