package embedder

import (
	"fmt"
	"os"
	"strings"
)

// Config holds embedder configuration.
type Config struct {
	Provider          string
	APIKey            string
	RequestsPerSecond float64
}

// New creates an embedder with explicit configuration.
func New(cfg Config) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		return NewGeminiProvider(cfg.APIKey, cfg.RequestsPerSecond)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.RequestsPerSecond)
	case ProviderLocal:
		return NewLocalProvider(), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupportedModel, cfg.Provider)
	}
}

// NewFromEnv creates an embedder from environment variables.
// Priority:
// 1. MEMORIA_EMBEDDING_PROVIDER (gemini, openai, local)
// 2. Available API keys: GEMINI_API_KEY, then OPENAI_API_KEY
// 3. Local provider if nothing is configured
func NewFromEnv() (Embedder, error) {
	provider := os.Getenv(EnvProvider)
	geminiKey := os.Getenv(EnvGeminiAPIKey)
	openaiKey := os.Getenv(EnvOpenAIAPIKey)

	if provider != "" {
		switch strings.ToLower(provider) {
		case ProviderGemini:
			return NewGeminiProvider(geminiKey, 0)
		case ProviderOpenAI:
			return NewOpenAIProvider(openaiKey, 0)
		case ProviderLocal:
			return NewLocalProvider(), nil
		default:
			return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupportedModel, provider)
		}
	}

	if geminiKey != "" {
		return NewGeminiProvider(geminiKey, 0)
	}
	if openaiKey != "" {
		return NewOpenAIProvider(openaiKey, 0)
	}
	return NewLocalProvider(), nil
}
