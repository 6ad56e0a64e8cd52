package remote

import (
	"context"
	"fmt"
)

// NewProvider creates the configured remote chat provider.
// It returns ErrNotConfigured when the remote attempt is disabled.
func NewProvider(ctx context.Context, cfg Config, kb RecordSource) (Provider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, ErrNotConfigured
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("REMOTE_CHAT_URL is required for the http provider")
		}
		return NewHTTPProvider(cfg.URL), nil
	}

	// Every model-backed provider answers from the knowledge base records
	if kb == nil {
		return nil, fmt.Errorf("%s provider needs a knowledge base", cfg.Provider)
	}

	switch cfg.Provider {
	case "ollama":
		return NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel, kb), nil

	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, kb), nil

	case "anthropic", "claude":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key is required")
		}
		return NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel, kb), nil

	case "gemini", "google":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, kb), nil

	case "bedrock", "aws":
		p, err := NewBedrockProvider(ctx, cfg.BedrockRegion, cfg.BedrockModel, kb)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown remote chat provider: %s (supported: none, http, ollama, openai, anthropic, gemini, bedrock)", cfg.Provider)
	}
}
