package remote

import (
	"context"
	"errors"

	"github.com/valentinpelus/faqbot/pkg/types"
)

var (
	// ErrNotConfigured is returned by NewProvider when no remote chat service is set up
	ErrNotConfigured = errors.New("remote chat provider not configured")
	// ErrNoAnswer is returned when the remote service has nothing useful to say
	ErrNoAnswer = errors.New("remote chat service returned no answer")
)

// Provider answers a user message through a remote service
type Provider interface {
	// Ask sends the raw user message and returns the remote reply
	Ask(ctx context.Context, message string) (*Reply, error)

	// Name returns the provider name (for logging)
	Name() string
}

// Reply is a remote answer with its auxiliary metadata
type Reply struct {
	Answer        string  `json:"answer"`
	Confidence    float64 `json:"confidence"`
	Method        string  `json:"method"`
	AnalyzedItems int     `json:"analyzed_items"`
}

// RecordSource provides knowledge base records used as model context
type RecordSource interface {
	Records() []types.FaqRecord
}

// Config holds configuration for remote chat providers
type Config struct {
	Provider string // "none", "http", "bedrock", "ollama", "openai", "anthropic", "gemini"

	// HTTP chat service
	URL string

	// Ollama-specific
	OllamaURL   string
	OllamaModel string

	// OpenAI-specific
	OpenAIAPIKey string
	OpenAIModel  string

	// Anthropic-specific
	AnthropicAPIKey string
	AnthropicModel  string

	// Gemini-specific
	GeminiAPIKey string
	GeminiModel  string

	// AWS Bedrock-specific
	BedrockRegion string // e.g., "us-east-1"
	BedrockModel  string // e.g., "anthropic.claude-3-5-sonnet-20241022-v2:0"
}
