package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

// AnthropicProvider answers with Claude through the Anthropic API
type AnthropicProvider struct {
	apiKey   string
	model    string
	endpoint string
	kb       RecordSource
	client   *http.Client
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(apiKey, model string, kb RecordSource) *AnthropicProvider {
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &AnthropicProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicEndpoint,
		kb:       kb,
		client:   &http.Client{},
	}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return fmt.Sprintf("Anthropic (%s)", p.model)
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Ask sends the question with the FAQ records as context
func (p *AnthropicProvider) Ask(ctx context.Context, message string) (*Reply, error) {
	records := p.kb.Records()

	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var resp anthropicResponse
	err := postJSON(ctx, p.client, p.endpoint, headers, anthropicRequest{
		Model: p.model,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildPrompt(records, message)},
		},
		MaxTokens: 300,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return modelReply(text.String(), "anthropic", len(records))
}
