package remote

import (
	"context"
	"fmt"
	"net/http"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider answers with OpenAI's GPT models
type OpenAIProvider struct {
	apiKey   string
	model    string
	endpoint string
	kb       RecordSource
	client   *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey, model string, kb RecordSource) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: openAIEndpoint,
		kb:       kb,
		client:   &http.Client{},
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return fmt.Sprintf("OpenAI (%s)", p.model)
}

// OpenAI API structures
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ask sends the question with the FAQ records as context
func (p *OpenAIProvider) Ask(ctx context.Context, message string) (*Reply, error) {
	records := p.kb.Records()

	var resp openAIResponse
	err := postJSON(ctx, p.client, p.endpoint, map[string]string{"Authorization": "Bearer " + p.apiKey}, openAIRequest{
		Model: p.model,
		Messages: []openAIMessage{
			{Role: "user", Content: BuildPrompt(records, message)},
		},
		Temperature: 0,
		MaxTokens:   300,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoAnswer
	}
	return modelReply(resp.Choices[0].Message.Content, "openai", len(records))
}
