package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// OllamaProvider answers with a self-hosted model through the Ollama API
type OllamaProvider struct {
	baseURL string
	model   string
	kb      RecordSource
	client  *http.Client
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(baseURL, model string, kb RecordSource) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		kb:      kb,
		client:  &http.Client{},
	}
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return fmt.Sprintf("Ollama (%s)", p.model)
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Ask sends the question with the FAQ records as context
// Reference: https://github.com/ollama/ollama/blob/main/docs/api.md
func (p *OllamaProvider) Ask(ctx context.Context, message string) (*Reply, error) {
	records := p.kb.Records()

	var resp ollamaResponse
	err := postJSON(ctx, p.client, p.baseURL+"/api/generate", nil, ollamaRequest{
		Model:   p.model,
		Prompt:  BuildPrompt(records, message),
		Stream:  false,
		Options: map[string]any{"temperature": 0},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	return modelReply(resp.Response, "ollama", len(records))
}
