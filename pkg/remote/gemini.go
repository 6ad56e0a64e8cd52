package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider answers with Google's Gemini models
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	kb      RecordSource
	client  *http.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(apiKey, model string, kb RecordSource) *GeminiProvider {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		kb:      kb,
		client:  &http.Client{},
	}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return fmt.Sprintf("Google Gemini (%s)", p.model)
}

// Gemini API structures
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Ask sends the question with the FAQ records as context
func (p *GeminiProvider) Ask(ctx context.Context, message string) (*Reply, error) {
	records := p.kb.Records()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, url.PathEscape(p.model), url.QueryEscape(p.apiKey))

	var resp geminiResponse
	err := postJSON(ctx, p.client, endpoint, nil, geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: BuildPrompt(records, message)}}},
		},
		GenerationConfig: &geminiGenerationConfig{Temperature: 0, MaxOutputTokens: 300},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, ErrNoAnswer
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return modelReply(text.String(), "gemini", len(records))
}
