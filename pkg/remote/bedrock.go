package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	defaultBedrockRegion = "us-east-1"
	defaultBedrockModel  = "anthropic.claude-3-5-sonnet-20241022-v2:0"
)

// ModelInvoker is the part of the Bedrock runtime client the provider uses
type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockProvider answers with a Claude model on AWS Bedrock, grounded on the FAQ records
type BedrockProvider struct {
	client ModelInvoker
	model  string
	kb     RecordSource
}

// NewBedrockProvider creates a new AWS Bedrock provider using the default credential chain
func NewBedrockProvider(ctx context.Context, region, model string, kb RecordSource) (*BedrockProvider, error) {
	if region == "" {
		region = defaultBedrockRegion
	}

	// Load AWS credentials from environment/IAM role
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewBedrockProviderWithClient(bedrockruntime.NewFromConfig(cfg), model, kb), nil
}

// NewBedrockProviderWithClient creates a provider around an existing client
func NewBedrockProviderWithClient(client ModelInvoker, model string, kb RecordSource) *BedrockProvider {
	if model == "" {
		model = defaultBedrockModel
	}
	return &BedrockProvider{
		client: client,
		model:  model,
		kb:     kb,
	}
}

// Name returns the provider name
func (p *BedrockProvider) Name() string {
	return fmt.Sprintf("AWS Bedrock (%s)", p.model)
}

// Bedrock request/response structures (Claude messages format)
type bedrockClaudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockClaudeRequest struct {
	Messages         []bedrockClaudeMessage `json:"messages"`
	MaxTokens        int                    `json:"max_tokens"`
	Temperature      float64                `json:"temperature"`
	AnthropicVersion string                 `json:"anthropic_version"`
}

type bedrockClaudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type bedrockClaudeResponse struct {
	Content []bedrockClaudeContentBlock `json:"content"`
}

// Ask sends the question with the FAQ records as context
func (p *BedrockProvider) Ask(ctx context.Context, message string) (*Reply, error) {
	records := p.kb.Records()

	reqBody := bedrockClaudeRequest{
		Messages: []bedrockClaudeMessage{
			{Role: "user", Content: BuildPrompt(records, message)},
		},
		MaxTokens:        300,
		Temperature:      0.0,
		AnthropicVersion: "bedrock-2023-05-31",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        jsonData,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Bedrock API: %w", err)
	}

	var bedrockResp bedrockClaudeResponse
	if err := json.Unmarshal(resp.Body, &bedrockResp); err != nil {
		return nil, fmt.Errorf("failed to decode Bedrock response: %w", err)
	}

	var answer strings.Builder
	for _, block := range bedrockResp.Content {
		if block.Type == "text" {
			answer.WriteString(block.Text)
		}
	}

	return modelReply(answer.String(), "bedrock", len(records))
}
