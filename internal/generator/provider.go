// Package generator produces browser-side test scripts from natural-language
// descriptions via an external code-generation provider, then runs them
// through validation and confidence scoring.
package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// StopMaxTokens is the provider stop reason for output cut off at the token
// limit.
const StopMaxTokens = "max_tokens"

// Request is one generation call to the provider.
type Request struct {
	Prompt    string
	System    string
	Model     string
	MaxTokens int64
}

// Response carries the provider output plus usage counters.
type Response struct {
	Text             string
	Model            string
	StopReason       string
	PromptTokens     int64
	CompletionTokens int64
}

// Provider is the external code-generation backend. Retries and timeouts
// belong to the caller via ctx.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

// AnthropicProvider generates code through the Anthropic Messages API.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider builds a provider with fallback model and token limit.
func NewAnthropicProvider(apiKey, model string, maxTokens int64) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	return &AnthropicProvider{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Name identifies the provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Generate runs one messages call and flattens the text blocks.
func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &Response{
		Text:             text.String(),
		Model:            string(msg.Model),
		StopReason:       string(msg.StopReason),
		PromptTokens:     msg.Usage.InputTokens,
		CompletionTokens: msg.Usage.OutputTokens,
	}, nil
}
