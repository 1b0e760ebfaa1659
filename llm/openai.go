// ABOUTME: OpenAI Chat Completions generator with base URL support for compatible providers.
// ABOUTME: Enables Cerebras, OpenRouter, Cloudflare AI Gateway, and other OpenAI-compatible services.
package llm

import (
	"context"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIGenerator implements Generator using the OpenAI Chat Completions
// API. A custom base URL routes requests to any OpenAI-compatible provider.
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	system      string
	maxTokens   int
	temperature float64
}

// OpenAIOption is a functional option for configuring an OpenAIGenerator.
type OpenAIOption func(*OpenAIGenerator)

// WithSystem sets the system message sent with every generation.
func WithSystem(system string) OpenAIOption {
	return func(g *OpenAIGenerator) {
		g.system = system
	}
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) OpenAIOption {
	return func(g *OpenAIGenerator) {
		g.maxTokens = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) OpenAIOption {
	return func(g *OpenAIGenerator) {
		g.temperature = t
	}
}

// NewOpenAIGenerator creates a generator for the given model. An empty
// baseURL targets api.openai.com; an empty model falls back to a default.
func NewOpenAIGenerator(apiKey, model, baseURL string, opts ...OpenAIOption) *OpenAIGenerator {
	if model == "" {
		model = "gpt-5.2"
	}
	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	g := &OpenAIGenerator{
		client:      openai.NewClient(clientOpts...),
		model:       model,
		maxTokens:   256,
		temperature: 1.0,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements Generator. Provider errors and empty completions are
// logged and converted to the fallback string; nothing propagates upward.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) string {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if g.system != "" {
		messages = append(messages, openai.SystemMessage(g.system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(g.model),
		Messages:    messages,
		MaxTokens:   openai.Int(int64(g.maxTokens)),
		Temperature: openai.Float(g.temperature),
	})
	if err != nil {
		log.Printf("component=llm action=generate_failed model=%s err=%v", g.model, err)
		return FallbackText
	}
	if len(resp.Choices) == 0 {
		log.Printf("component=llm action=generate_empty model=%s", g.model)
		return FallbackText
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return FallbackText
	}
	return text
}
