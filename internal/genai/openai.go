package genai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiResponder calls an OpenAI-compatible chat completions API.
type openaiResponder struct {
	client    openai.Client
	model     string
	maxTokens int64
	provider  Provider
}

func newOpenAIResponder(cfg ResponderConfig) *openaiResponder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ProviderEndpoint[cfg.Provider]
	}

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
		// The chain moves to the next provider instead of retrying.
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &openaiResponder{
		client:    openai.NewClient(opts...),
		model:     cfg.model(),
		maxTokens: int64(cfg.maxTokens()),
		provider:  cfg.Provider,
	}
}

// Respond sends prompt as a single user message and returns the first choice.
func (r *openaiResponder) Respond(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(r.maxTokens),
	}

	start := time.Now()
	resp, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", WrapError(fmt.Errorf("chat completion failed: %w", err), r.provider)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "chat completion finished",
			"provider", r.provider,
			"model", r.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"duration_ms", time.Since(start).Milliseconds())
	}
	return resp.Choices[0].Message.Content, nil
}

// Provider returns the configured provider.
func (r *openaiResponder) Provider() Provider {
	return r.provider
}

// Close is a no-op; the OpenAI client holds no resources that need releasing.
func (r *openaiResponder) Close() error {
	return nil
}
