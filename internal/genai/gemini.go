package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiResponder calls the Gemini generateContent API.
type geminiResponder struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func newGeminiResponder(ctx context.Context, cfg ResponderConfig) (*geminiResponder, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiResponder{
		client:    client,
		model:     cfg.model(),
		maxTokens: int32(cfg.maxTokens()), //nolint:gosec // bounded by config validation
	}, nil
}

// Respond sends prompt as a single user turn and joins the text parts of the
// first candidate.
func (r *geminiResponder) Respond(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: r.maxTokens,
	}

	start := time.Now()
	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), config)
	if err != nil {
		return "", WrapError(fmt.Errorf("generate content failed: %w", err), ProviderGemini)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "gemini response completed",
			"model", r.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"duration_ms", time.Since(start).Milliseconds())
	}
	return text.String(), nil
}

// Provider returns ProviderGemini.
func (r *geminiResponder) Provider() Provider {
	return ProviderGemini
}

// Close is a no-op; genai.Client holds no resources that need releasing.
func (r *geminiResponder) Close() error {
	return nil
}
