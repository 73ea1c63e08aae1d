package genai

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"google.golang.org/genai"
)

// ModelInfo describes a Gemini model.
type ModelInfo struct {
	Name        string
	DisplayName string
}

// ListGeminiModels returns the Gemini models that support generateContent.
// baseURL and httpClient are optional overrides.
func ListGeminiModels(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) ([]ModelInfo, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	var models []ModelInfo
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, WrapError(fmt.Errorf("list models failed: %w", err), ProviderGemini)
		}
		if slices.Contains(model.SupportedActions, "generateContent") {
			models = append(models, ModelInfo{Name: model.Name, DisplayName: model.DisplayName})
		}
	}
	return models, nil
}
