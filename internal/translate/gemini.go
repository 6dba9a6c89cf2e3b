package translate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiDefaultModel balances quality and cost for one-word lookups.
const geminiDefaultModel = "gemini-2.0-flash"

// GeminiBackend implements Backend using the Gemini API.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a new Gemini translation backend
func NewGeminiBackend(config *Config) (Backend, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.GeminiModel
	if model == "" {
		model = geminiDefaultModel
	}

	return &GeminiBackend{
		client: client,
		model:  model,
	}, nil
}

// Translate converts text from the source language into the target
// locale.
func (b *GeminiBackend) Translate(ctx context.Context, text, source, target string) (string, error) {
	prompt := fmt.Sprintf("Translate the %s word '%s' into %s. Respond with only the translation, nothing else.",
		languageName(source), text, languageName(target))

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}

// Name returns the backend name
func (b *GeminiBackend) Name() string {
	return "gemini"
}
