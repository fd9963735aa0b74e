package gservice

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrEmptyCompletion indicates the model returned no candidate text.
var ErrEmptyCompletion = errors.New("model returned no candidates")

// Gemini requests single-turn text completions.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini API client authenticated by apiKey.
// An empty httpOpts.BaseURL targets the public endpoint.
func NewGemini(ctx context.Context, apiKey, model string, httpOpts genai.HTTPOptions) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient failed: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Generate returns the text of the first candidate for prompt.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("models.GenerateContent failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
