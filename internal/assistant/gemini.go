package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Generator produces one completion for one prompt. The hosted Gemini client
// implements it; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the hosted generative-language API.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerator creates a client for the given API key and model. The
// timeout bounds each completion call so a slow model cannot hang a chat
// turn indefinitely.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiGenerator{client: client, model: model, timeout: timeout}, nil
}

// Generate sends the prompt and returns the completion text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temp := float32(0.7)
	resp, err := g.client.Models.GenerateContent(
		callCtx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     &temp,
			MaxOutputTokens: 1024,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", errors.New("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", errors.New("gemini returned an empty completion")
	}
	return out, nil
}
