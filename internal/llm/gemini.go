package llm

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"
)

// GeminiCaller is a thin wrapper around the official genai client.
type GeminiCaller struct {
	cli *genai.Client
}

func NewGeminiCaller(ctx context.Context) (*GeminiCaller, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &GeminiCaller{cli: cli}, nil
}

func (g *GeminiCaller) Name() string { return "gemini" }

// Call sends the prompt and requests application/json output.
func (g *GeminiCaller) Call(ctx context.Context, model, prompt string, maxTokens int, temperature float64) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(temperature)),
	}
	if maxTokens > 0 {
		cfg.MaxOutputTokens = int32(maxTokens)
	}
	resp, err := g.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		cfg,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini %s: empty response", model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
