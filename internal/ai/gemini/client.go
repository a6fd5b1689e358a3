// Package gemini implements the ContentGenerator backed by the Gemini API.
// Unlike the ollama provider there is no fallback chain: a single model, a
// single attempt.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-pro"

// contentCaller is the slice of the genai client the generator needs.
type contentCaller interface {
	generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type genaiCaller struct {
	client *genai.Client
}

func (c *genaiCaller) generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, cfg)
}

type Generator struct {
	caller contentCaller
	model  string
	logger *zap.Logger
}

// NewGenerator creates a generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{
		caller: &genaiCaller{client: client},
		model:  model,
		logger: log,
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the concatenated
// textual parts of the first candidates.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.caller.generate(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
