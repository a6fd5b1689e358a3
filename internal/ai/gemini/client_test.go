package gemini

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeCaller struct {
	resp       *genai.GenerateContentResponse
	err        error
	lastModel  string
	lastPrompt string
}

func (f *fakeCaller) generate(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	for _, content := range contents {
		for _, part := range content.Parts {
			f.lastPrompt = part.Text
		}
	}
	return f.resp, f.err
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: parts},
		}},
	}
}

func TestGenerateContent(t *testing.T) {
	caller := &fakeCaller{resp: textResponse("Score: 81.", "The family shares the child's interests.")}
	g := &Generator{caller: caller, model: "gemini-2.5-pro", logger: zap.NewNop()}

	output, err := g.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Score: 81.\nThe family shares the child's interests."
	if output != expected {
		t.Fatalf("unexpected output: %q", output)
	}

	if caller.lastModel != "gemini-2.5-pro" {
		t.Fatalf("unexpected model: %q", caller.lastModel)
	}

	if caller.lastPrompt != "prompt" {
		t.Fatalf("unexpected prompt: %q", caller.lastPrompt)
	}
}

func TestGenerateContentEmptyResponse(t *testing.T) {
	caller := &fakeCaller{resp: &genai.GenerateContentResponse{}}
	g := &Generator{caller: caller, model: "gemini-2.5-pro", logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	g := &Generator{caller: &fakeCaller{}, model: "gemini-2.5-pro", logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestGenerateContentPropagatesAPIError(t *testing.T) {
	apiErr := errors.New("quota exceeded")
	g := &Generator{caller: &fakeCaller{err: apiErr}, model: "gemini-2.5-pro", logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "prompt"); !errors.Is(err, apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", "", zap.NewNop()); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
