package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/caseworks/heartmatch/internal/logger"

	"go.uber.org/zap"
)

// ContentGenerator produces model output for a prompt. Implemented by the
// ollama and gemini providers.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

const defaultMaxLogLength = 200

// PromptMatcher renders a child/family pair into the matching prompt, sends
// it through a ContentGenerator and extracts the score from the response.
type PromptMatcher struct {
	generator ContentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewMatcher(generator ContentGenerator, maxLogLength int, log *zap.Logger) *PromptMatcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &PromptMatcher{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (m *PromptMatcher) Evaluate(ctx context.Context, child, family map[string]any) (*MatchAssessment, error) {
	if child == nil {
		return nil, fmt.Errorf("child record is required")
	}
	if family == nil {
		return nil, fmt.Errorf("family record is required")
	}

	childJSON, err := json.MarshalIndent(child, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal child record: %w", err)
	}

	familyJSON, err := json.MarshalIndent(family, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal family record: %w", err)
	}

	prompt := BuildPrompt(string(childJSON), string(familyJSON))

	m.logger.Debug("generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, m.maxLogLen)),
	)

	return &MatchAssessment{
		Score:     ExtractScore(raw),
		Reasoning: raw,
	}, nil
}
