// Package ollama implements the ContentGenerator backed by a local Ollama
// inference endpoint, with a fixed model fallback chain on transport failure.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/caseworks/heartmatch/internal/logger"

	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the local Ollama generate endpoint.
	DefaultEndpoint = "http://127.0.0.1:11434/api/generate"

	defaultTimeout     = 60 * time.Second
	maxTimeout         = 120 * time.Second
	defaultTemperature = 0.7
	defaultNumPredict  = 2000

	contentType = "application/json"
)

// DefaultModelChain is the ordered fallback sequence: largest model first,
// one attempt per model, advanced only on transport failure.
var DefaultModelChain = []string{
	"qwen3-coder:480b-cloud",
	"gpt-oss:120b-cloud",
	"qwen2.5:72b",
}

var (
	// ErrNoResponse means the endpoint answered but produced no usable text
	// (non-200 status or an empty response field). The fallback chain is not
	// consulted for this case.
	ErrNoResponse = errors.New("inference endpoint returned no usable response")
	// ErrModelsExhausted means every model in the fallback chain failed at
	// the transport level.
	ErrModelsExhausted = errors.New("all models in the fallback chain failed")
)

// Config carries the tunable parts of the generator. Zero values fall back to
// the package defaults.
type Config struct {
	Endpoint    string
	Models      []string
	Temperature float64
	NumPredict  int
	Timeout     time.Duration
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type Generator struct {
	HTTPClient *http.Client
	Endpoint   string

	chain   []string
	options generateOptions
	logger  *zap.Logger
}

// NewGenerator creates a generator for the configured endpoint and model
// chain. The chain is copied: callers cannot mutate model selection between
// requests, and the chain position is always local to one GenerateContent
// call.
func NewGenerator(cfg *Config, log *zap.Logger) *Generator {
	if cfg == nil {
		cfg = &Config{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	chain := cfg.Models
	if len(chain) == 0 {
		chain = DefaultModelChain
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	numPredict := cfg.NumPredict
	if numPredict == 0 {
		numPredict = defaultNumPredict
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if timeout > maxTimeout {
		timeout = maxTimeout
	}

	return &Generator{
		HTTPClient: &http.Client{Timeout: timeout},
		Endpoint:   endpoint,
		chain:      slices.Clone(chain),
		options: generateOptions{
			Temperature: temperature,
			NumPredict:  numPredict,
		},
		logger: log,
	}
}

// GenerateContent posts the prompt to the endpoint, walking the model chain
// on transport errors. One attempt per model, no retry, no backoff. A model
// past the end of the chain is never attempted.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for i, model := range g.chain {
		if i > 0 {
			g.logger.Warn("falling back to next model in chain",
				zap.String(logger.FieldModel, model),
				zap.Error(lastErr),
			)
		}

		text, err := g.generate(ctx, model, prompt)
		switch {
		case err == nil:
			return text, nil
		case errors.Is(err, ErrNoResponse):
			// The endpoint is reachable; switching models would not help.
			return "", err
		default:
			lastErr = err
		}
	}

	return "", fmt.Errorf("%w: %w", ErrModelsExhausted, lastErr)
}

func (g *Generator) generate(ctx context.Context, model, prompt string) (string, error) {
	payload := generateRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Options: g.options,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post to %s: %w", g.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		g.logger.Error("inference endpoint error",
			zap.String(logger.FieldModel, model),
			zap.String("status", resp.Status),
			zap.String("body", logger.TruncateForLog(string(raw), 200)),
		)
		return "", fmt.Errorf("%w: status %s", ErrNoResponse, resp.Status)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	if result.Response == "" {
		return "", fmt.Errorf("%w: empty response field", ErrNoResponse)
	}

	return result.Response, nil
}

// Model returns the primary model of the chain.
func (g *Generator) Model() string {
	if len(g.chain) == 0 {
		return ""
	}
	return g.chain[0]
}
