package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type capturedRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Stream  bool   `json:"stream"`
	Options struct {
		Temperature float64 `json:"temperature"`
		NumPredict  int     `json:"num_predict"`
	} `json:"options"`
}

// fakeTransport answers requests per model so transport failures and HTTP
// statuses can be simulated without a network.
type fakeTransport struct {
	attempts []capturedRequest
	respond  func(model string) (*http.Response, error)
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}

	var payload capturedRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	f.attempts = append(f.attempts, payload)
	return f.respond(payload.Model)
}

func okResponse(text string) *http.Response {
	body, _ := json.Marshal(map[string]string{"response": text})
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(string(body))),
		Header:     make(http.Header),
	}
}

func statusResponse(code int) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     http.StatusText(code),
		Body:       io.NopCloser(strings.NewReader("model error")),
		Header:     make(http.Header),
	}
}

func newTestGenerator(models []string, transport *fakeTransport) *Generator {
	g := NewGenerator(&Config{Models: models}, zap.NewNop())
	g.HTTPClient = &http.Client{Transport: transport}
	return g
}

func TestGeneratorFallsBackThroughChain(t *testing.T) {
	transport := &fakeTransport{
		respond: func(model string) (*http.Response, error) {
			if model == "m3" {
				return okResponse("m3 verdict: score: 88"), nil
			}
			return nil, errors.New("connection refused")
		},
	}

	g := newTestGenerator([]string{"m1", "m2", "m3"}, transport)

	text, err := g.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "m3 verdict: score: 88" {
		t.Fatalf("unexpected output: %q", text)
	}

	if len(transport.attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(transport.attempts))
	}

	for i, model := range []string{"m1", "m2", "m3"} {
		if transport.attempts[i].Model != model {
			t.Fatalf("attempt %d used model %q, expected %q", i, transport.attempts[i].Model, model)
		}
	}
}

func TestGeneratorStopsWhenChainExhausted(t *testing.T) {
	transport := &fakeTransport{
		respond: func(string) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}

	g := newTestGenerator([]string{"m1", "m2", "m3"}, transport)

	_, err := g.GenerateContent(context.Background(), "prompt")
	if !errors.Is(err, ErrModelsExhausted) {
		t.Fatalf("expected ErrModelsExhausted, got %v", err)
	}

	// One attempt per model, never a fourth.
	if len(transport.attempts) != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", len(transport.attempts))
	}
}

func TestGeneratorDoesNotFallBackOnBadStatus(t *testing.T) {
	transport := &fakeTransport{
		respond: func(string) (*http.Response, error) {
			return statusResponse(http.StatusInternalServerError), nil
		},
	}

	g := newTestGenerator([]string{"m1", "m2", "m3"}, transport)

	_, err := g.GenerateContent(context.Background(), "prompt")
	if !errors.Is(err, ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}

	if len(transport.attempts) != 1 {
		t.Fatalf("expected a single attempt, got %d", len(transport.attempts))
	}
}

func TestGeneratorEmptyResponseField(t *testing.T) {
	transport := &fakeTransport{
		respond: func(string) (*http.Response, error) {
			return okResponse(""), nil
		},
	}

	g := newTestGenerator([]string{"m1"}, transport)

	_, err := g.GenerateContent(context.Background(), "prompt")
	if !errors.Is(err, ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse for empty response field, got %v", err)
	}
}

func TestGeneratorRequestPayload(t *testing.T) {
	transport := &fakeTransport{
		respond: func(string) (*http.Response, error) {
			return okResponse("score: 70"), nil
		},
	}

	g := newTestGenerator(nil, transport)

	if _, err := g.GenerateContent(context.Background(), "the prompt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transport.attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(transport.attempts))
	}

	payload := transport.attempts[0]
	if payload.Model != DefaultModelChain[0] {
		t.Fatalf("expected primary model %q, got %q", DefaultModelChain[0], payload.Model)
	}
	if payload.Prompt != "the prompt" {
		t.Fatalf("unexpected prompt: %q", payload.Prompt)
	}
	if payload.Stream {
		t.Fatal("expected stream to be false")
	}
	if payload.Options.Temperature != defaultTemperature {
		t.Fatalf("expected temperature %v, got %v", defaultTemperature, payload.Options.Temperature)
	}
	if payload.Options.NumPredict != defaultNumPredict {
		t.Fatalf("expected num_predict %d, got %d", defaultNumPredict, payload.Options.NumPredict)
	}
}

func TestGeneratorAgainstHTTPServer(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"response": "Score: 64. Reasonable fit."})
	}))
	defer server.Close()

	g := NewGenerator(&Config{Endpoint: server.URL, Models: []string{"m1"}}, zap.NewNop())

	text, err := g.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "Score: 64. Reasonable fit." {
		t.Fatalf("unexpected output: %q", text)
	}

	if gotContentType != contentType {
		t.Fatalf("expected content type %q, got %q", contentType, gotContentType)
	}
}

func TestGeneratorModel(t *testing.T) {
	g := NewGenerator(nil, zap.NewNop())
	if g.Model() != DefaultModelChain[0] {
		t.Fatalf("expected primary model, got %q", g.Model())
	}
}
