package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiProvider calls the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// GeminiOptions configures NewGeminiProvider. BaseURL is only set in tests.
type GeminiOptions struct {
	BaseURL string
	Timeout time.Duration
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, opts GeminiOptions) (*GeminiProvider, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, err
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

func (g *GeminiProvider) Ping(ctx context.Context) error {
	if _, err := g.client.Models.Get(ctx, g.model, nil); err != nil {
		return g.wrap(err)
	}
	return nil
}

// Complete sends the messages as user content. Gemini has no separate chat
// roles for a single-turn prompt, so every message is concatenated.
func (g *GeminiProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	parts := make([]string, len(req.Messages))
	for i, m := range req.Messages {
		parts[i] = m.Content
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(strings.Join(parts, "\n\n")), cfg)
	if err != nil {
		return nil, g.wrap(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, emptyResponse(g.Name())
	}

	out := &CompletionResponse{Content: text, Model: model}
	if len(resp.Candidates) > 0 {
		out.FinishReason = string(resp.Candidates[0].FinishReason)
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

func (g *GeminiProvider) wrap(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &TransportError{Provider: g.Name(), StatusCode: apiErr.Code, Body: apiErr.Message, Err: err}
	}
	return &TransportError{Provider: g.Name(), Err: err}
}
