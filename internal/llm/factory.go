package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sant0-9/copysmith/internal/config"
)

// NewProvider creates the provider for one generation track.
func NewProvider(ctx context.Context, track config.Track, creds *config.Credentials, timeout time.Duration) (Provider, error) {
	apiKey, err := creds.For(track.Provider)
	if err != nil {
		return nil, fmt.Errorf("%s track: %w", track.Label, err)
	}

	switch track.Provider {
	case "groq":
		return NewGroqProvider(apiKey, track.Model, WithBaseURL(track.BaseURL), WithTimeout(timeout)), nil

	case "openai":
		return NewOpenAIProvider(apiKey, track.Model, WithBaseURL(track.BaseURL), WithTimeout(timeout)), nil

	case "gemini":
		p, err := NewGeminiProvider(ctx, apiKey, track.Model, GeminiOptions{BaseURL: track.BaseURL, Timeout: timeout})
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", track.Provider)
	}
}
