package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/copysmith/internal/apperrors"
	"github.com/sant0-9/copysmith/internal/config"
)

type capturedRequest struct {
	Path   string
	Auth   string
	Body   openAIRequest
	Method string
}

func chatServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Path = r.URL.Path
		got.Auth = r.Header.Get("Authorization")
		got.Method = r.Method
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&got.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("m", "write copy", 0.7)
	assert.Equal(t, "m", req.Model)
	assert.Equal(t, []Message{{Role: "user", Content: "write copy"}}, req.Messages)
	assert.Equal(t, 0.7, req.Temperature)
}

func TestOpenAICompatibleComplete(t *testing.T) {
	srv, got := chatServer(t, http.StatusOK, `{
		"id": "x",
		"choices": [{"message": {"role": "assistant", "content": "{\"title\":\"T\"}"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`)

	p := NewGroqProvider("gsk-test", "", WithBaseURL(srv.URL+"/"))
	resp, err := p.Complete(context.Background(), NewRequest("", "the prompt", 0.7))
	require.NoError(t, err)

	assert.Equal(t, "groq", p.Name())
	assert.Equal(t, `{"title":"T"}`, resp.Content)
	assert.Equal(t, "llama-3.3-70b-versatile", resp.Model)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/chat/completions", got.Path)
	assert.Equal(t, "Bearer gsk-test", got.Auth)
	assert.Equal(t, "llama-3.3-70b-versatile", got.Body.Model)
	assert.Equal(t, 0.7, got.Body.Temperature)
	require.Len(t, got.Body.Messages, 1)
	assert.Equal(t, openAIMessage{Role: "user", Content: "the prompt"}, got.Body.Messages[0])
}

func TestCompleteStatusError(t *testing.T) {
	srv, _ := chatServer(t, http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`)

	p := NewOpenAIProvider("sk", "gpt-4o", WithBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), NewRequest("", "p", 0.7))
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "openai", te.Provider)
	assert.Equal(t, http.StatusTooManyRequests, te.StatusCode)
	assert.Contains(t, te.Body, "rate limited")
	assert.True(t, errors.Is(err, ErrTransport))
	assert.False(t, errors.Is(err, ErrEmptyResponse))
	assert.Equal(t, apperrors.CodeTransport, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "status 429")
}

func TestCompleteEmptyResponse(t *testing.T) {
	for name, body := range map[string]string{
		"no choices":    `{"choices": []}`,
		"blank content": `{"choices": [{"message": {"role": "assistant", "content": "  "}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, _ := chatServer(t, http.StatusOK, body)
			p := NewOpenAIProvider("sk", "", WithBaseURL(srv.URL))

			_, err := p.Complete(context.Background(), NewRequest("", "p", 0.7))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrEmptyResponse))
			assert.False(t, errors.Is(err, ErrTransport))
			assert.Equal(t, apperrors.CodeEmptyResponse, apperrors.CodeOf(err))
		})
	}
}

func TestCompleteMalformedBody(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, `not json`)
	p := NewOpenAIProvider("sk", "", WithBaseURL(srv.URL))

	_, err := p.Complete(context.Background(), NewRequest("", "p", 0.7))
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	p := NewOpenAIProvider("sk", "", WithBaseURL(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Complete(ctx, NewRequest("", "p", 0.7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPing(t *testing.T) {
	ok, got := chatServer(t, http.StatusOK, `{"data":[]}`)
	p := NewOpenAIProvider("sk", "", WithBaseURL(ok.URL))
	require.NoError(t, p.Ping(context.Background()))
	assert.Equal(t, "/models", got.Path)

	denied, _ := chatServer(t, http.StatusUnauthorized, `{}`)
	p = NewOpenAIProvider("bad", "", WithBaseURL(denied.URL))
	err := p.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API key")
}

func TestGeminiComplete(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"title\":\"G\"}"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 4, "totalTokenCount": 7}
		}`))
	}))
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(context.Background(), "key", "gemini-2.5-flash", GeminiOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), NewRequest("", "the prompt", 0.7))
	require.NoError(t, err)
	assert.Equal(t, `{"title":"G"}`, resp.Content)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
	assert.True(t, strings.HasSuffix(path, "gemini-2.5-flash:generateContent"), path)
}

func TestGeminiStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
	}))
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(context.Background(), "key", "", GeminiOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), NewRequest("", "p", 0.7))
	require.Error(t, err)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusForbidden, te.StatusCode)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestNewProvider(t *testing.T) {
	creds := config.NewCredentials(map[string]string{
		"GROQ_API_KEY":   "gsk",
		"OPENAI_API_KEY": "sk",
		"GEMINI_API_KEY": "gk",
	})

	for _, id := range []string{"groq", "openai", "gemini"} {
		p, err := NewProvider(context.Background(), config.Track{Provider: id, Label: "x"}, creds, time.Second)
		require.NoError(t, err, id)
		assert.Equal(t, id, p.Name())
	}

	_, err := NewProvider(context.Background(), config.Track{Provider: "groq", Label: "primary-LLM"},
		config.NewCredentials(nil), time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrCredentialMissing))
	assert.Contains(t, err.Error(), "primary-LLM")

	_, err = NewProvider(context.Background(), config.Track{Provider: "acme"}, creds, time.Second)
	assert.Error(t, err)
}
