package generator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/config"
	"github.com/sant0-9/copysmith/internal/llm"
	"github.com/sant0-9/copysmith/internal/logger"
	"github.com/sant0-9/copysmith/internal/prompts"
	"github.com/sant0-9/copysmith/internal/schema"
)

// Backend is one routable generation target.
type Backend struct {
	Provider llm.Provider
	Model    string
	Label    string
}

// Router sends prompts to the primary backend for English copy and to the
// secondary backend for every other language.
type Router struct {
	primary     Backend
	secondary   Backend
	temperature float64
	timeout     time.Duration
	log         logger.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

func WithTemperature(t float64) RouterOption {
	return func(r *Router) {
		r.temperature = t
	}
}

// WithCallTimeout bounds each backend call. Zero disables the bound.
func WithCallTimeout(d time.Duration) RouterOption {
	return func(r *Router) {
		r.timeout = d
	}
}

func WithLogger(l logger.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRouter(primary, secondary Backend, opts ...RouterOption) *Router {
	r := &Router{
		primary:     primary,
		secondary:   secondary,
		temperature: 0.7,
		timeout:     llm.DefaultTimeout,
		log:         logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRouterFromConfig builds both tracks from settings. Credentials are
// resolved up front, so a missing key fails here rather than per call.
func NewRouterFromConfig(ctx context.Context, cfg *config.Config, creds *config.Credentials, log logger.Logger) (*Router, error) {
	var backends [2]Backend
	for i, track := range cfg.Tracks() {
		p, err := llm.NewProvider(ctx, track, creds, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		model := track.Model
		if model == "" {
			model = config.GetProvider(track.Provider).DefaultModel
		}
		backends[i] = Backend{Provider: p, Model: model, Label: track.Label}
	}
	return NewRouter(backends[0], backends[1],
		WithTemperature(cfg.Temperature),
		WithCallTimeout(cfg.Timeout),
		WithLogger(log),
	), nil
}

// Select returns the backend for an output language. Only English, in any
// case, goes to the primary backend; an unset language counts as English.
func (r *Router) Select(language string) Backend {
	if catalog.IsDefaultLanguage(language) {
		return r.primary
	}
	return r.secondary
}

// Backends returns the primary and secondary backend, in that order.
func (r *Router) Backends() []Backend {
	return []Backend{r.primary, r.secondary}
}

// GenerateContent builds the prompt for product and returns the selected
// backend's raw text together with that backend's label.
func (r *Router) GenerateContent(ctx context.Context, product *catalog.Product, cfg *schema.ClientConfig, example json.RawMessage) (string, string, error) {
	return r.Send(ctx, product.Language, prompts.Build(product, cfg, example))
}

// Send dispatches an already built prompt.
func (r *Router) Send(ctx context.Context, language, prompt string) (string, string, error) {
	b := r.Select(language)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log := r.log.WithFields(map[string]interface{}{
		"backend":  b.Label,
		"provider": b.Provider.Name(),
		"model":    b.Model,
	})
	log.Debug("sending prompt", map[string]interface{}{"prompt_chars": len(prompt)})

	start := time.Now()
	resp, err := b.Provider.Complete(ctx, llm.NewRequest(b.Model, prompt, r.temperature))
	if err != nil {
		log.WithError(err).Error("backend call failed", map[string]interface{}{"elapsed": time.Since(start).String()})
		return "", b.Label, err
	}

	log.Info("backend responded", map[string]interface{}{
		"elapsed":       time.Since(start).String(),
		"finish_reason": resp.FinishReason,
		"total_tokens":  resp.Usage.TotalTokens,
	})
	return resp.Content, b.Label, nil
}
