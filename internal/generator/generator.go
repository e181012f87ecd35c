// Package generator runs one copy generation cycle: build the prompt, route
// it to a backend, parse the reply and lay it out as sections.
package generator

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/logger"
	"github.com/sant0-9/copysmith/internal/parser"
	"github.com/sant0-9/copysmith/internal/prompts"
	"github.com/sant0-9/copysmith/internal/render"
	"github.com/sant0-9/copysmith/internal/schema"
)

// Stage represents a generation stage
type Stage int

const (
	StagePrompting Stage = iota
	StageGenerating
	StageParsing
	StageRendering
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StagePrompting:
		return "Prompting"
	case StageGenerating:
		return "Generating"
	case StageParsing:
		return "Parsing"
	case StageRendering:
		return "Rendering"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Stages lists the visible stages in run order.
var Stages = []Stage{StagePrompting, StageGenerating, StageParsing, StageRendering}

// Progress represents generation progress
type Progress struct {
	Stage       Stage
	StageIndex  int
	TotalStages int
	Message     string
}

// Outcome is everything one run produced. On a parse failure Raw and Label
// are still set so the caller can show the text verbatim.
type Outcome struct {
	RunID    string
	Prompt   string
	Raw      string
	Label    string
	Result   schema.Result
	Sections []render.Section
	Warnings []string
}

// Generator ties the router to parsing and rendering.
type Generator struct {
	router     *Router
	log        logger.Logger
	alignMode  schema.AlignMode
	onProgress func(Progress)
}

func New(router *Router, log logger.Logger) *Generator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Generator{router: router, log: log}
}

// Router returns the router runs are dispatched through.
func (g *Generator) Router() *Router {
	return g.router
}

// SetAlignMode overrides every client config's align mode. An empty mode
// keeps each config's own.
func (g *Generator) SetAlignMode(mode schema.AlignMode) {
	g.alignMode = mode
}

// SetProgressCallback sets the progress callback
func (g *Generator) SetProgressCallback(fn func(Progress)) {
	g.onProgress = fn
}

func (g *Generator) progress(stage Stage, msg string) {
	if g.onProgress == nil {
		return
	}
	g.onProgress(Progress{
		Stage:       stage,
		StageIndex:  int(stage),
		TotalStages: len(Stages),
		Message:     msg,
	})
}

// Generate runs one full cycle for product under cfg. A failed stage returns
// the partial Outcome along with the error.
func (g *Generator) Generate(ctx context.Context, product *catalog.Product, cfg *schema.ClientConfig, example json.RawMessage) (*Outcome, error) {
	out := &Outcome{RunID: uuid.NewString()}
	if g.alignMode != "" {
		cfg = cfg.Clone()
		cfg.AlignMode = g.alignMode
	}
	log := g.log.WithFields(map[string]interface{}{
		"run_id":   out.RunID,
		"client":   product.Client,
		"category": product.Category,
		"language": product.Language,
	})

	g.progress(StagePrompting, "Building prompt...")
	out.Prompt = prompts.Build(product, cfg, example)

	backend := g.router.Select(product.Language)
	g.progress(StageGenerating, "Waiting for "+backend.Label+"...")
	raw, label, err := g.router.Send(ctx, product.Language, out.Prompt)
	out.Label = label
	if err != nil {
		log.WithError(err).Error("generation failed", nil)
		return out, err
	}
	out.Raw = raw

	g.progress(StageParsing, "Parsing response...")
	result, err := parser.Parse(raw)
	if err != nil {
		log.WithError(err).Warn("backend returned invalid JSON", map[string]interface{}{"raw_chars": len(raw)})
		return out, err
	}
	out.Result = result

	warnings, err := parser.Conformance(result, cfg)
	if err != nil {
		log.WithError(err).Warn("conformance check skipped", nil)
	}
	for _, w := range warnings {
		log.Warn("output does not match schema", map[string]interface{}{"detail": w})
	}
	out.Warnings = warnings

	g.progress(StageRendering, "Laying out sections...")
	sections, err := render.Render(result, cfg)
	if err != nil {
		log.WithError(err).Error("render failed", nil)
		return out, err
	}
	out.Sections = sections

	g.progress(StageDone, "Done")
	log.Info("generation complete", map[string]interface{}{
		"backend":  label,
		"sections": len(sections),
		"warnings": len(warnings),
	})
	return out, nil
}
