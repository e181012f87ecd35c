// Package tui is the interactive front end: pick a product from the catalog,
// adjust it for this session, generate copy and read the result.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/config"
	"github.com/sant0-9/copysmith/internal/generator"
	"github.com/sant0-9/copysmith/internal/logger"
	"github.com/sant0-9/copysmith/internal/render"
	"github.com/sant0-9/copysmith/internal/store"
)

type view int

const (
	viewWelcome view = iota
	viewEdit
	viewProcessing
	viewResult
	viewError
	viewSettings
	viewHelp
)

// Deps is what the UI needs from startup. Generator is nil when startup
// failed; StartupError then says why and generation stays blocked.
type Deps struct {
	Config       *config.Config
	Credentials  *config.Credentials
	Catalog      *catalog.Catalog
	Configs      *store.ConfigStore
	Examples     *store.ExampleStore
	Generator    *generator.Generator
	StartupError error
	Log          logger.Logger
}

type App struct {
	width    int
	height   int
	view     view
	prevView view
	state    *state
	deps     Deps
	program  *tea.Program
	quitting bool
}

func NewApp(deps Deps) *App {
	if deps.Log == nil {
		deps.Log = logger.NewNoOpLogger()
	}
	s := newState()
	s.spinner.Style = lipgloss.NewStyle().Foreground(colorPrimary)
	s.startupError = deps.StartupError

	a := &App{view: viewWelcome, state: s, deps: deps}
	if deps.StartupError != nil {
		s.processingError = deps.StartupError
		a.view = viewError
	}

	if deps.Catalog != nil {
		if _, err := deps.Catalog.Load(); err != nil {
			s.catalogError = err
		} else {
			s.clients = deps.Catalog.Clients()
		}
	}
	return a
}

// SetProgram lets background work report progress to the running program.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textinput.Blink)
}

type progressMsg generator.Progress

type generationDoneMsg struct {
	outcome *generator.Outcome
	err     error
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case spinner.TickMsg:
		if a.state.processing {
			var cmd tea.Cmd
			a.state.spinner, cmd = a.state.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case progressMsg:
		p := generator.Progress(msg)
		a.state.progress = &p
		return a, nil

	case generationDoneMsg:
		return a, a.finishGeneration(msg)
	}

	// Forward everything else to the focused component
	switch a.view {
	case viewEdit:
		cmds = append(cmds, a.updateFocused(msg))
	case viewResult:
		var cmd tea.Cmd
		a.state.viewport, cmd = a.state.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resize() {
	w := min(80, a.width-4)
	if w < 20 {
		w = 20
	}
	a.state.featuresArea.SetWidth(w - 4)
	a.state.tagsInput.Width = w - 8
	a.state.limitsInput.Width = w - 8
	a.state.viewport.Width = w
	a.state.viewport.Height = max(5, a.height-10)
	if a.state.outcome != nil {
		a.refreshResult()
	}
}

// handleKey returns handled=true when the key must not reach inputs.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewWelcome:
		return a.handleWelcomeKey(msg), true
	case viewEdit:
		return a.handleEditKey(msg)
	case viewProcessing:
		// A second generation while one is in flight is ignored.
		return nil, true
	case viewResult:
		return a.handleResultKey(msg)
	case viewError:
		return a.handleErrorKey(msg), true
	case viewSettings, viewHelp:
		if key.Matches(msg, keys.Quit) {
			a.view = a.prevView
		}
		return nil, true
	}
	return nil, false
}

func (a *App) openOverlay(v view) {
	a.prevView = a.view
	a.view = v
}

func (a *App) handleWelcomeKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Quit):
		if s.selectStep == 1 {
			s.selectStep = 0
			return nil
		}
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Help):
		a.openOverlay(viewHelp)

	case key.Matches(msg, keys.Settings):
		a.openOverlay(viewSettings)

	case key.Matches(msg, keys.Up):
		if s.selectStep == 0 && s.selClient > 0 {
			s.selClient--
		} else if s.selectStep == 1 && s.selCategory > 0 {
			s.selCategory--
		}

	case key.Matches(msg, keys.Down):
		if s.selectStep == 0 && s.selClient < len(s.clients)-1 {
			s.selClient++
		} else if s.selectStep == 1 && s.selCategory < len(s.categories)-1 {
			s.selCategory++
		}

	case key.Matches(msg, keys.Enter):
		if s.selectStep == 0 {
			if len(s.clients) == 0 {
				return nil
			}
			s.categories = a.deps.Catalog.Categories(s.clients[s.selClient])
			s.selCategory = 0
			s.selectStep = 1
			return nil
		}
		if len(s.categories) > 0 {
			return a.openProduct(s.clients[s.selClient], s.categories[s.selCategory])
		}
	}
	return nil
}

// openProduct loads the product, its client config and example into session
// copies and switches to the edit view.
func (a *App) openProduct(client, category string) tea.Cmd {
	s := a.state

	product, ok := a.deps.Catalog.Find(client, category)
	if !ok {
		return a.fail(errors.New("no product for " + client + " / " + category))
	}

	cfg, err := a.deps.Configs.LoadClientConfig(client)
	if err != nil {
		return a.fail(err)
	}

	examples := a.deps.Examples.LoadClientExamples(client)
	example, _ := examples.Lookup(category)

	s.product = product
	s.clientCfg = cfg.Clone()
	s.example = example
	s.fillForm()
	a.view = viewEdit
	return s.featuresArea.Focus()
}

func (a *App) fail(err error) tea.Cmd {
	a.deps.Log.WithError(err).Error("operation failed", nil)
	a.state.processingError = err
	a.view = viewError
	return nil
}

func (a *App) handleEditKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := a.state
	switch {
	case msg.String() == "esc":
		s.selectStep = 1
		a.view = viewWelcome
		return nil, true

	case key.Matches(msg, keys.Tab):
		step := 1
		if msg.String() == "shift+tab" {
			step = focusCount - 1
		}
		return a.setFocus((s.focus + step) % focusCount), true

	case key.Matches(msg, keys.Generate):
		return a.startGeneration(), true

	case s.focus == focusLanguage:
		switch msg.String() {
		case "left", "h", "up", "k":
			s.language = (s.language + len(catalog.Languages) - 1) % len(catalog.Languages)
		case "right", "l", "down", "j", " ":
			s.language = (s.language + 1) % len(catalog.Languages)
		case "enter":
			return a.startGeneration(), true
		}
		return nil, true

	case msg.String() == "enter" && s.focus != focusFeatures:
		return a.setFocus(s.focus + 1), true
	}
	return nil, false
}

func (a *App) setFocus(f int) tea.Cmd {
	s := a.state
	s.focus = f
	s.featuresArea.Blur()
	s.tagsInput.Blur()
	s.limitsInput.Blur()

	switch f {
	case focusFeatures:
		return s.featuresArea.Focus()
	case focusTags:
		return s.tagsInput.Focus()
	case focusLimits:
		return s.limitsInput.Focus()
	}
	return nil
}

func (a *App) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state.focus {
	case focusFeatures:
		a.state.featuresArea, cmd = a.state.featuresArea.Update(msg)
	case focusTags:
		a.state.tagsInput, cmd = a.state.tagsInput.Update(msg)
	case focusLimits:
		a.state.limitsInput, cmd = a.state.limitsInput.Update(msg)
	}
	return cmd
}

func (a *App) startGeneration() tea.Cmd {
	s := a.state
	if a.deps.Generator == nil {
		s.editError = a.deps.StartupError
		if s.editError == nil {
			s.editError = errors.New("generation is not available")
		}
		return nil
	}
	if err := s.applyForm(); err != nil {
		s.editError = err
		return nil
	}

	s.editError = nil
	s.processing = true
	s.progress = nil
	s.outcome = nil
	s.showRaw = false
	a.view = viewProcessing

	product := s.product.Clone()
	cfg := s.clientCfg.Clone()
	example := s.example
	gen := a.deps.Generator
	gen.SetProgressCallback(func(p generator.Progress) {
		if a.program != nil {
			a.program.Send(progressMsg(p))
		}
	})

	run := func() tea.Msg {
		out, err := gen.Generate(context.Background(), product, cfg, example)
		return generationDoneMsg{outcome: out, err: err}
	}
	return tea.Batch(s.spinner.Tick, run)
}

func (a *App) finishGeneration(msg generationDoneMsg) tea.Cmd {
	s := a.state
	s.processing = false
	s.outcome = msg.outcome
	if msg.err != nil {
		s.processingError = msg.err
		a.view = viewError
		return nil
	}
	s.processingError = nil
	a.refreshResult()
	s.viewport.GotoTop()
	a.view = viewResult
	return nil
}

// refreshResult re-renders the result body into the viewport at the current width.
func (a *App) refreshResult() {
	out := a.state.outcome
	if out == nil {
		return
	}
	if a.state.showRaw {
		a.state.viewport.SetContent(out.Raw)
		return
	}
	body, err := render.Terminal(out.Sections, "", a.state.viewport.Width)
	if err != nil {
		body = render.PlainText(out.Sections)
	}
	a.state.viewport.SetContent(body)
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := a.state
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Retry):
		return a.startGeneration(), true
	case key.Matches(msg, keys.Edit):
		a.view = viewEdit
		return a.setFocus(focusFeatures), true
	case key.Matches(msg, keys.New):
		s.selectStep = 0
		a.view = viewWelcome
		return nil, true
	case key.Matches(msg, keys.Raw):
		s.showRaw = !s.showRaw
		a.refreshResult()
		return nil, true
	case key.Matches(msg, keys.Help):
		a.openOverlay(viewHelp)
		return nil, true
	}
	return nil, false
}

func (a *App) handleErrorKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Quit):
		if s.product != nil && a.deps.Generator != nil {
			a.view = viewEdit
			return a.setFocus(focusFeatures)
		}
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Retry):
		if s.product != nil && a.deps.Generator != nil {
			return a.startGeneration()
		}
	case key.Matches(msg, keys.Edit):
		if s.product != nil {
			a.view = viewEdit
			return a.setFocus(focusFeatures)
		}
	case key.Matches(msg, keys.New):
		s.processingError = nil
		s.selectStep = 0
		a.view = viewWelcome
	case key.Matches(msg, keys.Settings):
		a.openOverlay(viewSettings)
	}
	return nil
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewEdit:
		return a.renderEdit()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewError:
		return a.renderError()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderWelcome()
	}
}
