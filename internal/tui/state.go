package tui

import (
	"encoding/json"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/generator"
	"github.com/sant0-9/copysmith/internal/schema"
)

// Edit view focus order.
const (
	focusFeatures = iota
	focusTags
	focusLimits
	focusLanguage
	focusCount
)

type state struct {
	// Catalog selection
	clients     []string
	categories  []string
	selClient   int
	selCategory int
	selectStep  int // 0 client, 1 category

	// Session copies; edits never reach the files on disk
	product   *catalog.Product
	clientCfg *schema.ClientConfig
	example   json.RawMessage

	// Edit form
	featuresArea textarea.Model
	tagsInput    textinput.Model
	limitsInput  textinput.Model
	language     int
	focus        int
	editError    error

	// Processing
	processing bool
	progress   *generator.Progress
	spinner    spinner.Model

	// Result
	outcome  *generator.Outcome
	viewport viewport.Model
	showRaw  bool

	// Errors
	startupError    error
	catalogError    error
	processingError error
}

func newState() *state {
	features := textarea.New()
	features.Placeholder = "key: value, one per line"
	features.ShowLineNumbers = false
	features.SetWidth(60)
	features.SetHeight(6)

	tags := textinput.New()
	tags.Placeholder = "comma, separated, tags"
	tags.CharLimit = 300
	tags.Width = 56

	limits := textinput.New()
	limits.Placeholder = "title=8, subtitle=12"
	limits.CharLimit = 300
	limits.Width = 56

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &state{
		featuresArea: features,
		tagsInput:    tags,
		limitsInput:  limits,
		spinner:      sp,
		viewport:     viewport.New(70, 20),
	}
}
