package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sant0-9/copysmith/internal/generator"
	"github.com/sant0-9/copysmith/internal/parser"
	"github.com/sant0-9/copysmith/internal/render"
)

const (
	formatTerminal = "terminal"
	formatMarkdown = "markdown"
	formatPlain    = "plain"
	formatJSON     = "json"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		f      productFlags
		format string
		style  string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate copy for one catalog product",
		Long: `Generate copy for the first catalog product of a client and category.

English products go to the primary backend, every other language to the
secondary one. When the backend reply is not valid JSON the raw text is
printed as-is and the command fails.`,
		Example: `  copysmith generate --client Acme --category shoes
  copysmith generate --client Acme --category shoes --language icelandic --limit title=6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatTerminal, formatMarkdown, formatPlain, formatJSON:
			default:
				return fmt.Errorf("unknown format %q (want terminal, markdown, plain or json)", format)
			}

			sel, err := opts.selectProduct(&f)
			if err != nil {
				return err
			}
			gen, _, err := opts.generator(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			outcome, err := gen.Generate(cmd.Context(), sel.product, sel.config, sel.example)
			if err != nil {
				var pe *parser.ParseError
				if errors.As(err, &pe) {
					fmt.Fprintf(out, "%s (%s):\n\n%s\n", parser.ErrInvalidJSON.Message, outcome.Label, pe.Raw)
				}
				return err
			}
			return writeOutcome(out, cmd.ErrOrStderr(), outcome, format, style, width)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatTerminal, "Output format: terminal, markdown, plain or json")
	cmd.Flags().StringVar(&style, "style", "", "glamour style for terminal output (default: detect)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for terminal output")
	return cmd
}

// writeOutcome prints the generated copy. The model label and any schema
// warnings go to errOut so stdout stays pipeable.
func writeOutcome(out, errOut io.Writer, o *generator.Outcome, format, style string, width int) error {
	fmt.Fprintf(errOut, "Using model: %s\n", o.Label)
	for _, w := range o.Warnings {
		fmt.Fprintf(errOut, "Warning: %s\n", w)
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(o.Result)
	case formatMarkdown:
		_, err := io.WriteString(out, render.Markdown(o.Sections))
		return err
	case formatPlain:
		_, err := io.WriteString(out, render.PlainText(o.Sections))
		return err
	}

	body, err := render.Terminal(o.Sections, style, width)
	if err != nil {
		body = render.PlainText(o.Sections)
	}
	_, err = io.WriteString(out, body)
	return err
}
