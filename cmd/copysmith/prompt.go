package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sant0-9/copysmith/internal/prompts"
)

func newPromptCmd(opts *options) *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt for a product without calling a backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := opts.selectProduct(&f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompts.Build(sel.product, sel.config, sel.example))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
