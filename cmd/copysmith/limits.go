package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sant0-9/copysmith/internal/apperrors"
)

func newLimitsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Show or change a client's word limits",
	}
	cmd.AddCommand(newLimitsShowCmd(opts), newLimitsSetCmd(opts))
	return cmd
}

func newLimitsShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <client>",
		Short: "Print the word limit of every content field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.configStore().LoadClientConfig(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, key := range cfg.Schema.Keys() {
				if n, ok := cfg.Limit(key); ok {
					fmt.Fprintf(out, "%s\t%d\n", key, n)
				} else {
					fmt.Fprintf(out, "%s\t-\n", key)
				}
			}
			return nil
		},
	}
}

func newLimitsSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <client> <field> <words>",
		Short: "Persist a new word limit in the client's config file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, field := args[0], args[1]
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return apperrors.NewInvalidConfigError(fmt.Sprintf("limit %q is not a number", args[2]))
			}

			configs := opts.configStore()
			cfg, err := configs.LoadClientConfig(client)
			if err != nil {
				return err
			}
			if !cfg.Schema.Has(field) {
				return apperrors.NewInvalidConfigError(fmt.Sprintf("client %s has no field %q", cfg.ClientName, field))
			}
			if err := cfg.SetLimit(field, n); err != nil {
				return err
			}
			if err := configs.SaveClientConfig(cfg); err != nil {
				return err
			}

			opts.log.Info("limit saved", map[string]interface{}{
				"client": cfg.ClientName,
				"field":  field,
				"limit":  n,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s limit set to %d\n", cfg.ClientName, field, n)
			return nil
		},
	}
}
