package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sant0-9/copysmith/internal/catalog"
)

func newClientsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "List catalog clients and their categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.New(opts.settings.DataDir)
			if _, err := cat.Load(); err != nil {
				return err
			}

			configs := opts.configStore()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CLIENT\tCATEGORIES\tCONFIG")
			for _, client := range cat.Clients() {
				status := "ok"
				if _, err := configs.LoadClientConfig(client); err != nil {
					status = err.Error()
				}
				categories := cat.Categories(client)
				for i := range categories {
					categories[i] = catalog.TitleCase(categories[i])
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", client, strings.Join(categories, ", "), status)
			}
			return w.Flush()
		},
	}
}

