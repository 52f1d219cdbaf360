package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/views"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored classifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := ctx.client(cmd)
			if err != nil {
				return err
			}
			formatter, err := ctx.formatter()
			if err != nil {
				return err
			}

			results, err := client.ListResults(cmd.Context())
			if err != nil {
				return newUserError(views.LookupErrorMessage(err), err)
			}
			if handled, err := writeStructured(cmd, ctx.outputFormat(), results); handled {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results found")
				return nil
			}
			fmt.Fprintln(out, renderTable(out, views.SummaryHeaders, formatter.SummaryRows(results), nil))
			return nil
		},
	}
}
