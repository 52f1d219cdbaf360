package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/views"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get ANALYSIS_ID",
		Short: "Show a stored classification",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) > 0 {
				id = args[0]
			}
			client, logger, err := ctx.client(cmd)
			if err != nil {
				return err
			}
			formatter, err := ctx.formatter()
			if err != nil {
				return err
			}

			view := views.NewLookupView(client, logger)
			if err := view.Submit(cmd.Context(), id); err != nil {
				return newUserError(view.Snapshot().Error, err)
			}
			snap := view.Snapshot()

			if handled, err := writeStructured(cmd, ctx.outputFormat(), snap.Result); handled {
				return err
			}
			rows := formatter.LookupRows(*snap.Result)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, rowsToCells(rows), nil))
			return nil
		},
	}
}
