package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/logging"
	"scribe/internal/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Web.Bind = bind
			}
			client, logger, err := ctx.client(cmd)
			if err != nil {
				return err
			}
			formatter, err := ctx.formatter()
			if err != nil {
				return err
			}

			srv, err := web.NewServer(cfg, client, formatter, logger)
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			if err := srv.Start(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (analysis service %s)\n", srv.Addr(), client.BaseURL())

			<-runCtx.Done()
			srv.Stop()
			logger.Info("web server stopped", logging.String("address", srv.Addr()))
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides web.bind)")
	return cmd
}
