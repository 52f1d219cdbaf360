package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var apiURLFlag string
	var outputFlag string

	ctx := newCommandContext(&configFlag, &apiURLFlag, &outputFlag)

	rootCmd := &cobra.Command{
		Use:           "scribe",
		Short:         "Upload media and inspect entity classifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseOutputFormat(outputFlag); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Analysis service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", string(outputTable), "Output format: table, json or yaml")

	rootCmd.AddCommand(newUploadCommand(ctx))
	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
