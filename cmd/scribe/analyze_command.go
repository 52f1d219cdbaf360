package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/analysis"
	"scribe/internal/logging"
	"scribe/internal/views"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var transcriptID string
	var creatorID string
	var text string
	var file string
	var raw bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify transcript text without uploading media",
		Example: `  scribe analyze --transcript-id t-1 --creator-id c-9 --text "Today we review the new Acme drill"
  scribe analyze --transcript-id t-1 --creator-id c-9 --file transcript.txt
  cat transcript.txt | scribe analyze --transcript-id t-1 --creator-id c-9 --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if text != "" && file != "" {
				return errors.New("use either --text or --file, not both")
			}
			if file != "" {
				content, err := readTranscript(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				text = content
			}

			client, logger, err := ctx.client(cmd)
			if err != nil {
				return err
			}
			formatter, err := ctx.formatter()
			if err != nil {
				return err
			}

			req := analysis.AnalyzeRequest{
				TranscriptID:   strings.TrimSpace(transcriptID),
				CreatorID:      strings.TrimSpace(creatorID),
				TranscriptText: text,
			}
			resp, err := client.SubmitAnalysis(cmd.Context(), req)
			if err != nil {
				logger.Debug("analysis failed", logging.Error(err))
				return newUserError(views.AnalyzeErrorMessage(err, client.BaseURL()), err)
			}
			writeStatus(cmd.ErrOrStderr(), statusOK, views.MsgProcessingDone)

			if handled, err := writeStructured(cmd, ctx.outputFormat(), resp.Result); handled {
				return err
			}
			return writeReport(cmd.OutOrStdout(), formatter, resp.Result, raw)
		},
	}

	cmd.Flags().StringVar(&transcriptID, "transcript-id", "", "Transcript identifier")
	cmd.Flags().StringVar(&creatorID, "creator-id", "", "Creator identifier")
	cmd.Flags().StringVar(&text, "text", "", "Transcript text")
	cmd.Flags().StringVar(&file, "file", "", "Read transcript text from a file (- for stdin)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Also print the full result as JSON")
	return cmd
}

func readTranscript(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read transcript from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
