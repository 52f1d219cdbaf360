package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/analysis"
	"scribe/internal/views"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var raw bool
	var anyType bool

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a media or transcript file for classification",
		Long: fmt.Sprintf(`Upload a video, audio or transcript file to the analysis service, wait
for transcription and classification, and print the result.

Accepted extensions: %s`, strings.Join(analysis.AcceptedExtensions, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(args[0])
			if !anyType && !analysis.IsAcceptedFile(path) {
				return fmt.Errorf("unsupported file type %q (accepted: %s; use --any-type to send it anyway)",
					filepath.Ext(path), strings.Join(analysis.AcceptedExtensions, ", "))
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", path, err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", path)
			}

			client, logger, err := ctx.client(cmd)
			if err != nil {
				return err
			}
			formatter, err := ctx.formatter()
			if err != nil {
				return err
			}

			view := views.NewUploadView(client, logger)
			if err := view.SelectFile(views.SelectedFile{
				Name: filepath.Base(path),
				Size: info.Size(),
				Open: func() (io.ReadCloser, error) { return os.Open(path) },
			}); err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			snap := view.Snapshot()
			writeStatus(stderr, statusInfo, fmt.Sprintf("Selected %s (%s)", snap.FileName, snap.FileSizeLabel()))
			writeStatus(stderr, statusInfo, views.MsgUploading)

			submitErr := view.Submit(cmd.Context())
			snap = view.Snapshot()
			if submitErr != nil {
				if errors.Is(submitErr, views.ErrFileRequired) {
					return newUserError(snap.Status, submitErr)
				}
				writeStatus(stderr, statusError, snap.Status)
				return newUserError(snap.Error, submitErr)
			}
			writeStatus(stderr, statusOK, snap.Status)

			if handled, err := writeStructured(cmd, ctx.outputFormat(), snap.Result); handled {
				return err
			}
			return writeReport(cmd.OutOrStdout(), formatter, *snap.Result, raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Also print the full result as JSON")
	cmd.Flags().BoolVar(&anyType, "any-type", false, "Skip the file extension check")
	return cmd
}
