package main

import (
	"fmt"
	"io"

	"scribe/internal/analysis"
	"scribe/internal/views"
)

// writeReport prints each report section as a field table and, when raw is
// set, the full result as indented JSON.
func writeReport(w io.Writer, formatter *views.Formatter, result analysis.Result, raw bool) error {
	colorize := isTerminal(w)
	report := formatter.Report(result)
	for _, section := range report.Sections {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderSectionHeader(section.Title, colorize))
		if len(section.Rows) == 0 {
			fmt.Fprintln(w, "None detected")
			continue
		}
		fmt.Fprintln(w, renderFieldTable(w, section.Rows))
	}
	if !raw {
		return nil
	}
	payload, err := formatter.RawJSON(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderSectionHeader("Raw JSON", colorize))
	fmt.Fprintln(w, payload)
	return nil
}
