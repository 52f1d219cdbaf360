package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func parseOutputFormat(value string) (outputFormat, error) {
	switch format := outputFormat(strings.ToLower(strings.TrimSpace(value))); format {
	case "", outputTable:
		return outputTable, nil
	case outputJSON, outputYAML:
		return format, nil
	case "yml":
		return outputYAML, nil
	default:
		return "", fmt.Errorf("--output: unsupported format %q (use table, json or yaml)", value)
	}
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML encodes v as YAML to the command's stdout.
func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStructured emits v in a machine-readable format. It reports false
// for table output, leaving rendering to the caller.
func writeStructured(cmd *cobra.Command, format outputFormat, v any) (bool, error) {
	switch format {
	case outputJSON:
		return true, writeJSON(cmd, v)
	case outputYAML:
		return true, writeYAML(cmd, v)
	default:
		return false, nil
	}
}
