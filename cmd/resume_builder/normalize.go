package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var (
	normalizeInput   string
	normalizeOutput  string
	normalizeSummary bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a résumé record into canonical content",
	Long:  "Reads a loosely shaped résumé record and writes the canonical content every template renders.",
	RunE:  runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInput, "in", "i", "", "Path to résumé JSON (\"-\" for stdin)")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	normalizeCmd.Flags().BoolVar(&normalizeSummary, "summary", false, "Print a human-readable summary instead of JSON")
	_ = normalizeCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	content, err := readContent(cmd, normalizeInput)
	if err != nil {
		return err
	}

	if normalizeSummary {
		observability.NewPrinter(cmd.OutOrStdout()).PrintContent(content)
		return nil
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal content: %w", err)
	}
	return writeOutput(cmd, normalizeOutput, append(data, '\n'))
}
