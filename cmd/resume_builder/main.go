// Package main provides the resume_builder CLI: the HTTP API server plus offline
// normalize, render and export commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Résumé builder API server and tools",
	Long:  "Resume Builder normalizes résumé content, renders it with any of the built-in templates and exports it to PDF, JPG, HTML or plain text.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
