package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort        int
	serveDatabaseURL string
	serveAPIKey      string
	servePageSize    string
	serveVerbose     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes résumé storage, preview, export and assistant endpoints.

The assistant endpoints are enabled only when a Gemini API key is configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&servePageSize, "page-size", string(export.PageA4), "Page size for PDF exports (A4 or Letter)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log assistant prompts and responses")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	databaseURL := firstNonEmpty(serveDatabaseURL, os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	pageSize, err := export.ParsePageSize(servePageSize)
	if err != nil {
		return err
	}
	exportOpts := export.DefaultOptions()
	exportOpts.PageSize = pageSize
	exportOpts.Verbose = serveVerbose

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL,
		APIKey:      firstNonEmpty(serveAPIKey, os.Getenv("GEMINI_API_KEY")),
		Export:      exportOpts,
		Verbose:     serveVerbose,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
