package main

import (
	"fmt"
	"strconv"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentPreRunE = applyConfigFile
}

// applyConfigFile loads --config and uses its values for flags the user did not set.
func applyConfigFile(cmd *cobra.Command, _ []string) error {
	if configPath == "" {
		return nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	defaults := map[string]string{
		"template":  cfg.Template,
		"format":    cfg.Format,
		"page-size": cfg.PageSize,
		"accent":    cfg.Accent,
		"font":      cfg.Font,
		"api-key":   cfg.APIKey,
		"db-url":    cfg.DatabaseURL,
	}
	if cfg.Verbose {
		defaults["verbose"] = strconv.FormatBool(cfg.Verbose)
	}
	if cmd == exportCmd && exportAllTemplates {
		defaults["out"] = cfg.OutputDir
		delete(defaults, "template")
	}

	var setErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		value, ok := defaults[f.Name]
		if !ok || value == "" || f.Changed || setErr != nil {
			return
		}
		if err := cmd.Flags().Set(f.Name, value); err != nil {
			setErr = fmt.Errorf("config error: invalid %s: %w", f.Name, err)
		}
	})
	return setErr
}
