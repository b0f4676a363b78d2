package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	exportInput        string
	exportOutput       string
	exportFormat       string
	exportTemplate     string
	exportAllTemplates bool
	exportPageSize     string
	exportChromePath   string
	exportAccent       string
	exportFont         string
	exportVerbose      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a résumé to PDF, JPG, HTML or plain text",
	Long: `Renders a résumé and exports it. PDF and JPG use headless Chrome (set CHROME_PATH to pick a binary).

With --all-templates every template is exported into the --out directory as <template>.<ext>.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to résumé JSON (\"-\" for stdin)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file, or directory with --all-templates")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatPDF), "Output format: pdf, jpg, html or txt")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template id (defaults to the record's template, then classic)")
	exportCmd.Flags().BoolVar(&exportAllTemplates, "all-templates", false, "Export every template")
	exportCmd.Flags().StringVar(&exportPageSize, "page-size", string(export.PageA4), "Page size: A4 or Letter")
	exportCmd.Flags().StringVar(&exportChromePath, "chrome-path", "", "Chrome binary (defaults to CHROME_PATH env var)")
	exportCmd.Flags().StringVar(&exportAccent, "accent", "", "Accent color override, e.g. #2563eb")
	exportCmd.Flags().StringVar(&exportFont, "font", "", "Font stack override")
	exportCmd.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "Print page-count checks")
	_ = exportCmd.MarkFlagRequired("in")
	_ = exportCmd.MarkFlagRequired("out")
	exportCmd.MarkFlagsMutuallyExclusive("all-templates", "template")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	pageSize, err := export.ParsePageSize(exportPageSize)
	if err != nil {
		return err
	}

	content, err := readContent(cmd, exportInput)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.PageSize = pageSize
	opts.Verbose = exportVerbose
	if exportChromePath != "" {
		opts.ChromePath = exportChromePath
	}
	if format.NeedsBrowser() && !export.BrowserAvailable(opts) {
		return fmt.Errorf("%s export needs Chrome; install it or set CHROME_PATH", format)
	}
	exporter := export.NewChromeExporter(opts)

	ctx := context.Background()
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if exportAllTemplates {
		items, err := exporter.ExportGallery(ctx, content, format)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(exportOutput, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		for _, item := range items {
			path := filepath.Join(exportOutput, item.Template+format.Extension())
			if err := os.WriteFile(path, item.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
		}
		printer.PrintExports(items)
		return nil
	}

	doc, err := rendering.RenderWithTheme(firstNonEmpty(exportTemplate, content.Template), content, themeFlags(exportAccent, exportFont))
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	data, err := exporter.Export(ctx, doc, format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, exportOutput, data); err != nil {
		return err
	}
	if exportOutput != "-" {
		printer.PrintExports([]export.GalleryItem{{Template: doc.Template, Format: format, Data: data}})
	}
	return nil
}
