package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	renderInput    string
	renderOutput   string
	renderTemplate string
	renderAccent   string
	renderFont     string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a résumé to a standalone HTML page",
	Long: `Normalizes a résumé record and renders it with one of the built-in templates.

Unknown template ids fall back to the classic template. Run "resume_builder templates" for the list.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to résumé JSON (\"-\" for stdin)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output HTML file (defaults to stdout)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (defaults to the record's template, then classic)")
	renderCmd.Flags().StringVar(&renderAccent, "accent", "", "Accent color override, e.g. #2563eb")
	renderCmd.Flags().StringVar(&renderFont, "font", "", "Font stack override")
	_ = renderCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	content, err := readContent(cmd, renderInput)
	if err != nil {
		return err
	}

	doc, err := rendering.RenderWithTheme(firstNonEmpty(renderTemplate, content.Template), content, themeFlags(renderAccent, renderFont))
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	if renderOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Rendered with template %q\n", doc.Template)
	}
	return writeOutput(cmd, renderOutput, []byte(doc.HTML))
}

func themeFlags(accent, font string) *rendering.Theme {
	if accent == "" && font == "" {
		return nil
	}
	return &rendering.Theme{Accent: accent, Font: font}
}
