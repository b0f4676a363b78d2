// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintContent outputs a human-readable summary of canonical résumé content.
func (p *Printer) PrintContent(c *types.Content) {
	if c == nil {
		return
	}

	var sb strings.Builder
	name := c.Personal.Name
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	if c.Personal.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:     %s\n", c.Personal.Title))
	}
	if c.Template != "" {
		sb.WriteString(fmt.Sprintf("Template:  %s\n", c.Template))
	}
	sb.WriteString(fmt.Sprintf("Sections:  %d experience, %d education, %d projects, %d skills\n",
		len(c.Experience), len(c.Education), len(c.Projects), len(c.Skills)))

	if len(c.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(c.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := c.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", orDash(e.Role)))
			if e.Company != "" {
				sb.WriteString(fmt.Sprintf(" at %s", e.Company))
			}
			if e.Period != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", e.Period))
			}
			sb.WriteString("\n")
		}
		if len(c.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(c.Experience)-maxItemsToShow))
		}
	}

	if len(c.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(c.Skills), maxItemsToShow)
		sb.WriteString("  " + strings.Join(c.Skills[:count], ", "))
		if len(c.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(c.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox("NORMALIZED RESUME", sb.String())
}

// PrintCatalog outputs the template catalog one line per template.
func (p *Printer) PrintCatalog(catalog []rendering.TemplateInfo) {
	if len(catalog) == 0 {
		return
	}

	var sb strings.Builder
	for _, t := range catalog {
		sb.WriteString(fmt.Sprintf("%-13s %s\n", t.ID, t.Name))
	}
	p.printBox(fmt.Sprintf("TEMPLATES (%d)", len(catalog)), sb.String())
}

// PrintExports outputs the size of each exported file.
func (p *Printer) PrintExports(items []export.GalleryItem) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	total := 0
	for _, item := range items {
		total += len(item.Data)
		sb.WriteString(fmt.Sprintf("%-13s %-4s %s\n", item.Template, item.Format, humanBytes(len(item.Data))))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d file(s), %s\n", len(items), humanBytes(total)))
	p.printBox("EXPORTS", sb.String())
}

// PrintSuggestions outputs assistant suggestions.
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		p.printBox("SUGGESTIONS", "No suggestions.")
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d. [%s]\n", i+1, s.Section))
		if s.Current != "" {
			sb.WriteString(fmt.Sprintf("   Before: %s\n", s.Current))
		}
		sb.WriteString(fmt.Sprintf("   After:  %s\n", s.Suggested))
		if s.Reasoning != "" {
			sb.WriteString(fmt.Sprintf("   Why:    %s\n", s.Reasoning))
		}
	}
	p.printBox(fmt.Sprintf("SUGGESTIONS (%d)", len(suggestions)), sb.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
