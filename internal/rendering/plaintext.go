package rendering

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blockElements = map[string]bool{
	"main": true, "header": true, "aside": true, "section": true, "div": true,
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "ul": true, "li": true,
}

// PlainText flattens a rendered document into ATS-friendly text:
// one block per line, list items prefixed with "- ", no markup.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Message: "failed to parse rendered HTML", Cause: err}
	}

	// Drop everything that never reads as text
	doc.Find("head, style, script, img").Remove()

	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var b strings.Builder
	writeText(&b, root)
	return cleanLines(b.String()), nil
}

func writeText(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		switch {
		case name == "#text":
			b.WriteString(collapseSpaces(s.Text()))
		case name == "#comment":
		case s.HasClass("sep"):
			fmt.Fprintf(b, " %s ", strings.TrimSpace(s.Text()))
		case blockElements[name]:
			b.WriteString("\n")
			if name == "li" {
				b.WriteString("- ")
			}
			writeText(b, s)
			b.WriteString("\n")
		default:
			writeText(b, s)
			if name == "span" || name == "a" {
				b.WriteString(" ")
			}
		}
	})
}

func collapseSpaces(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(strings.Fields(s), " ")
	if strings.IndexAny(s[:1], " \t\n\r") == 0 {
		out = " " + out
	}
	if strings.IndexAny(s[len(s)-1:], " \t\n\r") == 0 {
		out += " "
	}
	return out
}

// cleanLines trims every line, collapses runs of spaces and drops empty lines.
func cleanLines(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" && line != "-" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
