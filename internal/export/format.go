package export

import (
	"fmt"
	"strings"
)

// Format is an export output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatJPG  Format = "jpg"
	FormatHTML Format = "html"
	FormatText Format = "txt"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatJPG, FormatHTML, FormatText}

// ParseFormat parses a format name. Common aliases are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf", "":
		return FormatPDF, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "html", "htm":
		return FormatHTML, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want pdf, jpg, html or txt)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatJPG:
		return "image/jpeg"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// NeedsBrowser reports whether producing the format requires headless Chrome.
func (f Format) NeedsBrowser() bool {
	return f == FormatPDF || f == FormatJPG
}

// PageSize is a printable paper size.
type PageSize string

const (
	PageA4     PageSize = "A4"
	PageLetter PageSize = "Letter"
)

// ParsePageSize parses a paper size name, defaulting to A4.
func ParsePageSize(s string) (PageSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a4":
		return PageA4, nil
	case "letter", "us-letter":
		return PageLetter, nil
	}
	return "", fmt.Errorf("unsupported page size %q (want A4 or Letter)", s)
}

// Inches returns paper width and height in inches.
func (p PageSize) Inches() (width, height float64) {
	if p == PageLetter {
		return 8.5, 11
	}
	// A4: 210mm x 297mm
	return 8.27, 11.69
}

// Viewport returns the page size in CSS pixels at 96 dpi.
func (p PageSize) Viewport() (width, height int64) {
	w, h := p.Inches()
	return int64(w * 96), int64(h * 96)
}
