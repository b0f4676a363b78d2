package rendering

import (
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"
)

var funcs = template.FuncMap{
	"sentence":  sentence,
	"meter":     meter,
	"imageURL":  func(s string) template.URL { return template.URL(imageURL(s)) },
	"joinParts": joinParts,
}

// joinParts escapes the non-blank parts and joins them with a separator span,
// so missing fields never leave a dangling separator.
func joinParts(sep string, parts ...string) template.HTML {
	var b strings.Builder
	n := 0
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n > 0 {
			b.WriteString(`<span class="sep">`)
			b.WriteString(template.HTMLEscapeString(sep))
			b.WriteString(`</span>`)
		}
		b.WriteString(template.HTMLEscapeString(p))
		n++
	}
	return template.HTML(b.String())
}

// sentence capitalizes the first letter and terminates the text with a period
// unless it already ends with sentence punctuation.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

// externalURL adds a scheme to bare hosts so links open externally.
func externalURL(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "mailto:"):
		return s
	case strings.HasPrefix(s, "//"):
		return "https:" + s
	}
	return "https://" + s
}

// imageURL returns s when it is an http(s) or inline image source, otherwise "".
func imageURL(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "data:image/") {
		return s
	}
	return ""
}

// meter returns a deterministic bar width (55-95%) for the i-th skill in infographic layouts.
func meter(i int) int {
	return 95 - (i%5)*10
}
