package rendering

import (
	"bytes"

	"github.com/jonathan/resume-builder/internal/types"
)

// Document is a rendered résumé: a self-contained HTML page.
type Document struct {
	// Template is the layout id that produced the page, after fallback.
	Template string
	HTML     string
}

// Render renders content with the layout named by id using the layout's default theme.
// Unknown ids render with the classic layout. Nil content renders like empty content.
func Render(id string, c *types.Content) (*Document, error) {
	return RenderWithTheme(id, c, nil)
}

// RenderWithTheme is Render with explicit visual tokens. Invalid or unset tokens
// fall back to the layout's defaults.
func RenderWithTheme(id string, c *types.Content, theme *Theme) (*Document, error) {
	resolved := Resolve(id)
	if c == nil {
		c = types.NewContent()
	}

	th := DefaultTheme(resolved)
	if theme != nil {
		th = theme.merge(th)
	}

	v := newView(registry.info[resolved], c, th)

	var buf bytes.Buffer
	if err := registry.layouts[resolved].ExecuteTemplate(&buf, "page", v); err != nil {
		return nil, &RenderError{Message: "failed to execute layout " + resolved, Cause: err}
	}
	return &Document{Template: resolved, HTML: buf.String()}, nil
}
