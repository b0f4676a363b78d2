package rendering

import (
	"fmt"
	"html/template"
	"regexp"
)

var (
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	fontStack = regexp.MustCompile(`^[A-Za-z0-9 ,\-]+$`)
)

// Theme carries the visual tokens a layout is drawn with.
// Zero fields fall back to the layout's catalog defaults.
type Theme struct {
	Accent string `json:"accent,omitempty"`
	Ink    string `json:"ink,omitempty"`
	Muted  string `json:"muted,omitempty"`
	Paper  string `json:"paper,omitempty"`
	Font   string `json:"font,omitempty"`
}

// DefaultTheme returns the theme a layout uses when none is supplied.
func DefaultTheme(id string) Theme {
	info := Info(id)
	return Theme{
		Accent: info.Accent,
		Ink:    "#111827",
		Muted:  "#6b7280",
		Paper:  "#ffffff",
		Font:   info.Font,
	}
}

// merge fills unset or invalid tokens of t from base.
func (t Theme) merge(base Theme) Theme {
	pick := func(v, fallback string, re *regexp.Regexp) string {
		if v != "" && re.MatchString(v) {
			return v
		}
		return fallback
	}
	return Theme{
		Accent: pick(t.Accent, base.Accent, hexColor),
		Ink:    pick(t.Ink, base.Ink, hexColor),
		Muted:  pick(t.Muted, base.Muted, hexColor),
		Paper:  pick(t.Paper, base.Paper, hexColor),
		Font:   pick(t.Font, base.Font, fontStack),
	}
}

// CSSVars renders the theme as CSS custom properties. Values are validated in merge.
func (t Theme) CSSVars() template.CSS {
	return template.CSS(fmt.Sprintf(
		":root{--accent:%s;--ink:%s;--muted:%s;--paper:%s;--font:%s;}",
		t.Accent, t.Ink, t.Muted, t.Paper, t.Font,
	))
}
