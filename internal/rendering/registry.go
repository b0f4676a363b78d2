package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates
var templateFS embed.FS

// DefaultTemplate is the layout every unknown or empty template id dispatches to.
const DefaultTemplate = "classic"

type layoutRegistry struct {
	catalog []TemplateInfo
	info    map[string]TemplateInfo
	layouts map[string]*template.Template
}

var registry = mustLoadRegistry()

func mustLoadRegistry() *layoutRegistry {
	r, err := loadRegistry(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("rendering: %v", err))
	}
	return r
}

// loadRegistry parses the catalog and one template set per layout.
// Each set is a clone of the shared partials plus the layout's own file.
func loadRegistry(catalog []byte) (*layoutRegistry, error) {
	infos, err := parseCatalog(catalog)
	if err != nil {
		return nil, err
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, &TemplateError{Template: "partials", Message: "failed to parse partials", Cause: err}
	}

	r := &layoutRegistry{
		catalog: infos,
		info:    make(map[string]TemplateInfo, len(infos)),
		layouts: make(map[string]*template.Template, len(infos)),
	}
	for _, info := range infos {
		set, err := base.Clone()
		if err != nil {
			return nil, &TemplateError{Template: info.ID, Message: "failed to clone partials", Cause: err}
		}
		if _, err := set.ParseFS(templateFS, "templates/"+info.ID+".html"); err != nil {
			return nil, &TemplateError{Template: info.ID, Message: "failed to parse layout", Cause: err}
		}
		if set.Lookup("body") == nil || set.Lookup("style") == nil {
			return nil, &TemplateError{Template: info.ID, Message: "layout must define style and body"}
		}
		r.info[info.ID] = info
		r.layouts[info.ID] = set
	}
	if _, ok := r.layouts[DefaultTemplate]; !ok {
		return nil, &TemplateError{Template: DefaultTemplate, Message: "default layout missing from catalog"}
	}
	return r, nil
}

// IDs returns the known template ids in gallery order.
func IDs() []string {
	ids := make([]string, len(registry.catalog))
	for i, info := range registry.catalog {
		ids[i] = info.ID
	}
	return ids
}

// IsKnown reports whether id names a layout exactly.
func IsKnown(id string) bool {
	_, ok := registry.layouts[id]
	return ok
}

// Resolve maps any template id to a known layout id. Unknown, empty and
// differently-cased ids that do not match resolve to DefaultTemplate.
func Resolve(id string) string {
	id = strings.TrimSpace(id)
	if IsKnown(id) {
		return id
	}
	if lower := strings.ToLower(id); IsKnown(lower) {
		return lower
	}
	return DefaultTemplate
}
