package rendering

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// SkillStyle selects how a layout presents the flat skill list.
type SkillStyle string

const (
	// SkillPills renders each skill as a discrete tag.
	SkillPills SkillStyle = "pills"
	// SkillSentences renders one sentence-cased skill per line, ending with a period.
	SkillSentences SkillStyle = "sentences"
)

// TemplateInfo is the gallery metadata of one layout.
type TemplateInfo struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Category    string     `yaml:"category" json:"category"`
	SkillStyle  SkillStyle `yaml:"skill_style" json:"skill_style"`
	Separator   string     `yaml:"separator" json:"-"`
	Accent      string     `yaml:"accent" json:"accent"`
	Font        string     `yaml:"font" json:"font"`
}

type catalogFile struct {
	Templates []TemplateInfo `yaml:"templates"`
}

// parseCatalog decodes catalog YAML and checks every entry is usable.
func parseCatalog(data []byte) ([]TemplateInfo, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &TemplateError{Template: "catalog", Message: "failed to parse catalog", Cause: err}
	}

	seen := make(map[string]bool, len(file.Templates))
	for _, info := range file.Templates {
		if info.ID == "" || info.Name == "" {
			return nil, &TemplateError{Template: "catalog", Message: "entry without id or name"}
		}
		if seen[info.ID] {
			return nil, &TemplateError{Template: info.ID, Message: "duplicate catalog entry"}
		}
		seen[info.ID] = true
		if info.SkillStyle != SkillPills && info.SkillStyle != SkillSentences {
			return nil, &TemplateError{Template: info.ID, Message: fmt.Sprintf("unknown skill_style %q", info.SkillStyle)}
		}
	}
	return file.Templates, nil
}

// Catalog returns the metadata of every layout in gallery order.
func Catalog() []TemplateInfo {
	out := make([]TemplateInfo, len(registry.catalog))
	copy(out, registry.catalog)
	return out
}

// Info returns the metadata of the layout that id dispatches to.
func Info(id string) TemplateInfo {
	return registry.info[Resolve(id)]
}
