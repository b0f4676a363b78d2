package normalize

import "github.com/jonathan/resume-builder/internal/types"

// maxUnwrapDepth bounds how many nested "content" layers are peeled off.
const maxUnwrapDepth = 4

// contentKeys are the keys whose presence marks an object as résumé content.
var contentKeys = []string{
	"personal", "links", "summary", "education", "experience", "skills", "projects",
	"skillsLanguages", "skillsFrameworks", "skillsDatabases", "skillsTools", "skillsCrm", "skillsSoft",
}

// looksLikeContent reports whether obj carries at least one résumé key.
func looksLikeContent(obj map[string]any) bool {
	for _, key := range contentKeys {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

// Unwrap returns the innermost résumé object of a record that was saved wrapped in its own
// outer shape ({"content": {...}, "template": "..."}). The outer template id is kept when the
// inner object has none. The input is never modified.
func Unwrap(raw types.RawRecord) map[string]any {
	base := map[string]any(raw)
	if base == nil {
		return map[string]any{}
	}

	template := asString(base["template"])
	for range maxUnwrapDepth {
		inner := asObject(base["content"])
		if inner == nil || !looksLikeContent(inner) {
			break
		}
		base = inner
		if t := asString(base["template"]); t != "" {
			template = t
		}
	}

	if template != "" && asString(base["template"]) == "" {
		merged := make(map[string]any, len(base)+1)
		for k, v := range base {
			merged[k] = v
		}
		merged["template"] = template
		return merged
	}
	return base
}
