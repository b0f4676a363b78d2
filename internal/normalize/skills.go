package normalize

// SkillCategory describes one legacy flat skill field.
type SkillCategory struct {
	Field  string
	Prefix string
}

// LegacyCategories lists the legacy skill fields in the order they are appended.
// Tools and soft skills carry no prefix.
var LegacyCategories = []SkillCategory{
	{Field: "skillsLanguages", Prefix: "Languages: "},
	{Field: "skillsFrameworks", Prefix: "Frameworks: "},
	{Field: "skillsDatabases", Prefix: "Databases: "},
	{Field: "skillsTools"},
	{Field: "skillsCrm", Prefix: "CRM: "},
	{Field: "skillsSoft"},
}

// SkillSet builds the flat skill list of a record: explicit skills first (an array, or a
// comma-separated string like the legacy fields), then each legacy category in LegacyCategories order. When nothing usable is found the original skills array is
// returned unchanged (coerced to strings).
func SkillSet(record map[string]any) []string {
	combined := make([]string, 0)

	combined = append(combined, splitList(record["skills"])...)

	for _, cat := range LegacyCategories {
		for _, skill := range splitList(record[cat.Field]) {
			combined = append(combined, cat.Prefix+skill)
		}
	}

	if len(combined) > 0 {
		return combined
	}

	original := asList(record["skills"])
	kept := make([]string, 0, len(original))
	for _, item := range original {
		kept = append(kept, asString(item))
	}
	return kept
}
