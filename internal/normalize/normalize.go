// Package normalize turns loosely shaped résumé records into canonical content.
//
// Normalization never fails: missing or malformed fields degrade to empty strings, empty
// slices or zero-value objects, because résumé content is user-entered and often partial.
package normalize

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Normalize derives canonical content from a raw record. The input is not modified.
func Normalize(raw types.RawRecord) *types.Content {
	record := Unwrap(raw)
	c := types.NewContent()

	c.Personal = personal(asObject(record["personal"]))
	c.Links = links(asObject(record["links"]))
	c.Summary = asString(record["summary"])
	c.Template = asString(record["template"])
	c.Skills = SkillSet(record)

	for _, item := range asList(record["experience"]) {
		c.Experience = append(c.Experience, experience(asObject(item)))
	}
	for _, item := range asList(record["education"]) {
		c.Education = append(c.Education, education(asObject(item)))
	}
	for _, item := range asList(record["projects"]) {
		c.Projects = append(c.Projects, project(asObject(item)))
	}

	return c
}

// FromJSON normalizes a JSON document. Undecodable input yields empty content.
func FromJSON(data []byte) *types.Content {
	raw, err := types.ParseRawRecord(data)
	if err != nil {
		return types.NewContent()
	}
	return Normalize(raw)
}

func personal(obj map[string]any) types.Personal {
	return types.Personal{
		Name:     field(obj, "name", "fullName"),
		Title:    field(obj, "title", "headline"),
		Email:    field(obj, "email"),
		Phone:    field(obj, "phone"),
		Location: field(obj, "location"),
		Photo:    field(obj, "photo"),
	}
}

func links(obj map[string]any) types.Links {
	return types.Links{
		GitHub:   field(obj, "github"),
		LinkedIn: field(obj, "linkedin"),
		Website:  field(obj, "website", "portfolio"),
	}
}

func experience(obj map[string]any) types.Experience {
	e := types.Experience{
		Role:             field(obj, "role", "title", "position"),
		Company:          field(obj, "company"),
		Location:         field(obj, "location"),
		Period:           field(obj, "period"),
		StartDate:        field(obj, "startDate"),
		EndDate:          field(obj, "endDate"),
		Responsibilities: field(obj, "responsibilities"),
		Achievements:     field(obj, "achievements"),
		Summary:          field(obj, "summary"),
		Description:      field(obj, "description"),
		Points:           stringList(obj["points"]),
	}
	if e.Period == "" {
		e.Period = ExperiencePeriod(e.StartDate, e.EndDate)
	}
	return e
}

func education(obj map[string]any) types.Education {
	e := types.Education{
		Degree:      field(obj, "degree"),
		Institution: field(obj, "institution", "school"),
		Location:    field(obj, "location"),
		Year:        field(obj, "year"),
		StartYear:   field(obj, "startYear"),
		EndYear:     field(obj, "endYear"),
		GPA:         field(obj, "gpa"),
		Coursework:  field(obj, "coursework"),
		KeyCourses:  field(obj, "keyCourses"),
		Honors:      field(obj, "honors"),
	}
	if e.Year == "" {
		e.Year = EducationYear(e.StartYear, e.EndYear)
	}
	return e
}

func project(obj map[string]any) types.Project {
	return types.Project{
		Title:            field(obj, "title", "name"),
		ShortDescription: field(obj, "shortDescription"),
		Description:      field(obj, "description"),
		Images:           stringList(obj["images"]),
		VideoURL:         field(obj, "videoUrl"),
		LiveURL:          field(obj, "liveUrl"),
		FigmaURL:         field(obj, "figmaUrl"),
		GitHubURL:        field(obj, "githubUrl"),
		Link:             field(obj, "link"),
		Tech:             splitList(obj["tech"]),
	}
}

// ExperiencePeriod synthesizes a period label from start and end dates.
// A start date alone yields an open-ended "start - Present" range.
func ExperiencePeriod(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	default:
		return ""
	}
}

// EducationYear synthesizes a year label when both bounds are known.
func EducationYear(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	return start + " - " + end
}
