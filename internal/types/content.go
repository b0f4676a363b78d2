// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Content is the canonical résumé content every template renders.
// Slices are never nil once produced by the normalizer.
type Content struct {
	Personal   Personal     `json:"personal"`
	Links      Links        `json:"links"`
	Summary    string       `json:"summary"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []string     `json:"skills"`
	Projects   []Project    `json:"projects"`
	Template   string       `json:"template,omitempty"`
}

// Personal holds the contact block shown in every template header.
type Personal struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Photo    string `json:"photo,omitempty"`
}

// Links holds the optional external profile links.
type Links struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
}

// IsEmpty reports whether no link is set.
func (l Links) IsEmpty() bool {
	return l.GitHub == "" && l.LinkedIn == "" && l.Website == ""
}

// Education represents one education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	Year        string `json:"year"`
	StartYear   string `json:"startYear,omitempty"`
	EndYear     string `json:"endYear,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Coursework  string `json:"coursework,omitempty"`
	KeyCourses  string `json:"keyCourses,omitempty"`
	Honors      string `json:"honors,omitempty"`
}

// Experience represents one work experience entry.
type Experience struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	Period           string   `json:"period"`
	StartDate        string   `json:"startDate,omitempty"`
	EndDate          string   `json:"endDate,omitempty"`
	Responsibilities string   `json:"responsibilities,omitempty"`
	Achievements     string   `json:"achievements,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	Description      string   `json:"description,omitempty"`
	Points           []string `json:"points,omitempty"`
}

// Project represents a portfolio project attached to the résumé.
type Project struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Description      string   `json:"description,omitempty"`
	Images           []string `json:"images,omitempty"`
	VideoURL         string   `json:"videoUrl,omitempty"`
	LiveURL          string   `json:"liveUrl,omitempty"`
	FigmaURL         string   `json:"figmaUrl,omitempty"`
	GitHubURL        string   `json:"githubUrl,omitempty"`
	Link             string   `json:"link,omitempty"`
	Tech             []string `json:"tech,omitempty"`
}

// NewContent returns an empty canonical content with all slices allocated.
func NewContent() *Content {
	return &Content{
		Education:  []Education{},
		Experience: []Experience{},
		Skills:     []string{},
		Projects:   []Project{},
	}
}
