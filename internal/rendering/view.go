package rendering

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/types"
)

// Placeholder text for required display fields that are missing.
const (
	PlaceholderName    = "Your Name"
	PlaceholderRole    = "Role"
	PlaceholderDegree  = "Degree"
	PlaceholderProject = "Untitled Project"
)

// view is the data every layout executes against. It is derived from canonical
// content only, so layouts never look at raw record fields.
type view struct {
	ID         string
	Name       string
	Initials   string
	Title      string
	Photo      string
	Contacts   []entry
	Links      []entry
	Summary    string
	Experience []experienceView
	Education  []educationView
	Skills     []string
	Projects   []projectView
	SkillStyle SkillStyle
	Separator  string
	Theme      Theme
}

// entry is one contact or link item. Href is empty for items that are not clickable.
type entry struct {
	Kind  string
	Label string
	Text  string
	Href  string
}

type experienceView struct {
	Sep      string
	Role     string
	Company  string
	Location string
	Period   string
	Summary  string
	Bullets  []string
}

type detail struct {
	Label string
	Value string
}

type educationView struct {
	Sep         string
	Degree      string
	Institution string
	Location    string
	Year        string
	GPA         string
	Details     []detail
}

type projectView struct {
	Title       string
	Description string
	Image       string
	Tech        []string
	Links       []entry
}

// ContactLine is the header line: contact details followed by profile links.
func (v view) ContactLine() []entry {
	line := make([]entry, 0, len(v.Contacts)+len(v.Links))
	line = append(line, v.Contacts...)
	return append(line, v.Links...)
}

// HasContact reports whether the header contact line has anything to show.
func (v view) HasContact() bool { return len(v.Contacts) > 0 || len(v.Links) > 0 }

func newView(info TemplateInfo, c *types.Content, theme Theme) view {
	v := view{
		ID:         info.ID,
		Name:       orPlaceholder(c.Personal.Name, PlaceholderName),
		Title:      orPlaceholder(c.Personal.Title, PlaceholderRole),
		Photo:      imageURL(c.Personal.Photo),
		Summary:    strings.TrimSpace(c.Summary),
		SkillStyle: info.SkillStyle,
		Separator:  info.Separator,
		Theme:      theme,
	}
	v.Initials = initials(v.Name)

	if email := strings.TrimSpace(c.Personal.Email); email != "" {
		v.Contacts = append(v.Contacts, entry{Kind: "email", Label: "Email", Text: email, Href: "mailto:" + email})
	}
	if phone := strings.TrimSpace(c.Personal.Phone); phone != "" {
		v.Contacts = append(v.Contacts, entry{Kind: "phone", Label: "Phone", Text: phone})
	}
	if loc := strings.TrimSpace(c.Personal.Location); loc != "" {
		v.Contacts = append(v.Contacts, entry{Kind: "location", Label: "Location", Text: loc})
	}

	v.Links = profileLinks(c.Links)

	for _, e := range c.Experience {
		ev := newExperienceView(e)
		ev.Sep = info.Separator
		v.Experience = append(v.Experience, ev)
	}
	for _, e := range c.Education {
		ev := newEducationView(e)
		ev.Sep = info.Separator
		v.Education = append(v.Education, ev)
	}
	for _, s := range c.Skills {
		if s = strings.TrimSpace(s); s != "" {
			v.Skills = append(v.Skills, s)
		}
	}
	for _, p := range c.Projects {
		v.Projects = append(v.Projects, newProjectView(p))
	}
	return v
}

func orPlaceholder(s, placeholder string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return placeholder
}

func initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

func profileLinks(l types.Links) []entry {
	candidates := []entry{
		{Kind: "github", Label: "GitHub", Href: l.GitHub},
		{Kind: "linkedin", Label: "LinkedIn", Href: l.LinkedIn},
		{Kind: "website", Label: "Website", Href: l.Website},
	}
	var out []entry
	for _, c := range candidates {
		if item, ok := makeLink(c.Kind, c.Label, c.Href); ok {
			out = append(out, item)
		}
	}
	return out
}

func makeLink(kind, label, raw string) (entry, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return entry{}, false
	}
	display := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	display = strings.TrimPrefix(strings.TrimSuffix(display, "/"), "www.")
	return entry{Kind: kind, Label: label, Text: display, Href: externalURL(raw)}, true
}

func newExperienceView(e types.Experience) experienceView {
	ev := experienceView{
		Role:     orPlaceholder(e.Role, PlaceholderRole),
		Company:  strings.TrimSpace(e.Company),
		Location: strings.TrimSpace(e.Location),
		Period:   strings.TrimSpace(e.Period),
		Summary:  strings.TrimSpace(e.Summary),
	}
	if ev.Summary == "" {
		ev.Summary = strings.TrimSpace(e.Description)
	}
	for _, p := range e.Points {
		ev.Bullets = appendLines(ev.Bullets, p)
	}
	ev.Bullets = appendLines(ev.Bullets, e.Responsibilities)
	ev.Bullets = appendLines(ev.Bullets, e.Achievements)
	return ev
}

// appendLines splits free text into bullet lines, dropping leading bullet glyphs.
func appendLines(dst []string, text string) []string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•·▪ \t")
		if line != "" {
			dst = append(dst, line)
		}
	}
	return dst
}

func newEducationView(e types.Education) educationView {
	ev := educationView{
		Degree:      orPlaceholder(e.Degree, PlaceholderDegree),
		Institution: strings.TrimSpace(e.Institution),
		Location:    strings.TrimSpace(e.Location),
		Year:        strings.TrimSpace(e.Year),
		GPA:         strings.TrimSpace(e.GPA),
	}
	for _, d := range []detail{
		{Label: "Coursework", Value: e.Coursework},
		{Label: "Key Courses", Value: e.KeyCourses},
		{Label: "Honors", Value: e.Honors},
	} {
		if d.Value = strings.TrimSpace(d.Value); d.Value != "" {
			ev.Details = append(ev.Details, d)
		}
	}
	return ev
}

func newProjectView(p types.Project) projectView {
	pv := projectView{
		Title:       orPlaceholder(p.Title, PlaceholderProject),
		Description: strings.TrimSpace(p.ShortDescription),
	}
	if pv.Description == "" {
		pv.Description = strings.TrimSpace(p.Description)
	}
	for _, img := range p.Images {
		if src := imageURL(img); src != "" {
			pv.Image = src
			break
		}
	}
	for _, t := range p.Tech {
		if t = strings.TrimSpace(t); t != "" {
			pv.Tech = append(pv.Tech, t)
		}
	}
	for _, c := range []entry{
		{Kind: "live", Label: "Live", Href: p.LiveURL},
		{Kind: "github", Label: "Code", Href: p.GitHubURL},
		{Kind: "figma", Label: "Design", Href: p.FigmaURL},
		{Kind: "video", Label: "Video", Href: p.VideoURL},
		{Kind: "link", Label: "Link", Href: p.Link},
	} {
		if item, ok := makeLink(c.Kind, c.Label, c.Href); ok {
			pv.Links = append(pv.Links, item)
		}
	}
	return pv
}
