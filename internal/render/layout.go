package render

import (
	"net/url"
	"sort"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/internal/richtext"

	"golang.org/x/net/publicsuffix"
)

// Page is the layout tree for one rendered resume. It carries everything
// the PDF layer needs; no field access back into the document is required.
type Page struct {
	FitMode  model.FitMode
	Margins  model.Margins
	Font     string
	Header   Header
	Sections []Section
}

type Header struct {
	Name         string
	ContactLines []string
}

type Section struct {
	Type    model.ModuleType
	Title   string
	Entries []Entry
}

// Entry is one rendered item within a section. Fields are optional; the
// PDF layer skips whatever is empty.
type Entry struct {
	Primary   string // organization / institution / bucket label / portfolio name
	DateText  string // right-aligned date range
	Secondary string // position+location / degree+field / skill list / URL
	Detail    string // GPA line
	Blocks    []richtext.Block
	QRCode    string // base64 PNG data, portfolio only
	QRCaption string
}

const namePlaceholder = "Your Name"

// fontFaces maps the closed font-family set to the built-in PDF faces.
// Unrecognized values fall back to the serif default.
var fontFaces = map[string]string{
	"serif":     "Times",
	"sans":      "Helvetica",
	"monospace": "Courier",
}

func resolveFont(family string) string {
	if f, ok := fontFaces[family]; ok {
		return f
	}
	return fontFaces["serif"]
}

// BuildPage walks the document and produces the page layout: modules
// filtered to enabled, sorted ascending by order (stable), each resolved to
// its backing collection with the included filter applied. A module whose
// filtered collection is empty contributes nothing, header included.
func BuildPage(doc *model.Document) *Page {
	doc.Normalize()

	page := &Page{
		FitMode: doc.Styles.FitMode,
		Margins: *doc.Styles.Spacing,
		Font:    resolveFont(doc.Styles.FontFamily),
		Header:  buildHeader(doc.PersonalInfo),
	}

	modules := append([]model.Module(nil), doc.Modules...)
	sort.SliceStable(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })

	seen := map[model.ModuleType]bool{}
	for _, m := range modules {
		if !m.Enabled || seen[m.Type] {
			continue
		}
		seen[m.Type] = true
		sec := buildSection(doc, m)
		if len(sec.Entries) == 0 {
			continue
		}
		page.Sections = append(page.Sections, sec)
	}
	return page
}

func buildHeader(p model.PersonalInfo) Header {
	h := Header{Name: p.Name}
	if h.Name == "" {
		h.Name = namePlaceholder
	}
	if line := joinNonEmpty(" | ", p.Email, p.Phone, p.Address); line != "" {
		h.ContactLines = append(h.ContactLines, line)
	}
	if line := joinNonEmpty(" | ", p.LinkedinURL, p.PersonalSiteURL); line != "" {
		h.ContactLines = append(h.ContactLines, line)
	}
	return h
}

func buildSection(doc *model.Document, m model.Module) Section {
	sec := Section{Type: m.Type, Title: m.Title}
	switch m.Type {
	case model.ModuleSummary:
		if doc.Summary.Included {
			if blocks := richtext.Flatten(doc.Summary.Content); len(blocks) > 0 {
				sec.Entries = append(sec.Entries, Entry{Blocks: blocks})
			}
		}
	case model.ModuleExperience:
		for _, e := range doc.Experiences {
			if !e.Included {
				continue
			}
			sec.Entries = append(sec.Entries, experienceEntry(
				e.Company, e.Department, e.Position, e.Location, e.StartDate, e.EndDate, e.Description))
		}
	case model.ModuleLeadership:
		sec.Entries = organizationEntries(doc.LeadershipExps)
	case model.ModuleProject:
		sec.Entries = organizationEntries(doc.ProjectExps)
	case model.ModuleResearch:
		sec.Entries = organizationEntries(doc.ResearchExps)
	case model.ModuleEducation:
		for _, e := range doc.Education {
			if !e.Included {
				continue
			}
			sec.Entries = append(sec.Entries, educationEntry(e))
		}
	case model.ModuleSkills:
		sec.Entries = skillEntries(doc.Skills)
	case model.ModulePortfolio:
		for _, p := range doc.Portfolio {
			if !p.Included {
				continue
			}
			sec.Entries = append(sec.Entries, portfolioEntry(p))
		}
	}
	return sec
}

func experienceEntry(org, dept, position, location, start, end, description string) Entry {
	return Entry{
		Primary:   joinNonEmpty(", ", org, dept),
		DateText:  DateRange(start, end),
		Secondary: joinNonEmpty(", ", position, location),
		Blocks:    richtext.Flatten(description),
	}
}

func organizationEntries(items []model.OrganizationExperience) []Entry {
	var out []Entry
	for _, e := range items {
		if !e.Included {
			continue
		}
		out = append(out, experienceEntry(
			e.Organization, e.Department, e.Position, e.Location, e.StartDate, e.EndDate, e.Description))
	}
	return out
}

func educationEntry(e model.Education) Entry {
	end := e.EndDate
	if end == "" {
		end = e.GraduationDate
	}
	dateText := DateRange(e.StartDate, end)
	if dateText == "" && end != "" {
		dateText = FormatDate(end)
	}
	entry := Entry{
		Primary:   e.Institution,
		DateText:  dateText,
		Secondary: joinNonEmpty(", ", e.Degree, e.FieldOfStudy),
		Blocks:    richtext.Flatten(e.Description),
	}
	if e.GPA != "" {
		entry.Detail = "GPA: " + e.GPA
	}
	return entry
}

// skillBuckets fixes both the label and the render order of the category
// groups. Empty buckets emit nothing.
var skillBuckets = []struct {
	category model.SkillCategory
	label    string
}{
	{model.CategorySkill, "Skills"},
	{model.CategoryCertification, "Certifications"},
	{model.CategoryLanguage, "Languages"},
	{model.CategoryInterest, "Interests"},
	{model.CategoryActivity, "Activities"},
	{model.CategoryOther, "Others"},
}

func skillEntries(skills []model.Skill) []Entry {
	var out []Entry
	for _, bucket := range skillBuckets {
		var names []string
		for _, s := range skills {
			if !s.Included || s.Name == "" {
				continue
			}
			c := s.Category
			if !model.ValidSkillCategory(c) {
				c = model.CategoryOther
			}
			if c == bucket.category {
				names = append(names, s.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		out = append(out, Entry{Primary: bucket.label, Secondary: strings.Join(names, ", ")})
	}
	return out
}

func portfolioEntry(p model.PortfolioItem) Entry {
	entry := Entry{Primary: p.Name, Secondary: URLLabel(p.URL)}
	if p.QRCode != "" {
		entry.QRCode = p.QRCode
		entry.QRCaption = p.URL
	}
	return entry
}

// URLLabel produces a tidy display label for a URL: the eTLD+1 when it can
// be derived, otherwise the hostname, otherwise the raw input.
func URLLabel(raw string) string {
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return raw
	}
	host := parsed.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
