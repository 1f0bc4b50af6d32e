package render

import (
	"testing"

	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionTypes(page *Page) []model.ModuleType {
	out := make([]model.ModuleType, 0, len(page.Sections))
	for _, s := range page.Sections {
		out = append(out, s.Type)
	}
	return out
}

func TestBuildPageEmptyDocumentHasNoSections(t *testing.T) {
	page := BuildPage(model.NewDocument())
	assert.Empty(t, page.Sections)
	assert.Equal(t, "Your Name", page.Header.Name)
	assert.Equal(t, "Times", page.Font)
}

func TestBuildPageRespectsModuleOrder(t *testing.T) {
	doc := model.NewDocument()
	doc.Experiences = append(doc.Experiences, model.Experience{ID: "e1", Included: true, Company: "Acme"})
	doc.Education = append(doc.Education, model.Education{ID: "ed1", Included: true, Institution: "MIT"})

	// education before experience
	for i := range doc.Modules {
		switch doc.Modules[i].Type {
		case model.ModuleEducation:
			doc.Modules[i].Order = 1
		case model.ModuleExperience:
			doc.Modules[i].Order = 2
		default:
			doc.Modules[i].Order = 10
		}
	}

	page := BuildPage(doc)
	assert.Equal(t, []model.ModuleType{model.ModuleEducation, model.ModuleExperience}, sectionTypes(page))
}

func TestBuildPageStableOrderOnTies(t *testing.T) {
	doc := model.NewDocument()
	doc.Experiences = append(doc.Experiences, model.Experience{ID: "e1", Included: true, Company: "Acme"})
	doc.Education = append(doc.Education, model.Education{ID: "ed1", Included: true, Institution: "MIT"})
	for i := range doc.Modules {
		doc.Modules[i].Order = 1
	}

	// array order breaks the tie: experience precedes education in defaults
	page := BuildPage(doc)
	assert.Equal(t, []model.ModuleType{model.ModuleExperience, model.ModuleEducation}, sectionTypes(page))
}

func TestBuildPageSkipsDisabledModules(t *testing.T) {
	doc := model.NewDocument()
	doc.Experiences = append(doc.Experiences, model.Experience{ID: "e1", Included: true, Company: "Acme"})
	for i := range doc.Modules {
		if doc.Modules[i].Type == model.ModuleExperience {
			doc.Modules[i].Enabled = false
		}
	}
	page := BuildPage(doc)
	assert.Empty(t, page.Sections)
}

func TestBuildPageSkipsDuplicateModuleTypes(t *testing.T) {
	doc := model.NewDocument()
	doc.Experiences = append(doc.Experiences, model.Experience{ID: "e1", Included: true, Company: "Acme"})
	doc.Modules = append(doc.Modules, model.Module{
		ID: "dup", Type: model.ModuleExperience, Title: "Again", Order: 99, Enabled: true,
	})
	page := BuildPage(doc)
	assert.Equal(t, []model.ModuleType{model.ModuleExperience}, sectionTypes(page))
}

func TestBuildPageSuppressesSectionWithOnlyExcludedEntries(t *testing.T) {
	doc := model.NewDocument()
	doc.Experiences = append(doc.Experiences, model.Experience{ID: "e1", Included: false, Company: "Hidden"})
	page := BuildPage(doc)
	assert.Empty(t, page.Sections)
}

func TestBuildPageSummaryRequiresContent(t *testing.T) {
	doc := model.NewDocument()
	doc.Summary = model.Summary{Content: "", Included: true}
	assert.Empty(t, BuildPage(doc).Sections)

	doc.Summary.Content = "<p>Seasoned engineer.</p>"
	page := BuildPage(doc)
	require.Len(t, page.Sections, 1)
	assert.Equal(t, model.ModuleSummary, page.Sections[0].Type)

	doc.Summary.Included = false
	assert.Empty(t, BuildPage(doc).Sections)
}

func TestBuildHeaderContactLines(t *testing.T) {
	h := buildHeader(model.PersonalInfo{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Phone: "555-0100",
	})
	require.Len(t, h.ContactLines, 1)
	assert.Equal(t, "ada@example.com | 555-0100", h.ContactLines[0])

	h = buildHeader(model.PersonalInfo{
		Name:        "Ada Lovelace",
		LinkedinURL: "linkedin.com/in/ada",
	})
	require.Len(t, h.ContactLines, 1)
	assert.Equal(t, "linkedin.com/in/ada", h.ContactLines[0])
}

func TestExperienceEntryComposition(t *testing.T) {
	doc := model.NewDocument()
	doc.Experiences = append(doc.Experiences, model.Experience{
		ID: "e1", Included: true,
		Company: "Acme", Department: "R&D",
		Position: "Engineer", Location: "Boston",
		StartDate: "2022-01", EndDate: "Present",
	})
	page := BuildPage(doc)
	require.Len(t, page.Sections, 1)
	require.Len(t, page.Sections[0].Entries, 1)

	e := page.Sections[0].Entries[0]
	assert.Equal(t, "Acme, R&D", e.Primary)
	assert.Equal(t, "Engineer, Boston", e.Secondary)
	assert.Equal(t, "Jan 2022 - Present", e.DateText)
}

func TestEducationEntryGraduationFallback(t *testing.T) {
	e := educationEntry(model.Education{
		ID: "ed1", Included: true, Institution: "MIT",
		Degree: "BSc", FieldOfStudy: "CS",
		StartDate: "2018-09", GraduationDate: "2022-06", GPA: "3.9",
	})
	assert.Equal(t, "MIT", e.Primary)
	assert.Equal(t, "BSc, CS", e.Secondary)
	assert.Equal(t, "Sep 2018 - Jun 2022", e.DateText)
	assert.Equal(t, "GPA: 3.9", e.Detail)

	// explicit endDate wins over graduationDate
	e = educationEntry(model.Education{
		ID: "ed2", StartDate: "2018-09", EndDate: "2021-05", GraduationDate: "2022-06",
	})
	assert.Equal(t, "Sep 2018 - May 2021", e.DateText)

	// lone graduation date renders without a range
	e = educationEntry(model.Education{ID: "ed3", GraduationDate: "2022-06"})
	assert.Equal(t, "Jun 2022", e.DateText)
}

func TestSkillEntriesBucketOrderAndJoining(t *testing.T) {
	skills := []model.Skill{
		{ID: "1", Included: true, Name: "Spanish", Category: model.CategoryLanguage},
		{ID: "2", Included: true, Name: "Go", Category: model.CategorySkill},
		{ID: "3", Included: true, Name: "Rust", Category: model.CategorySkill},
		{ID: "4", Included: false, Name: "Hidden", Category: model.CategorySkill},
		{ID: "5", Included: true, Name: "Chess", Category: "nonsense"},
		{ID: "6", Included: true, Name: "", Category: model.CategorySkill},
	}
	entries := skillEntries(skills)
	require.Len(t, entries, 3)

	assert.Equal(t, "Skills", entries[0].Primary)
	assert.Equal(t, "Go, Rust", entries[0].Secondary)
	assert.Equal(t, "Languages", entries[1].Primary)
	assert.Equal(t, "Spanish", entries[1].Secondary)
	assert.Equal(t, "Others", entries[2].Primary)
	assert.Equal(t, "Chess", entries[2].Secondary)
}

func TestPortfolioEntryQRCarriedOver(t *testing.T) {
	e := portfolioEntry(model.PortfolioItem{
		ID: "p1", Included: true, Name: "My Site",
		URL: "https://www.example.com/projects", QRCode: "data:image/png;base64,aGk=",
	})
	assert.Equal(t, "My Site", e.Primary)
	assert.Equal(t, "example.com", e.Secondary)
	assert.Equal(t, "data:image/png;base64,aGk=", e.QRCode)
	assert.Equal(t, "https://www.example.com/projects", e.QRCaption)
}

func TestURLLabel(t *testing.T) {
	assert.Equal(t, "example.com", URLLabel("https://www.example.com/page"))
	assert.Equal(t, "example.com", URLLabel("example.com/page"))
	assert.Equal(t, "example.co.uk", URLLabel("https://sub.example.co.uk"))
	assert.Equal(t, "", URLLabel(""))
}

func TestResolveFont(t *testing.T) {
	assert.Equal(t, "Times", resolveFont("serif"))
	assert.Equal(t, "Helvetica", resolveFont("sans"))
	assert.Equal(t, "Courier", resolveFont("monospace"))
	assert.Equal(t, "Times", resolveFont("comic-sans"))
	assert.Equal(t, "Times", resolveFont(""))
}
