package model

// Go models for the resume document. The JSON field names are the persisted
// save/load format and the shape the chat extractor must emit, so they are
// load-bearing: renaming a tag breaks every stored document.

type PersonalInfo struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	LinkedinURL     string `json:"linkedinUrl"`
	PersonalSiteURL string `json:"personalSiteUrl"`
}

// Experience is a work history entry. Leadership, project and research
// entries share the same shape but name their organization field
// differently; see OrganizationExperience.
type Experience struct {
	ID          string `json:"id"`
	Included    bool   `json:"included"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Department  string `json:"department,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// OrganizationExperience backs the leadership, project and research
// collections.
type OrganizationExperience struct {
	ID           string `json:"id"`
	Included     bool   `json:"included"`
	Position     string `json:"position"`
	Organization string `json:"organization"`
	Department   string `json:"department,omitempty"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
}

type Education struct {
	ID           string `json:"id"`
	Included     bool   `json:"included"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	// GraduationDate is the legacy field used when EndDate is empty.
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"`
	Description    string `json:"description,omitempty"`
}

type SkillCategory string

const (
	CategorySkill         SkillCategory = "skill"
	CategoryCertification SkillCategory = "certification"
	CategoryLanguage      SkillCategory = "language"
	CategoryInterest      SkillCategory = "interest"
	CategoryActivity      SkillCategory = "activity"
	CategoryOther         SkillCategory = "other"
)

// SkillCategories lists the closed category enum.
var SkillCategories = []SkillCategory{
	CategorySkill,
	CategoryCertification,
	CategoryLanguage,
	CategoryInterest,
	CategoryActivity,
	CategoryOther,
}

func ValidSkillCategory(c SkillCategory) bool {
	for _, v := range SkillCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Skill struct {
	ID       string        `json:"id"`
	Included bool          `json:"included"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
}

type PortfolioItem struct {
	ID       string `json:"id"`
	Included bool   `json:"included"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	// QRCode holds base64 PNG data when a code has been generated.
	QRCode string `json:"qrCode,omitempty"`
}

// Summary is a singleton section, not a collection.
type Summary struct {
	Content  string `json:"content"`
	Included bool   `json:"included"`
}

type ModuleType string

const (
	ModuleSummary    ModuleType = "summary"
	ModuleExperience ModuleType = "experience"
	ModuleEducation  ModuleType = "education"
	ModuleSkills     ModuleType = "skills"
	ModuleLeadership ModuleType = "leadership"
	ModuleProject    ModuleType = "project"
	ModuleResearch   ModuleType = "research"
	ModulePortfolio  ModuleType = "portfolio"
)

// Module binds a section title, order and visibility to one of the eight
// section types. Render order is ascending by Order; ties keep array order.
type Module struct {
	ID      string     `json:"id"`
	Type    ModuleType `json:"type"`
	Title   string     `json:"title"`
	Order   int        `json:"order"`
	Enabled bool       `json:"enabled"`
}

type FitMode string

const (
	FitNormal  FitMode = "normal"
	FitCompact FitMode = "compact"
)

type Margins struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
}

type Styles struct {
	FitMode    FitMode  `json:"fitMode"`
	Spacing    *Margins `json:"spacing,omitempty"`
	FontFamily string   `json:"fontFamily"`
}

// Document is the canonical in-memory resume. It serializes to the opaque
// JSON blob used for save files, local persistence and API responses.
type Document struct {
	PersonalInfo   PersonalInfo             `json:"personalInfo"`
	Experiences    []Experience             `json:"experiences"`
	Education      []Education              `json:"education"`
	Skills         []Skill                  `json:"skills"`
	LeadershipExps []OrganizationExperience `json:"leadershipExperiences"`
	ProjectExps    []OrganizationExperience `json:"projectExperiences"`
	ResearchExps   []OrganizationExperience `json:"researchExperiences"`
	Summary        Summary                  `json:"summary"`
	Portfolio      []PortfolioItem          `json:"portfolio"`
	Modules        []Module                 `json:"modules"`
	Spacing        int                      `json:"spacing"`
	Styles         Styles                   `json:"styles"`
}

const defaultSpacing = 25

// DefaultMargins is applied when styles.spacing is absent.
var DefaultMargins = Margins{Horizontal: 30, Vertical: 30}

// DefaultModules returns the eight modules in their fixed default order,
// all enabled. IDs are stable so a freshly created document is deterministic.
func DefaultModules() []Module {
	types := []struct {
		t     ModuleType
		title string
	}{
		{ModuleSummary, "Summary"},
		{ModuleExperience, "Work Experience"},
		{ModuleEducation, "Education"},
		{ModuleSkills, "Skills"},
		{ModuleLeadership, "Leadership Experience"},
		{ModuleProject, "Projects"},
		{ModuleResearch, "Research"},
		{ModulePortfolio, "Portfolio"},
	}
	out := make([]Module, 0, len(types))
	for i, m := range types {
		out = append(out, Module{
			ID:      "module-" + string(m.t),
			Type:    m.t,
			Title:   m.title,
			Order:   i + 1,
			Enabled: true,
		})
	}
	return out
}

// NewDocument builds the all-empty default document used at session start.
func NewDocument() *Document {
	return &Document{
		Experiences:    []Experience{},
		Education:      []Education{},
		Skills:         []Skill{},
		LeadershipExps: []OrganizationExperience{},
		ProjectExps:    []OrganizationExperience{},
		ResearchExps:   []OrganizationExperience{},
		Summary:        Summary{Content: "", Included: true},
		Portfolio:      []PortfolioItem{},
		Modules:        DefaultModules(),
		Spacing:        defaultSpacing,
		Styles: Styles{
			FitMode:    FitNormal,
			Spacing:    &Margins{Horizontal: DefaultMargins.Horizontal, Vertical: DefaultMargins.Vertical},
			FontFamily: "serif",
		},
	}
}

// Clone deep-copies the document. Every field is a value type, so copying
// the slices is enough.
func (d *Document) Clone() *Document {
	out := *d
	out.Experiences = append([]Experience(nil), d.Experiences...)
	out.Education = append([]Education(nil), d.Education...)
	out.Skills = append([]Skill(nil), d.Skills...)
	out.LeadershipExps = append([]OrganizationExperience(nil), d.LeadershipExps...)
	out.ProjectExps = append([]OrganizationExperience(nil), d.ProjectExps...)
	out.ResearchExps = append([]OrganizationExperience(nil), d.ResearchExps...)
	out.Portfolio = append([]PortfolioItem(nil), d.Portfolio...)
	out.Modules = append([]Module(nil), d.Modules...)
	if d.Styles.Spacing != nil {
		s := *d.Styles.Spacing
		out.Styles.Spacing = &s
	}
	return &out
}

// Normalize backfills missing top-level pieces after decoding foreign JSON
// (file load, extractor output). Loaded documents cross a serialization
// boundary with no server-side enforcement, so missing keys are coerced to
// their empty defaults instead of failing.
func (d *Document) Normalize() {
	if d.Experiences == nil {
		d.Experiences = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.LeadershipExps == nil {
		d.LeadershipExps = []OrganizationExperience{}
	}
	if d.ProjectExps == nil {
		d.ProjectExps = []OrganizationExperience{}
	}
	if d.ResearchExps == nil {
		d.ResearchExps = []OrganizationExperience{}
	}
	if d.Portfolio == nil {
		d.Portfolio = []PortfolioItem{}
	}
	if len(d.Modules) == 0 {
		d.Modules = DefaultModules()
	}
	if d.Spacing == 0 {
		d.Spacing = defaultSpacing
	}
	if d.Styles.FitMode == "" {
		d.Styles.FitMode = FitNormal
	}
	if d.Styles.Spacing == nil {
		m := DefaultMargins
		d.Styles.Spacing = &m
	}
	if d.Styles.FontFamily == "" {
		d.Styles.FontFamily = "serif"
	}
}
