// Package usecase holds the state transitions over the resume document and
// the PDF export flow. Every mutation is copy-on-write: collections are
// replaced wholesale, never partially mutated, so a failed operation can
// never leave the document half-changed.
package usecase

import (
	"resume-builder/internal/model"
	"resume-builder/pkg/logger"

	"github.com/google/uuid"
)

// Mutator encapsulates document state transitions. Update/delete/toggle
// operations are permissive on miss: they report changed=false instead of
// erroring when the id does not exist.
type Mutator struct {
	log logger.Logger
}

func NewMutator(log logger.Logger) *Mutator { return &Mutator{log: log} }

// newID returns a collision-safe entry id. The editor this replaces used
// wall-clock timestamps, which collide under rapid successive calls.
func newID() string { return uuid.NewString() }

func updateByID[T any](items []T, id string, getID func(T) string, apply func(*T)) ([]T, bool) {
	out := append([]T(nil), items...)
	for i := range out {
		if getID(out[i]) == id {
			apply(&out[i])
			return out, true
		}
	}
	return out, false
}

func deleteByID[T any](items []T, id string, getID func(T) string) ([]T, bool) {
	out := make([]T, 0, len(items))
	found := false
	for _, it := range items {
		if getID(it) == id {
			found = true
			continue
		}
		out = append(out, it)
	}
	return out, found
}

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// ExperiencePatch carries partial updates; nil fields are left untouched.
type ExperiencePatch struct {
	Included    *bool   `json:"included"`
	Position    *string `json:"position"`
	Company     *string `json:"company"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description *string `json:"description"`
}

// OrganizationPatch is the leadership/project/research counterpart.
type OrganizationPatch struct {
	Included     *bool   `json:"included"`
	Position     *string `json:"position"`
	Organization *string `json:"organization"`
	Department   *string `json:"department"`
	Location     *string `json:"location"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	Description  *string `json:"description"`
}

type EducationPatch struct {
	Included       *bool   `json:"included"`
	Institution    *string `json:"institution"`
	Degree         *string `json:"degree"`
	FieldOfStudy   *string `json:"fieldOfStudy"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	GraduationDate *string `json:"graduationDate"`
	GPA            *string `json:"gpa"`
	Description    *string `json:"description"`
}

type SkillPatch struct {
	Included *bool   `json:"included"`
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

type PortfolioPatch struct {
	Included *bool   `json:"included"`
	Name     *string `json:"name"`
	URL      *string `json:"url"`
}

func (m *Mutator) AddExperience(doc *model.Document) model.Experience {
	e := model.Experience{ID: newID(), Included: true}
	doc.Experiences = append(append([]model.Experience(nil), doc.Experiences...), e)
	return e
}

func (m *Mutator) UpdateExperience(doc *model.Document, id string, p ExperiencePatch) bool {
	items, changed := updateByID(doc.Experiences, id,
		func(e model.Experience) string { return e.ID },
		func(e *model.Experience) {
			setBool(&e.Included, p.Included)
			setStr(&e.Position, p.Position)
			setStr(&e.Company, p.Company)
			setStr(&e.Department, p.Department)
			setStr(&e.Location, p.Location)
			setStr(&e.StartDate, p.StartDate)
			setStr(&e.EndDate, p.EndDate)
			setStr(&e.Description, p.Description)
		})
	doc.Experiences = items
	return changed
}

func (m *Mutator) DeleteExperience(doc *model.Document, id string) bool {
	items, found := deleteByID(doc.Experiences, id, func(e model.Experience) string { return e.ID })
	doc.Experiences = items
	return found
}

// ReorderExperiences replaces the collection with the caller-supplied
// order. The caller is responsible for passing a permutation of the
// existing items; the mutator does not re-validate that.
func (m *Mutator) ReorderExperiences(doc *model.Document, items []model.Experience) {
	doc.Experiences = append([]model.Experience(nil), items...)
}

func applyOrgPatch(e *model.OrganizationExperience, p OrganizationPatch) {
	setBool(&e.Included, p.Included)
	setStr(&e.Position, p.Position)
	setStr(&e.Organization, p.Organization)
	setStr(&e.Department, p.Department)
	setStr(&e.Location, p.Location)
	setStr(&e.StartDate, p.StartDate)
	setStr(&e.EndDate, p.EndDate)
	setStr(&e.Description, p.Description)
}

// OrgCollection selects one of the three organization-shaped collections.
type OrgCollection int

const (
	Leadership OrgCollection = iota
	Project
	Research
)

func orgSlice(doc *model.Document, c OrgCollection) *[]model.OrganizationExperience {
	switch c {
	case Project:
		return &doc.ProjectExps
	case Research:
		return &doc.ResearchExps
	default:
		return &doc.LeadershipExps
	}
}

func (m *Mutator) AddOrganizationExperience(doc *model.Document, c OrgCollection) model.OrganizationExperience {
	e := model.OrganizationExperience{ID: newID(), Included: true}
	slot := orgSlice(doc, c)
	*slot = append(append([]model.OrganizationExperience(nil), *slot...), e)
	return e
}

func (m *Mutator) UpdateOrganizationExperience(doc *model.Document, c OrgCollection, id string, p OrganizationPatch) bool {
	slot := orgSlice(doc, c)
	items, changed := updateByID(*slot, id,
		func(e model.OrganizationExperience) string { return e.ID },
		func(e *model.OrganizationExperience) { applyOrgPatch(e, p) })
	*slot = items
	return changed
}

func (m *Mutator) DeleteOrganizationExperience(doc *model.Document, c OrgCollection, id string) bool {
	slot := orgSlice(doc, c)
	items, found := deleteByID(*slot, id, func(e model.OrganizationExperience) string { return e.ID })
	*slot = items
	return found
}

func (m *Mutator) ReorderOrganizationExperiences(doc *model.Document, c OrgCollection, items []model.OrganizationExperience) {
	*orgSlice(doc, c) = append([]model.OrganizationExperience(nil), items...)
}

func (m *Mutator) AddEducation(doc *model.Document) model.Education {
	e := model.Education{ID: newID(), Included: true}
	doc.Education = append(append([]model.Education(nil), doc.Education...), e)
	return e
}

func (m *Mutator) UpdateEducation(doc *model.Document, id string, p EducationPatch) bool {
	items, changed := updateByID(doc.Education, id,
		func(e model.Education) string { return e.ID },
		func(e *model.Education) {
			setBool(&e.Included, p.Included)
			setStr(&e.Institution, p.Institution)
			setStr(&e.Degree, p.Degree)
			setStr(&e.FieldOfStudy, p.FieldOfStudy)
			setStr(&e.StartDate, p.StartDate)
			setStr(&e.EndDate, p.EndDate)
			setStr(&e.GraduationDate, p.GraduationDate)
			setStr(&e.GPA, p.GPA)
			setStr(&e.Description, p.Description)
		})
	doc.Education = items
	return changed
}

func (m *Mutator) DeleteEducation(doc *model.Document, id string) bool {
	items, found := deleteByID(doc.Education, id, func(e model.Education) string { return e.ID })
	doc.Education = items
	return found
}

func (m *Mutator) ReorderEducation(doc *model.Document, items []model.Education) {
	doc.Education = append([]model.Education(nil), items...)
}

func (m *Mutator) AddSkill(doc *model.Document) model.Skill {
	s := model.Skill{ID: newID(), Included: true, Category: model.CategorySkill}
	doc.Skills = append(append([]model.Skill(nil), doc.Skills...), s)
	return s
}

func (m *Mutator) UpdateSkill(doc *model.Document, id string, p SkillPatch) bool {
	items, changed := updateByID(doc.Skills, id,
		func(s model.Skill) string { return s.ID },
		func(s *model.Skill) {
			setBool(&s.Included, p.Included)
			setStr(&s.Name, p.Name)
			if p.Category != nil {
				c := model.SkillCategory(*p.Category)
				if !model.ValidSkillCategory(c) {
					c = model.CategoryOther
				}
				s.Category = c
			}
		})
	doc.Skills = items
	return changed
}

func (m *Mutator) DeleteSkill(doc *model.Document, id string) bool {
	items, found := deleteByID(doc.Skills, id, func(s model.Skill) string { return s.ID })
	doc.Skills = items
	return found
}

func (m *Mutator) ReorderSkills(doc *model.Document, items []model.Skill) {
	doc.Skills = append([]model.Skill(nil), items...)
}

func (m *Mutator) AddPortfolioItem(doc *model.Document) model.PortfolioItem {
	p := model.PortfolioItem{ID: newID(), Included: true}
	doc.Portfolio = append(append([]model.PortfolioItem(nil), doc.Portfolio...), p)
	return p
}

func (m *Mutator) UpdatePortfolioItem(doc *model.Document, id string, p PortfolioPatch) bool {
	items, changed := updateByID(doc.Portfolio, id,
		func(it model.PortfolioItem) string { return it.ID },
		func(it *model.PortfolioItem) {
			setBool(&it.Included, p.Included)
			setStr(&it.Name, p.Name)
			setStr(&it.URL, p.URL)
		})
	doc.Portfolio = items
	return changed
}

func (m *Mutator) DeletePortfolioItem(doc *model.Document, id string) bool {
	items, found := deleteByID(doc.Portfolio, id, func(p model.PortfolioItem) string { return p.ID })
	doc.Portfolio = items
	return found
}

func (m *Mutator) ReorderPortfolio(doc *model.Document, items []model.PortfolioItem) {
	doc.Portfolio = append([]model.PortfolioItem(nil), items...)
}

// UpdateModules replaces the module list wholesale. Callers re-derive a
// dense order after drag reorder; the mutator does not renumber.
func (m *Mutator) UpdateModules(doc *model.Document, modules []model.Module) {
	doc.Modules = append([]model.Module(nil), modules...)
}

func (m *Mutator) ToggleModule(doc *model.Document, moduleID string) bool {
	items, changed := updateByID(doc.Modules, moduleID,
		func(mod model.Module) string { return mod.ID },
		func(mod *model.Module) { mod.Enabled = !mod.Enabled })
	doc.Modules = items
	return changed
}

type SummaryPatch struct {
	Content  *string `json:"content"`
	Included *bool   `json:"included"`
}

func (m *Mutator) UpdateSummary(doc *model.Document, p SummaryPatch) {
	setStr(&doc.Summary.Content, p.Content)
	setBool(&doc.Summary.Included, p.Included)
}

func (m *Mutator) UpdatePersonalInfo(doc *model.Document, info model.PersonalInfo) {
	doc.PersonalInfo = info
}

type StylesPatch struct {
	FitMode    *string        `json:"fitMode"`
	Spacing    *model.Margins `json:"spacing"`
	FontFamily *string        `json:"fontFamily"`
}

func (m *Mutator) UpdateStyles(doc *model.Document, p StylesPatch) {
	if p.FitMode != nil {
		fm := model.FitMode(*p.FitMode)
		if fm != model.FitCompact {
			fm = model.FitNormal
		}
		doc.Styles.FitMode = fm
	}
	if p.Spacing != nil {
		s := *p.Spacing
		doc.Styles.Spacing = &s
	}
	setStr(&doc.Styles.FontFamily, p.FontFamily)
}

// ClearAll resets the document to the session-start default.
func (m *Mutator) ClearAll() *model.Document {
	return model.NewDocument()
}
