package usecase

import (
	"testing"

	"resume-builder/internal/model"
	"resume-builder/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMutator() *Mutator {
	return NewMutator(logger.NewNop())
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestAddExperience(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()

	e := m.AddExperience(doc)
	require.Len(t, doc.Experiences, 1)
	assert.NotEmpty(t, e.ID)
	assert.True(t, e.Included)

	e2 := m.AddExperience(doc)
	assert.NotEqual(t, e.ID, e2.ID)
	assert.Len(t, doc.Experiences, 2)
}

func TestUpdateExperiencePartialPatch(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()
	e := m.AddExperience(doc)

	changed := m.UpdateExperience(doc, e.ID, ExperiencePatch{
		Company:  strp("Acme"),
		Position: strp("Engineer"),
	})
	require.True(t, changed)
	assert.Equal(t, "Acme", doc.Experiences[0].Company)
	assert.Equal(t, "Engineer", doc.Experiences[0].Position)

	// nil fields leave previous values alone
	changed = m.UpdateExperience(doc, e.ID, ExperiencePatch{Location: strp("Boston")})
	require.True(t, changed)
	assert.Equal(t, "Acme", doc.Experiences[0].Company)
	assert.Equal(t, "Boston", doc.Experiences[0].Location)
}

func TestUpdateExperienceMissingIDLeavesDocumentUntouched(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()
	m.AddExperience(doc)
	before := doc.Clone()

	changed := m.UpdateExperience(doc, "nope", ExperiencePatch{Company: strp("Ghost")})
	assert.False(t, changed)
	assert.Equal(t, before.Experiences, doc.Experiences)
}

func TestDeleteExperience(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()
	e := m.AddExperience(doc)
	keep := m.AddExperience(doc)

	assert.True(t, m.DeleteExperience(doc, e.ID))
	require.Len(t, doc.Experiences, 1)
	assert.Equal(t, keep.ID, doc.Experiences[0].ID)

	assert.False(t, m.DeleteExperience(doc, e.ID))
	assert.Len(t, doc.Experiences, 1)
}

func TestOrganizationCollectionsAreIndependent(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()

	lead := m.AddOrganizationExperience(doc, Leadership)
	proj := m.AddOrganizationExperience(doc, Project)
	m.AddOrganizationExperience(doc, Research)

	assert.Len(t, doc.LeadershipExps, 1)
	assert.Len(t, doc.ProjectExps, 1)
	assert.Len(t, doc.ResearchExps, 1)

	changed := m.UpdateOrganizationExperience(doc, Project, proj.ID, OrganizationPatch{
		Organization: strp("Robotics Club"),
	})
	require.True(t, changed)
	assert.Equal(t, "Robotics Club", doc.ProjectExps[0].Organization)
	assert.Empty(t, doc.LeadershipExps[0].Organization)

	// a project id does not resolve in the leadership collection
	assert.False(t, m.UpdateOrganizationExperience(doc, Leadership, proj.ID, OrganizationPatch{}))
	assert.True(t, m.DeleteOrganizationExperience(doc, Leadership, lead.ID))
	assert.Empty(t, doc.LeadershipExps)
}

func TestUpdateSkillCoercesInvalidCategory(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()
	s := m.AddSkill(doc)
	assert.Equal(t, model.CategorySkill, s.Category)

	require.True(t, m.UpdateSkill(doc, s.ID, SkillPatch{Category: strp("language")}))
	assert.Equal(t, model.CategoryLanguage, doc.Skills[0].Category)

	require.True(t, m.UpdateSkill(doc, s.ID, SkillPatch{Category: strp("wizardry")}))
	assert.Equal(t, model.CategoryOther, doc.Skills[0].Category)
}

func TestReorderReplacesCollection(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()
	a := m.AddExperience(doc)
	b := m.AddExperience(doc)

	m.ReorderExperiences(doc, []model.Experience{doc.Experiences[1], doc.Experiences[0]})
	assert.Equal(t, b.ID, doc.Experiences[0].ID)
	assert.Equal(t, a.ID, doc.Experiences[1].ID)
}

func TestToggleModule(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()

	require.True(t, m.ToggleModule(doc, "module-skills"))
	for _, mod := range doc.Modules {
		if mod.Type == model.ModuleSkills {
			assert.False(t, mod.Enabled)
		}
	}

	require.True(t, m.ToggleModule(doc, "module-skills"))
	for _, mod := range doc.Modules {
		if mod.Type == model.ModuleSkills {
			assert.True(t, mod.Enabled)
		}
	}

	assert.False(t, m.ToggleModule(doc, "module-unknown"))
}

func TestUpdateSummary(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()

	m.UpdateSummary(doc, SummaryPatch{Content: strp("<p>Hi</p>")})
	assert.Equal(t, "<p>Hi</p>", doc.Summary.Content)
	assert.True(t, doc.Summary.Included)

	m.UpdateSummary(doc, SummaryPatch{Included: boolp(false)})
	assert.Equal(t, "<p>Hi</p>", doc.Summary.Content)
	assert.False(t, doc.Summary.Included)
}

func TestUpdateStyles(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()

	m.UpdateStyles(doc, StylesPatch{
		FitMode:    strp("compact"),
		Spacing:    &model.Margins{Horizontal: 10, Vertical: 15},
		FontFamily: strp("sans"),
	})
	assert.Equal(t, model.FitCompact, doc.Styles.FitMode)
	assert.Equal(t, model.Margins{Horizontal: 10, Vertical: 15}, *doc.Styles.Spacing)
	assert.Equal(t, "sans", doc.Styles.FontFamily)

	// anything that is not compact collapses to normal
	m.UpdateStyles(doc, StylesPatch{FitMode: strp("dense")})
	assert.Equal(t, model.FitNormal, doc.Styles.FitMode)
}

func TestClearAll(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()
	m.AddExperience(doc)
	m.ToggleModule(doc, "module-summary")

	fresh := m.ClearAll()
	assert.Equal(t, model.NewDocument(), fresh)
}

func TestCopyOnWriteDoesNotAliasOriginalSlice(t *testing.T) {
	m := newTestMutator()
	doc := model.NewDocument()
	e := m.AddExperience(doc)

	snapshot := doc.Clone()
	m.UpdateExperience(doc, e.ID, ExperiencePatch{Company: strp("Changed")})
	assert.Empty(t, snapshot.Experiences[0].Company)
}
