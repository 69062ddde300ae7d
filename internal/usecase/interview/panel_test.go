package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

func TestGeneratePanel_Standard(t *testing.T) {
	panel := GeneratePanel(entities.VariantStandard, "geography")

	require.Len(t, panel, 5)
	assert.Equal(t, entities.PanelRoleChair, panel[0].Role)
	assert.True(t, panel[0].IsChair())
	for _, m := range panel[1:] {
		assert.Equal(t, entities.PanelRoleMember, m.Role)
	}

	ids := make(map[string]bool)
	for _, m := range panel {
		assert.False(t, ids[m.ID], "duplicate panel member ID %s", m.ID)
		ids[m.ID] = true
	}
}

func TestGeneratePanel_SubjectExpert(t *testing.T) {
	panel := GeneratePanel(entities.VariantSubjectExpert, "anthropology")

	assert.Equal(t, []string{"anthropology"}, panel[2].Expertise)
	assert.Equal(t, []string{"anthropology"}, panel[4].Expertise)
	// the chair keeps the base expertise
	assert.Equal(t, []string{"public administration"}, panel[0].Expertise)
}

func TestGeneratePanel_SubjectExpertWithoutSubject(t *testing.T) {
	panel := GeneratePanel(entities.VariantSubjectExpert, "")
	base := baseRoster()

	assert.Equal(t, base[2].Expertise, panel[2].Expertise)
	assert.Equal(t, base[4].Expertise, panel[4].Expertise)
}

func TestGeneratePanel_Diverse(t *testing.T) {
	panel := GeneratePanel(entities.VariantDiverse, "geography")

	seen := make(map[string]bool)
	for _, m := range panel[1:] {
		require.Len(t, m.Expertise, 1)
		assert.False(t, seen[m.Expertise[0]], "expertise %s assigned twice", m.Expertise[0])
		seen[m.Expertise[0]] = true
	}
}

func TestGeneratePanel_Deterministic(t *testing.T) {
	a := GeneratePanel(entities.VariantDiverse, "geography")
	b := GeneratePanel(entities.VariantDiverse, "geography")
	assert.Equal(t, a, b)
}

func TestGeneratePanel_DoesNotMutateBaseRoster(t *testing.T) {
	GeneratePanel(entities.VariantSubjectExpert, "anthropology")
	base := baseRoster()
	assert.Equal(t, []string{"governance"}, base[2].Expertise)
}
