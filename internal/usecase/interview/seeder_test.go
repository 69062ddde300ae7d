package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

func TestSeedQuestions_Shape(t *testing.T) {
	profile := testProfile()
	panel := GeneratePanel(entities.VariantStandard, profile.Subject)
	seeded := SeedQuestions(profile, panel)

	require.Len(t, seeded, 5)

	// opener and motivation come from the chair
	assert.Equal(t, panel[0].ID, seeded[0].AskedBy)
	assert.Equal(t, panel[0].ID, seeded[1].AskedBy)
	assert.Equal(t, entities.TopicPersonal, seeded[0].Topic)
	assert.Equal(t, entities.TopicPersonal, seeded[1].Topic)

	assert.Equal(t, entities.TopicCurrentAffairs, seeded[2].Topic)
	assert.Equal(t, entities.TopicGovernance, seeded[3].Topic)
	assert.Equal(t, entities.TopicOptionalSubject, seeded[4].Topic)

	// difficulty rises then plateaus
	difficulties := []int{seeded[0].Difficulty, seeded[1].Difficulty, seeded[2].Difficulty, seeded[3].Difficulty, seeded[4].Difficulty}
	assert.Equal(t, []int{1, 2, 3, 3, 3}, difficulties)

	ids := make(map[string]bool)
	for _, q := range seeded {
		assert.False(t, ids[q.ID], "duplicate question ID %s", q.ID)
		ids[q.ID] = true
		assert.NotEmpty(t, q.Text)
		assert.Empty(t, q.FollowUpTo)
		assert.False(t, q.IsAdaptive)
	}
}

func TestSeedQuestions_Personalization(t *testing.T) {
	profile := testProfile()
	panel := GeneratePanel(entities.VariantStandard, profile.Subject)
	seeded := SeedQuestions(profile, panel)

	assert.Contains(t, seeded[2].Text, "Karnataka")
	assert.Contains(t, seeded[4].Text, "geography")
}

func TestSeedQuestions_DefaultsForEmptyProfile(t *testing.T) {
	profile := entities.CandidateProfile{Name: "Anon"}
	panel := GeneratePanel(entities.VariantStandard, "")
	seeded := SeedQuestions(profile, panel)

	assert.Contains(t, seeded[2].Text, "your home state")
	assert.Contains(t, seeded[4].Text, "your chosen subject")
}

func TestSeedQuestions_Deterministic(t *testing.T) {
	profile := testProfile()
	panel := GeneratePanel(entities.VariantStandard, profile.Subject)

	a := SeedQuestions(profile, panel)
	b := SeedQuestions(profile, panel)
	assert.Equal(t, a, b)
}
