package interview

import (
	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// baseRoster returns the fixed five-member board: a chair plus four members,
// each with a default expertise. Specialization by composition variant
// happens on a fresh copy, so the roster itself is never mutated.
func baseRoster() []entities.PanelMember {
	return []entities.PanelMember{
		{
			ID:        "pm-chair",
			Name:      "Dr. R. Krishnan",
			Role:      entities.PanelRoleChair,
			Expertise: []string{"public administration"},
			VoiceTag:  "calm-male",
		},
		{
			ID:        "pm-1",
			Name:      "Ms. A. Deshmukh",
			Role:      entities.PanelRoleMember,
			Expertise: []string{"current affairs"},
			VoiceTag:  "brisk-female",
		},
		{
			ID:        "pm-2",
			Name:      "Mr. V. Thomas",
			Role:      entities.PanelRoleMember,
			Expertise: []string{"governance"},
			VoiceTag:  "measured-male",
		},
		{
			ID:        "pm-3",
			Name:      "Dr. S. Banerjee",
			Role:      entities.PanelRoleMember,
			Expertise: []string{"ethics"},
			VoiceTag:  "warm-female",
		},
		{
			ID:        "pm-4",
			Name:      "Prof. K. Nair",
			Role:      entities.PanelRoleMember,
			Expertise: []string{"academia"},
			VoiceTag:  "precise-male",
		},
	}
}

// diverseDomains are assigned to the four non-chair members under the
// diverse-panel variant, one distinct domain each.
var diverseDomains = []string{
	"international relations",
	"social development",
	"economics",
	"science & technology",
}

// GeneratePanel builds the five-member board for a session. The composition
// variant specializes member expertise; an unknown variant leaves the base
// roster unchanged. Pure and deterministic.
func GeneratePanel(variant entities.CompositionVariant, subject string) []entities.PanelMember {
	panel := baseRoster()

	switch variant {
	case entities.VariantSubjectExpert:
		if subject != "" {
			panel[2].Expertise = []string{subject}
			panel[4].Expertise = []string{subject}
		}
	case entities.VariantDiverse:
		for i, domain := range diverseDomains {
			panel[i+1].Expertise = []string{domain}
		}
	}

	return panel
}
