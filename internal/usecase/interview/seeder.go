package interview

import (
	"fmt"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// SeedQuestions builds the fixed opening sequence for a session: five
// questions of rising difficulty, personalized from the candidate profile.
// Deterministic for identical inputs so a given profile always opens the
// same way; variability enters only through later follow-up and adaptive
// branching.
func SeedQuestions(profile entities.CandidateProfile, panel []entities.PanelMember) []*entities.Question {
	chair := panel[0]

	region := profile.Region
	if region == "" {
		region = "your home state"
	}
	subject := profile.Subject
	if subject == "" {
		subject = "your chosen subject"
	}

	return []*entities.Question{
		{
			ID:         "q1",
			Text:       "Please introduce yourself and walk us through your background.",
			AskedBy:    chair.ID,
			Topic:      entities.TopicPersonal,
			Difficulty: 1,
		},
		{
			ID:         "q2",
			Text:       "What motivates you to join the civil services, and what would you consider a successful career?",
			AskedBy:    chair.ID,
			Topic:      entities.TopicPersonal,
			Difficulty: 2,
		},
		{
			ID:         "q3",
			Text:       fmt.Sprintf("What do you see as the most pressing developmental challenge facing %s today?", region),
			AskedBy:    panel[2].ID,
			Topic:      entities.TopicCurrentAffairs,
			Difficulty: 3,
		},
		{
			ID:         "q4",
			Text:       "Bureaucratic delay is often cited as a failure of governance. How would you address it as an administrator?",
			AskedBy:    panel[3].ID,
			Topic:      entities.TopicGovernance,
			Difficulty: 3,
		},
		{
			ID:         "q5",
			Text:       fmt.Sprintf("You chose %s as your optional subject. How does it inform the way you would approach public policy?", subject),
			AskedBy:    panel[4].ID,
			Topic:      entities.TopicOptionalSubject,
			Difficulty: 3,
		},
	}
}
