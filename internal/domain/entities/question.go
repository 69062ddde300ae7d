package entities

// TopicType categorizes a question for display and generator hints
type TopicType string

const (
	TopicPersonal        TopicType = "personal"
	TopicCurrentAffairs  TopicType = "current-affairs"
	TopicGovernance      TopicType = "governance"
	TopicEthics          TopicType = "ethics"
	TopicOptionalSubject TopicType = "optional-subject"
	TopicSocialIssues    TopicType = "social-issues"
	TopicEconomy         TopicType = "economy"
	TopicEnvironment     TopicType = "environment"
	TopicScienceTech     TopicType = "science-tech"
	TopicInternational   TopicType = "international"
)

// Difficulty bounds for any question served in a session
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question represents a single interview question. Questions are created
// either at seed time or mid-session (follow-up / adaptive branch) and are
// never mutated or removed once created.
type Question struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AskedBy    string    `json:"asked_by"` // PanelMember ID
	Topic      TopicType `json:"topic"`
	Difficulty int       `json:"difficulty"` // 1..5
	FollowUpTo string    `json:"follow_up_to,omitempty"`
	IsAdaptive bool      `json:"is_adaptive,omitempty"`
}

// IsFollowUp checks if the question was spawned as a probe on a prior answer
func (q *Question) IsFollowUp() bool {
	return q.FollowUpTo != ""
}

// ClampDifficulty bounds a difficulty value to the valid range
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}
