package entities

// Score bounds for the overall score and every criterion score
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// CriterionScores holds the fixed rubric the oracle scores every answer
// against. Each value lies in [0,10].
type CriterionScores struct {
	ContentKnowledge       float64 `json:"content_knowledge"`
	Clarity                float64 `json:"clarity"`
	Communication          float64 `json:"communication"`
	AnalyticalAbility      float64 `json:"analytical_ability"`
	EthicalReasoning       float64 `json:"ethical_reasoning"`
	CurrentAffairsAware    float64 `json:"current_affairs_awareness"`
	AdministrativeAptitude float64 `json:"administrative_aptitude"`
	LeadershipPotential    float64 `json:"leadership_potential"`
}

// All returns the criterion scores in declaration order
func (c CriterionScores) All() []float64 {
	return []float64{
		c.ContentKnowledge,
		c.Clarity,
		c.Communication,
		c.AnalyticalAbility,
		c.EthicalReasoning,
		c.CurrentAffairsAware,
		c.AdministrativeAptitude,
		c.LeadershipPotential,
	}
}

// QualitativeBreakdown is the free-text breakdown attached to a judgment
type QualitativeBreakdown struct {
	Depth                  string `json:"depth"`
	FactualAccuracy        string `json:"factual_accuracy"`
	PerspectiveBalance     string `json:"perspective_balance"`
	PracticalApplicability string `json:"practical_applicability"`
}

// Judgment is the structured scoring output from the evaluation oracle for
// one answer. Overall and every criterion score lie in [0,10];
// ComplexityAdjustment is -1, 0 or +1.
type Judgment struct {
	Overall              float64              `json:"overall_score"`
	Criteria             CriterionScores      `json:"criteria"`
	Feedback             string               `json:"feedback"`
	Strengths            []string             `json:"strengths"`
	Improvements         []string             `json:"improvements"`
	FollowUpSuggested    bool                 `json:"follow_up_suggested"`
	ComplexityAdjustment int                  `json:"complexity_adjustment"`
	Breakdown            QualitativeBreakdown `json:"breakdown"`
	Fallback             bool                 `json:"fallback,omitempty"` // true when derived heuristically after an oracle failure
}

// ClampScore bounds a score to the valid range
func ClampScore(s float64) float64 {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}
