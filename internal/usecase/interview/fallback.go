package interview

import (
	"strings"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// Keyword groups used by the fallback scorer. Presence of any phrase in a
// group earns its bonus once.
var (
	exampleMarkers = []string{"for example", "for instance", "such as", "e.g."}
	policyMarkers  = []string{"policy", "government", "scheme", "constitution", "act ", "legislation", "administration"}
	balanceMarkers = []string{"however", "on the other hand", "at the same time", "trade-off", "both sides"}
)

// FallbackJudgment derives a well-formed judgment from simple textual
// heuristics. It is the sole recovery path for oracle failures and must be
// deterministic: identical answer text always yields the identical judgment.
func FallbackJudgment(answerText string) *entities.Judgment {
	words := len(strings.Fields(answerText))
	lower := strings.ToLower(answerText)

	var score float64
	switch {
	case words < 20:
		score = 4.0
	case words < 60:
		score = 5.5
	case words < 150:
		score = 6.5
	default:
		score = 7.0
	}

	strengths := make([]string, 0, 3)
	improvements := make([]string, 0, 3)

	if containsAny(lower, exampleMarkers) {
		score += 0.5
		strengths = append(strengths, "supports arguments with examples")
	} else {
		improvements = append(improvements, "illustrate answers with concrete examples")
	}
	if containsAny(lower, policyMarkers) {
		score += 0.5
		strengths = append(strengths, "grounds the answer in policy context")
	} else {
		improvements = append(improvements, "connect the answer to governance and policy")
	}
	if containsAny(lower, balanceMarkers) {
		score += 0.5
		strengths = append(strengths, "weighs multiple perspectives")
	} else {
		improvements = append(improvements, "acknowledge counter-arguments")
	}

	score = entities.ClampScore(score)

	return &entities.Judgment{
		Overall: score,
		Criteria: entities.CriterionScores{
			ContentKnowledge:       score,
			Clarity:                score,
			Communication:          score,
			AnalyticalAbility:      score,
			EthicalReasoning:       score,
			CurrentAffairsAware:    score,
			AdministrativeAptitude: score,
			LeadershipPotential:    score,
		},
		Feedback:             "Automated assessment based on answer structure; detailed evaluation was unavailable for this turn.",
		Strengths:            strengths,
		Improvements:         improvements,
		FollowUpSuggested:    false,
		ComplexityAdjustment: 0,
		Breakdown: entities.QualitativeBreakdown{
			Depth:                  "Estimated from answer length.",
			FactualAccuracy:        "Not verified this turn.",
			PerspectiveBalance:     "Estimated from balancing language.",
			PracticalApplicability: "Estimated from policy references.",
		},
		Fallback: true,
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
