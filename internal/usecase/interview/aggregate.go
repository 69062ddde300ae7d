package interview

import (
	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// Band thresholds, checked in descending order
const (
	outstandingThreshold = 8.5
	veryGoodThreshold    = 7.5
	goodThreshold        = 6.5
)

// Aggregate reduces the full answer history into the final session report.
// The overall score is the uniform mean of all evaluated records; answers
// that never received a judgment (an abandoned final turn) are excluded.
// An empty history yields score 0 and the lowest band, never an error.
func Aggregate(history []*entities.AnswerRecord) *entities.SessionReport {
	var sum float64
	evaluated := 0
	for _, rec := range history {
		if rec.Judgment == nil {
			continue
		}
		sum += rec.Judgment.Overall
		evaluated++
	}

	score := 0.0
	if evaluated > 0 {
		score = sum / float64(evaluated)
	}

	return &entities.SessionReport{
		OverallScore:     score,
		Band:             BandForScore(score),
		QuestionsAsked:   len(history),
		AnswersEvaluated: evaluated,
		History:          history,
	}
}

// BandForScore maps a mean score to its performance band
func BandForScore(score float64) entities.PerformanceBand {
	switch {
	case score >= outstandingThreshold:
		return entities.BandOutstanding
	case score >= veryGoodThreshold:
		return entities.BandVeryGood
	case score >= goodThreshold:
		return entities.BandGood
	default:
		return entities.BandSatisfactory
	}
}
