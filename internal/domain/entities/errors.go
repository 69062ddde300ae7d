package entities

import "errors"

// Domain errors
var (
	// Interview errors
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrInterviewCompleted  = errors.New("interview already completed")
	ErrInterviewNotActive  = errors.New("interview session not active")
	ErrNoCurrentQuestion   = errors.New("no question is awaiting an answer")
	ErrEvaluationInFlight  = errors.New("an evaluation is already in progress")
	ErrInvalidDurationBand = errors.New("invalid duration band")

	// Oracle / generator errors
	ErrOracleUnavailable = errors.New("evaluation oracle unavailable")
	ErrMalformedJudgment = errors.New("malformed judgment payload")
	ErrGeneratorFailed   = errors.New("question generator failed")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
