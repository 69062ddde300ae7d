package interview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// Parser handles parsing and validation of Groq responses at the oracle
// boundary. Any payload that deviates from the fixed judgment schema is
// rejected here so the caller can route to the fallback path instead of
// passing a partially-populated judgment through.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseJudgment parses the JSON response from Groq into a Judgment
func (p *Parser) ParseJudgment(jsonString string) (*entities.Judgment, error) {
	// Extract JSON from response (Groq might wrap it in markdown code blocks)
	jsonString = extractJSON(jsonString)

	var j entities.Judgment
	if err := json.Unmarshal([]byte(jsonString), &j); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := p.ValidateJudgment(&j); err != nil {
		return nil, err
	}

	return &j, nil
}

// ValidateJudgment normalizes a judgment against the fixed schema. Scores
// are clamped into [0,10]; a missing feedback or an out-of-set complexity
// adjustment is a hard schema violation.
func (p *Parser) ValidateJudgment(j *entities.Judgment) error {
	if j == nil {
		return fmt.Errorf("judgment is nil: %w", entities.ErrMalformedJudgment)
	}
	if j.Feedback == "" {
		return fmt.Errorf("missing feedback: %w", entities.ErrMalformedJudgment)
	}
	if j.ComplexityAdjustment < -1 || j.ComplexityAdjustment > 1 {
		return fmt.Errorf("complexity_adjustment %d out of {-1,0,1}: %w", j.ComplexityAdjustment, entities.ErrMalformedJudgment)
	}

	j.Overall = entities.ClampScore(j.Overall)
	j.Criteria.ContentKnowledge = entities.ClampScore(j.Criteria.ContentKnowledge)
	j.Criteria.Clarity = entities.ClampScore(j.Criteria.Clarity)
	j.Criteria.Communication = entities.ClampScore(j.Criteria.Communication)
	j.Criteria.AnalyticalAbility = entities.ClampScore(j.Criteria.AnalyticalAbility)
	j.Criteria.EthicalReasoning = entities.ClampScore(j.Criteria.EthicalReasoning)
	j.Criteria.CurrentAffairsAware = entities.ClampScore(j.Criteria.CurrentAffairsAware)
	j.Criteria.AdministrativeAptitude = entities.ClampScore(j.Criteria.AdministrativeAptitude)
	j.Criteria.LeadershipPotential = entities.ClampScore(j.Criteria.LeadershipPotential)

	if j.Strengths == nil {
		j.Strengths = make([]string, 0)
	}
	if j.Improvements == nil {
		j.Improvements = make([]string, 0)
	}

	return nil
}

// adaptivePayload is the wire shape the adaptive generator returns
type adaptivePayload struct {
	Question   string `json:"question"`
	Type       string `json:"type"`
	Complexity int    `json:"complexity"`
	Category   string `json:"category"`
}

// ParseAdaptive parses the adaptive-question response from Groq
func (p *Parser) ParseAdaptive(jsonString string) (*AdaptiveQuestion, error) {
	jsonString = extractJSON(jsonString)

	var payload adaptivePayload
	if err := json.Unmarshal([]byte(jsonString), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse adaptive response: %w", err)
	}

	if payload.Question == "" {
		return nil, fmt.Errorf("missing question in adaptive response")
	}

	topic := entities.TopicType(payload.Type)
	if topic == "" {
		topic = entities.TopicType(payload.Category)
	}
	if topic == "" {
		topic = entities.TopicCurrentAffairs
	}

	return &AdaptiveQuestion{
		Text:       payload.Question,
		Topic:      topic,
		Difficulty: entities.ClampDifficulty(payload.Complexity),
	}, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
