package interview

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
	pkgai "github.com/prepdeck/interview-coach/pkg/ai"
)

// AdaptiveQuestion is the generator output for the adaptive branch
type AdaptiveQuestion struct {
	Text       string
	Topic      entities.TopicType
	Difficulty int
}

// QuestionGenerator produces follow-up and adaptive question text
// mid-session. Failures are surfaced as errors; the orchestrator falls back
// to a plain advance when a generator fails.
type QuestionGenerator interface {
	FollowUp(ctx context.Context, parent *entities.Question, answerText string, profile entities.CandidateProfile) (string, error)
	Adaptive(ctx context.Context, recent []*entities.AnswerRecord, profile entities.CandidateProfile, targetDifficulty int, focusHint string) (*AdaptiveQuestion, error)
}

// GroqGenerator generates questions through the Groq backend
type GroqGenerator struct {
	client *pkgai.GroqClient
	parser *Parser
	logger *zap.Logger
}

// NewGroqGenerator constructs a generator backed by the given Groq client
func NewGroqGenerator(client *pkgai.GroqClient, logger *zap.Logger) *GroqGenerator {
	return &GroqGenerator{
		client: client,
		parser: NewParser(),
		logger: logger,
	}
}

// FollowUp generates one probing follow-up question on the given answer
func (g *GroqGenerator) FollowUp(ctx context.Context, parent *entities.Question, answerText string, _ entities.CandidateProfile) (string, error) {
	text, err := g.client.GenerateFollowUp(ctx, parent.Text, answerText, string(parent.Topic))
	if err != nil {
		return "", fmt.Errorf("follow-up generation: %w", err)
	}
	return text, nil
}

// Adaptive generates a fresh question pitched at the target difficulty,
// informed by at most the last three turns.
func (g *GroqGenerator) Adaptive(ctx context.Context, recent []*entities.AnswerRecord, profile entities.CandidateProfile, targetDifficulty int, focusHint string) (*AdaptiveQuestion, error) {
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	var sb strings.Builder
	for _, rec := range recent {
		score := "unscored"
		if rec.Judgment != nil {
			score = fmt.Sprintf("%.1f/10", rec.Judgment.Overall)
		}
		sb.WriteString(fmt.Sprintf("[%s, %s] %s\n", rec.Question.Topic, score, rec.Question.Text))
	}

	content, err := g.client.GenerateAdaptive(ctx, sb.String(), ProfileSummary(profile), targetDifficulty, focusHint)
	if err != nil {
		return nil, fmt.Errorf("adaptive generation: %w", err)
	}

	aq, err := g.parser.ParseAdaptive(content)
	if err != nil {
		return nil, fmt.Errorf("adaptive parse: %w", err)
	}
	return aq, nil
}
