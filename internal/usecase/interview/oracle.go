package interview

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
	pkgai "github.com/prepdeck/interview-coach/pkg/ai"
)

// EvaluationOracle scores one answer against the rubric. Implementations
// never propagate backend failures: any transport, timeout or schema error
// is converted to a fallback judgment so a session can never halt on an
// oracle failure.
type EvaluationOracle interface {
	Evaluate(ctx context.Context, question *entities.Question, answerText string, profile entities.CandidateProfile) *entities.Judgment
}

// GroqOracle evaluates answers through the Groq chat-completions backend
type GroqOracle struct {
	client  *pkgai.GroqClient
	parser  *Parser
	timeout time.Duration
	logger  *zap.Logger
}

// NewGroqOracle constructs an oracle backed by the given Groq client. The
// timeout bounds the whole evaluation attempt, retries included, so a hung
// call cannot block session termination.
func NewGroqOracle(client *pkgai.GroqClient, timeout time.Duration, logger *zap.Logger) *GroqOracle {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &GroqOracle{
		client:  client,
		parser:  NewParser(),
		timeout: timeout,
		logger:  logger,
	}
}

// Evaluate calls the Groq backend and parses the structured judgment. On any
// failure it returns the deterministic fallback judgment instead of an error.
func (o *GroqOracle) Evaluate(ctx context.Context, question *entities.Question, answerText string, profile entities.CandidateProfile) *entities.Judgment {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var judgment *entities.Judgment
	attempt := func() error {
		content, err := o.client.EvaluateAnswer(ctx, question.Text, answerText, string(question.Topic), question.Difficulty, ProfileSummary(profile))
		if err != nil {
			return fmt.Errorf("groq evaluation call: %w", err)
		}
		j, err := o.parser.ParseJudgment(content)
		if err != nil {
			return fmt.Errorf("groq judgment parse: %w", err)
		}
		judgment = j
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = o.timeout

	if err := backoff.Retry(attempt, backoff.WithContext(bo, ctx)); err != nil {
		if o.logger != nil {
			o.logger.Warn("oracle evaluation failed, using fallback judgment",
				zap.String("question_id", question.ID),
				zap.Error(err),
			)
		}
		return FallbackJudgment(answerText)
	}

	return judgment
}

// ProfileSummary renders the candidate profile as prompt context
func ProfileSummary(p entities.CandidateProfile) string {
	return fmt.Sprintf("background: %s; optional subject: %s; home region: %s", p.Background, p.Subject, p.Region)
}

// StaticOracle returns a fixed judgment for every answer. Used in tests and
// as an offline scoring backend when no Groq key is configured.
type StaticOracle struct {
	Judgment entities.Judgment
}

// Evaluate returns a copy of the configured judgment
func (o *StaticOracle) Evaluate(_ context.Context, _ *entities.Question, _ string, _ entities.CandidateProfile) *entities.Judgment {
	j := o.Judgment
	return &j
}
