package interview

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// stubGenerator returns canned follow-up and adaptive questions, or a
// configured error, and counts calls
type stubGenerator struct {
	followUpErr error
	adaptiveErr error
	followUps   int
	adaptives   int
}

func (g *stubGenerator) FollowUp(_ context.Context, parent *entities.Question, _ string, _ entities.CandidateProfile) (string, error) {
	if g.followUpErr != nil {
		return "", g.followUpErr
	}
	g.followUps++
	return fmt.Sprintf("Could you elaborate on your last point about %s?", parent.Topic), nil
}

func (g *stubGenerator) Adaptive(_ context.Context, _ []*entities.AnswerRecord, _ entities.CandidateProfile, targetDifficulty int, _ string) (*AdaptiveQuestion, error) {
	if g.adaptiveErr != nil {
		return nil, g.adaptiveErr
	}
	g.adaptives++
	return &AdaptiveQuestion{
		Text:       "How would you finance a universal basic income pilot?",
		Topic:      entities.TopicEconomy,
		Difficulty: targetDifficulty,
	}, nil
}

// oneShotGate passes exactly once, then always refuses
func oneShotGate() Gate {
	fired := false
	return func(float64) bool {
		if fired {
			return false
		}
		fired = true
		return true
	}
}

func testProfile() entities.CandidateProfile {
	return entities.CandidateProfile{
		Name:       "Asha Rao",
		Background: "state civil engineer",
		Subject:    "geography",
		Region:     "Karnataka",
		FocusAreas: []string{"water policy"},
	}
}

func newTestOrchestrator(t *testing.T, oracle EvaluationOracle, gen QuestionGenerator, gate Gate, cfg OrchestratorConfig) *Orchestrator {
	t.Helper()
	profile := testProfile()
	panel := GeneratePanel(entities.VariantStandard, profile.Subject)
	seeded := SeedQuestions(profile, panel)
	return NewOrchestrator(cfg, profile, panel, seeded, oracle, gen, gate, nil)
}

func defaultConfig() OrchestratorConfig {
	return OrchestratorConfig{
		FollowUpProbability:    0.7,
		AdaptiveProbability:    0.6,
		MinTurnsBeforeAdaptive: 3,
		TotalSeconds:           1200,
	}
}

func TestSubmitAnswer_RunsToQueueExhaustion(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{Overall: 7.0, Feedback: "solid"}}
	orch := newTestOrchestrator(t, oracle, &stubGenerator{}, FixedGate(false), defaultConfig())

	seen := make(map[string]bool)
	var last *TurnResult
	for i := 0; i < 5; i++ {
		q := orch.CurrentQuestion()
		require.NotNil(t, q, "turn %d should have a current question", i)
		require.False(t, seen[q.ID], "question %s served twice", q.ID)
		seen[q.ID] = true

		result, err := orch.SubmitAnswer(context.Background(), "A considered answer.", 30, entities.ModalityTyped)
		require.NoError(t, err)
		require.NotNil(t, result.Judgment)
		last = result
	}

	require.True(t, last.Terminated)
	require.NotNil(t, last.Report)
	assert.Equal(t, entities.TerminationQueueExhausted, last.Report.Reason)
	assert.Equal(t, 5, last.Report.QuestionsAsked)
	assert.Equal(t, 5, last.Report.AnswersEvaluated)
	assert.InDelta(t, 7.0, last.Report.OverallScore, 1e-9)
	assert.Nil(t, orch.CurrentQuestion())
	assert.Equal(t, StateTerminated, orch.State())

	_, err := orch.SubmitAnswer(context.Background(), "one more", 5, entities.ModalityTyped)
	assert.ErrorIs(t, err, entities.ErrInterviewNotActive)
}

func TestSubmitAnswer_FollowUpBranch(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{
		Overall:           6.0,
		Feedback:          "probe further",
		FollowUpSuggested: true,
	}}
	gen := &stubGenerator{}
	orch := newTestOrchestrator(t, oracle, gen, oneShotGate(), defaultConfig())

	parent := orch.CurrentQuestion()
	result, err := orch.SubmitAnswer(context.Background(), "An answer worth probing.", 20, entities.ModalitySpoken)
	require.NoError(t, err)
	require.NotNil(t, result.NextQuestion)

	fu := result.NextQuestion
	assert.Equal(t, parent.ID, fu.FollowUpTo)
	assert.Equal(t, parent.AskedBy, fu.AskedBy)
	assert.Equal(t, parent.Topic, fu.Topic)
	assert.Equal(t, parent.Difficulty+1, fu.Difficulty)
	assert.Equal(t, 1, gen.followUps)
}

func TestSubmitAnswer_FollowUpDifficultyCapped(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{
		Overall:           8.0,
		Feedback:          "probe further",
		FollowUpSuggested: true,
	}}
	profile := testProfile()
	panel := GeneratePanel(entities.VariantStandard, profile.Subject)
	seeded := []*entities.Question{
		{ID: "hard-1", Text: "A ceiling-difficulty question.", AskedBy: panel[0].ID, Topic: entities.TopicGovernance, Difficulty: entities.MaxDifficulty},
		{ID: "hard-2", Text: "Another one.", AskedBy: panel[1].ID, Topic: entities.TopicEthics, Difficulty: entities.MaxDifficulty},
	}
	orch := NewOrchestrator(defaultConfig(), profile, panel, seeded, oracle, &stubGenerator{}, FixedGate(true), nil)

	result, err := orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "hard-1", result.NextQuestion.FollowUpTo)
	assert.Equal(t, entities.MaxDifficulty, result.NextQuestion.Difficulty)
}

func TestSubmitAnswer_FollowUpGeneratorFailureAdvances(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{
		Overall:           6.0,
		Feedback:          "probe further",
		FollowUpSuggested: true,
	}}
	gen := &stubGenerator{followUpErr: errors.New("backend down")}
	orch := newTestOrchestrator(t, oracle, gen, FixedGate(true), defaultConfig())

	result, err := orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "q2", result.NextQuestion.ID)
	assert.Empty(t, result.NextQuestion.FollowUpTo)
}

func TestSubmitAnswer_AdaptiveAppendsToQueueBack(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{Overall: 8.0, Feedback: "strong"}}
	gen := &stubGenerator{}
	cfg := defaultConfig()
	cfg.MinTurnsBeforeAdaptive = 0
	orch := newTestOrchestrator(t, oracle, gen, oneShotGate(), cfg)

	// First turn fires the adaptive branch; the next question must still be
	// the seeded q2 because adaptive questions join the back of the queue.
	result, err := orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "q2", result.NextQuestion.ID)
	assert.Equal(t, 1, gen.adaptives)

	// Drain the remaining seeded questions; the adaptive one comes last.
	var last *TurnResult
	for orch.CurrentQuestion() != nil {
		q := orch.CurrentQuestion()
		last, err = orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
		require.NoError(t, err)
		if last.Terminated {
			assert.Equal(t, "aq1", q.ID)
			assert.True(t, q.IsAdaptive)
			assert.Equal(t, "pm-1", q.AskedBy)
			// score 8.0, no complexity adjustment: round(8/2) = 4
			assert.Equal(t, 4, q.Difficulty)
		}
	}
	require.NotNil(t, last)
	assert.Equal(t, entities.TerminationQueueExhausted, last.Report.Reason)
	assert.Equal(t, 6, last.Report.QuestionsAsked)
}

func TestSubmitAnswer_NoAdaptiveBeforeMinimumTurns(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{Overall: 8.0, Feedback: "strong"}}
	gen := &stubGenerator{}
	cfg := defaultConfig()
	cfg.MinTurnsBeforeAdaptive = 3
	orch := newTestOrchestrator(t, oracle, gen, FixedGate(true), cfg)

	_, err := orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	assert.Equal(t, 0, gen.adaptives, "adaptive branch must not fire on turn 1")

	_, err = orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	assert.Equal(t, 0, gen.adaptives, "adaptive branch must not fire on turn 2")

	_, err = orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.adaptives, "adaptive branch should fire on turn 3")
}

func TestSubmitAnswer_NoAdaptiveOnEmptyQueue(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{Overall: 8.0, Feedback: "strong"}}
	gen := &stubGenerator{}
	profile := testProfile()
	panel := GeneratePanel(entities.VariantStandard, profile.Subject)
	seeded := []*entities.Question{
		{ID: "only", Text: "A single question.", AskedBy: panel[0].ID, Topic: entities.TopicPersonal, Difficulty: 1},
	}
	cfg := defaultConfig()
	cfg.MinTurnsBeforeAdaptive = 0
	orch := NewOrchestrator(cfg, profile, panel, seeded, oracle, gen, FixedGate(true), nil)

	result, err := orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	assert.True(t, result.Terminated)
	assert.Equal(t, entities.TerminationQueueExhausted, result.Report.Reason)
	assert.Equal(t, 0, gen.adaptives, "adaptive branch must not extend an exhausted queue")
}

// terminatingOracle flips the session terminal mid-evaluation, simulating a
// timer expiry or end-early request racing the oracle call
type terminatingOracle struct {
	orch   *Orchestrator
	reason entities.TerminationReason
}

func (o *terminatingOracle) Evaluate(_ context.Context, _ *entities.Question, _ string, _ entities.CandidateProfile) *entities.Judgment {
	o.orch.forceTerminate(o.reason)
	return &entities.Judgment{Overall: 9.0, Feedback: "late"}
}

func TestSubmitAnswer_TimeExpiryDuringEvaluationKeepsRecord(t *testing.T) {
	oracle := &terminatingOracle{reason: entities.TerminationTimeExpired}
	profile := testProfile()
	panel := GeneratePanel(entities.VariantStandard, profile.Subject)
	seeded := SeedQuestions(profile, panel)
	orch := NewOrchestrator(defaultConfig(), profile, panel, seeded, oracle, &stubGenerator{}, FixedGate(true), nil)
	oracle.orch = orch

	result, err := orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	require.True(t, result.Terminated)
	require.NotNil(t, result.Judgment, "the evaluated answer must not be lost")
	assert.Nil(t, result.NextQuestion, "no branch may fire after expiry")
	assert.Equal(t, entities.TerminationTimeExpired, result.Report.Reason)
	assert.Len(t, orch.History(), 1)
}

func TestSubmitAnswer_UserEndedDuringEvaluationDiscardsJudgment(t *testing.T) {
	oracle := &terminatingOracle{reason: entities.TerminationUserEnded}
	profile := testProfile()
	panel := GeneratePanel(entities.VariantStandard, profile.Subject)
	seeded := SeedQuestions(profile, panel)
	orch := NewOrchestrator(defaultConfig(), profile, panel, seeded, oracle, &stubGenerator{}, FixedGate(true), nil)
	oracle.orch = orch

	result, err := orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)
	require.True(t, result.Terminated)
	assert.Nil(t, result.Judgment)
	assert.Equal(t, entities.TerminationUserEnded, result.Report.Reason)
	assert.Empty(t, orch.History())
}

func TestEndEarly(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{Overall: 7.0, Feedback: "fine"}}
	orch := newTestOrchestrator(t, oracle, &stubGenerator{}, FixedGate(false), defaultConfig())

	_, err := orch.SubmitAnswer(context.Background(), "first answer", 15, entities.ModalityTyped)
	require.NoError(t, err)

	report := orch.EndEarly()
	require.NotNil(t, report)
	assert.Equal(t, entities.TerminationUserEnded, report.Reason)
	assert.Equal(t, 1, report.QuestionsAsked)
	assert.True(t, orch.Terminated())
	assert.Nil(t, orch.CurrentQuestion())

	_, err = orch.SubmitAnswer(context.Background(), "too late", 5, entities.ModalityTyped)
	assert.ErrorIs(t, err, entities.ErrInterviewNotActive)
}

func TestReport_RequiresTermination(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{Overall: 7.0, Feedback: "fine"}}
	orch := newTestOrchestrator(t, oracle, &stubGenerator{}, FixedGate(false), defaultConfig())

	_, err := orch.Report()
	assert.ErrorIs(t, err, entities.ErrInterviewNotActive)
}

func TestReport_AfterTermination(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{Overall: 7.0, Feedback: "fine"}}
	orch := newTestOrchestrator(t, oracle, &stubGenerator{}, FixedGate(false), defaultConfig())

	_, err := orch.SubmitAnswer(context.Background(), "an answer", 15, entities.ModalityTyped)
	require.NoError(t, err)
	orch.EndEarly()

	report, err := orch.Report()
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, entities.TerminationUserEnded, report.Reason)
	assert.Equal(t, 1, report.QuestionsAsked)
	assert.InDelta(t, 7.0, report.OverallScore, 1e-9)
}

func TestSnapshotState(t *testing.T) {
	oracle := &StaticOracle{Judgment: entities.Judgment{Overall: 7.0, Feedback: "fine"}}
	orch := newTestOrchestrator(t, oracle, &stubGenerator{}, FixedGate(false), defaultConfig())

	snap := orch.SnapshotState()
	assert.Equal(t, StateAwaitingAnswer, snap.State)
	require.NotNil(t, snap.CurrentQuestion)
	assert.Equal(t, "q1", snap.CurrentQuestion.ID)
	assert.Equal(t, 0, snap.TurnsCompleted)
	assert.Equal(t, 4, snap.QueueLength)
	assert.Equal(t, int64(1200), snap.RemainingSeconds)

	_, err := orch.SubmitAnswer(context.Background(), "answer", 10, entities.ModalityTyped)
	require.NoError(t, err)

	snap = orch.SnapshotState()
	assert.Equal(t, 1, snap.TurnsCompleted)
	assert.Equal(t, 3, snap.QueueLength)
}

func TestAdaptiveTargetDifficulty(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		adj   int
		want  int
	}{
		{"mid score no adjustment", 6.0, 0, 3},
		{"high score pushed up clamps to max", 10.0, 1, 5},
		{"low score pushed down clamps to min", 0.0, -1, 1},
		{"rounding up", 7.0, 0, 4},
		{"adjustment shifts band", 6.0, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdaptiveTargetDifficulty(tt.score, tt.adj))
		})
	}
}
