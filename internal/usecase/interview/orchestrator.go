package interview

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// SessionState is the observable state of the turn loop
type SessionState string

const (
	StateAwaitingAnswer SessionState = "awaiting_answer"
	StateEvaluating     SessionState = "evaluating"
	StateTerminated     SessionState = "terminated"
)

// Gate decides whether a probabilistic branch fires. Injected so tests can
// force either outcome instead of depending on ambient randomness.
type Gate func(probability float64) bool

// RandomGate returns a gate backed by the given random source
func RandomGate(r *rand.Rand) Gate {
	return func(p float64) bool {
		return r.Float64() < p
	}
}

// FixedGate returns a gate that always gives the same verdict
func FixedGate(pass bool) Gate {
	return func(float64) bool {
		return pass
	}
}

// OrchestratorConfig holds the per-session policy knobs
type OrchestratorConfig struct {
	FollowUpProbability    float64
	AdaptiveProbability    float64
	MinTurnsBeforeAdaptive int
	TotalSeconds           int64
}

// TurnResult is what one completed submit-answer turn yields
type TurnResult struct {
	Judgment         *entities.Judgment
	NextQuestion     *entities.Question
	Terminated       bool
	Report           *entities.SessionReport
	RemainingSeconds int64
	TurnIndex        int
}

// Snapshot is a point-in-time view of the session for status endpoints
type Snapshot struct {
	State            SessionState
	CurrentQuestion  *entities.Question
	TurnsCompleted   int
	QueueLength      int
	RemainingSeconds int64
	Reason           entities.TerminationReason
}

// Orchestrator drives the turn loop for one session. It exclusively owns the
// session state: the pending queue, the append-only history and the current
// question. The countdown timer is the one concurrent element; it talks to
// the turn loop only through the atomic remaining/terminated values so it can
// preempt branching at any point.
type Orchestrator struct {
	mu        sync.Mutex
	cfg       OrchestratorConfig
	profile   entities.CandidateProfile
	panel     []entities.PanelMember
	oracle    EvaluationOracle
	generator QuestionGenerator
	gate      Gate
	logger    *zap.Logger

	queue       []*entities.Question
	history     []*entities.AnswerRecord
	current     *entities.Question
	turns       int
	followUpSeq int
	adaptiveSeq int

	remaining  atomic.Int64
	evaluating atomic.Bool
	terminated atomic.Bool
	reason     atomic.Value // entities.TerminationReason

	timerStop chan struct{}
	stopOnce  sync.Once
}

// NewOrchestrator builds a session around the seeded question queue. The
// first seeded question becomes the current question; call Start to launch
// the countdown.
func NewOrchestrator(
	cfg OrchestratorConfig,
	profile entities.CandidateProfile,
	panel []entities.PanelMember,
	seeded []*entities.Question,
	oracle EvaluationOracle,
	generator QuestionGenerator,
	gate Gate,
	logger *zap.Logger,
) *Orchestrator {
	o := &Orchestrator{
		cfg:       cfg,
		profile:   profile,
		panel:     panel,
		oracle:    oracle,
		generator: generator,
		gate:      gate,
		logger:    logger,
		timerStop: make(chan struct{}),
	}
	if len(seeded) > 0 {
		o.current = seeded[0]
		o.queue = append(o.queue, seeded[1:]...)
	}
	o.remaining.Store(cfg.TotalSeconds)
	return o
}

// Start launches the countdown timer goroutine
func (o *Orchestrator) Start() {
	go o.timerLoop()
}

// timerLoop decrements the remaining budget once per wall-clock second.
// Time spent blocked on an in-flight evaluation does not count against the
// budget. Reaching zero forces termination even mid-turn.
func (o *Orchestrator) timerLoop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-o.timerStop:
			return
		case <-ticker.C:
			if o.terminated.Load() {
				return
			}
			if o.evaluating.Load() {
				continue
			}
			if o.remaining.Add(-1) <= 0 {
				if o.logger != nil {
					o.logger.Info("session time budget exhausted")
				}
				o.forceTerminate(entities.TerminationTimeExpired)
				return
			}
		}
	}
}

// forceTerminate flips the session into its terminal state. Safe to call
// from any goroutine and idempotent; the first caller's reason wins.
func (o *Orchestrator) forceTerminate(reason entities.TerminationReason) {
	if !o.terminated.CompareAndSwap(false, true) {
		return
	}
	o.reason.Store(reason)
	o.stopOnce.Do(func() { close(o.timerStop) })
}

// terminationReason returns the recorded reason, if any
func (o *Orchestrator) terminationReason() entities.TerminationReason {
	if r, ok := o.reason.Load().(entities.TerminationReason); ok {
		return r
	}
	return ""
}

// SubmitAnswer runs one full turn: record the answer, evaluate it, branch,
// and select the next question. The turn is atomic from the caller's
// perspective: either the history grows by one evaluated record and a next
// question (or final report) is selected, or the state is unchanged and the
// call can be retried.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, answerText string, elapsedSeconds int, modality entities.AnswerModality) (*TurnResult, error) {
	o.mu.Lock()
	if o.terminated.Load() {
		o.mu.Unlock()
		return nil, entities.ErrInterviewNotActive
	}
	if o.evaluating.Load() {
		o.mu.Unlock()
		return nil, entities.ErrEvaluationInFlight
	}
	question := o.current
	if question == nil {
		o.mu.Unlock()
		return nil, entities.ErrNoCurrentQuestion
	}
	o.evaluating.Store(true)
	o.mu.Unlock()

	// The oracle call is the only suspension point in the turn loop. It
	// never fails: oracle adapters convert backend errors to a fallback
	// judgment internally.
	judgment := o.oracle.Evaluate(ctx, question, answerText, o.profile)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.evaluating.Store(false)

	if o.terminated.Load() {
		if o.terminationReason() == entities.TerminationUserEnded {
			// The candidate ended the session while evaluation was in
			// flight; the late judgment is discarded.
			return &TurnResult{Terminated: true, Report: o.reportLocked()}, nil
		}
		// Time expired mid-evaluation. The turn still completes so the
		// answer is not lost, but no branch fires.
		o.appendRecordLocked(question, answerText, elapsedSeconds, modality, judgment)
		return &TurnResult{Judgment: judgment, Terminated: true, Report: o.reportLocked(), TurnIndex: o.turns}, nil
	}

	record := o.appendRecordLocked(question, answerText, elapsedSeconds, modality, judgment)

	next := o.nextQuestionLocked(ctx, record)
	if next == nil {
		if !o.terminated.Load() {
			o.forceTerminate(entities.TerminationQueueExhausted)
		}
		o.current = nil
		return &TurnResult{Judgment: judgment, Terminated: true, Report: o.reportLocked(), TurnIndex: o.turns}, nil
	}

	o.current = next
	return &TurnResult{
		Judgment:         judgment,
		NextQuestion:     next,
		RemainingSeconds: o.remaining.Load(),
		TurnIndex:        o.turns,
	}, nil
}

// appendRecordLocked records one evaluated turn in the session history
func (o *Orchestrator) appendRecordLocked(q *entities.Question, answerText string, elapsed int, modality entities.AnswerModality, judgment *entities.Judgment) *entities.AnswerRecord {
	record := &entities.AnswerRecord{
		Question:       q,
		AnswerText:     answerText,
		ElapsedSeconds: elapsed,
		Modality:       modality,
		Judgment:       judgment,
	}
	o.history = append(o.history, record)
	o.turns++
	return record
}

// nextQuestionLocked applies the branching policy in priority order:
// follow-up, adaptive, advance. A timer expiry observed at any point wins
// over every branch. Returns nil when the session should terminate.
func (o *Orchestrator) nextQuestionLocked(ctx context.Context, record *entities.AnswerRecord) *entities.Question {
	judgment := record.Judgment

	if judgment.FollowUpSuggested && o.gate(o.cfg.FollowUpProbability) {
		if fu, err := o.spawnFollowUp(ctx, record); err != nil {
			// Generator failure degrades to a plain advance.
			if o.logger != nil {
				o.logger.Warn("follow-up generation failed, advancing", zap.Error(err))
			}
		} else {
			o.queue = append([]*entities.Question{fu}, o.queue...)
		}
	} else if len(o.queue) > 0 && o.turns >= o.cfg.MinTurnsBeforeAdaptive && o.gate(o.cfg.AdaptiveProbability) {
		if aq, err := o.spawnAdaptive(ctx, judgment); err != nil {
			if o.logger != nil {
				o.logger.Warn("adaptive generation failed, advancing", zap.Error(err))
			}
		} else {
			// Appended, not pushed: queue order still governs what is
			// asked next.
			o.queue = append(o.queue, aq)
		}
	}

	// Termination takes precedence over whatever the branch produced.
	if o.terminated.Load() {
		return nil
	}
	if len(o.queue) == 0 {
		return nil
	}

	next := o.queue[0]
	o.queue = o.queue[1:]
	return next
}

// spawnFollowUp synthesizes a follow-up question probing the answer just
// given: same asker and topic as the parent, one difficulty step up.
func (o *Orchestrator) spawnFollowUp(ctx context.Context, record *entities.AnswerRecord) (*entities.Question, error) {
	text, err := o.generator.FollowUp(ctx, record.Question, record.AnswerText, o.profile)
	if err != nil {
		return nil, err
	}
	o.followUpSeq++
	return &entities.Question{
		ID:         fmt.Sprintf("%s-fu%d", record.Question.ID, o.followUpSeq),
		Text:       text,
		AskedBy:    record.Question.AskedBy,
		Topic:      record.Question.Topic,
		Difficulty: entities.ClampDifficulty(record.Question.Difficulty + 1),
		FollowUpTo: record.Question.ID,
	}, nil
}

// spawnAdaptive synthesizes an adaptive question pitched at a difficulty
// derived from the latest score and the judgment's complexity adjustment.
func (o *Orchestrator) spawnAdaptive(ctx context.Context, judgment *entities.Judgment) (*entities.Question, error) {
	target := AdaptiveTargetDifficulty(judgment.Overall, judgment.ComplexityAdjustment)

	aq, err := o.generator.Adaptive(ctx, o.history, o.profile, target, o.focusHint())
	if err != nil {
		return nil, err
	}

	o.adaptiveSeq++
	return &entities.Question{
		ID:         fmt.Sprintf("aq%d", o.adaptiveSeq),
		Text:       aq.Text,
		AskedBy:    o.panel[1+(o.adaptiveSeq-1)%4].ID,
		Topic:      aq.Topic,
		Difficulty: entities.ClampDifficulty(aq.Difficulty),
		IsAdaptive: true,
	}, nil
}

// focusHint rotates through the candidate's stated focus areas
func (o *Orchestrator) focusHint() string {
	if len(o.profile.FocusAreas) == 0 {
		return ""
	}
	return o.profile.FocusAreas[o.adaptiveSeq%len(o.profile.FocusAreas)]
}

// AdaptiveTargetDifficulty maps the latest score and complexity adjustment
// to the next adaptive question's difficulty: clamp(round(score/2)+adj, 1, 5)
func AdaptiveTargetDifficulty(score float64, complexityAdjustment int) int {
	return entities.ClampDifficulty(int(math.Round(score/2)) + complexityAdjustment)
}

// EndEarly terminates the session on the candidate's explicit request and
// returns the final report. Any in-flight evaluation is abandoned.
func (o *Orchestrator) EndEarly() *entities.SessionReport {
	o.forceTerminate(entities.TerminationUserEnded)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = nil
	return o.reportLocked()
}

// Report returns the final report for a terminated session
func (o *Orchestrator) Report() (*entities.SessionReport, error) {
	if !o.terminated.Load() {
		return nil, entities.ErrInterviewNotActive
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reportLocked(), nil
}

func (o *Orchestrator) reportLocked() *entities.SessionReport {
	report := Aggregate(o.history)
	report.Reason = o.terminationReason()
	return report
}

// CurrentQuestion returns the question awaiting an answer, nil once terminated
func (o *Orchestrator) CurrentQuestion() *entities.Question {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.terminated.Load() {
		return nil
	}
	return o.current
}

// RemainingSeconds returns the remaining time budget
func (o *Orchestrator) RemainingSeconds() int64 {
	return o.remaining.Load()
}

// Terminated reports whether the session reached its terminal state
func (o *Orchestrator) Terminated() bool {
	return o.terminated.Load()
}

// State returns the observable state of the turn loop
func (o *Orchestrator) State() SessionState {
	if o.terminated.Load() {
		return StateTerminated
	}
	if o.evaluating.Load() {
		return StateEvaluating
	}
	return StateAwaitingAnswer
}

// SnapshotState returns a point-in-time view for status endpoints
func (o *Orchestrator) SnapshotState() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	snap := Snapshot{
		State:            o.State(),
		TurnsCompleted:   o.turns,
		QueueLength:      len(o.queue),
		RemainingSeconds: o.remaining.Load(),
		Reason:           o.terminationReason(),
	}
	if !o.terminated.Load() {
		snap.CurrentQuestion = o.current
	}
	return snap
}

// History returns the answer records completed so far
func (o *Orchestrator) History() []*entities.AnswerRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*entities.AnswerRecord, len(o.history))
	copy(out, o.history)
	return out
}

// Panel returns the board generated for this session
func (o *Orchestrator) Panel() []entities.PanelMember {
	return o.panel
}
