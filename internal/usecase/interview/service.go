package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
	"github.com/prepdeck/interview-coach/internal/domain/repositories"
	"github.com/prepdeck/interview-coach/internal/infrastructure/cache"
	"github.com/prepdeck/interview-coach/pkg/config"
)

// durationBands maps the user-selected duration band to the session budget
var durationBands = map[string]time.Duration{
	"15-20": 20 * time.Minute,
	"20-25": 25 * time.Minute,
	"25-30": 30 * time.Minute,
}

// DurationForBand resolves a duration band label to the session time budget
func DurationForBand(band string) (time.Duration, error) {
	d, ok := durationBands[band]
	if !ok {
		return 0, entities.ErrInvalidDurationBand
	}
	return d, nil
}

// StartInterviewInput carries everything needed to open a session
type StartInterviewInput struct {
	Profile      entities.CandidateProfile
	Variant      entities.CompositionVariant
	DurationBand string
}

// StartInterviewOutput is returned when a session opens
type StartInterviewOutput struct {
	ID               uuid.UUID
	Panel            []entities.PanelMember
	FirstQuestion    *entities.Question
	RemainingSeconds int64
}

// SubmitAnswerInput carries one submitted answer
type SubmitAnswerInput struct {
	AnswerText     string
	ElapsedSeconds int
	Modality       entities.AnswerModality
}

// Service defines the interview session use case
type Service interface {
	// StartInterview assembles a panel, seeds the opening questions and
	// opens a live session
	StartInterview(ctx context.Context, input StartInterviewInput) (*StartInterviewOutput, error)

	// SubmitAnswer runs one turn of the session
	SubmitAnswer(ctx context.Context, id uuid.UUID, input SubmitAnswerInput) (*TurnResult, error)

	// EndInterview terminates a session early and returns the final report
	EndInterview(ctx context.Context, id uuid.UUID) (*entities.SessionReport, error)

	// GetSnapshot returns a point-in-time view of a session
	GetSnapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// GetReport returns the final report for a completed session
	GetReport(ctx context.Context, id uuid.UUID) (*entities.SessionReport, error)

	// ListRecent returns recently completed interviews
	ListRecent(ctx context.Context, limit int) ([]*entities.Interview, error)

	// StartReaper starts the background finalizer for expired sessions
	StartReaper(interval time.Duration)

	// StopReaper stops the background finalizer
	StopReaper()
}

// liveSession couples a running orchestrator with its persistence record
type liveSession struct {
	orch   *Orchestrator
	record *entities.Interview
}

// InterviewService implements Service. It owns the in-memory registry of
// live orchestrators; the database is a write-through side effect, never the
// source of truth while a session is running.
type InterviewService struct {
	repo      repositories.InterviewRepository
	store     cache.Store
	oracle    EvaluationOracle
	generator QuestionGenerator
	cfg       config.InterviewConfig
	logger    *zap.Logger

	gateFactory func() Gate

	mu       sync.RWMutex
	sessions map[uuid.UUID]*liveSession

	reaperStop chan struct{}
	reaperWg   sync.WaitGroup
	reaperOn   bool
	reaperMu   sync.Mutex
}

// Ensure InterviewService implements Service interface
var _ Service = (*InterviewService)(nil)

// NewInterviewService constructs the interview use case service
func NewInterviewService(
	repo repositories.InterviewRepository,
	store cache.Store,
	oracle EvaluationOracle,
	generator QuestionGenerator,
	cfg config.InterviewConfig,
	logger *zap.Logger,
) *InterviewService {
	return &InterviewService{
		repo:      repo,
		store:     store,
		oracle:    oracle,
		generator: generator,
		cfg:       cfg,
		logger:    logger,
		gateFactory: func() Gate {
			return RandomGate(rand.New(rand.NewSource(time.Now().UnixNano())))
		},
		sessions: make(map[uuid.UUID]*liveSession),
	}
}

// StartInterview assembles the panel, seeds the opening questions, persists
// the in-progress record and opens the live session
func (s *InterviewService) StartInterview(ctx context.Context, input StartInterviewInput) (*StartInterviewOutput, error) {
	budget, err := DurationForBand(input.DurationBand)
	if err != nil {
		return nil, err
	}

	panel := GeneratePanel(input.Variant, input.Profile.Subject)
	seeded := SeedQuestions(input.Profile, panel)

	record := entities.NewInterview(input.Profile, input.Variant, input.DurationBand)
	if panelJSON, err := json.Marshal(panel); err == nil {
		record.Panel = panelJSON
	}

	// Persistence failure must not block the in-memory flow
	if err := s.repo.Create(ctx, record); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to persist interview record, continuing in-memory",
				zap.String("interview_id", record.ID.String()),
				zap.Error(err),
			)
		}
	}

	orch := NewOrchestrator(
		OrchestratorConfig{
			FollowUpProbability:    s.cfg.FollowUpProbability,
			AdaptiveProbability:    s.cfg.AdaptiveProbability,
			MinTurnsBeforeAdaptive: s.cfg.MinTurnsBeforeAdaptive,
			TotalSeconds:           int64(budget.Seconds()),
		},
		input.Profile,
		panel,
		seeded,
		s.oracle,
		s.generator,
		s.gateFactory(),
		s.logger,
	)
	orch.Start()

	s.mu.Lock()
	s.sessions[record.ID] = &liveSession{orch: orch, record: record}
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("interview session started",
			zap.String("interview_id", record.ID.String()),
			zap.String("variant", string(input.Variant)),
			zap.String("duration_band", input.DurationBand),
		)
	}

	return &StartInterviewOutput{
		ID:               record.ID,
		Panel:            panel,
		FirstQuestion:    orch.CurrentQuestion(),
		RemainingSeconds: orch.RemainingSeconds(),
	}, nil
}

// SubmitAnswer runs one turn; when the turn terminates the session, the
// record is finalized and the report cached
func (s *InterviewService) SubmitAnswer(ctx context.Context, id uuid.UUID, input SubmitAnswerInput) (*TurnResult, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	result, err := sess.orch.SubmitAnswer(ctx, input.AnswerText, input.ElapsedSeconds, input.Modality)
	if err != nil {
		return nil, err
	}

	if result.Terminated {
		s.finalize(ctx, id, sess, result.Report)
	}
	return result, nil
}

// EndInterview honors an explicit end-early request
func (s *InterviewService) EndInterview(ctx context.Context, id uuid.UUID) (*entities.SessionReport, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	report := sess.orch.EndEarly()
	s.finalize(ctx, id, sess, report)
	return report, nil
}

// GetSnapshot returns the live view of a session, or a terminal snapshot
// for a completed one
func (s *InterviewService) GetSnapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		snap := sess.orch.SnapshotState()
		return &snap, nil
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := Snapshot{State: StateTerminated}
	if record.TerminationReason != nil {
		snap.Reason = *record.TerminationReason
	}
	return &snap, nil
}

// GetReport serves the final report read-through: cache first, then any
// still-resident session, then the persisted record
func (s *InterviewService) GetReport(ctx context.Context, id uuid.UUID) (*entities.SessionReport, error) {
	key := reportCacheKey(id)
	if cached, found, err := s.store.Get(ctx, key); err == nil && found {
		var report entities.SessionReport
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		report, err := sess.orch.Report()
		if err != nil {
			return nil, err
		}
		s.finalize(ctx, id, sess, report)
		return report, nil
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.IsCompleted() {
		return nil, entities.ErrInterviewNotActive
	}
	return reportFromRecord(record)
}

// ListRecent returns recently completed interviews
func (s *InterviewService) ListRecent(ctx context.Context, limit int) ([]*entities.Interview, error) {
	return s.repo.ListCompleted(ctx, limit)
}

// session looks up a live session by ID
func (s *InterviewService) session(id uuid.UUID) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, entities.ErrInterviewNotFound
	}
	return sess, nil
}

// finalize completes the persistence record, caches the report and evicts
// the session from the registry. Idempotent; persistence and cache failures
// are logged and swallowed.
func (s *InterviewService) finalize(ctx context.Context, id uuid.UUID, sess *liveSession, report *entities.SessionReport) {
	s.mu.Lock()
	if _, resident := s.sessions[id]; !resident {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, id)
	s.mu.Unlock()

	sess.record.Complete(report.OverallScore, report.Band, report.Reason)
	if historyJSON, err := json.Marshal(report.History); err == nil {
		sess.record.History = historyJSON
	}

	if err := s.repo.Update(ctx, sess.record); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to persist completed interview",
				zap.String("interview_id", id.String()),
				zap.Error(err),
			)
		}
	}

	if reportJSON, err := json.Marshal(report); err == nil {
		if err := s.store.Set(ctx, reportCacheKey(id), string(reportJSON), s.cfg.ReportCacheTTL); err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to cache session report", zap.Error(err))
			}
		}
	}

	if s.logger != nil {
		s.logger.Info("interview session finalized",
			zap.String("interview_id", id.String()),
			zap.Float64("overall_score", report.OverallScore),
			zap.String("band", string(report.Band)),
			zap.String("reason", string(report.Reason)),
		)
	}
}

// StartReaper starts a background loop that finalizes sessions whose timer
// expired with no further client interaction
func (s *InterviewService) StartReaper(interval time.Duration) {
	s.reaperMu.Lock()
	defer s.reaperMu.Unlock()

	if s.reaperOn {
		return
	}
	s.reaperOn = true
	s.reaperStop = make(chan struct{})

	s.reaperWg.Add(1)
	go s.reaperLoop(interval)
}

// StopReaper stops the background finalizer
func (s *InterviewService) StopReaper() {
	s.reaperMu.Lock()
	defer s.reaperMu.Unlock()

	if !s.reaperOn {
		return
	}
	close(s.reaperStop)
	s.reaperWg.Wait()
	s.reaperOn = false
}

func (s *InterviewService) reaperLoop(interval time.Duration) {
	defer s.reaperWg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.reaperStop:
			return
		case <-ticker.C:
			s.mu.RLock()
			expired := make(map[uuid.UUID]*liveSession)
			for id, sess := range s.sessions {
				if sess.orch.Terminated() {
					expired[id] = sess
				}
			}
			s.mu.RUnlock()

			for id, sess := range expired {
				if report, err := sess.orch.Report(); err == nil {
					s.finalize(context.Background(), id, sess, report)
				}
			}
		}
	}
}

func reportCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("interview:report:%s", id)
}

// reportFromRecord rebuilds a session report from the persisted row
func reportFromRecord(record *entities.Interview) (*entities.SessionReport, error) {
	report := &entities.SessionReport{}
	if record.OverallScore != nil {
		report.OverallScore = *record.OverallScore
	}
	if record.Band != nil {
		report.Band = *record.Band
	} else {
		report.Band = BandForScore(report.OverallScore)
	}
	if record.TerminationReason != nil {
		report.Reason = *record.TerminationReason
	}
	if len(record.History) > 0 {
		if err := json.Unmarshal(record.History, &report.History); err != nil {
			return nil, fmt.Errorf("failed to decode interview history: %w", err)
		}
	}
	report.QuestionsAsked = len(report.History)
	for _, rec := range report.History {
		if rec.Judgment != nil {
			report.AnswersEvaluated++
		}
	}
	return report, nil
}
