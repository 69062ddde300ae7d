package presenter

import (
	dto "github.com/prepdeck/interview-coach/internal/adapter/dto/interview"
	"github.com/prepdeck/interview-coach/internal/domain/entities"
	"github.com/prepdeck/interview-coach/internal/usecase/interview"
)

// ToPanelResponse maps panel members to their API representation
func ToPanelResponse(panel []entities.PanelMember) []dto.PanelMemberResponse {
	out := make([]dto.PanelMemberResponse, 0, len(panel))
	for _, m := range panel {
		out = append(out, dto.PanelMemberResponse{
			ID:        m.ID,
			Name:      m.Name,
			Role:      string(m.Role),
			Expertise: m.Expertise,
			VoiceTag:  m.VoiceTag,
		})
	}
	return out
}

// ToQuestionResponse maps a question to its API representation
func ToQuestionResponse(q *entities.Question) *dto.QuestionResponse {
	if q == nil {
		return nil
	}
	return &dto.QuestionResponse{
		ID:         q.ID,
		Text:       q.Text,
		AskedBy:    q.AskedBy,
		Topic:      string(q.Topic),
		Difficulty: q.Difficulty,
		FollowUpTo: q.FollowUpTo,
		IsAdaptive: q.IsAdaptive,
	}
}

// ToReportResponse maps a session report to its API representation
func ToReportResponse(report *entities.SessionReport) *dto.ReportResponse {
	if report == nil {
		return nil
	}
	return &dto.ReportResponse{
		OverallScore:      report.OverallScore,
		Band:              string(report.Band),
		QuestionsAsked:    report.QuestionsAsked,
		AnswersEvaluated:  report.AnswersEvaluated,
		TerminationReason: string(report.Reason),
		History:           report.History,
	}
}

// ToTurnResponse maps one turn result to its API representation
func ToTurnResponse(result *interview.TurnResult) *dto.TurnResponse {
	return &dto.TurnResponse{
		Judgment:         result.Judgment,
		NextQuestion:     ToQuestionResponse(result.NextQuestion),
		Completed:        result.Terminated,
		Report:           ToReportResponse(result.Report),
		RemainingSeconds: result.RemainingSeconds,
		TurnIndex:        result.TurnIndex,
	}
}

// ToSnapshotResponse maps a session snapshot to its API representation
func ToSnapshotResponse(snap *interview.Snapshot) *dto.SnapshotResponse {
	return &dto.SnapshotResponse{
		State:             string(snap.State),
		CurrentQuestion:   ToQuestionResponse(snap.CurrentQuestion),
		TurnsCompleted:    snap.TurnsCompleted,
		QueueLength:       snap.QueueLength,
		RemainingSeconds:  snap.RemainingSeconds,
		TerminationReason: string(snap.Reason),
	}
}

// ToInterviewSummaryResponse maps a persisted interview to a listing row
func ToInterviewSummaryResponse(record *entities.Interview) dto.InterviewSummaryResponse {
	resp := dto.InterviewSummaryResponse{
		ID:            record.ID.String(),
		CandidateName: record.CandidateName,
		Subject:       record.Subject,
		DurationBand:  record.DurationBand,
		Status:        string(record.Status),
		OverallScore:  record.OverallScore,
		StartedAt:     record.StartedAt,
		CompletedAt:   record.CompletedAt,
	}
	if record.Band != nil {
		resp.Band = string(*record.Band)
	}
	if record.TerminationReason != nil {
		resp.TerminationReason = string(*record.TerminationReason)
	}
	return resp
}
