package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "github.com/prepdeck/interview-coach/internal/adapter/dto/interview"
	"github.com/prepdeck/interview-coach/internal/adapter/presenter"
	"github.com/prepdeck/interview-coach/internal/domain/entities"
	interviewUsecase "github.com/prepdeck/interview-coach/internal/usecase/interview"
)

// Interview handles interview-session HTTP requests
type Interview struct {
	service interviewUsecase.Service
	logger  *zap.Logger
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(service interviewUsecase.Service, logger *zap.Logger) *Interview {
	return &Interview{
		service: service,
		logger:  logger,
	}
}

// Start handles POST /interviews
func (h *Interview) Start(c echo.Context) error {
	var req dto.StartInterviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	variant := entities.CompositionVariant(req.CompositionVariant)
	if variant == "" {
		variant = entities.VariantStandard
	}

	output, err := h.service.StartInterview(c.Request().Context(), interviewUsecase.StartInterviewInput{
		Profile: entities.CandidateProfile{
			Name:       req.Name,
			Background: req.Background,
			Subject:    req.Subject,
			Region:     req.Region,
			FocusAreas: req.FocusAreas,
		},
		Variant:      variant,
		DurationBand: req.DurationBand,
	})
	if err != nil {
		return h.errorResponse(c, err, "failed_to_start_interview")
	}

	return c.JSON(http.StatusCreated, &dto.StartInterviewResponse{
		ID:               output.ID.String(),
		Panel:            presenter.ToPanelResponse(output.Panel),
		Question:         presenter.ToQuestionResponse(output.FirstQuestion),
		RemainingSeconds: output.RemainingSeconds,
	})
}

// SubmitAnswer handles POST /interviews/:id/answers
func (h *Interview) SubmitAnswer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_interview_id",
			"message": "interview ID must be a valid UUID",
		})
	}

	var req dto.SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	modality := entities.AnswerModality(req.Modality)
	if modality == "" {
		modality = entities.ModalityTyped
	}

	result, err := h.service.SubmitAnswer(c.Request().Context(), id, interviewUsecase.SubmitAnswerInput{
		AnswerText:     req.Answer,
		ElapsedSeconds: req.ElapsedSeconds,
		Modality:       modality,
	})
	if err != nil {
		return h.errorResponse(c, err, "failed_to_submit_answer")
	}

	return c.JSON(http.StatusOK, presenter.ToTurnResponse(result))
}

// End handles POST /interviews/:id/end
func (h *Interview) End(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_interview_id",
			"message": "interview ID must be a valid UUID",
		})
	}

	report, err := h.service.EndInterview(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err, "failed_to_end_interview")
	}

	return c.JSON(http.StatusOK, presenter.ToReportResponse(report))
}

// Get handles GET /interviews/:id
func (h *Interview) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_interview_id",
			"message": "interview ID must be a valid UUID",
		})
	}

	snap, err := h.service.GetSnapshot(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err, "failed_to_get_interview")
	}

	return c.JSON(http.StatusOK, presenter.ToSnapshotResponse(snap))
}

// GetReport handles GET /interviews/:id/report
func (h *Interview) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_interview_id",
			"message": "interview ID must be a valid UUID",
		})
	}

	report, err := h.service.GetReport(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err, "failed_to_get_report")
	}

	return c.JSON(http.StatusOK, presenter.ToReportResponse(report))
}

// List handles GET /interviews
func (h *Interview) List(c echo.Context) error {
	var req dto.ListInterviewsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}

	records, err := h.service.ListRecent(c.Request().Context(), req.Limit)
	if err != nil {
		return h.errorResponse(c, err, "failed_to_list_interviews")
	}

	out := make([]dto.InterviewSummaryResponse, 0, len(records))
	for _, record := range records {
		out = append(out, presenter.ToInterviewSummaryResponse(record))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": out,
	})
}

// errorResponse maps domain errors to HTTP status codes
func (h *Interview) errorResponse(c echo.Context, err error, fallbackCode string) error {
	switch {
	case errors.Is(err, entities.ErrInterviewNotFound):
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"error":   "interview_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, entities.ErrInvalidDurationBand):
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_duration_band",
			"message": "duration band must be one of 15-20, 20-25, 25-30",
		})
	case errors.Is(err, entities.ErrInterviewNotActive),
		errors.Is(err, entities.ErrInterviewCompleted),
		errors.Is(err, entities.ErrNoCurrentQuestion),
		errors.Is(err, entities.ErrEvaluationInFlight):
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":   "interview_not_accepting_answers",
			"message": err.Error(),
		})
	default:
		if h.logger != nil {
			h.logger.Error("interview request failed", zap.Error(err))
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":   fallbackCode,
			"message": err.Error(),
		})
	}
}
