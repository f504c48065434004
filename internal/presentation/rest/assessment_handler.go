package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Svaella/app-atension-api/internal/application/dto"
	"github.com/Svaella/app-atension-api/internal/application/usecase"
	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
)

// StatusMessage is served on the root path.
const StatusMessage = "API activa"

// AssessmentHandler exposes the assessment use cases over HTTP.
type AssessmentHandler struct {
	predictRisk      *usecase.PredictRisk
	recordAssessment *usecase.RecordAssessment
	getAssessment    *usecase.GetAssessment
	listAssessments  *usecase.ListAssessments
	logger           *slog.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(
	predictRisk *usecase.PredictRisk,
	recordAssessment *usecase.RecordAssessment,
	getAssessment *usecase.GetAssessment,
	listAssessments *usecase.ListAssessments,
	logger *slog.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		predictRisk:      predictRisk,
		recordAssessment: recordAssessment,
		getAssessment:    getAssessment,
		listAssessments:  listAssessments,
		logger:           logger,
	}
}

// RegisterRoutes registers the assessment endpoints on the provided ServeMux.
func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("POST /predict", h.Predict)
	mux.HandleFunc("POST /api/v1/assessments", h.Record)
	mux.HandleFunc("GET /api/v1/assessments", h.List)
	mux.HandleFunc("GET /api/v1/assessments/{id}", h.Get)
}

// Root reports that the service is up.
func (h *AssessmentHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": StatusMessage})
}

// Predict classifies a questionnaire without storing it.
func (h *AssessmentHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.predictRisk.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, "prediction failed", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Record classifies and stores a complete questionnaire.
func (h *AssessmentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordAssessmentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.recordAssessment.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, "failed to record assessment", err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Get returns a stored assessment.
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assessment id", err)
		return
	}

	view, err := h.getAssessment.Execute(r.Context(), dto.GetAssessmentRequest{ID: id})
	if err != nil {
		h.fail(w, r, "failed to get assessment", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// List returns the most recent assessments, newest first.
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var req dto.ListAssessmentsRequest
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit", err)
			return
		}
		req.Limit = limit
	}

	resp, err := h.listAssessments.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, "failed to list assessments", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AssessmentHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), msg,
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	writeError(w, code, msg, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, port.ErrAssessmentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
