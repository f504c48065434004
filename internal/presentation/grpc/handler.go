package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Svaella/app-atension-api/internal/application/dto"
	"github.com/Svaella/app-atension-api/internal/application/usecase"
	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
)

// Compile-time assertion that AssessmentServiceHandler implements AssessmentServiceServer.
var _ AssessmentServiceServer = (*AssessmentServiceHandler)(nil)

// AssessmentServiceHandler implements the gRPC AssessmentServiceServer interface.
type AssessmentServiceHandler struct {
	UnimplementedAssessmentServiceServer
	predictRisk      *usecase.PredictRisk
	recordAssessment *usecase.RecordAssessment
	getAssessment    *usecase.GetAssessment
	logger           *slog.Logger
}

// NewAssessmentServiceHandler creates a new gRPC handler.
func NewAssessmentServiceHandler(
	predictRisk *usecase.PredictRisk,
	recordAssessment *usecase.RecordAssessment,
	getAssessment *usecase.GetAssessment,
	logger *slog.Logger,
) *AssessmentServiceHandler {
	return &AssessmentServiceHandler{
		predictRisk:      predictRisk,
		recordAssessment: recordAssessment,
		getAssessment:    getAssessment,
		logger:           logger,
	}
}

// Proto-aligned request/response message types.

// QuestionnaireMsg represents the proto Questionnaire message. Unset fields
// are reported as missing.
type QuestionnaireMsg struct {
	Sexo       *int32   `json:"sexo"`
	Edad       *int32   `json:"edad"`
	Peso       *float64 `json:"peso"`
	Altura     *float64 `json:"altura"`
	Frutas     *int32   `json:"frutas"`
	Vegetales  *int32   `json:"vegetales"`
	Sal        *int32   `json:"sal"`
	Alcohol    *int32   `json:"alcohol"`
	Tabaco     *int32   `json:"tabaco"`
	Vapeo      *int32   `json:"vapeo"`
	EstresDias *int32   `json:"estres_dias"`
	Actividad  *int32   `json:"actividad"`
	Colesterol *int32   `json:"colesterol"`
	Diabetes   *int32   `json:"diabetes"`
}

// QuizMsg represents the proto Quiz message.
type QuizMsg struct {
	PreviouslyDiagnosed *int32         `json:"previously_diagnosed"`
	KnowledgeScore      *int32         `json:"knowledge_score"`
	Answers             map[string]any `json:"answers"`
}

// AssessRiskRequest represents the proto AssessRiskRequest message.
type AssessRiskRequest struct {
	Questionnaire *QuestionnaireMsg `json:"questionnaire"`
}

// AssessRiskResponse represents the proto AssessRiskResponse message.
type AssessRiskResponse struct {
	RiskTier    string  `json:"risk_tier"`
	Probability float64 `json:"probability"`
}

// RecordAssessmentRequest represents the proto RecordAssessmentRequest message.
type RecordAssessmentRequest struct {
	Questionnaire *QuestionnaireMsg `json:"questionnaire"`
	Quiz          *QuizMsg          `json:"quiz"`
}

// RecordAssessmentResponse represents the proto RecordAssessmentResponse message.
type RecordAssessmentResponse struct {
	Reference   string  `json:"reference"`
	RiskTier    string  `json:"risk_tier"`
	Message     string  `json:"message"`
	Probability float64 `json:"probability"`
	ID          int64   `json:"id"`
}

// GetAssessmentRequest represents the proto GetAssessmentRequest message.
type GetAssessmentRequest struct {
	ID int64 `json:"id"`
}

// GetAssessmentResponse represents the proto GetAssessmentResponse message.
type GetAssessmentResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// AssessmentMsg represents the proto Assessment message.
type AssessmentMsg struct {
	CreatedAt           string         `json:"created_at"`
	Reference           string         `json:"reference"`
	Sex                 string         `json:"sex"`
	Fruits              string         `json:"fruits"`
	Vegetables          string         `json:"vegetables"`
	Salt                string         `json:"salt"`
	Alcohol             string         `json:"alcohol"`
	Smoking             string         `json:"smoking"`
	Vaping              string         `json:"vaping"`
	PhysicalActivity    string         `json:"physical_activity"`
	Cholesterol         string         `json:"cholesterol"`
	Diabetes            string         `json:"diabetes"`
	RiskTier            string         `json:"risk_tier"`
	PreviouslyDiagnosed string         `json:"previously_diagnosed,omitempty"`
	QuizAnswers         map[string]any `json:"quiz_answers,omitempty"`
	WeightKg            float64        `json:"weight_kg"`
	HeightCm            float64        `json:"height_cm"`
	BMI                 float64        `json:"bmi"`
	Probability         float64        `json:"probability"`
	ID                  int64          `json:"id"`
	Age                 int32          `json:"age"`
	AgeBracket          int32          `json:"age_bracket"`
	StressDays          int32          `json:"stress_days"`
	KnowledgeScore      int32          `json:"knowledge_score,omitempty"`
}

// AssessRisk classifies a questionnaire without storing it.
func (h *AssessmentServiceHandler) AssessRisk(ctx context.Context, req *AssessRiskRequest) (*AssessRiskResponse, error) {
	if req == nil || req.Questionnaire == nil {
		return nil, status.Error(codes.InvalidArgument, "questionnaire is required")
	}

	result, err := h.predictRisk.Execute(ctx, req.Questionnaire.toDTO())
	if err != nil {
		return nil, h.toStatus(ctx, "failed to assess risk", err)
	}

	return &AssessRiskResponse{
		RiskTier:    result.Riesgo,
		Probability: result.Probabilidad,
	}, nil
}

// RecordAssessment classifies and stores a complete questionnaire.
func (h *AssessmentServiceHandler) RecordAssessment(ctx context.Context, req *RecordAssessmentRequest) (*RecordAssessmentResponse, error) {
	if req == nil || req.Questionnaire == nil {
		return nil, status.Error(codes.InvalidArgument, "questionnaire is required")
	}
	if req.Quiz == nil {
		return nil, status.Error(codes.InvalidArgument, "quiz is required")
	}

	result, err := h.recordAssessment.Execute(ctx, dto.RecordAssessmentRequest{
		PredictRequest:              req.Questionnaire.toDTO(),
		RespuestasHTA:               req.Quiz.Answers,
		HTADiagnosticadaPreviamente: intFrom32(req.Quiz.PreviouslyDiagnosed),
		PuntajeConocimientoHTA:      intFrom32(req.Quiz.KnowledgeScore),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to record assessment", err)
	}

	h.logger.InfoContext(ctx, "assessment recorded",
		slog.Int64("id", result.ID),
		slog.String("risk_tier", result.Riesgo),
	)

	return &RecordAssessmentResponse{
		ID:          result.ID,
		Reference:   result.Reference,
		RiskTier:    result.Riesgo,
		Probability: result.Probabilidad,
		Message:     result.Mensaje,
	}, nil
}

// GetAssessment returns a stored assessment.
func (h *AssessmentServiceHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	view, err := h.getAssessment.Execute(ctx, dto.GetAssessmentRequest{ID: req.ID})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to get assessment", err)
	}

	return &GetAssessmentResponse{Assessment: toAssessmentMsg(view)}, nil
}

func (h *AssessmentServiceHandler) toStatus(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		h.logger.ErrorContext(ctx, msg, slog.String("error", err.Error()))
		return status.Errorf(codes.Internal, "%s: %v", msg, err)
	}
}

func (q *QuestionnaireMsg) toDTO() dto.PredictRequest {
	return dto.PredictRequest{
		Sexo:       intFrom32(q.Sexo),
		Edad:       intFrom32(q.Edad),
		Peso:       q.Peso,
		Altura:     q.Altura,
		Frutas:     intFrom32(q.Frutas),
		Vegetales:  intFrom32(q.Vegetales),
		Sal:        intFrom32(q.Sal),
		Alcohol:    intFrom32(q.Alcohol),
		Tabaco:     intFrom32(q.Tabaco),
		Vapeo:      intFrom32(q.Vapeo),
		EstresDias: intFrom32(q.EstresDias),
		Actividad:  intFrom32(q.Actividad),
		Colesterol: intFrom32(q.Colesterol),
		Diabetes:   intFrom32(q.Diabetes),
	}
}

func toAssessmentMsg(v dto.AssessmentView) *AssessmentMsg {
	msg := &AssessmentMsg{
		ID:               v.ID,
		Reference:        v.Reference,
		Sex:              v.Sexo,
		Age:              int32(v.Edad),
		WeightKg:         v.Peso,
		HeightCm:         v.Altura,
		BMI:              v.IMC,
		AgeBracket:       int32(v.GrupoEdad),
		Fruits:           v.Frutas,
		Vegetables:       v.Vegetales,
		Salt:             v.Sal,
		Alcohol:          v.Alcohol,
		Smoking:          v.Tabaco,
		Vaping:           v.Vapeo,
		StressDays:       int32(v.EstresDias),
		PhysicalActivity: v.Actividad,
		Cholesterol:      v.Colesterol,
		Diabetes:         v.Diabetes,
		RiskTier:         v.Riesgo,
		Probability:      v.Probabilidad,
		QuizAnswers:      v.RespuestasHTA,
		CreatedAt:        v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.HTADiagnosticadaPreviamente != nil {
		msg.PreviouslyDiagnosed = *v.HTADiagnosticadaPreviamente
	}
	if v.PuntajeConocimientoHTA != nil {
		msg.KnowledgeScore = int32(*v.PuntajeConocimientoHTA)
	}
	return msg
}

func intFrom32(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}
