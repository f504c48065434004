package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/Svaella/app-atension-api/internal/application/usecase"
	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/internal/domain/service"
	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
	"github.com/Svaella/app-atension-api/internal/infrastructure/ml"
	"github.com/Svaella/app-atension-api/pkg/testutil"
)

// --- Mock implementations ---

type mockAssessmentRepo struct {
	saveErr error
	records map[int64]model.AssessmentRecord
	nextID  int64
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{records: make(map[int64]model.AssessmentRecord)}
}

func (m *mockAssessmentRepo) Save(_ context.Context, a *model.HypertensionAssessment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.nextID++
	if err := a.MarkPersisted(m.nextID, time.Now()); err != nil {
		return err
	}
	m.records[m.nextID] = a.ToRecord()
	return nil
}

func (m *mockAssessmentRepo) FindByID(_ context.Context, id int64) (*model.AssessmentRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, port.ErrAssessmentNotFound
	}
	return &rec, nil
}

func (m *mockAssessmentRepo) ListRecent(_ context.Context, _ int) ([]model.AssessmentRecord, error) {
	return nil, nil
}

// --- Helpers ---

func int32Ptr(v int32) *int32 { return &v }
func float64Ptr(v float64) *float64 { return &v }

func validQuestionnaire() *QuestionnaireMsg {
	return &QuestionnaireMsg{
		Sexo:       int32Ptr(0),
		Edad:       int32Ptr(30),
		Peso:       float64Ptr(70),
		Altura:     float64Ptr(175),
		Frutas:     int32Ptr(1),
		Vegetales:  int32Ptr(1),
		Sal:        int32Ptr(0),
		Alcohol:    int32Ptr(0),
		Tabaco:     int32Ptr(1),
		Vapeo:      int32Ptr(4),
		EstresDias: int32Ptr(2),
		Actividad:  int32Ptr(1),
		Colesterol: int32Ptr(0),
		Diabetes:   int32Ptr(2),
	}
}

func validQuiz() *QuizMsg {
	return &QuizMsg{
		PreviouslyDiagnosed: int32Ptr(1),
		KnowledgeScore:      int32Ptr(5),
		Answers:             map[string]any{"p1": "b"},
	}
}

func newTestHandler(t *testing.T, probability float64, repo *mockAssessmentRepo) *AssessmentServiceHandler {
	t.Helper()
	logger := testutil.DiscardLogger()

	classifier, err := service.NewRiskClassifier(ml.NewStubModelClient(probability, logger), valueobject.DefaultThresholds)
	require.NoError(t, err)
	encoder := service.NewFeatureEncoder()

	return NewAssessmentServiceHandler(
		usecase.NewPredictRisk(encoder, classifier, nil),
		usecase.NewRecordAssessment(repo, encoder, classifier, nil),
		usecase.NewGetAssessment(repo),
		logger,
	)
}

// --- Tests ---

func TestAssessRisk(t *testing.T) {
	h := newTestHandler(t, 0.5, newMockAssessmentRepo())

	resp, err := h.AssessRisk(context.Background(), &AssessRiskRequest{Questionnaire: validQuestionnaire()})

	require.NoError(t, err)
	assert.Equal(t, "Moderate", resp.RiskTier)
	assert.InDelta(t, 50.0, resp.Probability, 1e-9)
}

func TestAssessRisk_InvalidArgument(t *testing.T) {
	h := newTestHandler(t, 0.5, newMockAssessmentRepo())

	tests := []struct {
		req  *AssessRiskRequest
		name string
	}{
		{name: "nil request", req: nil},
		{name: "missing questionnaire", req: &AssessRiskRequest{}},
		{name: "missing field", req: &AssessRiskRequest{Questionnaire: &QuestionnaireMsg{Sexo: int32Ptr(1)}}},
		{name: "unknown code", req: func() *AssessRiskRequest {
			q := validQuestionnaire()
			q.Vapeo = int32Ptr(7)
			return &AssessRiskRequest{Questionnaire: q}
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.AssessRisk(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestAssessRisk_MalformedPredictionIsInternal(t *testing.T) {
	h := newTestHandler(t, -0.1, newMockAssessmentRepo())

	_, err := h.AssessRisk(context.Background(), &AssessRiskRequest{Questionnaire: validQuestionnaire()})

	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRecordAssessment_ThenGet(t *testing.T) {
	repo := newMockAssessmentRepo()
	h := newTestHandler(t, 0.9, repo)

	recorded, err := h.RecordAssessment(context.Background(), &RecordAssessmentRequest{
		Questionnaire: validQuestionnaire(),
		Quiz:          validQuiz(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), recorded.ID)
	assert.Equal(t, "High", recorded.RiskTier)
	assert.Equal(t, usecase.RecordedMessage, recorded.Message)

	got, err := h.GetAssessment(context.Background(), &GetAssessmentRequest{ID: recorded.ID})
	require.NoError(t, err)
	require.NotNil(t, got.Assessment)
	assert.Equal(t, recorded.Reference, got.Assessment.Reference)
	assert.Equal(t, "Mujer", got.Assessment.Sex)
	assert.Equal(t, "Fumador diario", got.Assessment.Smoking)
	assert.Equal(t, "Diabetes", got.Assessment.Diabetes)
	assert.Equal(t, "Sí", got.Assessment.PreviouslyDiagnosed)
	assert.Equal(t, int32(5), got.Assessment.KnowledgeScore)
	assert.Equal(t, int32(3), got.Assessment.AgeBracket)
	assert.InDelta(t, 22.86, got.Assessment.BMI, 1e-9)
}

func TestRecordAssessment_Errors(t *testing.T) {
	t.Run("missing quiz", func(t *testing.T) {
		h := newTestHandler(t, 0.2, newMockAssessmentRepo())
		_, err := h.RecordAssessment(context.Background(), &RecordAssessmentRequest{Questionnaire: validQuestionnaire()})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("negative score", func(t *testing.T) {
		h := newTestHandler(t, 0.2, newMockAssessmentRepo())
		quiz := validQuiz()
		quiz.KnowledgeScore = int32Ptr(-1)
		_, err := h.RecordAssessment(context.Background(), &RecordAssessmentRequest{Questionnaire: validQuestionnaire(), Quiz: quiz})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("save failure", func(t *testing.T) {
		repo := newMockAssessmentRepo()
		repo.saveErr = errors.New("database unavailable")
		h := newTestHandler(t, 0.2, repo)
		_, err := h.RecordAssessment(context.Background(), &RecordAssessmentRequest{Questionnaire: validQuestionnaire(), Quiz: validQuiz()})
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Contains(t, status.Convert(err).Message(), "database unavailable")
	})
}

func TestGetAssessment_Errors(t *testing.T) {
	h := newTestHandler(t, 0.2, newMockAssessmentRepo())

	_, err := h.GetAssessment(context.Background(), &GetAssessmentRequest{ID: 7})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = h.GetAssessment(context.Background(), &GetAssessmentRequest{ID: 0})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.GetAssessment(context.Background(), nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_JSONCodecRoundTrip(t *testing.T) {
	h := newTestHandler(t, 0.7, newMockAssessmentRepo())
	srv, err := NewServer(h, ServerConfig{}, testutil.DiscardLogger())
	require.NoError(t, err)

	listener := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(listener) }()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var resp AssessRiskResponse
	err = conn.Invoke(ctx, "/"+ServiceName+"/AssessRisk",
		&AssessRiskRequest{Questionnaire: validQuestionnaire()}, &resp,
		grpclib.CallContentSubtype(CodecName),
	)
	require.NoError(t, err)
	assert.Equal(t, "High", resp.RiskTier)
	assert.InDelta(t, 70.0, resp.Probability, 1e-9)

	health, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.Status)
}
