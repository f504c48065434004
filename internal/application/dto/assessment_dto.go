package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/Svaella/app-atension-api/internal/domain/model"
)

// PredictRequest is the minimal questionnaire payload. Every field is
// required; pointers let a missing field be told apart from a zero code.
type PredictRequest struct {
	Sexo       *int     `json:"sexo"`
	Edad       *int     `json:"edad"`
	Peso       *float64 `json:"peso"`
	Altura     *float64 `json:"altura"`
	Frutas     *int     `json:"frutas"`
	Vegetales  *int     `json:"vegetales"`
	Sal        *int     `json:"sal"`
	Alcohol    *int     `json:"alcohol"`
	Tabaco     *int     `json:"tabaco"`
	Vapeo      *int     `json:"vapeo"`
	EstresDias *int     `json:"estres_dias"`
	Actividad  *int     `json:"actividad"`
	Colesterol *int     `json:"colesterol"`
	Diabetes   *int     `json:"diabetes"`
}

// Answers converts the payload into domain answers, failing with
// model.ErrInvalidInput when any field is absent.
func (r PredictRequest) Answers() (model.Answers, error) {
	var missing []error
	intField := func(name string, v *int) int {
		if v == nil {
			missing = append(missing, fmt.Errorf("%s is required", name))
			return 0
		}
		return *v
	}
	floatField := func(name string, v *float64) float64 {
		if v == nil {
			missing = append(missing, fmt.Errorf("%s is required", name))
			return 0
		}
		return *v
	}

	a := model.Answers{
		Sexo:       intField("sexo", r.Sexo),
		Edad:       intField("edad", r.Edad),
		Peso:       floatField("peso", r.Peso),
		Altura:     floatField("altura", r.Altura),
		Frutas:     intField("frutas", r.Frutas),
		Vegetales:  intField("vegetales", r.Vegetales),
		Sal:        intField("sal", r.Sal),
		Alcohol:    intField("alcohol", r.Alcohol),
		Tabaco:     intField("tabaco", r.Tabaco),
		Vapeo:      intField("vapeo", r.Vapeo),
		EstresDias: intField("estres_dias", r.EstresDias),
		Actividad:  intField("actividad", r.Actividad),
		Colesterol: intField("colesterol", r.Colesterol),
		Diabetes:   intField("diabetes", r.Diabetes),
	}
	if len(missing) > 0 {
		return model.Answers{}, fmt.Errorf("%w: %w", model.ErrInvalidInput, errors.Join(missing...))
	}
	return a, nil
}

// PredictResponse carries the tier and the probability as a percentage.
type PredictResponse struct {
	Riesgo       string  `json:"riesgo"`
	Probabilidad float64 `json:"probabilidad"`
}

// RecordAssessmentRequest is the complete payload: the questionnaire plus
// the knowledge quiz.
type RecordAssessmentRequest struct {
	PredictRequest
	RespuestasHTA               map[string]any `json:"respuestas_hta"`
	HTADiagnosticadaPreviamente *int           `json:"hta_diagnosticada_previamente"`
	PuntajeConocimientoHTA      *int           `json:"puntaje_conocimiento_hta"`
}

// Quiz validates the quiz block. Prior diagnosis and score are required.
func (r RecordAssessmentRequest) Quiz() (model.QuizResult, error) {
	var missing []error
	if r.HTADiagnosticadaPreviamente == nil {
		missing = append(missing, errors.New("hta_diagnosticada_previamente is required"))
	}
	if r.PuntajeConocimientoHTA == nil {
		missing = append(missing, errors.New("puntaje_conocimiento_hta is required"))
	}
	if len(missing) > 0 {
		return model.QuizResult{}, fmt.Errorf("%w: %w", model.ErrInvalidInput, errors.Join(missing...))
	}
	return model.NewQuizResult(*r.HTADiagnosticadaPreviamente, *r.PuntajeConocimientoHTA, r.RespuestasHTA)
}

// RecordAssessmentResponse is returned after a complete assessment is stored.
type RecordAssessmentResponse struct {
	Riesgo       string  `json:"riesgo"`
	Mensaje      string  `json:"mensaje"`
	Reference    string  `json:"reference"`
	Probabilidad float64 `json:"probabilidad"`
	ID           int64   `json:"id"`
}

// GetAssessmentRequest identifies a stored assessment.
type GetAssessmentRequest struct {
	ID int64 `json:"id"`
}

// ListAssessmentsRequest bounds a listing of recent assessments.
type ListAssessmentsRequest struct {
	Limit int `json:"limit"`
}

// ListAssessmentsResponse holds recent assessments, newest first.
type ListAssessmentsResponse struct {
	Assessments []AssessmentView `json:"assessments"`
}

// AssessmentView is the read model of a stored assessment.
type AssessmentView struct {
	CreatedAt                   time.Time      `json:"created_at"`
	RespuestasHTA               map[string]any `json:"respuestas_hta,omitempty"`
	HTADiagnosticadaPreviamente *string        `json:"hta_diagnosticada_previamente,omitempty"`
	PuntajeConocimientoHTA      *int           `json:"puntaje_conocimiento_hta,omitempty"`
	Reference                   string         `json:"reference"`
	Sexo                        string         `json:"sexo"`
	Frutas                      string         `json:"frutas"`
	Vegetales                   string         `json:"vegetales"`
	Sal                         string         `json:"sal"`
	Alcohol                     string         `json:"alcohol"`
	Tabaco                      string         `json:"tabaco"`
	Vapeo                       string         `json:"vapeo"`
	Actividad                   string         `json:"actividad"`
	Colesterol                  string         `json:"colesterol"`
	Diabetes                    string         `json:"diabetes"`
	Riesgo                      string         `json:"riesgo"`
	Peso                        float64        `json:"peso"`
	Altura                      float64        `json:"altura"`
	IMC                         float64        `json:"imc"`
	Probabilidad                float64        `json:"probabilidad"`
	ID                          int64          `json:"id"`
	Edad                        int            `json:"edad"`
	GrupoEdad                   int            `json:"grupo_edad"`
	EstresDias                  int            `json:"estres_dias"`
}

// FromRecord maps a stored record to its view.
func FromRecord(r model.AssessmentRecord) AssessmentView {
	return AssessmentView{
		ID:                          r.ID,
		Reference:                   r.Reference.String(),
		Sexo:                        r.Sex,
		Edad:                        r.Age,
		Peso:                        r.WeightKg,
		Altura:                      r.HeightCm,
		IMC:                         r.BMI.InexactFloat64(),
		GrupoEdad:                   r.AgeBracket,
		Frutas:                      r.Fruits,
		Vegetales:                   r.Vegetables,
		Sal:                         r.Salt,
		Alcohol:                     r.Alcohol,
		Tabaco:                      r.Smoking,
		Vapeo:                       r.Vaping,
		EstresDias:                  r.StressDays,
		Actividad:                   r.PhysicalActivity,
		Colesterol:                  r.Cholesterol,
		Diabetes:                    r.Diabetes,
		HTADiagnosticadaPreviamente: r.PreviouslyDiagnosed,
		PuntajeConocimientoHTA:      r.QuizScore,
		RespuestasHTA:               r.QuizAnswers,
		Riesgo:                      r.RiskTier,
		Probabilidad:                r.Probability.InexactFloat64(),
		CreatedAt:                   r.CreatedAt,
	}
}
