package model

import (
	"errors"
	"fmt"

	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
)

// ErrInvalidInput wraps every validation failure of an assessment payload.
var ErrInvalidInput = errors.New("invalid assessment input")

const (
	maxAgeYears   = 120
	maxWeightKg   = 500
	maxHeightCm   = 300
	maxStressDays = 30
)

// MaxBMI bounds the body mass index derived from peso and altura so that it
// always fits the stored imc column.
const MaxBMI = 999.99

// Answers are the raw questionnaire codes as received from a caller.
type Answers struct {
	Sexo       int
	Edad       int
	Peso       float64
	Altura     float64
	Frutas     int
	Vegetales  int
	Sal        int
	Alcohol    int
	Tabaco     int
	Vapeo      int
	EstresDias int
	Actividad  int
	Colesterol int
	Diabetes   int
}

// AssessmentInput is a validated, typed set of answers.
type AssessmentInput struct {
	Sex              valueobject.Sex
	Age              int
	WeightKg         float64
	HeightCm         float64
	Fruits           valueobject.YesNo
	Vegetables       valueobject.YesNo
	Salt             valueobject.YesNo
	Alcohol          valueobject.YesNo
	Smoking          valueobject.SmokingStatus
	Vaping           valueobject.VapingStatus
	StressDays       int
	PhysicalActivity valueobject.YesNo
	Cholesterol      valueobject.YesNo
	Diabetes         valueobject.DiabetesStatus
}

// NewAssessmentInput validates raw answers. All violations are reported
// together, each wrapped in ErrInvalidInput.
func NewAssessmentInput(a Answers) (AssessmentInput, error) {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	in := AssessmentInput{
		Age:        a.Edad,
		WeightKg:   a.Peso,
		HeightCm:   a.Altura,
		StressDays: a.EstresDias,
	}

	var err error
	in.Sex, err = valueobject.ParseSex(a.Sexo)
	check(err)
	in.Fruits, err = valueobject.ParseYesNo("frutas", a.Frutas)
	check(err)
	in.Vegetables, err = valueobject.ParseYesNo("vegetales", a.Vegetales)
	check(err)
	in.Salt, err = valueobject.ParseYesNo("sal", a.Sal)
	check(err)
	in.Alcohol, err = valueobject.ParseYesNo("alcohol", a.Alcohol)
	check(err)
	in.PhysicalActivity, err = valueobject.ParseYesNo("actividad", a.Actividad)
	check(err)
	in.Cholesterol, err = valueobject.ParseYesNo("colesterol", a.Colesterol)
	check(err)
	in.Smoking, err = valueobject.ParseSmokingStatus(a.Tabaco)
	check(err)
	in.Vaping, err = valueobject.ParseVapingStatus(a.Vapeo)
	check(err)
	in.Diabetes, err = valueobject.ParseDiabetesStatus(a.Diabetes)
	check(err)

	if a.Edad < 0 || a.Edad > maxAgeYears {
		errs = append(errs, fmt.Errorf("edad must be between 0 and %d, got %d", maxAgeYears, a.Edad))
	}
	if !(a.Peso > 0 && a.Peso <= maxWeightKg) {
		errs = append(errs, fmt.Errorf("peso must be in (0, %d] kg, got %v", maxWeightKg, a.Peso))
	}
	if !(a.Altura > 0 && a.Altura <= maxHeightCm) {
		errs = append(errs, fmt.Errorf("altura must be in (0, %d] cm, got %v", maxHeightCm, a.Altura))
	}
	if a.Peso > 0 && a.Peso <= maxWeightKg && a.Altura > 0 && a.Altura <= maxHeightCm {
		meters := a.Altura / 100
		if bmi := a.Peso / (meters * meters); bmi > MaxBMI {
			errs = append(errs, fmt.Errorf("peso %v kg and altura %v cm give an imc of %.2f, above %v", a.Peso, a.Altura, bmi, MaxBMI))
		}
	}
	if a.EstresDias < 0 || a.EstresDias > maxStressDays {
		errs = append(errs, fmt.Errorf("estres_dias must be between 0 and %d, got %d", maxStressDays, a.EstresDias))
	}

	if len(errs) > 0 {
		return AssessmentInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
	}
	return in, nil
}

// QuizResult is the optional knowledge-quiz block of a complete assessment.
type QuizResult struct {
	Answers             map[string]any
	PreviouslyDiagnosed valueobject.YesNo
	Score               int
}

// NewQuizResult validates the quiz block.
func NewQuizResult(previouslyDiagnosed, score int, answers map[string]any) (QuizResult, error) {
	diagnosed, err := valueobject.ParseYesNo("hta_diagnosticada_previamente", previouslyDiagnosed)
	if err != nil {
		return QuizResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if score < 0 {
		return QuizResult{}, fmt.Errorf("%w: puntaje_conocimiento_hta must not be negative, got %d", ErrInvalidInput, score)
	}
	if answers == nil {
		answers = map[string]any{}
	}
	return QuizResult{
		PreviouslyDiagnosed: diagnosed,
		Score:               score,
		Answers:             answers,
	}, nil
}
