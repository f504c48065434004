package model

import "fmt"

// FeatureNames is the column order the trained model expects. Changing it
// requires retraining the model.
var FeatureNames = [FeatureCount]string{
	"age_bracket",
	"sexo",
	"bmi",
	"estres_dias",
	"frutas",
	"vegetales",
	"sal",
	"actividad",
	"tabaco",
	"vapeo",
	"alcohol",
	"diabetes",
	"colesterol",
}

// FeatureCount is the length of an encoded vector.
const FeatureCount = 13

const (
	featureAgeBracket = 0
	featureBMI        = 2
)

// FeatureVector is the ordered numeric input of the predictor.
type FeatureVector []float64

// CheckShape returns an error unless the vector has exactly want entries.
func (v FeatureVector) CheckShape(want int) error {
	if len(v) != want {
		return fmt.Errorf("feature vector has %d entries, want %d", len(v), want)
	}
	return nil
}

// AgeBracket returns the encoded age band of a well-formed vector.
func (v FeatureVector) AgeBracket() int {
	if len(v) <= featureAgeBracket {
		return 0
	}
	return int(v[featureAgeBracket])
}

// BMI returns the encoded body-mass index of a well-formed vector.
func (v FeatureVector) BMI() float64 {
	if len(v) <= featureBMI {
		return 0
	}
	return v[featureBMI]
}
