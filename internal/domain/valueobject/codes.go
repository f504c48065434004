package valueobject

import (
	"errors"
	"fmt"
)

// LabelUnknown is the label of any code outside its table.
const LabelUnknown = "Desconocido"

// ErrUnknownCode is returned when parsing a code that has no variant.
var ErrUnknownCode = errors.New("unknown code")

// Sex is the coded biological sex answer.
type Sex int

const (
	SexFemale Sex = 0
	SexMale   Sex = 1
)

// ParseSex validates a raw code.
func ParseSex(code int) (Sex, error) {
	s := Sex(code)
	if s.Label() == LabelUnknown {
		return 0, fmt.Errorf("%w: sexo=%d", ErrUnknownCode, code)
	}
	return s, nil
}

// Label returns the human-readable text stored with an assessment.
func (s Sex) Label() string {
	switch s {
	case SexFemale:
		return "Mujer"
	case SexMale:
		return "Hombre"
	default:
		return LabelUnknown
	}
}

// YesNo is a binary answer.
type YesNo int

const (
	No  YesNo = 0
	Yes YesNo = 1
)

// ParseYesNo validates a raw code; field is used in the error message.
func ParseYesNo(field string, code int) (YesNo, error) {
	v := YesNo(code)
	if v.Label() == LabelUnknown {
		return 0, fmt.Errorf("%w: %s=%d", ErrUnknownCode, field, code)
	}
	return v, nil
}

// Label returns the human-readable text stored with an assessment.
func (v YesNo) Label() string {
	switch v {
	case No:
		return "No"
	case Yes:
		return "Sí"
	default:
		return LabelUnknown
	}
}

// Bool reports whether the answer is Yes.
func (v YesNo) Bool() bool { return v == Yes }

// SmokingStatus is the coded tobacco-use answer.
type SmokingStatus int

const (
	SmokesDaily        SmokingStatus = 1
	SmokesOccasionally SmokingStatus = 2
	FormerSmoker       SmokingStatus = 3
	NeverSmoked        SmokingStatus = 4
)

// ParseSmokingStatus validates a raw code.
func ParseSmokingStatus(code int) (SmokingStatus, error) {
	s := SmokingStatus(code)
	if s.Label() == LabelUnknown {
		return 0, fmt.Errorf("%w: tabaco=%d", ErrUnknownCode, code)
	}
	return s, nil
}

// Label returns the human-readable text stored with an assessment.
func (s SmokingStatus) Label() string {
	switch s {
	case SmokesDaily:
		return "Fumador diario"
	case SmokesOccasionally:
		return "Fumador ocasional"
	case FormerSmoker:
		return "Exfumador"
	case NeverSmoked:
		return "Nunca ha fumado"
	default:
		return LabelUnknown
	}
}

// VapingStatus is the coded e-cigarette-use answer.
type VapingStatus int

const (
	VapesDaily        VapingStatus = 1
	VapesOccasionally VapingStatus = 2
	FormerVaper       VapingStatus = 3
	NeverVaped        VapingStatus = 4
)

// ParseVapingStatus validates a raw code.
func ParseVapingStatus(code int) (VapingStatus, error) {
	v := VapingStatus(code)
	if v.Label() == LabelUnknown {
		return 0, fmt.Errorf("%w: vapeo=%d", ErrUnknownCode, code)
	}
	return v, nil
}

// Label returns the human-readable text stored with an assessment.
func (v VapingStatus) Label() string {
	switch v {
	case VapesDaily:
		return "Vapea diariamente"
	case VapesOccasionally:
		return "Vapea ocasionalmente"
	case FormerVaper:
		return "Exusuario de vapeo"
	case NeverVaped:
		return "Nunca ha vapeado"
	default:
		return LabelUnknown
	}
}

// DiabetesStatus is the coded diabetes answer.
type DiabetesStatus int

const (
	NoDiabetes  DiabetesStatus = 0
	Prediabetes DiabetesStatus = 1
	Diabetes    DiabetesStatus = 2
)

// ParseDiabetesStatus validates a raw code.
func ParseDiabetesStatus(code int) (DiabetesStatus, error) {
	d := DiabetesStatus(code)
	if d.Label() == LabelUnknown {
		return 0, fmt.Errorf("%w: diabetes=%d", ErrUnknownCode, code)
	}
	return d, nil
}

// Label returns the human-readable text stored with an assessment.
func (d DiabetesStatus) Label() string {
	switch d {
	case NoDiabetes:
		return "No"
	case Prediabetes:
		return "Prediabetes"
	case Diabetes:
		return "Diabetes"
	default:
		return LabelUnknown
	}
}
