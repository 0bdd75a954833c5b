package portfolio

import (
	"encoding/json"

	"github.com/google/uuid"
)

type Education struct {
	ID          uuid.UUID `json:"id"`
	School      string    `json:"school" validate:"required"`
	Degree      string    `json:"degree" validate:"required"`
	Field       string    `json:"field,omitempty"`
	StartYear   int       `json:"startYear,omitempty"`
	EndYear     int       `json:"endYear,omitempty"`
	Current     bool      `json:"current"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
}

// MarshalJSON drops EndYear whenever Current is set, mirroring Experience.
func (e Education) MarshalJSON() ([]byte, error) {
	type alias Education
	a := alias(e)
	if a.Current {
		a.EndYear = 0
	}
	return json.Marshal(a)
}

func (e Education) Validate() error {
	return toValidationError(validate.Struct(e))
}

func (e Education) Normalized() Education {
	if e.Current {
		e.EndYear = 0
	}
	return e
}
