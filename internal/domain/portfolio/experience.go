package portfolio

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Experience is one work history entry. Dates travel as ISO day strings.
type Experience struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Company     string    `json:"company" validate:"required"`
	Location    string    `json:"location,omitempty"`
	StartDate   string    `json:"startDate" validate:"required"`
	EndDate     string    `json:"endDate,omitempty"`
	Current     bool      `json:"current"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
}

// MarshalJSON drops EndDate whenever Current is set, so a stale end date in
// local form state can never reach the server.
func (e Experience) MarshalJSON() ([]byte, error) {
	type alias Experience
	a := alias(e)
	if a.Current {
		a.EndDate = ""
	}
	return json.Marshal(a)
}

func (e Experience) Validate() error {
	return toValidationError(validate.Struct(e))
}

// Normalized returns a copy with the current-flag precedence applied.
func (e Experience) Normalized() Experience {
	if e.Current {
		e.EndDate = ""
	}
	return e
}
