package portfolio

import "github.com/google/uuid"

type Reference struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Position     string    `json:"position" validate:"required"`
	Company      string    `json:"company" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone,omitempty"`
	Relationship string    `json:"relationship" validate:"required"`
}

func (r Reference) Validate() error {
	return toValidationError(validate.Struct(r))
}
