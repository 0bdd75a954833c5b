package portfolio

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/internal/domain/user"
	"github.com/khoahotran/folio-sync/pkg/apperror"
)

// Portfolio is the aggregate root. The server owns it; the client only ever
// holds the last fetched snapshot plus uncommitted form edits.
type Portfolio struct {
	ID            uuid.UUID         `json:"id"`
	User          user.User         `json:"user"`
	Headline      string            `json:"headline"`
	Summary       string            `json:"summary"`
	Location      string            `json:"location"`
	Website       string            `json:"website"`
	Links         map[string]string `json:"links"`
	CoverImageURL string            `json:"coverImageUrl"`
	Experiences   []Experience      `json:"experiences"`
	Education     []Education       `json:"education"`
	Skills        []Skill           `json:"skills"`
	References    []Reference       `json:"references"`
}

// Patch is a partial portfolio update. Nil pointers are omitted from the
// request body entirely; a pointer to the zero value clears the field.
type Patch struct {
	Headline      *string            `json:"headline,omitempty"`
	Summary       *string            `json:"summary,omitempty"`
	Location      *string            `json:"location,omitempty"`
	Website       *string            `json:"website,omitempty"`
	Links         *map[string]string `json:"links,omitempty"`
	CoverImageURL *string            `json:"coverImageUrl,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// toValidationError flattens validator output into the field map the rest of
// the client surfaces inline next to form inputs.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewValidation(map[string]string{"_": err.Error()})
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "required"
		case "email":
			fields[fe.Field()] = "must be a valid email"
		case "oneof":
			fields[fe.Field()] = "must be one of " + fe.Param()
		default:
			fields[fe.Field()] = "invalid"
		}
	}
	return apperror.NewValidation(fields)
}
