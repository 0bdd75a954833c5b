package project

import (
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/pkg/apperror"
)

type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	GithubURL   string    `json:"githubUrl,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	ImageURLs   []string  `json:"imageUrls,omitempty"`
}

var ErrMissingName = errors.New("project name is required")

func (p Project) Validate() error {
	if p.Name == "" {
		return apperror.NewValidation(map[string]string{"Name": "required"})
	}
	return nil
}
