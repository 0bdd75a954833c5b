package rest

import (
	"context"
	"net/http"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
)

type educationBody struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartYear   int    `json:"startYear,omitempty"`
	EndYear     int    `json:"endYear,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

func toEducationBody(e portfolio.Education) educationBody {
	e = e.Normalized()
	return educationBody{
		School:      e.School,
		Degree:      e.Degree,
		Field:       e.Field,
		StartYear:   e.StartYear,
		EndYear:     e.EndYear,
		Current:     e.Current,
		Description: e.Description,
		Order:       e.Order,
	}
}

type educationEnvelope struct {
	Education portfolio.Education `json:"education"`
}

func (c *Client) AddEducation(ctx context.Context, e portfolio.Education) (portfolio.Education, error) {
	var env educationEnvelope
	if err := c.do(ctx, http.MethodPost, "/portfolio/education", toEducationBody(e), &env); err != nil {
		return portfolio.Education{}, err
	}
	return env.Education, nil
}

func (c *Client) UpdateEducation(ctx context.Context, id string, e portfolio.Education) (portfolio.Education, error) {
	var env educationEnvelope
	if err := c.do(ctx, http.MethodPatch, "/portfolio/education/"+id, toEducationBody(e), &env); err != nil {
		return portfolio.Education{}, err
	}
	return env.Education, nil
}

func (c *Client) DeleteEducation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/education/"+id, nil, nil)
}
