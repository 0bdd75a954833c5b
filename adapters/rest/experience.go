package rest

import (
	"context"
	"net/http"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
)

// experienceBody is the wire payload for add/update. It deliberately has no
// id field, and the current-flag precedence is applied before marshaling.
type experienceBody struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

func toExperienceBody(e portfolio.Experience) experienceBody {
	e = e.Normalized()
	return experienceBody{
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Current:     e.Current,
		Description: e.Description,
		Order:       e.Order,
	}
}

type experienceEnvelope struct {
	Experience portfolio.Experience `json:"experience"`
}

func (c *Client) AddExperience(ctx context.Context, e portfolio.Experience) (portfolio.Experience, error) {
	var env experienceEnvelope
	if err := c.do(ctx, http.MethodPost, "/portfolio/experiences", toExperienceBody(e), &env); err != nil {
		return portfolio.Experience{}, err
	}
	return env.Experience, nil
}

func (c *Client) UpdateExperience(ctx context.Context, id string, e portfolio.Experience) (portfolio.Experience, error) {
	var env experienceEnvelope
	if err := c.do(ctx, http.MethodPatch, "/portfolio/experiences/"+id, toExperienceBody(e), &env); err != nil {
		return portfolio.Experience{}, err
	}
	return env.Experience, nil
}

// DeleteExperience succeeds on 204; the absence of an error is the only
// success signal.
func (c *Client) DeleteExperience(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/experiences/"+id, nil, nil)
}
