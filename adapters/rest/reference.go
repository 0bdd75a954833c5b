package rest

import (
	"context"
	"net/http"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
)

type referenceBody struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	Company      string `json:"company"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship"`
}

func toReferenceBody(r portfolio.Reference) referenceBody {
	return referenceBody{
		Name:         r.Name,
		Position:     r.Position,
		Company:      r.Company,
		Email:        r.Email,
		Phone:        r.Phone,
		Relationship: r.Relationship,
	}
}

type referenceEnvelope struct {
	Reference portfolio.Reference `json:"reference"`
}

func (c *Client) AddReference(ctx context.Context, r portfolio.Reference) (portfolio.Reference, error) {
	var env referenceEnvelope
	if err := c.do(ctx, http.MethodPost, "/portfolio/references", toReferenceBody(r), &env); err != nil {
		return portfolio.Reference{}, err
	}
	return env.Reference, nil
}

func (c *Client) UpdateReference(ctx context.Context, id string, r portfolio.Reference) (portfolio.Reference, error) {
	var env referenceEnvelope
	if err := c.do(ctx, http.MethodPatch, "/portfolio/references/"+id, toReferenceBody(r), &env); err != nil {
		return portfolio.Reference{}, err
	}
	return env.Reference, nil
}

func (c *Client) DeleteReference(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/references/"+id, nil, nil)
}

// ListReferences hits the dedicated references endpoint. The cache only uses
// it through its explicit RefreshReferences escape hatch; the default read
// path derives references from the aggregate snapshot.
func (c *Client) ListReferences(ctx context.Context) ([]portfolio.Reference, error) {
	var env struct {
		References []portfolio.Reference `json:"references"`
	}
	if err := c.do(ctx, http.MethodGet, "/portfolio/references", nil, &env); err != nil {
		return nil, err
	}
	return env.References, nil
}
