package rest

import (
	"context"
	"net/http"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
)

type portfolioEnvelope struct {
	Portfolio portfolio.Portfolio `json:"portfolio"`
}

// GetPortfolio fetches the authenticated caller's own portfolio.
func (c *Client) GetPortfolio(ctx context.Context) (portfolio.Portfolio, error) {
	var env portfolioEnvelope
	if err := c.do(ctx, http.MethodGet, "/portfolio", nil, &env); err != nil {
		return portfolio.Portfolio{}, err
	}
	return env.Portfolio, nil
}

// GetPortfolioByUsername fetches a public portfolio. Same shape, no auth
// requirement.
func (c *Client) GetPortfolioByUsername(ctx context.Context, username string) (portfolio.Portfolio, error) {
	var env portfolioEnvelope
	if err := c.do(ctx, http.MethodGet, "/portfolio/"+username, nil, &env); err != nil {
		return portfolio.Portfolio{}, err
	}
	return env.Portfolio, nil
}

// UpdatePortfolio sends a partial update. Only non-nil Patch fields travel;
// the caller chooses a pointer to the zero value to clear a field.
func (c *Client) UpdatePortfolio(ctx context.Context, patch portfolio.Patch) (portfolio.Portfolio, error) {
	var env portfolioEnvelope
	if err := c.do(ctx, http.MethodPatch, "/portfolio", patch, &env); err != nil {
		return portfolio.Portfolio{}, err
	}
	return env.Portfolio, nil
}
