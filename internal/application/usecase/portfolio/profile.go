package portfolio

import (
	"context"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
)

// PortfolioAPI is the slice of the REST client profile-field commits go
// through.
type PortfolioAPI interface {
	UpdatePortfolio(ctx context.Context, patch portfolio.Patch) (portfolio.Portfolio, error)
}

// Field keys accepted by the profile FieldSync.
const (
	FieldHeadline = "headline"
	FieldSummary  = "summary"
	FieldLocation = "location"
	FieldWebsite  = "website"
)

// NewProfileFieldSync wires a FieldSync whose commits become partial
// portfolio PATCHes. Only dirty fields travel; the server's response
// replaces the cached snapshot.
func NewProfileFieldSync(api PortfolioAPI, cache *Cache, opts ...FieldSyncOption) *FieldSync {
	commit := func(ctx context.Context, fields map[string]any) error {
		var patch portfolio.Patch
		for key, value := range fields {
			s, ok := value.(string)
			if !ok {
				continue
			}
			switch key {
			case FieldHeadline:
				patch.Headline = &s
			case FieldSummary:
				patch.Summary = &s
			case FieldLocation:
				patch.Location = &s
			case FieldWebsite:
				patch.Website = &s
			}
		}

		updated, err := api.UpdatePortfolio(ctx, patch)
		if err != nil {
			return err
		}
		cache.replaceSnapshot(updated)
		return nil
	}
	return NewFieldSync(commit, opts...)
}
