package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

type ReferenceAPI interface {
	AddReference(ctx context.Context, r portfolio.Reference) (portfolio.Reference, error)
	UpdateReference(ctx context.Context, id string, r portfolio.Reference) (portfolio.Reference, error)
	DeleteReference(ctx context.Context, id string) error
}

type ReferenceCoordinator struct {
	api    ReferenceAPI
	cache  *Cache
	gate   submitGate
	logger logger.Logger
}

func NewReferenceCoordinator(api ReferenceAPI, cache *Cache, log logger.Logger) *ReferenceCoordinator {
	return &ReferenceCoordinator{api: api, cache: cache, logger: log}
}

func (c *ReferenceCoordinator) Submitting() bool { return c.gate.active() }

func (c *ReferenceCoordinator) Add(ctx context.Context, r portfolio.Reference) (portfolio.Reference, error) {
	if err := r.Validate(); err != nil {
		return portfolio.Reference{}, err
	}
	if err := c.gate.begin(); err != nil {
		return portfolio.Reference{}, err
	}
	defer c.gate.end()

	created, err := c.api.AddReference(ctx, r)
	if err != nil {
		c.logger.Error("add reference failed", err, zap.String("name", r.Name))
		return portfolio.Reference{}, err
	}
	c.cache.appendReference(created)
	return created, nil
}

func (c *ReferenceCoordinator) Update(ctx context.Context, id uuid.UUID, r portfolio.Reference) (portfolio.Reference, error) {
	if err := r.Validate(); err != nil {
		return portfolio.Reference{}, err
	}
	if err := c.gate.begin(); err != nil {
		return portfolio.Reference{}, err
	}
	defer c.gate.end()

	updated, err := c.api.UpdateReference(ctx, id.String(), r)
	if err != nil {
		c.logger.Error("update reference failed", err, zap.String("id", id.String()))
		return portfolio.Reference{}, err
	}
	c.cache.replaceReference(updated)
	return updated, nil
}

func (c *ReferenceCoordinator) Remove(ctx context.Context, id uuid.UUID) error {
	if err := c.gate.begin(); err != nil {
		return err
	}
	defer c.gate.end()

	if err := c.api.DeleteReference(ctx, id.String()); err != nil {
		c.logger.Error("delete reference failed", err, zap.String("id", id.String()))
		return err
	}
	c.cache.removeReference(id)
	return nil
}

func (c *Cache) appendReference(r portfolio.Reference) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	c.snapshot.References = append(c.snapshot.References, r)
}

func (c *Cache) replaceReference(r portfolio.Reference) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	for i := range c.snapshot.References {
		if c.snapshot.References[i].ID == r.ID {
			c.snapshot.References[i] = r
			return
		}
	}
}

func (c *Cache) removeReference(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	for i := range c.snapshot.References {
		if c.snapshot.References[i].ID == id {
			c.snapshot.References = append(c.snapshot.References[:i], c.snapshot.References[i+1:]...)
			return
		}
	}
}
