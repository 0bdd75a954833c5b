package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

type EducationAPI interface {
	AddEducation(ctx context.Context, e portfolio.Education) (portfolio.Education, error)
	UpdateEducation(ctx context.Context, id string, e portfolio.Education) (portfolio.Education, error)
	DeleteEducation(ctx context.Context, id string) error
}

type EducationCoordinator struct {
	api    EducationAPI
	cache  *Cache
	gate   submitGate
	logger logger.Logger
}

func NewEducationCoordinator(api EducationAPI, cache *Cache, log logger.Logger) *EducationCoordinator {
	return &EducationCoordinator{api: api, cache: cache, logger: log}
}

func (c *EducationCoordinator) Submitting() bool { return c.gate.active() }

func (c *EducationCoordinator) Add(ctx context.Context, e portfolio.Education) (portfolio.Education, error) {
	if err := e.Validate(); err != nil {
		return portfolio.Education{}, err
	}
	if err := c.gate.begin(); err != nil {
		return portfolio.Education{}, err
	}
	defer c.gate.end()

	created, err := c.api.AddEducation(ctx, e.Normalized())
	if err != nil {
		c.logger.Error("add education failed", err, zap.String("school", e.School))
		return portfolio.Education{}, err
	}
	c.cache.appendEducation(created)
	return created, nil
}

func (c *EducationCoordinator) Update(ctx context.Context, id uuid.UUID, e portfolio.Education) (portfolio.Education, error) {
	if err := e.Validate(); err != nil {
		return portfolio.Education{}, err
	}
	if err := c.gate.begin(); err != nil {
		return portfolio.Education{}, err
	}
	defer c.gate.end()

	updated, err := c.api.UpdateEducation(ctx, id.String(), e.Normalized())
	if err != nil {
		c.logger.Error("update education failed", err, zap.String("id", id.String()))
		return portfolio.Education{}, err
	}
	c.cache.replaceEducation(updated)
	return updated, nil
}

func (c *EducationCoordinator) Remove(ctx context.Context, id uuid.UUID) error {
	if err := c.gate.begin(); err != nil {
		return err
	}
	defer c.gate.end()

	if err := c.api.DeleteEducation(ctx, id.String()); err != nil {
		c.logger.Error("delete education failed", err, zap.String("id", id.String()))
		return err
	}
	c.cache.removeEducation(id)
	return nil
}

func (c *Cache) appendEducation(e portfolio.Education) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	c.snapshot.Education = append(c.snapshot.Education, e)
}

func (c *Cache) replaceEducation(e portfolio.Education) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	for i := range c.snapshot.Education {
		if c.snapshot.Education[i].ID == e.ID {
			c.snapshot.Education[i] = e
			return
		}
	}
}

func (c *Cache) removeEducation(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	for i := range c.snapshot.Education {
		if c.snapshot.Education[i].ID == id {
			c.snapshot.Education = append(c.snapshot.Education[:i], c.snapshot.Education[i+1:]...)
			return
		}
	}
}
