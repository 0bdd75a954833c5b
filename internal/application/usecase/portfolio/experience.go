package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

type ExperienceAPI interface {
	AddExperience(ctx context.Context, e portfolio.Experience) (portfolio.Experience, error)
	UpdateExperience(ctx context.Context, id string, e portfolio.Experience) (portfolio.Experience, error)
	DeleteExperience(ctx context.Context, id string) error
}

// ExperienceCoordinator runs add/update/remove against the server and
// reconciles successes into the cache. State machine per mutation:
// Idle -> Submitting -> Idle. At most one mutation is in flight per
// coordinator instance; a second call while Submitting returns ErrBusy.
type ExperienceCoordinator struct {
	api    ExperienceAPI
	cache  *Cache
	gate   submitGate
	logger logger.Logger
}

func NewExperienceCoordinator(api ExperienceAPI, cache *Cache, log logger.Logger) *ExperienceCoordinator {
	return &ExperienceCoordinator{api: api, cache: cache, logger: log}
}

func (c *ExperienceCoordinator) Submitting() bool { return c.gate.active() }

// Add validates first; an invalid entry means no network call and no state
// change. On failure the caller's input is untouched, so nothing the user
// typed is lost.
func (c *ExperienceCoordinator) Add(ctx context.Context, e portfolio.Experience) (portfolio.Experience, error) {
	if err := e.Validate(); err != nil {
		return portfolio.Experience{}, err
	}
	if err := c.gate.begin(); err != nil {
		return portfolio.Experience{}, err
	}
	defer c.gate.end()

	created, err := c.api.AddExperience(ctx, e.Normalized())
	if err != nil {
		c.logger.Error("add experience failed", err, zap.String("title", e.Title))
		return portfolio.Experience{}, err
	}
	c.cache.appendExperience(created)
	return created, nil
}

func (c *ExperienceCoordinator) Update(ctx context.Context, id uuid.UUID, e portfolio.Experience) (portfolio.Experience, error) {
	if err := e.Validate(); err != nil {
		return portfolio.Experience{}, err
	}
	if err := c.gate.begin(); err != nil {
		return portfolio.Experience{}, err
	}
	defer c.gate.end()

	updated, err := c.api.UpdateExperience(ctx, id.String(), e.Normalized())
	if err != nil {
		c.logger.Error("update experience failed", err, zap.String("id", id.String()))
		return portfolio.Experience{}, err
	}
	c.cache.replaceExperience(updated)
	return updated, nil
}

// Remove deletes remotely first and only drops the entry from the cache on
// success; a rejected delete leaves the entry listed.
func (c *ExperienceCoordinator) Remove(ctx context.Context, id uuid.UUID) error {
	if err := c.gate.begin(); err != nil {
		return err
	}
	defer c.gate.end()

	if err := c.api.DeleteExperience(ctx, id.String()); err != nil {
		c.logger.Error("delete experience failed", err, zap.String("id", id.String()))
		return err
	}
	c.cache.removeExperience(id)
	return nil
}

func (c *Cache) appendExperience(e portfolio.Experience) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	c.snapshot.Experiences = append(c.snapshot.Experiences, e)
}

func (c *Cache) replaceExperience(e portfolio.Experience) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	for i := range c.snapshot.Experiences {
		if c.snapshot.Experiences[i].ID == e.ID {
			c.snapshot.Experiences[i] = e
			return
		}
	}
}

func (c *Cache) removeExperience(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	for i := range c.snapshot.Experiences {
		if c.snapshot.Experiences[i].ID == id {
			c.snapshot.Experiences = append(c.snapshot.Experiences[:i], c.snapshot.Experiences[i+1:]...)
			return
		}
	}
}
