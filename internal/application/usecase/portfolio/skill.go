package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

type SkillAPI interface {
	AddSkill(ctx context.Context, s portfolio.Skill) (portfolio.Skill, error)
	UpdateSkill(ctx context.Context, id string, s portfolio.Skill) (portfolio.Skill, error)
	DeleteSkill(ctx context.Context, id string) error
}

type SkillCoordinator struct {
	api    SkillAPI
	cache  *Cache
	gate   submitGate
	logger logger.Logger
}

func NewSkillCoordinator(api SkillAPI, cache *Cache, log logger.Logger) *SkillCoordinator {
	return &SkillCoordinator{api: api, cache: cache, logger: log}
}

func (c *SkillCoordinator) Submitting() bool { return c.gate.active() }

func (c *SkillCoordinator) Add(ctx context.Context, s portfolio.Skill) (portfolio.Skill, error) {
	if err := s.Validate(); err != nil {
		return portfolio.Skill{}, err
	}
	if err := c.gate.begin(); err != nil {
		return portfolio.Skill{}, err
	}
	defer c.gate.end()

	created, err := c.api.AddSkill(ctx, s)
	if err != nil {
		c.logger.Error("add skill failed", err, zap.String("name", s.Name))
		return portfolio.Skill{}, err
	}
	c.cache.appendSkill(created)
	return created, nil
}

func (c *SkillCoordinator) Update(ctx context.Context, id uuid.UUID, s portfolio.Skill) (portfolio.Skill, error) {
	if err := s.Validate(); err != nil {
		return portfolio.Skill{}, err
	}
	if err := c.gate.begin(); err != nil {
		return portfolio.Skill{}, err
	}
	defer c.gate.end()

	updated, err := c.api.UpdateSkill(ctx, id.String(), s)
	if err != nil {
		c.logger.Error("update skill failed", err, zap.String("id", id.String()))
		return portfolio.Skill{}, err
	}
	c.cache.replaceSkill(updated)
	return updated, nil
}

func (c *SkillCoordinator) Remove(ctx context.Context, id uuid.UUID) error {
	if err := c.gate.begin(); err != nil {
		return err
	}
	defer c.gate.end()

	if err := c.api.DeleteSkill(ctx, id.String()); err != nil {
		c.logger.Error("delete skill failed", err, zap.String("id", id.String()))
		return err
	}
	c.cache.removeSkill(id)
	return nil
}

func (c *Cache) appendSkill(s portfolio.Skill) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	c.snapshot.Skills = append(c.snapshot.Skills, s)
}

func (c *Cache) replaceSkill(s portfolio.Skill) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	for i := range c.snapshot.Skills {
		if c.snapshot.Skills[i].ID == s.ID {
			c.snapshot.Skills[i] = s
			return
		}
	}
}

func (c *Cache) removeSkill(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return
	}
	for i := range c.snapshot.Skills {
		if c.snapshot.Skills[i].ID == id {
			c.snapshot.Skills = append(c.snapshot.Skills[:i], c.snapshot.Skills[i+1:]...)
			return
		}
	}
}
