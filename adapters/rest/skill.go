package rest

import (
	"context"
	"net/http"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
)

type skillBody struct {
	Name  string          `json:"name"`
	Level portfolio.Level `json:"level"`
}

type skillEnvelope struct {
	Skill portfolio.Skill `json:"skill"`
}

func (c *Client) AddSkill(ctx context.Context, s portfolio.Skill) (portfolio.Skill, error) {
	var env skillEnvelope
	if err := c.do(ctx, http.MethodPost, "/portfolio/skills", skillBody{Name: s.Name, Level: s.Level}, &env); err != nil {
		return portfolio.Skill{}, err
	}
	return env.Skill, nil
}

func (c *Client) UpdateSkill(ctx context.Context, id string, s portfolio.Skill) (portfolio.Skill, error) {
	var env skillEnvelope
	if err := c.do(ctx, http.MethodPatch, "/portfolio/skills/"+id, skillBody{Name: s.Name, Level: s.Level}, &env); err != nil {
		return portfolio.Skill{}, err
	}
	return env.Skill, nil
}

func (c *Client) DeleteSkill(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/skills/"+id, nil, nil)
}
