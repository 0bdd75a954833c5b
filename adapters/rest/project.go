package rest

import (
	"context"
	"net/http"

	"github.com/khoahotran/folio-sync/internal/domain/project"
)

type projectBody struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	GithubURL   string   `json:"githubUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

func toProjectBody(p project.Project) projectBody {
	return projectBody{
		Name:        p.Name,
		Description: p.Description,
		GithubURL:   p.GithubURL,
		Tags:        p.Tags,
		ImageURLs:   p.ImageURLs,
	}
}

type projectEnvelope struct {
	Project project.Project `json:"project"`
}

func (c *Client) ListProjects(ctx context.Context) ([]project.Project, error) {
	var env struct {
		Projects []project.Project `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &env); err != nil {
		return nil, err
	}
	return env.Projects, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (project.Project, error) {
	var env projectEnvelope
	if err := c.do(ctx, http.MethodGet, "/projects/"+id, nil, &env); err != nil {
		return project.Project{}, err
	}
	return env.Project, nil
}

func (c *Client) AddProject(ctx context.Context, p project.Project) (project.Project, error) {
	var env projectEnvelope
	if err := c.do(ctx, http.MethodPost, "/projects", toProjectBody(p), &env); err != nil {
		return project.Project{}, err
	}
	return env.Project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, p project.Project) (project.Project, error) {
	var env projectEnvelope
	if err := c.do(ctx, http.MethodPatch, "/projects/"+id, toProjectBody(p), &env); err != nil {
		return project.Project{}, err
	}
	return env.Project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil)
}
