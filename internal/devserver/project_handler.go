package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/internal/domain/project"
)

func (s *Server) listProjects(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}

	s.store.mu.Lock()
	projects := make([]project.Project, len(acc.projects))
	copy(projects, acc.projects)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) getProject(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, p := range acc.projects {
		if p.ID == id {
			c.JSON(http.StatusOK, gin.H{"project": p})
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("project not found", http.StatusNotFound, nil))
}

func (s *Server) addProject(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}

	var p project.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid project payload", http.StatusBadRequest, nil))
		return
	}
	if err := p.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	p.ID = uuid.New()

	s.store.mu.Lock()
	acc.projects = append(acc.projects, p)
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"project": p})
}

func (s *Server) updateProject(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var p project.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid project payload", http.StatusBadRequest, nil))
		return
	}
	if err := p.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range acc.projects {
		if acc.projects[i].ID == id {
			p.ID = id
			acc.projects[i] = p
			c.JSON(http.StatusOK, gin.H{"project": p})
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("project not found", http.StatusNotFound, nil))
}

func (s *Server) deleteProject(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range acc.projects {
		if acc.projects[i].ID == id {
			acc.projects = append(acc.projects[:i], acc.projects[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("project not found", http.StatusNotFound, nil))
}
