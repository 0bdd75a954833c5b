// Package devserver is an in-memory stand-in for the remote portfolio
// service. It implements the same wire contract the real API speaks, so the
// client can be developed and end-to-end tested with zero infrastructure.
package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/pkg/auth"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

type Server struct {
	store  *Store
	jwt    *auth.JWTService
	logger logger.Logger
}

func NewRouter(store *Store, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	s := &Server{store: store, jwt: jwtSvc, logger: log}

	router := gin.New()
	router.Use(gin.Recovery())

	authed := authMiddleware(jwtSvc)

	router.POST("/auth/login", s.login)
	router.POST("/auth/register", s.register)
	router.GET("/auth/me", authed, s.me)

	router.GET("/portfolio", authed, s.getOwnPortfolio)
	router.GET("/portfolio/:username", s.getPublicPortfolio)
	router.PATCH("/portfolio", authed, s.updatePortfolio)

	router.POST("/portfolio/experiences", authed, s.addExperience)
	router.PATCH("/portfolio/experiences/:id", authed, s.updateExperience)
	router.DELETE("/portfolio/experiences/:id", authed, s.deleteExperience)

	router.POST("/portfolio/education", authed, s.addEducation)
	router.PATCH("/portfolio/education/:id", authed, s.updateEducation)
	router.DELETE("/portfolio/education/:id", authed, s.deleteEducation)

	router.POST("/portfolio/skills", authed, s.addSkill)
	router.PATCH("/portfolio/skills/:id", authed, s.updateSkill)
	router.DELETE("/portfolio/skills/:id", authed, s.deleteSkill)

	router.POST("/portfolio/references", authed, s.addReference)
	router.PATCH("/portfolio/references/:id", authed, s.updateReference)
	router.DELETE("/portfolio/references/:id", authed, s.deleteReference)

	router.GET("/projects", authed, s.listProjects)
	router.POST("/projects", authed, s.addProject)
	router.GET("/projects/:id", authed, s.getProject)
	router.PATCH("/projects/:id", authed, s.updateProject)
	router.DELETE("/projects/:id", authed, s.deleteProject)

	return router
}

// account resolves the authenticated caller's account. Responds 401 itself
// when the context carries no owner.
func (s *Server) account(c *gin.Context) (*account, bool) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody("cannot resolve owner from context", http.StatusUnauthorized, nil))
		return nil, false
	}

	s.store.mu.Lock()
	acc, ok := s.store.byID[ownerID]
	s.store.mu.Unlock()
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody("account no longer exists", http.StatusUnauthorized, nil))
		return nil, false
	}
	return acc, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid id", http.StatusBadRequest, nil))
		return uuid.Nil, false
	}
	return id, true
}
