package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
)

func (s *Server) getOwnPortfolio(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": acc.portfolio})
}

// getPublicPortfolio serves GET /portfolio/{username}. The path shape also
// carries the dedicated references listing (GET /portfolio/references), so
// that segment is dispatched here before the username lookup.
func (s *Server) getPublicPortfolio(c *gin.Context) {
	username := c.Param("username")
	if username == "references" {
		s.listReferences(c)
		return
	}

	s.store.mu.Lock()
	acc, ok := s.store.byUsernameLocked(username)
	s.store.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, errorBody("portfolio not found", http.StatusNotFound, nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": acc.portfolio})
}

func (s *Server) listReferences(c *gin.Context) {
	// The references endpoint is authenticated; the username route it shares
	// its path shape with is not, so auth runs here instead of as middleware.
	authMiddleware(s.jwt)(c)
	if c.IsAborted() {
		return
	}

	acc, ok := s.account(c)
	if !ok {
		return
	}
	refs := acc.portfolio.References
	if refs == nil {
		refs = []portfolio.Reference{}
	}
	c.JSON(http.StatusOK, gin.H{"references": refs})
}

func (s *Server) updatePortfolio(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}

	var patch portfolio.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid portfolio patch", http.StatusBadRequest, nil))
		return
	}

	s.store.mu.Lock()
	if patch.Headline != nil {
		acc.portfolio.Headline = *patch.Headline
	}
	if patch.Summary != nil {
		acc.portfolio.Summary = *patch.Summary
	}
	if patch.Location != nil {
		acc.portfolio.Location = *patch.Location
	}
	if patch.Website != nil {
		acc.portfolio.Website = *patch.Website
	}
	if patch.Links != nil {
		acc.portfolio.Links = *patch.Links
	}
	if patch.CoverImageURL != nil {
		acc.portfolio.CoverImageURL = *patch.CoverImageURL
	}
	updated := acc.portfolio
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"portfolio": updated})
}
