package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/pkg/apperror"
)

// respondInvalid maps a domain validation failure into the wire envelope.
func respondInvalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody("validation failed", http.StatusBadRequest, apperror.FieldErrors(err)))
}

// Experiences

func (s *Server) addExperience(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}

	var e portfolio.Experience
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid experience payload", http.StatusBadRequest, nil))
		return
	}
	if err := e.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	e.ID = uuid.New()
	e = e.Normalized()

	s.store.mu.Lock()
	acc.portfolio.Experiences = append(acc.portfolio.Experiences, e)
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"experience": e})
}

func (s *Server) updateExperience(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var e portfolio.Experience
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid experience payload", http.StatusBadRequest, nil))
		return
	}
	if err := e.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range acc.portfolio.Experiences {
		if acc.portfolio.Experiences[i].ID == id {
			e.ID = id
			acc.portfolio.Experiences[i] = e.Normalized()
			c.JSON(http.StatusOK, gin.H{"experience": acc.portfolio.Experiences[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("experience not found", http.StatusNotFound, nil))
}

func (s *Server) deleteExperience(c *gin.Context) {
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
	for i := range acc.portfolio.Experiences {
		if acc.portfolio.Experiences[i].ID == id {
			acc.portfolio.Experiences = append(acc.portfolio.Experiences[:i], acc.portfolio.Experiences[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("experience not found", http.StatusNotFound, nil))
}

// Education

func (s *Server) addEducation(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}

	var e portfolio.Education
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid education payload", http.StatusBadRequest, nil))
		return
	}
	if err := e.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	e.ID = uuid.New()
	e = e.Normalized()

	s.store.mu.Lock()
	acc.portfolio.Education = append(acc.portfolio.Education, e)
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"education": e})
}

func (s *Server) updateEducation(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var e portfolio.Education
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid education payload", http.StatusBadRequest, nil))
		return
	}
	if err := e.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range acc.portfolio.Education {
		if acc.portfolio.Education[i].ID == id {
			e.ID = id
			acc.portfolio.Education[i] = e.Normalized()
			c.JSON(http.StatusOK, gin.H{"education": acc.portfolio.Education[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("education entry not found", http.StatusNotFound, nil))
}

func (s *Server) deleteEducation(c *gin.Context) {
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
	for i := range acc.portfolio.Education {
		if acc.portfolio.Education[i].ID == id {
			acc.portfolio.Education = append(acc.portfolio.Education[:i], acc.portfolio.Education[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("education entry not found", http.StatusNotFound, nil))
}

// Skills

func (s *Server) addSkill(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}

	var sk portfolio.Skill
	if err := c.ShouldBindJSON(&sk); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid skill payload", http.StatusBadRequest, nil))
		return
	}
	if err := sk.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	sk.ID = uuid.New()

	s.store.mu.Lock()
	acc.portfolio.Skills = append(acc.portfolio.Skills, sk)
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"skill": sk})
}

func (s *Server) updateSkill(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var sk portfolio.Skill
	if err := c.ShouldBindJSON(&sk); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid skill payload", http.StatusBadRequest, nil))
		return
	}
	if err := sk.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range acc.portfolio.Skills {
		if acc.portfolio.Skills[i].ID == id {
			sk.ID = id
			acc.portfolio.Skills[i] = sk
			c.JSON(http.StatusOK, gin.H{"skill": sk})
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("skill not found", http.StatusNotFound, nil))
}

func (s *Server) deleteSkill(c *gin.Context) {
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
	for i := range acc.portfolio.Skills {
		if acc.portfolio.Skills[i].ID == id {
			acc.portfolio.Skills = append(acc.portfolio.Skills[:i], acc.portfolio.Skills[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("skill not found", http.StatusNotFound, nil))
}

// References

func (s *Server) addReference(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}

	var r portfolio.Reference
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid reference payload", http.StatusBadRequest, nil))
		return
	}
	if err := r.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	r.ID = uuid.New()

	s.store.mu.Lock()
	acc.portfolio.References = append(acc.portfolio.References, r)
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"reference": r})
}

func (s *Server) updateReference(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var r portfolio.Reference
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid reference payload", http.StatusBadRequest, nil))
		return
	}
	if err := r.Validate(); err != nil {
		respondInvalid(c, err)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range acc.portfolio.References {
		if acc.portfolio.References[i].ID == id {
			r.ID = id
			acc.portfolio.References[i] = r
			c.JSON(http.StatusOK, gin.H{"reference": r})
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("reference not found", http.StatusNotFound, nil))
}

func (s *Server) deleteReference(c *gin.Context) {
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
	for i := range acc.portfolio.References {
		if acc.portfolio.References[i].ID == id {
			acc.portfolio.References = append(acc.portfolio.References[:i], acc.portfolio.References[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("reference not found", http.StatusNotFound, nil))
}
