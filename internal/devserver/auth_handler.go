package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/internal/domain/user"
	"github.com/khoahotran/folio-sync/pkg/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid login payload", http.StatusBadRequest, nil))
		return
	}

	s.store.mu.Lock()
	acc, ok := s.store.byEmailLocked(req.Email)
	s.store.mu.Unlock()

	if !ok || !auth.CheckPasswordHash(req.Password, acc.passwordHash) {
		c.JSON(http.StatusUnauthorized, errorBody("email or password is incorrect", http.StatusUnauthorized, nil))
		return
	}

	token, err := s.jwt.GenerateToken(acc.user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", err)
		c.JSON(http.StatusInternalServerError, errorBody("failed to generate token", http.StatusInternalServerError, nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login successful", "accessToken": token})
}

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid registration payload", http.StatusBadRequest, nil))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("failed to hash password", http.StatusInternalServerError, nil))
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.byEmail[req.Email]; exists {
		c.JSON(http.StatusConflict, errorBody("email already registered", http.StatusConflict,
			map[string][]string{"email": {"already taken"}}))
		return
	}

	id := uuid.New()
	u := user.User{
		ID:        id,
		Email:     req.Email,
		Username:  req.Email, // usernames default to the email until changed
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	s.store.byID[id] = &account{
		user:         u,
		passwordHash: hash,
		portfolio: portfolio.Portfolio{
			ID:    uuid.New(),
			User:  u,
			Links: map[string]string{},
		},
	}
	s.store.byEmail[req.Email] = id
	s.store.byUsername[u.Username] = id

	c.JSON(http.StatusCreated, gin.H{"user": u})
}

func (s *Server) me(c *gin.Context) {
	acc, ok := s.account(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, acc.user)
}
