package devserver

import (
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/internal/domain/project"
	"github.com/khoahotran/folio-sync/internal/domain/user"
	"github.com/khoahotran/folio-sync/pkg/auth"
)

// account bundles one user with their portfolio and projects. The whole
// fixture lives in memory; restarting the server resets it.
type account struct {
	user         user.User
	passwordHash string
	portfolio    portfolio.Portfolio
	projects     []project.Project
}

type Store struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*account
	byEmail    map[string]uuid.UUID
	byUsername map[string]uuid.UUID
}

func NewStore() *Store {
	return &Store{
		byID:       make(map[uuid.UUID]*account),
		byEmail:    make(map[string]uuid.UUID),
		byUsername: make(map[string]uuid.UUID),
	}
}

// Seed registers an account directly, bypassing the HTTP surface. Used by
// main and the end-to-end tests.
func (s *Store) Seed(email, password, username, firstName, lastName string) (uuid.UUID, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	u := user.User{
		ID:        id,
		Email:     email,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	}
	s.byID[id] = &account{
		user:         u,
		passwordHash: hash,
		portfolio: portfolio.Portfolio{
			ID:    uuid.New(),
			User:  u,
			Links: map[string]string{},
		},
	}
	s.byEmail[email] = id
	s.byUsername[username] = id
	return id, nil
}

func (s *Store) byEmailLocked(email string) (*account, bool) {
	id, ok := s.byEmail[email]
	if !ok {
		return nil, false
	}
	return s.byID[id], true
}

func (s *Store) byUsernameLocked(username string) (*account, bool) {
	id, ok := s.byUsername[username]
	if !ok {
		return nil, false
	}
	return s.byID[id], true
}
