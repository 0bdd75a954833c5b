package rest

import (
	"context"
	"net/http"

	"github.com/khoahotran/folio-sync/internal/domain/user"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for a bearer token. Persisting the token is
// the session use case's job, not the client's.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	var resp struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &resp); err != nil {
		return user.User{}, err
	}
	return resp.User, nil
}

func (c *Client) Me(ctx context.Context) (user.User, error) {
	var u user.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}
