package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/folio-sync/adapters/credstore"
	"github.com/khoahotran/folio-sync/adapters/rest"
	"github.com/khoahotran/folio-sync/pkg/apperror"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

func TestLoginStoresTokenAndAttachesBearer(t *testing.T) {
	var portfolioAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{"message": "ok", "accessToken": "tok-xyz"})
		case "/portfolio":
			portfolioAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"portfolio": map[string]any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := credstore.New(filepath.Join(t.TempDir(), "credentials"))
	client := rest.New(srv.URL, rest.WithCredentials(store))
	session := NewSessionUseCase(client, store, logger.NewNop())

	require.NoError(t, session.ExecuteLogin(context.Background(), LoginInput{Email: "a@b.com", Password: "x"}))

	tok, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", tok)

	_, err = client.GetPortfolio(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", portfolioAuth)
}

func TestLoginFailureStoresNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "bad credentials", "statusCode": 401})
	}))
	defer srv.Close()

	store := credstore.New(filepath.Join(t.TempDir(), "credentials"))
	client := rest.New(srv.URL, rest.WithCredentials(store))
	session := NewSessionUseCase(client, store, logger.NewNop())

	err := session.ExecuteLogin(context.Background(), LoginInput{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))

	tok, _ := store.Get()
	assert.Empty(t, tok)
}

func TestExpiredTokenForcesLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "token expired", "statusCode": 401})
	}))
	defer srv.Close()

	store := credstore.New(filepath.Join(t.TempDir(), "credentials"))
	require.NoError(t, store.Set("stale-token"))

	var session *SessionUseCase
	client := rest.New(srv.URL,
		rest.WithCredentials(store),
		rest.WithOnUnauthorized(func() { session.ForceLogout() }),
	)
	session = NewSessionUseCase(client, store, logger.NewNop())

	_, err := client.GetPortfolio(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))

	tok, _ := store.Get()
	assert.Empty(t, tok, "401 clears the stored credential")
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := credstore.New(filepath.Join(t.TempDir(), "credentials"))
	require.NoError(t, store.Set("tok"))

	session := NewSessionUseCase(nil, store, logger.NewNop())
	require.NoError(t, session.ExecuteLogout(context.Background()))
	require.NoError(t, session.ExecuteLogout(context.Background()))
}
