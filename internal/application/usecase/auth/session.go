package auth

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/folio-sync/adapters/rest"
	"github.com/khoahotran/folio-sync/internal/domain/user"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

// API is the slice of the REST client the session layer needs.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, in rest.RegisterInput) (user.User, error)
	Me(ctx context.Context) (user.User, error)
}

// TokenStore persists the bearer credential across process restarts.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

type SessionUseCase struct {
	api    API
	tokens TokenStore
	logger logger.Logger
}

func NewSessionUseCase(api API, tokens TokenStore, log logger.Logger) *SessionUseCase {
	return &SessionUseCase{api: api, tokens: tokens, logger: log}
}

var tracer = otel.Tracer("auth_usecase")

type LoginInput struct {
	Email    string
	Password string
}

// ExecuteLogin exchanges credentials for a token and persists it, so every
// later request carries the bearer header.
func (uc *SessionUseCase) ExecuteLogin(ctx context.Context, input LoginInput) error {
	ctx, span := tracer.Start(ctx, "ExecuteLogin")
	defer span.End()

	token, err := uc.api.Login(ctx, input.Email, input.Password)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := uc.tokens.Set(token); err != nil {
		uc.logger.Error("failed to persist credential", err)
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.String("email", input.Email))
	return nil
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

func (uc *SessionUseCase) ExecuteRegister(ctx context.Context, input RegisterInput) (user.User, error) {
	ctx, span := tracer.Start(ctx, "ExecuteRegister")
	defer span.End()

	u, err := uc.api.Register(ctx, rest.RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Phone:     input.Phone,
	})
	if err != nil {
		span.RecordError(err)
		return user.User{}, err
	}
	return u, nil
}

func (uc *SessionUseCase) ExecuteMe(ctx context.Context) (user.User, error) {
	return uc.api.Me(ctx)
}

// ExecuteLogout drops the stored credential. Idempotent.
func (uc *SessionUseCase) ExecuteLogout(ctx context.Context) error {
	_, span := tracer.Start(ctx, "ExecuteLogout")
	defer span.End()
	return uc.tokens.Clear()
}

// ForceLogout is the 401 hook target: the server no longer accepts the
// credential, so holding on to it is pointless.
func (uc *SessionUseCase) ForceLogout() {
	if err := uc.tokens.Clear(); err != nil {
		uc.logger.Error("failed to clear credential after 401", err)
		return
	}
	uc.logger.Warn("credential rejected by server, logged out", zap.String("reason", "401"))
}
