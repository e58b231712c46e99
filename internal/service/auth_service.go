package service

import (
	"context"
	"errors"

	"github.com/accountly/user-service/internal/models"
	"github.com/accountly/user-service/internal/token"
	"github.com/accountly/user-service/internal/utils"
)

var (
	// ErrInvalidCredentials covers an unknown email and a wrong password
	// alike, so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotActivated is returned when the credentials are valid but the
	// account has not been activated yet.
	ErrNotActivated = errors.New("account not activated")
)

// LoginResult is the payload returned for a successful login.
type LoginResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	ID    string `json:"id"`
}

// AuthService issues session tokens for valid credentials and resolves
// inbound tokens back to user records.
type AuthService struct {
	users  UserWriteStore
	tokens *token.Service
}

func NewAuthService(users UserWriteStore, tokens *token.Service) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login validates the credentials and issues a token. The token is issued
// before the activation check; for an inactive account it is discarded and
// never reaches the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrNotActivated
	}

	return &LoginResult{Token: signed, Name: user.Fullname, ID: user.ID}, nil
}

// CurrentUser resolves the Authorization header to the full user record.
// Token failures surface as *token.Error; a valid token naming a missing
// user surfaces as repository.ErrNotFound from the store.
func (s *AuthService) CurrentUser(ctx context.Context, authHeader string) (*models.User, error) {
	claims, err := s.tokens.ResolveHeader(authHeader)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, claims.UserID)
}
