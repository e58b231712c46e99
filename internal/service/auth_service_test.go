package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountly/user-service/internal/models"
	"github.com/accountly/user-service/internal/repository"
	"github.com/accountly/user-service/internal/token"
	"github.com/accountly/user-service/internal/utils"
)

func storedUser(t *testing.T, active bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	return &models.User{
		ID:           "usr-001",
		Email:        "alice@example.com",
		Fullname:     "Alice Smith",
		PasswordHash: hash,
		Active:       active,
	}
}

func TestLoginActiveUser(t *testing.T) {
	user := storedUser(t, true)
	write := &mockWriteStore{getByEmailFn: func(string) (*models.User, error) { return user, nil }}
	tokens := token.NewService("test-secret", time.Hour)

	svc := NewAuthService(write, tokens)
	result, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Alice Smith", result.Name)
	assert.Equal(t, "usr-001", result.ID)

	claims, err := tokens.ResolveHeader("Bearer " + result.Token)
	require.NoError(t, err)
	assert.Equal(t, "usr-001", claims.UserID)
}

func TestLoginInactiveUser(t *testing.T) {
	user := storedUser(t, false)
	write := &mockWriteStore{getByEmailFn: func(string) (*models.User, error) { return user, nil }}

	svc := NewAuthService(write, token.NewService("test-secret", time.Hour))
	result, err := svc.Login(context.Background(), "alice@example.com", "secret123")

	assert.ErrorIs(t, err, ErrNotActivated)
	assert.Nil(t, result, "an inactive account must never see its token")
}

func TestLoginWrongPassword(t *testing.T) {
	user := storedUser(t, true)
	write := &mockWriteStore{getByEmailFn: func(string) (*models.User, error) { return user, nil }}

	svc := NewAuthService(write, token.NewService("test-secret", time.Hour))
	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	write := &mockWriteStore{getByEmailFn: func(string) (*models.User, error) { return nil, repository.ErrNotFound }}

	svc := NewAuthService(write, token.NewService("test-secret", time.Hour))
	_, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	user := storedUser(t, true)
	write := &mockWriteStore{getByIDFn: func(id string) (*models.User, error) {
		require.Equal(t, "usr-001", id)
		return user, nil
	}}
	tokens := token.NewService("test-secret", time.Hour)
	signed, err := tokens.Issue("usr-001", "alice@example.com")
	require.NoError(t, err)

	svc := NewAuthService(write, tokens)
	got, err := svc.CurrentUser(context.Background(), "Bearer "+signed)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestCurrentUserDeletedAccount(t *testing.T) {
	write := &mockWriteStore{getByIDFn: func(string) (*models.User, error) { return nil, repository.ErrNotFound }}
	tokens := token.NewService("test-secret", time.Hour)
	signed, err := tokens.Issue("usr-001", "alice@example.com")
	require.NoError(t, err)

	svc := NewAuthService(write, tokens)
	_, err = svc.CurrentUser(context.Background(), "Bearer "+signed)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCurrentUserBadToken(t *testing.T) {
	svc := NewAuthService(&mockWriteStore{}, token.NewService("test-secret", time.Hour))

	_, err := svc.CurrentUser(context.Background(), "Bearer garbage")
	var terr *token.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, token.KindInvalid, terr.Kind)
}
