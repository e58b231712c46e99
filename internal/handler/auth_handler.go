package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accountly/user-service/internal/api"
	"github.com/accountly/user-service/internal/models"
	"github.com/accountly/user-service/internal/repository"
	"github.com/accountly/user-service/internal/service"
	"github.com/accountly/user-service/internal/token"
)

// Authenticator defines the operations used by AuthHandler.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	CurrentUser(ctx context.Context, authHeader string) (*models.User, error)
}

// AuthHandler maps login and current-user lookups onto the auth service.
type AuthHandler struct {
	auth Authenticator
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login always responds 200. Bad credentials and inactive accounts come back
// as envelope failures with their fixed messages.
func (h *AuthHandler) Login(c *gin.Context) {
	// An unreadable body is treated as empty credentials; those fail the
	// credential check below like any other mismatch.
	var req LoginRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusOK, api.Fail("Email or Password not match."))
	case errors.Is(err, service.ErrNotActivated):
		c.JSON(http.StatusOK, api.Fail("Account Not Activated"))
	case err != nil:
		c.JSON(http.StatusOK, api.Fail(err.Error()))
	default:
		c.JSON(http.StatusOK, api.OK(result))
	}
}

// Me resolves the bearer token to the caller's record. Token failures use
// fixed single-element array bodies with the code the token service assigns;
// the success payload is not enveloped.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), c.GetHeader("Authorization"))

	var terr *token.Error
	switch {
	case errors.As(err, &terr):
		c.JSON(terr.Code, []string{tokenErrorBody(terr.Kind)})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, []string{"user_not_found"})
	case err != nil:
		c.JSON(http.StatusNotFound, []string{"user_not_found"})
	default:
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func tokenErrorBody(kind token.Kind) string {
	switch kind {
	case token.KindExpired:
		return "token_expired"
	case token.KindInvalid:
		return "token_invalid"
	default:
		return "token_absent"
	}
}
