// Package token issues and resolves the HS256 JWTs used for login sessions.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind classifies why a token could not be resolved. Each kind maps to a
// distinct response body on the current-user endpoint.
type Kind int

const (
	// KindAbsent covers a missing bearer token and any token error that is
	// neither an expiry nor a recognisable parse failure.
	KindAbsent Kind = iota
	KindExpired
	KindInvalid
)

// Error is a token resolution failure. Code is the HTTP status code the
// handler echoes back with the corresponding literal body.
type Error struct {
	Kind Kind
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "token error"
}

func (e *Error) Unwrap() error { return e.Err }

// Claims is the JWT payload.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens with a shared HS256 secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity.
func (s *Service) Issue(userID, email string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ResolveHeader extracts the bearer token from an Authorization header value
// and verifies it. All failures are *Error values carrying the kind and the
// status code the endpoint responds with.
func (s *Service) ResolveHeader(authHeader string) (*Claims, error) {
	raw, err := bearerToken(authHeader)
	if err != nil {
		return nil, &Error{Kind: KindAbsent, Code: http.StatusBadRequest, Err: err}
	}
	return s.parse(raw)
}

func (s *Service) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, &Error{Kind: KindExpired, Code: http.StatusUnauthorized, Err: err}
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, &Error{Kind: KindInvalid, Code: http.StatusUnauthorized, Err: err}
	case err != nil:
		return nil, &Error{Kind: KindAbsent, Code: http.StatusBadRequest, Err: err}
	case !token.Valid:
		return nil, &Error{Kind: KindInvalid, Code: http.StatusUnauthorized, Err: errors.New("invalid token")}
	}
	return claims, nil
}

func bearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("token not provided")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("token not provided")
	}
	return parts[1], nil
}
