package token

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndResolve(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, err := svc.Issue("usr-001", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.ResolveHeader("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, "usr-001", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestResolveExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	signed, err := svc.Issue("usr-001", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.ResolveHeader("Bearer " + signed)
	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindExpired, terr.Kind)
	assert.Equal(t, http.StatusUnauthorized, terr.Code)
}

func TestResolveMalformed(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	_, err := svc.ResolveHeader("Bearer not-a-jwt")
	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindInvalid, terr.Kind)
	assert.Equal(t, http.StatusUnauthorized, terr.Code)
}

func TestResolveWrongSecret(t *testing.T) {
	signed, err := NewService("other-secret", time.Hour).Issue("usr-001", "alice@example.com")
	require.NoError(t, err)

	_, err = NewService("test-secret", time.Hour).ResolveHeader("Bearer " + signed)
	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindInvalid, terr.Kind)
}

func TestResolveAbsent(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, header := range []string{"", "Bearer", "Basic abc"} {
		_, err := svc.ResolveHeader(header)
		var terr *Error
		require.ErrorAs(t, err, &terr, "header %q", header)
		assert.Equal(t, KindAbsent, terr.Kind)
		assert.Equal(t, http.StatusBadRequest, terr.Code)
	}
}
