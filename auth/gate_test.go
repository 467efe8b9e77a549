package auth

import (
	"testing"
	"time"

	"github.com/princinho/accountsapi/models"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T) (*Gate, *TokenService) {
	t.Helper()
	tokens := NewTokenService([]byte("gate-secret"), time.Hour)
	return NewGate(tokens), tokens
}

func TestAuthorizeNoCredential(t *testing.T) {
	gate, _ := newTestGate(t)

	claim, err := gate.Authorize("", models.RoleAdmin)
	require.Nil(t, claim)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeInsufficientRole(t *testing.T) {
	gate, tokens := newTestGate(t)

	tok, err := tokens.Issue(SessionClaim{UserID: "u1", Role: models.RoleStandard})
	require.NoError(t, err)

	claim, err := gate.Authorize(tok, models.RoleAdmin)
	require.Nil(t, claim)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeAdmin(t *testing.T) {
	gate, tokens := newTestGate(t)

	tok, err := tokens.Issue(SessionClaim{UserID: "u2", Role: models.RoleAdmin})
	require.NoError(t, err)

	claim, err := gate.Authorize(tok, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, "u2", claim.UserID)
	require.Equal(t, models.RoleAdmin, claim.Role)
}

func TestAuthorizeHigherRoleMeetsLower(t *testing.T) {
	gate, tokens := newTestGate(t)

	tok, err := tokens.Issue(SessionClaim{UserID: "u2", Role: models.RoleAdmin})
	require.NoError(t, err)

	claim, err := gate.Authorize(tok, models.RoleStandard)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, claim.Role)
}

func TestAuthorizeTamperedToken(t *testing.T) {
	gate, tokens := newTestGate(t)

	tok, err := tokens.Issue(SessionClaim{UserID: "u2", Role: models.RoleAdmin})
	require.NoError(t, err)

	raw := []byte(tok)
	if raw[len(raw)-1] == 'x' {
		raw[len(raw)-1] = 'y'
	} else {
		raw[len(raw)-1] = 'x'
	}

	claim, err := gate.Authorize(string(raw), models.RoleAdmin)
	require.Nil(t, claim)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeExpiredToken(t *testing.T) {
	tokens := NewTokenService([]byte("gate-secret"), time.Hour, WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}))
	gate := NewGate(NewTokenService([]byte("gate-secret"), time.Hour))

	tok, err := tokens.Issue(SessionClaim{UserID: "u2", Role: models.RoleAdmin})
	require.NoError(t, err)

	claim, err := gate.Authorize(tok, models.RoleAdmin)
	require.Nil(t, claim)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
