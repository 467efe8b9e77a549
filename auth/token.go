package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/princinho/accountsapi/models"
)

// SessionClaim is the identity payload carried by a session token. The role
// is captured at issuance and is not re-checked against the user record
// until the token expires.
type SessionClaim struct {
	UserID string
	Role   models.Role
}

type sessionClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. It holds no state
// about issued tokens: validity is re-derived from the signature and the
// embedded expiry, so logout is a client-side concern and early revocation
// is not supported.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock overrides the time source, so tests can cross expiry
// boundaries without sleeping.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret []byte, ttl time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs claim into a self-contained token expiring after the
// configured TTL.
func (s *TokenService) Issue(claim SessionClaim) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("signing secret not configured: %w", ErrSigning)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID: claim.UserID,
		Role:   string(claim.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, ErrSigning)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenStr and returns the
// embedded claim. It accepts arbitrary attacker-supplied input: expired
// tokens fail with ErrExpiredToken, everything else invalid fails with
// ErrInvalidToken.
func (s *TokenService) Verify(tokenStr string) (*SessionClaim, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// enforce HMAC signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%v: %w", err, ErrExpiredToken)
		}
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidToken)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return &SessionClaim{
		UserID: claims.UserID,
		Role:   models.Role(claims.Role),
	}, nil
}
