package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/princinho/accountsapi/models"
	"github.com/princinho/accountsapi/store"
	"github.com/princinho/accountsapi/utils"
)

// ResetManager drives the password-reset lifecycle: one pending request per
// user, time-limited, single-use. Issuing a new request overwrites any
// pending one, so the old token becomes unredeemable.
type ResetManager struct {
	users  store.UserStore
	hasher utils.Hasher
	ttl    time.Duration
	now    func() time.Time
}

type ResetOption func(*ResetManager)

func WithResetClock(now func() time.Time) ResetOption {
	return func(m *ResetManager) { m.now = now }
}

func NewResetManager(users store.UserStore, hasher utils.Hasher, ttl time.Duration, opts ...ResetOption) *ResetManager {
	m := &ResetManager{
		users:  users,
		hasher: hasher,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RequestReset issues a fresh reset token for the user and persists it,
// replacing any pending request. The token value is returned for
// out-of-band delivery. Concurrent calls race last-write-wins; a lost
// token simply fails the match check later.
func (m *ResetManager) RequestReset(ctx context.Context, userID string) (*models.ResetRequest, error) {
	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", userID, ErrUserNotFound)
	}

	token, err := generateResetToken()
	if err != nil {
		return nil, fmt.Errorf("generate reset token: %w", err)
	}

	req := &models.ResetRequest{
		Token:   token,
		Expires: m.now().Add(m.ttl),
	}
	if err := m.users.SetResetRequest(ctx, userID, req); err != nil {
		return nil, fmt.Errorf("store reset request: %w", err)
	}
	return req, nil
}

// Redeem exchanges a pending reset token for a new password. All checks run
// against a single snapshot of the user record, in order: user exists,
// a request is pending, the token matches, the request has not expired.
// The expiry instant itself is still valid. On success the hash is
// replaced and the pending request cleared, so the token is spent.
func (m *ResetManager) Redeem(ctx context.Context, userID, presentedToken, newPassword string) (*models.User, error) {
	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", userID, ErrUserNotFound)
	}

	pending := user.PasswordResetRequest
	if pending == nil {
		return nil, ErrNoResetPending
	}
	if subtle.ConstantTimeCompare([]byte(presentedToken), []byte(pending.Token)) != 1 {
		return nil, ErrTokenMismatch
	}
	if m.now().After(pending.Expires) {
		return nil, ErrTokenExpired
	}

	hash, err := m.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash new password: %w", err)
	}
	if err := m.users.UpdatePassword(ctx, userID, hash); err != nil {
		return nil, fmt.Errorf("persist new password: %w", err)
	}

	user.PasswordHash = hash
	user.PasswordResetRequest = nil
	return user, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
