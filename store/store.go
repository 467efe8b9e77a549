package store

import (
	"context"
	"errors"

	"github.com/princinho/accountsapi/models"
)

var (
	// ErrNotFound is returned by mutations whose target id did not resolve.
	// Lookups report absence as a nil user instead, so callers own the
	// not-found semantics of their own flow.
	ErrNotFound = errors.New("user not found")

	ErrDuplicateEmail = errors.New("email already in use")
)

// UserUpdate carries the fields the self-service update path may touch.
// Email, role and password hash are deliberately absent.
type UserUpdate struct {
	FirstName *string
	LastName  *string
}

// UserStore is the persistence collaborator for user records. Backends
// guarantee atomic single-record writes only; there is no multi-step
// transactional isolation between a read and a later write.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error)
	// SetResetRequest replaces the pending reset request; nil clears it.
	SetResetRequest(ctx context.Context, id string, req *models.ResetRequest) error
	// UpdatePassword replaces the password hash and clears any pending
	// reset request in the same write.
	UpdatePassword(ctx context.Context, id string, hash string) error
	SetAvatarURL(ctx context.Context, id string, url string) error
	Delete(ctx context.Context, id string) error
}
