package store

import (
	"context"
	"sync"
	"time"

	"github.com/princinho/accountsapi/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryUserStore is a map-backed UserStore for tests and local runs.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, ErrDuplicateEmail
		}
	}

	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.ID.Hex()] = *user
	return user, nil
}

func (s *MemoryUserStore) Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user
	return &user, nil
}

func (s *MemoryUserStore) SetResetRequest(ctx context.Context, id string, req *models.ResetRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if req == nil {
		user.PasswordResetRequest = nil
	} else {
		r := *req
		user.PasswordResetRequest = &r
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user
	return nil
}

func (s *MemoryUserStore) UpdatePassword(ctx context.Context, id string, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.PasswordHash = hash
	user.PasswordResetRequest = nil
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user
	return nil
}

func (s *MemoryUserStore) SetAvatarURL(ctx context.Context, id string, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.AvatarURL = url
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user
	return nil
}

func (s *MemoryUserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}
