package user

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("user already exists")
	ErrEmailRequired = errors.New("email is required")
)

// Store exposes user persistence to services. Implementations: MemoryStore
// here, and the Mongo-backed store in internal/storage/mongo.
type Store interface {
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, u User) error
}

// MemoryStore implements Store with a map, suitable for tests and local runs
// without a database.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

// Create inserts a user, assigning an ID. Emails are unique and
// case-insensitive.
func (s *MemoryStore) Create(_ context.Context, u User) (User, error) {
	email := normalizeEmail(u.Email)
	if email == "" {
		return User{}, ErrEmailRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == email {
			return User{}, ErrEmailTaken
		}
	}

	u.ID = uuid.NewString()
	u.Email = email
	s.users[u.ID] = u
	return u, nil
}

// FindByEmail looks up a user by email.
func (s *MemoryStore) FindByEmail(_ context.Context, email string) (User, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// FindByID looks up a user by identifier.
func (s *MemoryStore) FindByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// Update replaces the stored record for u.ID.
func (s *MemoryStore) Update(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	u.Email = normalizeEmail(u.Email)
	s.users[u.ID] = u
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
