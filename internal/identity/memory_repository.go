package identity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]User
	byPhone map[string]string
}

// NewMemoryRepository builds an in-memory user store. It enforces the same
// uniqueness guarantees the Postgres schema does.
func NewMemoryRepository() Repository {
	return &memoryRepository{byEmail: make(map[string]User), byPhone: make(map[string]string)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return &DuplicateError{Field: "email"}
	}
	if _, exists := r.byPhone[user.PhoneNumber]; exists {
		return &DuplicateError{Field: "phoneNumber"}
	}
	r.byEmail[user.Email] = user
	r.byPhone[user.PhoneNumber] = user.Email
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *memoryRepository) PhoneExists(_ context.Context, phone string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byPhone[phone]
	return ok, nil
}
