package identity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user store for testing and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.FullPhone]; exists {
		return false, nil
	}
	r.users[user.FullPhone] = user
	return true, nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, fullPhone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[fullPhone]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) MarkVerified(_ context.Context, fullPhone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[fullPhone]; ok {
		user.Verified = true
		r.users[fullPhone] = user
	}
	return nil
}

func (r *memoryRepository) SetProfile(_ context.Context, fullPhone, fullName string, passwordHash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[fullPhone]; ok {
		user.FullName = fullName
		user.PasswordHash = passwordHash
		r.users[fullPhone] = user
	}
	return nil
}
