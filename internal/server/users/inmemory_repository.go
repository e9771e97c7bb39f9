package users

import (
	"context"
	"sync"

	"habitkeeper/internal/common"
	"habitkeeper/internal/server/models"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[string]models.User // by id
	hashes map[string]string      // by email
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[string]models.User),
		hashes: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	r.hashes[user.Email] = passwordHash
	return nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &user, nil
}

func (r *InMemoryRepository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hash, ok := r.hashes[email]
	if !ok {
		return "", common.ErrorNotFound
	}
	return hash, nil
}
