package refreshtokens

import (
	"context"
	"sync"
	"time"

	"habitkeeper/internal/common"
	"habitkeeper/internal/dbx"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]record
}

type record struct {
	userID    string
	expiresAt time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tokens: make(map[string]record)}
}

// WithTx returns the repository itself: the in-memory store has no
// transactions, mutations take effect immediately under the mutex.
func (r *InMemoryRepository) WithTx(tx dbx.DBTX) Repository {
	return r
}

func (r *InMemoryRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = record{userID: userID, expiresAt: time.Now().Add(validity)}
	return nil
}

func (r *InMemoryRepository) FindUserID(ctx context.Context, token string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.tokens[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	if time.Now().After(rec.expiresAt) {
		return "", common.ErrRefreshTokenExpired
	}
	return rec.userID, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}
