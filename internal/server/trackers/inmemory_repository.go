package trackers

import (
	"context"
	"sort"
	"sync"

	"habitkeeper/internal/common"
	"habitkeeper/internal/server/models"
)

// InMemoryRepository is a map-backed Repository. It is a first-class
// implementation used by tests and the in-memory storage backend, not a mock.
type InMemoryRepository struct {
	mu       sync.RWMutex
	trackers map[string]models.Tracker
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{trackers: make(map[string]models.Tracker)}
}

func (r *InMemoryRepository) Save(ctx context.Context, tracker *models.Tracker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trackers[tracker.ID] = *tracker
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*models.Tracker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tracker, ok := r.trackers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &tracker, nil
}

func (r *InMemoryRepository) FindByUserID(ctx context.Context, userID string) ([]*models.Tracker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Tracker
	for _, tracker := range r.trackers {
		if tracker.UserID == userID {
			t := tracker
			result = append(result, &t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trackers, id)
	return nil
}

func (r *InMemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.trackers[id]
	return ok, nil
}
