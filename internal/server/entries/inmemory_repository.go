package entries

import (
	"context"
	"sort"
	"sync"
	"time"

	"habitkeeper/internal/common"
	"habitkeeper/internal/server/models"
)

// InMemoryRepository is a map-backed Repository, a first-class alternative
// to PostgresRepository for tests and the in-memory backend.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]models.Entry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{entries: make(map[string]models.Entry)}
}

func (r *InMemoryRepository) Save(ctx context.Context, entry *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = *entry
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &entry, nil
}

func (r *InMemoryRepository) FindByTrackerID(ctx context.Context, trackerID string) ([]*models.Entry, error) {
	return r.collect(func(e models.Entry) bool {
		return e.TrackerID == trackerID
	}), nil
}

func (r *InMemoryRepository) FindByTrackerIDAndDateRange(ctx context.Context, trackerID string, start, end time.Time) ([]*models.Entry, error) {
	return r.collect(func(e models.Entry) bool {
		return e.TrackerID == trackerID &&
			!e.RecordedAt.Before(start) && !e.RecordedAt.After(end)
	}), nil
}

// collect filters entries and orders them most recently recorded first.
func (r *InMemoryRepository) collect(keep func(models.Entry) bool) []*models.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Entry
	for _, entry := range r.entries {
		if keep(entry) {
			e := entry
			result = append(result, &e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

func (r *InMemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok, nil
}

func (r *InMemoryRepository) CountByTrackerID(ctx context.Context, trackerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, entry := range r.entries {
		if entry.TrackerID == trackerID {
			count++
		}
	}
	return count, nil
}
