package entries

import (
	"context"
	"time"

	"habitkeeper/internal/server/models"
)

type Repository interface {
	// Save creates or updates an entry (upsert by id).
	Save(ctx context.Context, entry *models.Entry) error
	// FindByID returns common.ErrorNotFound when no entry has the id.
	FindByID(ctx context.Context, id string) (*models.Entry, error)
	// FindByTrackerID returns the tracker's entries, most recently recorded
	// first.
	FindByTrackerID(ctx context.Context, trackerID string) ([]*models.Entry, error)
	// FindByTrackerIDAndDateRange filters on recordedAt with inclusive
	// bounds, same ordering as FindByTrackerID.
	FindByTrackerIDAndDateRange(ctx context.Context, trackerID string, start, end time.Time) ([]*models.Entry, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	CountByTrackerID(ctx context.Context, trackerID string) (int, error)
}
