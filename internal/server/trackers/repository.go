package trackers

import (
	"context"

	"habitkeeper/internal/server/models"
)

type Repository interface {
	// Save creates or updates a tracker (upsert by id).
	Save(ctx context.Context, tracker *models.Tracker) error
	// FindByID returns common.ErrorNotFound when no tracker has the id.
	FindByID(ctx context.Context, id string) (*models.Tracker, error)
	// FindByUserID returns the user's trackers, most recently created first.
	FindByUserID(ctx context.Context, userID string) ([]*models.Tracker, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
