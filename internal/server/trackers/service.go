package trackers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitkeeper/internal/common"
	"habitkeeper/internal/server/models"
)

// Service implements the tracker use-cases. All validation happens before
// any repository call; the first violated invariant aborts the operation.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates the input, assigns a fresh id and creation timestamps,
// and persists the tracker. Names are stored trimmed; uniqueness is only on
// id, two trackers may share a name.
func (s *Service) Create(ctx context.Context, userID, name, trackerType, description string) (*models.Tracker, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", common.ErrInvalidUserID)
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: tracker name cannot be empty", common.ErrInvalidTrackerName)
	}
	if len([]rune(trimmed)) > 100 {
		return nil, fmt.Errorf("%w: tracker name cannot exceed 100 characters", common.ErrInvalidTrackerName)
	}

	typ, err := models.ParseTrackerType(trackerType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tracker := &models.Tracker{
		ID:          "tracker_" + uuid.NewString(),
		UserID:      userID,
		Name:        trimmed,
		Type:        typ,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Save(ctx, tracker); err != nil {
		return nil, err
	}

	return tracker, nil
}

// Get resolves a tracker by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Tracker, error) {
	tracker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTrackerNotFound
		}
		return nil, err
	}
	return tracker, nil
}

// List returns all trackers owned by the user.
func (s *Service) List(ctx context.Context, userID string) ([]*models.Tracker, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// Delete removes a tracker. Deleting its entries is the storage layer's job
// (FK cascade in Postgres).
func (s *Service) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrTrackerNotFound
	}
	return s.repo.Delete(ctx, id)
}
