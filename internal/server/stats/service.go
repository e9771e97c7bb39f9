package stats

import (
	"context"
	"errors"
	"time"

	"habitkeeper/internal/common"
	"habitkeeper/internal/server/entries"
	"habitkeeper/internal/server/models"
	"habitkeeper/internal/server/trackers"
)

// Service computes the statistics for one tracker, optionally scoped to an
// inclusive recordedAt range.
type Service struct {
	entryRepo   entries.Repository
	trackerRepo trackers.Repository
}

func NewService(entryRepo entries.Repository, trackerRepo trackers.Repository) *Service {
	return &Service{entryRepo: entryRepo, trackerRepo: trackerRepo}
}

// TrackerStats resolves the tracker, fetches its entries (all of them, or
// the given range when both bounds are set) and aggregates per the tracker's
// type.
func (s *Service) TrackerStats(ctx context.Context, trackerID string, start, end *time.Time) (TrackerStats, error) {
	tracker, err := s.trackerRepo.FindByID(ctx, trackerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTrackerNotFound
		}
		return nil, err
	}

	var list []*models.Entry
	if start != nil && end != nil {
		list, err = s.entryRepo.FindByTrackerIDAndDateRange(ctx, trackerID, *start, *end)
	} else {
		list, err = s.entryRepo.FindByTrackerID(ctx, trackerID)
	}
	if err != nil {
		return nil, err
	}

	return Aggregate(tracker.Type, list), nil
}
