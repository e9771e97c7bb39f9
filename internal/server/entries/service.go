package entries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitkeeper/internal/common"
	"habitkeeper/internal/server/models"
	"habitkeeper/internal/server/trackers"
)

// Service implements the entry use-cases. Validation is eager and
// side-effect free: the first violated invariant aborts before anything is
// written, and repository failures propagate unmodified.
type Service struct {
	repo        Repository
	trackerRepo trackers.Repository
	now         func() time.Time
}

func NewService(repo Repository, trackerRepo trackers.Repository) *Service {
	return &Service{repo: repo, trackerRepo: trackerRepo, now: time.Now}
}

// AddParams is the input of Add. Note nil means the entry has no note; a
// zero RecordedAt means "now" per the service clock.
type AddParams struct {
	TrackerID  string
	Value      models.ValuePayload
	RecordedAt time.Time
	Note       *string
}

// UpdateParams is the input of Update. Nil fields are left unchanged;
// ClearNote (or an explicit empty note) removes the note.
type UpdateParams struct {
	Value      *models.ValuePayload
	RecordedAt *time.Time
	Note       *string
	ClearNote  bool
}

// Add records a new entry against a tracker. Checks run in order: the
// tracker must exist, recordedAt must not be in the future, the payload's
// type tag must equal the tracker's type, and the payload must parse into a
// valid value.
func (s *Service) Add(ctx context.Context, p AddParams) (*models.Entry, error) {
	tracker, err := s.trackerRepo.FindByID(ctx, p.TrackerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTrackerNotFound
		}
		return nil, err
	}

	if p.RecordedAt.IsZero() {
		p.RecordedAt = s.now()
	}
	if p.RecordedAt.After(s.now()) {
		return nil, common.ErrFutureTimestamp
	}

	if p.Value.Type != tracker.Type {
		return nil, typeMismatch(p.Value.Type, tracker.Type)
	}

	value, err := models.NewEntryValue(p.Value)
	if err != nil {
		return nil, err
	}

	entry := &models.Entry{
		ID:         "entry_" + uuid.NewString(),
		TrackerID:  tracker.ID,
		Value:      value,
		RecordedAt: p.RecordedAt,
		Note:       normalizeNote(p.Note),
		CreatedAt:  s.now(),
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Update replaces the supplied fields of an existing entry and re-saves it
// under the same id. ID, TrackerID and CreatedAt are always preserved; a new
// value is re-checked against the owning tracker's type and a new recordedAt
// against the future rule. With no fields supplied the entry is unchanged.
func (s *Service) Update(ctx context.Context, entryID string, p UpdateParams) (*models.Entry, error) {
	existing, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrEntryNotFound
		}
		return nil, err
	}

	updated := *existing

	if p.Value != nil {
		tracker, err := s.trackerRepo.FindByID(ctx, existing.TrackerID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrTrackerNotFound
			}
			return nil, err
		}
		if p.Value.Type != tracker.Type {
			return nil, typeMismatch(p.Value.Type, tracker.Type)
		}
		value, err := models.NewEntryValue(*p.Value)
		if err != nil {
			return nil, err
		}
		updated.Value = value
	}

	if p.RecordedAt != nil {
		if p.RecordedAt.After(s.now()) {
			return nil, common.ErrFutureTimestamp
		}
		updated.RecordedAt = *p.RecordedAt
	}

	if p.ClearNote {
		updated.Note = nil
	} else if p.Note != nil {
		updated.Note = normalizeNote(p.Note)
	}

	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes an entry after checking it exists.
func (s *Service) Delete(ctx context.Context, entryID string) error {
	if strings.TrimSpace(entryID) == "" {
		return fmt.Errorf("%w: entry id cannot be empty", common.ErrInvalidEntryID)
	}

	exists, err := s.repo.Exists(ctx, entryID)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrEntryNotFound
	}

	return s.repo.Delete(ctx, entryID)
}

// Get resolves an entry by id.
func (s *Service) Get(ctx context.Context, entryID string) (*models.Entry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListByTracker returns the tracker's entries, most recently recorded first.
func (s *Service) ListByTracker(ctx context.Context, trackerID string) ([]*models.Entry, error) {
	return s.repo.FindByTrackerID(ctx, trackerID)
}

func typeMismatch(got, want models.TrackerType) error {
	return fmt.Errorf("entry type %s does not match tracker type %s: %w", got, want, common.ErrTypeMismatch)
}

// normalizeNote maps empty notes to nil so "no note" has one representation.
func normalizeNote(note *string) *string {
	if note == nil || *note == "" {
		return nil
	}
	return note
}
