package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"habitkeeper/internal/common"
	"habitkeeper/internal/server/entries"
	"habitkeeper/internal/server/models"
)

// errorStatus maps the service error taxonomy onto HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrTrackerNotFound),
		errors.Is(err, common.ErrEntryNotFound),
		errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidEmail),
		errors.Is(err, common.ErrWeakPassword),
		errors.Is(err, common.ErrInvalidUserID),
		errors.Is(err, common.ErrInvalidTrackerName),
		errors.Is(err, common.ErrInvalidTrackerType),
		errors.Is(err, common.ErrInvalidEntryID),
		errors.Is(err, common.ErrInvalidValue),
		errors.Is(err, common.ErrTypeMismatch),
		errors.Is(err, common.ErrFutureTimestamp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with its mapped status. Internal errors keep their
// detail out of the response body.
func (s *RestServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSONError(w, status, "internal error")
		return
	}
	writeJSONError(w, status, err.Error())
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// ownedTracker resolves a tracker and checks it belongs to the
// authenticated user. A foreign tracker is a 403, not a 404: the resource
// exists, the caller just may not touch it.
func (s *RestServer) ownedTracker(r *http.Request, trackerID string) (*models.Tracker, error) {
	tracker, err := s.trackers.Get(r.Context(), trackerID)
	if err != nil {
		return nil, err
	}
	if tracker.UserID != userIDFromContext(r.Context()) {
		return nil, common.ErrorForbidden
	}
	return tracker, nil
}

func (s *RestServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToDTO(user))
}

func (s *RestServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairToDTO(pair))
}

func (s *RestServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairToDTO(pair))
}

func (s *RestServer) handleListTrackers(w http.ResponseWriter, r *http.Request) {
	list, err := s.trackers.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	dtos := make([]trackerDTO, 0, len(list))
	for _, t := range list {
		dtos = append(dtos, trackerToDTO(t))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *RestServer) handleCreateTracker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tracker, err := s.trackers.Create(r.Context(), userIDFromContext(r.Context()), req.Name, req.Type, req.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, trackerToDTO(tracker))
}

func (s *RestServer) handleGetTracker(w http.ResponseWriter, r *http.Request) {
	tracker, err := s.ownedTracker(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trackerToDTO(tracker))
}

func (s *RestServer) handleDeleteTracker(w http.ResponseWriter, r *http.Request) {
	tracker, err := s.ownedTracker(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.trackers.Delete(r.Context(), tracker.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *RestServer) handleListEntries(w http.ResponseWriter, r *http.Request) {
	tracker, err := s.ownedTracker(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.entries.ListByTracker(r.Context(), tracker.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	dtos := make([]entryDTO, 0, len(list))
	for _, e := range list {
		dtos = append(dtos, entryToDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *RestServer) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	tracker, err := s.ownedTracker(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req struct {
		Value      models.ValuePayload `json:"value"`
		RecordedAt *string             `json:"recordedAt"`
		Note       *string             `json:"note"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// omitted recordedAt stays zero, the entry service stamps it from its
	// own clock
	var recordedAt time.Time
	if req.RecordedAt != nil {
		recordedAt, err = time.Parse(time.RFC3339, *req.RecordedAt)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "recordedAt must be RFC 3339")
			return
		}
	}

	entry, err := s.entries.Add(r.Context(), entries.AddParams{
		TrackerID:  tracker.ID,
		Value:      req.Value,
		RecordedAt: recordedAt,
		Note:       req.Note,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, entryToDTO(entry))
}

func (s *RestServer) handleTrackerStats(w http.ResponseWriter, r *http.Request) {
	tracker, err := s.ownedTracker(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start, err := parseTimeParam(r, "start")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "start must be RFC 3339")
		return
	}
	end, err := parseTimeParam(r, "end")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "end must be RFC 3339")
		return
	}
	if (start == nil) != (end == nil) {
		writeJSONError(w, http.StatusBadRequest, "start and end must be given together")
		return
	}

	result, err := s.stats.TrackerStats(r.Context(), tracker.ID, start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// entryForUpdate loads an entry and authorizes it through its owning
// tracker.
func (s *RestServer) entryForUpdate(r *http.Request) (*models.Entry, error) {
	entry, err := s.entries.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedTracker(r, entry.TrackerID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *RestServer) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.entryForUpdate(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req struct {
		Value      *models.ValuePayload `json:"value"`
		RecordedAt *string              `json:"recordedAt"`
		Note       *string              `json:"note"`
		ClearNote  bool                 `json:"clearNote"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := entries.UpdateParams{
		Value:     req.Value,
		Note:      req.Note,
		ClearNote: req.ClearNote,
	}
	if req.RecordedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.RecordedAt)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "recordedAt must be RFC 3339")
			return
		}
		params.RecordedAt = &t
	}

	updated, err := s.entries.Update(r.Context(), entry.ID, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entryToDTO(updated))
}

func (s *RestServer) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.entryForUpdate(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.entries.Delete(r.Context(), entry.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
