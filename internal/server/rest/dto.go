package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"habitkeeper/internal/server/models"
	"habitkeeper/internal/server/users"
)

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type tokenPairDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type trackerDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// valueDTO carries both the canonical raw value and the rendered display
// form, so clients never reimplement HH:MM or euro formatting.
type valueDTO struct {
	Type         string `json:"type"`
	RawValue     any    `json:"rawValue"`
	DisplayValue string `json:"displayValue"`
	Decimals     *int   `json:"decimals,omitempty"`
}

type entryDTO struct {
	ID         string   `json:"id"`
	TrackerID  string   `json:"trackerId"`
	Value      valueDTO `json:"value"`
	RecordedAt string   `json:"recordedAt"`
	Note       *string  `json:"note,omitempty"`
	CreatedAt  string   `json:"createdAt"`
}

func userToDTO(u *models.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func tokenPairToDTO(p *users.TokenPair) tokenPairDTO {
	return tokenPairDTO{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

func trackerToDTO(t *models.Tracker) trackerDTO {
	return trackerDTO{
		ID:          t.ID,
		UserID:      t.UserID,
		Name:        t.Name,
		Type:        t.Type.String(),
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func entryToDTO(e *models.Entry) entryDTO {
	v := valueDTO{
		Type:         e.Value.Type().String(),
		RawValue:     e.Value.RawValue(),
		DisplayValue: e.Value.DisplayValue(),
	}
	if e.Value.Type() == models.TypeNumber && e.Value.Decimals() > 0 {
		d := e.Value.Decimals()
		v.Decimals = &d
	}
	return entryDTO{
		ID:         e.ID,
		TrackerID:  e.TrackerID,
		Value:      v,
		RecordedAt: e.RecordedAt.Format(time.RFC3339),
		Note:       e.Note,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
