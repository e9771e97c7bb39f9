// Package common defines shared sentinel errors used across all layers of
// HabitKeeper. Callers should use errors.Is to match these values; messages
// carrying extra context wrap them with %w.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")

	// Validation errors raised before any persistence call.
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidTrackerName = errors.New("invalid tracker name")
	ErrInvalidTrackerType = errors.New("invalid tracker type")
	ErrInvalidEntryID     = errors.New("invalid entry id")
	ErrInvalidValue       = errors.New("invalid value")

	// Entity lookup errors.
	ErrTrackerNotFound = errors.New("tracker not found")
	ErrEntryNotFound   = errors.New("entry not found")

	// Entry/tracker disagreement. Always wrapped with both type names.
	ErrTypeMismatch = errors.New("type mismatch")

	// Recorded time strictly after the current instant.
	ErrFutureTimestamp = errors.New("entry cannot be recorded in the future")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
