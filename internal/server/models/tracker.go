package models

import "time"

// Tracker is a named, typed series a user records entries against. Type is
// immutable once set; entries must continue to match it.
type Tracker struct {
	ID          string
	UserID      string
	Name        string
	Type        TrackerType
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
