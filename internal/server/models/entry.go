package models

import "time"

// Entry is one recorded measurement belonging to a tracker. RecordedAt is
// when the tracked event occurred; CreatedAt is when the record was
// persisted. ID, TrackerID and CreatedAt are immutable after creation.
// Note is nil when the entry carries no note.
type Entry struct {
	ID         string
	TrackerID  string
	Value      EntryValue
	RecordedAt time.Time
	Note       *string
	CreatedAt  time.Time
}
