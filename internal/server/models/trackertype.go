// Package models holds the plain data records of HabitKeeper (users,
// trackers, entries) and the typed value model entries are recorded with.
package models

import (
	"fmt"

	"habitkeeper/internal/common"
)

// TrackerType is the closed set of kinds a tracker can be. The type of a
// tracker is fixed at creation; every entry recorded against it must carry
// a value of the same type.
type TrackerType string

const (
	TypeBoolean  TrackerType = "BOOLEAN"  // yes/no ("did I exercise?")
	TypeNumber   TrackerType = "NUMBER"   // decimal number (weight, distance)
	TypeText     TrackerType = "TEXT"     // free text (mood notes)
	TypeDuration TrackerType = "DURATION" // HH:MM, stored as minutes
	TypeCurrency TrackerType = "CURRENCY" // EUR, stored as cents
)

// Valid reports whether t is one of the five recognized tracker types.
func (t TrackerType) Valid() bool {
	switch t {
	case TypeBoolean, TypeNumber, TypeText, TypeDuration, TypeCurrency:
		return true
	}
	return false
}

func (t TrackerType) String() string {
	return string(t)
}

// ParseTrackerType validates an externally supplied type name.
func ParseTrackerType(s string) (TrackerType, error) {
	t := TrackerType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidTrackerType, s)
	}
	return t, nil
}
