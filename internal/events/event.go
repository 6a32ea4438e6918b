// Package events defines the canonical domain event shape and the
// normalization of raw persisted records into it. Everything downstream
// (projection, merge, selection) consumes only the canonical form.
package events

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies a domain event. The set is closed: the projection engine
// reconstructs structure purely from kind and order, so an unknown kind has
// no interpretation.
type Kind string

const (
	KindMicrocycleStarted   Kind = "microcycle-started"
	KindMicrocycleCompleted Kind = "microcycle-completed"
	KindWorkoutStarted      Kind = "workout-started"
	KindWorkoutCompleted    Kind = "workout-completed"
	KindSetLogged           Kind = "set-logged"
)

// ParseKind converts a stored kind string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMicrocycleStarted, KindMicrocycleCompleted,
		KindWorkoutStarted, KindWorkoutCompleted, KindSetLogged:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Day is a day of the week as prescribed in a training plan.
// The zero value means "not set".
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// ParseDay converts a stored day string into a Day, case-insensitively.
func ParseDay(s string) (Day, error) {
	switch Day(strings.ToLower(s)) {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return Day(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadDay, s)
}

// Event is the canonical, immutable form of a logged domain event.
// Which optional fields are meaningful depends on Kind: workout-started
// carries Name and Day, set-logged carries Exercise/Weight/Reps. Ordering
// of an event slice is the sole source of causal structure.
type Event struct {
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name,omitempty"`
	Day       Day       `json:"day,omitempty"`
	Exercise  string    `json:"exercise,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	Reps      *int      `json:"reps,omitempty"`
}
