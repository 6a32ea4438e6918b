// Package models holds the persisted row types shared between storage and
// the layers above it.
package models

import (
	"time"

	"github.com/claude/liftlog/internal/events"
	"github.com/google/uuid"
)

// EventRow is one row of the append-only event log. Domain fields are TEXT
// in the schema and stay strings here: the log stores events exactly as
// written, and the normalizer owns interpretation.
type EventRow struct {
	ID         uuid.UUID `json:"id"`
	UserID     int       `json:"userId"`
	Seq        int64     `json:"seq"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	Name       string    `json:"name,omitempty"`
	Day        string    `json:"day,omitempty"`
	Exercise   string    `json:"exercise,omitempty"`
	Weight     string    `json:"weight,omitempty"`
	Reps       string    `json:"reps,omitempty"`
}

// Raw converts the row into the normalizer's input shape.
func (r EventRow) Raw() events.RawEvent {
	return events.RawEvent{
		Kind:      r.Kind,
		Timestamp: r.OccurredAt,
		Name:      r.Name,
		Day:       r.Day,
		Exercise:  r.Exercise,
		Weight:    events.FlexNumber(r.Weight),
		Reps:      events.FlexNumber(r.Reps),
	}
}

// RawAll converts a slice of rows for bulk normalization.
func RawAll(rows []EventRow) []events.RawEvent {
	out := make([]events.RawEvent, len(rows))
	for i, r := range rows {
		out[i] = r.Raw()
	}
	return out
}

// PlanRow is a user's active plan document.
type PlanRow struct {
	UserID    int       `json:"userId"`
	Name      string    `json:"name"`
	Document  string    `json:"document"` // YAML source, parsed on read
	UpdatedAt time.Time `json:"updatedAt"`
}
