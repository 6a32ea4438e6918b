package events

import (
	"errors"
	"testing"
	"time"
)

var ts = time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

// TestNormalizeSetLogged verifies the happy path for a fully-populated
// set-logged record, including text-to-number conversion.
func TestNormalizeSetLogged(t *testing.T) {
	ev, err := Normalize(RawEvent{
		Kind:      "set-logged",
		Timestamp: ts,
		Exercise:  "Bench Press",
		Weight:    "102.5",
		Reps:      "8",
	})
	if err != nil {
		t.Fatal(err)
	}

	if ev.Kind != KindSetLogged {
		t.Errorf("kind = %q, want set-logged", ev.Kind)
	}
	if !ev.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", ev.Timestamp, ts)
	}
	if ev.Exercise != "Bench Press" {
		t.Errorf("exercise = %q, want Bench Press", ev.Exercise)
	}
	if ev.Weight == nil || *ev.Weight != 102.5 {
		t.Errorf("weight = %v, want 102.5", ev.Weight)
	}
	if ev.Reps == nil || *ev.Reps != 8 {
		t.Errorf("reps = %v, want 8", ev.Reps)
	}
}

// TestNormalizeWorkoutStarted verifies name and day handling, including
// case-insensitive day parsing.
func TestNormalizeWorkoutStarted(t *testing.T) {
	ev, err := Normalize(RawEvent{
		Kind:      "workout-started",
		Timestamp: ts,
		Name:      "Upper",
		Day:       "Monday",
	})
	if err != nil {
		t.Fatal(err)
	}

	if ev.Name != "Upper" {
		t.Errorf("name = %q, want Upper", ev.Name)
	}
	if ev.Day != Monday {
		t.Errorf("day = %q, want monday", ev.Day)
	}
}

// TestNormalizeAbsentFields verifies that empty optional fields normalize
// to "not present", never to zero values.
func TestNormalizeAbsentFields(t *testing.T) {
	ev, err := Normalize(RawEvent{Kind: "set-logged", Timestamp: ts, Exercise: "Squat"})
	if err != nil {
		t.Fatal(err)
	}

	if ev.Weight != nil {
		t.Errorf("weight = %v, want nil", *ev.Weight)
	}
	if ev.Reps != nil {
		t.Errorf("reps = %v, want nil", *ev.Reps)
	}
	if ev.Day != "" {
		t.Errorf("day = %q, want unset", ev.Day)
	}

	// Whitespace-only counts as absent too.
	ev, err = Normalize(RawEvent{Kind: "set-logged", Timestamp: ts, Weight: "  ", Reps: " "})
	if err != nil {
		t.Fatal(err)
	}
	if ev.Weight != nil || ev.Reps != nil {
		t.Error("whitespace-only fields should normalize to absent")
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  RawEvent
		want error
	}{
		{"unknown kind", RawEvent{Kind: "cardio-finished"}, ErrUnknownKind},
		{"bad weight", RawEvent{Kind: "set-logged", Weight: "heavy"}, ErrBadWeight},
		{"bad reps", RawEvent{Kind: "set-logged", Reps: "8.5"}, ErrBadReps},
		{"bad day", RawEvent{Kind: "workout-started", Day: "someday"}, ErrBadDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestNormalizeAllSkipsUnknownKinds verifies that bulk normalization drops
// unrecognized kinds defensively but still fails on malformed numerics.
func TestNormalizeAllSkipsUnknownKinds(t *testing.T) {
	evs, err := NormalizeAll([]RawEvent{
		{Kind: "microcycle-started", Timestamp: ts},
		{Kind: "body-weight-measured", Timestamp: ts},
		{Kind: "workout-started", Timestamp: ts, Name: "Upper"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	if evs[1].Kind != KindWorkoutStarted {
		t.Errorf("second event kind = %q, want workout-started", evs[1].Kind)
	}

	_, err = NormalizeAll([]RawEvent{{Kind: "set-logged", Weight: "abc"}})
	if !errors.Is(err, ErrBadWeight) {
		t.Errorf("err = %v, want ErrBadWeight", err)
	}
}
