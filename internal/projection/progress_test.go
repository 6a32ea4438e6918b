package projection

import (
	"testing"
	"time"

	"github.com/claude/liftlog/internal/events"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

// logSet builds a set-logged event for an exercise.
func logSet(exercise string, weight float64, reps int) events.Event {
	return events.Event{
		Kind:      events.KindSetLogged,
		Timestamp: time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
		Exercise:  exercise,
		Weight:    floatPtr(weight),
		Reps:      intPtr(reps),
	}
}

func startWorkout(name string, day events.Day) events.Event {
	return events.Event{Kind: events.KindWorkoutStarted, Name: name, Day: day}
}

func TestBuildProgressEmpty(t *testing.T) {
	tree := BuildProgress(nil)
	if tree.Microcycles == nil {
		t.Fatal("microcycles should be an empty slice, not nil")
	}
	if len(tree.Microcycles) != 0 {
		t.Errorf("got %d microcycles, want 0", len(tree.Microcycles))
	}
}

// TestBuildProgressUnterminated covers an in-flight session: one open
// microcycle, one open workout, one logged set. Nothing is terminated and
// nothing may be lost.
func TestBuildProgressUnterminated(t *testing.T) {
	tree := BuildProgress([]events.Event{
		ev(events.KindMicrocycleStarted),
		startWorkout("Upper", events.Monday),
		logSet("Bench Press", 100, 10),
	})

	if len(tree.Microcycles) != 1 {
		t.Fatalf("got %d microcycles, want 1", len(tree.Microcycles))
	}
	workouts := tree.Microcycles[0].Workouts
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts, want 1", len(workouts))
	}

	w := workouts[0]
	if w.Name != "Upper" || w.Day != events.Monday {
		t.Errorf("workout = %q/%q, want Upper/monday", w.Name, w.Day)
	}
	if len(w.Exercises) != 1 {
		t.Fatalf("got %d exercises, want 1", len(w.Exercises))
	}

	ex := w.Exercises[0]
	if ex.Name != "Bench Press" {
		t.Errorf("exercise = %q, want Bench Press", ex.Name)
	}
	if len(ex.Sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(ex.Sets))
	}
	s := ex.Sets[0]
	if s.ActualWeight == nil || *s.ActualWeight != 100 {
		t.Errorf("actual weight = %v, want 100", s.ActualWeight)
	}
	if s.ActualReps == nil || *s.ActualReps != 10 {
		t.Errorf("actual reps = %v, want 10", s.ActualReps)
	}
	if s.PrescribedWeight != nil || s.PrescribedReps != nil {
		t.Error("progress sets must not carry prescribed values")
	}
}

// TestBuildProgressGroupsByExercise verifies grouping: first-seen exercise
// order, chronological set order within a group, interleaved sets handled.
func TestBuildProgressGroupsByExercise(t *testing.T) {
	tree := BuildProgress([]events.Event{
		ev(events.KindMicrocycleStarted),
		startWorkout("Upper", events.Monday),
		logSet("Bench Press", 100, 10),
		logSet("Row", 80, 12),
		logSet("Bench Press", 100, 8),
		ev(events.KindWorkoutCompleted),
		ev(events.KindMicrocycleCompleted),
	})

	exercises := tree.Microcycles[0].Workouts[0].Exercises
	if len(exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(exercises))
	}
	if exercises[0].Name != "Bench Press" || exercises[1].Name != "Row" {
		t.Errorf("exercise order = [%q %q], want first-seen order", exercises[0].Name, exercises[1].Name)
	}
	if len(exercises[0].Sets) != 2 {
		t.Fatalf("Bench Press has %d sets, want 2", len(exercises[0].Sets))
	}
	if *exercises[0].Sets[0].ActualReps != 10 || *exercises[0].Sets[1].ActualReps != 8 {
		t.Error("sets within a group must stay chronological")
	}
}

// TestBuildProgressOrphanedEvents verifies that sets logged outside any
// workout, and workouts outside any microcycle, are excluded rather than
// reported as errors.
func TestBuildProgressOrphanedEvents(t *testing.T) {
	tree := BuildProgress([]events.Event{
		logSet("Bench Press", 100, 10), // before any microcycle
		startWorkout("Stray", events.Friday),
		ev(events.KindWorkoutCompleted),
		ev(events.KindMicrocycleStarted),
		logSet("Squat", 140, 5), // inside microcycle but before any workout
		startWorkout("Lower", events.Tuesday),
		logSet("Squat", 140, 5),
		ev(events.KindWorkoutCompleted),
		ev(events.KindMicrocycleCompleted),
	})

	if len(tree.Microcycles) != 1 {
		t.Fatalf("got %d microcycles, want 1", len(tree.Microcycles))
	}
	workouts := tree.Microcycles[0].Workouts
	if len(workouts) != 1 || workouts[0].Name != "Lower" {
		t.Fatalf("workouts = %+v, want only Lower", workouts)
	}
	if len(workouts[0].Exercises) != 1 || len(workouts[0].Exercises[0].Sets) != 1 {
		t.Error("only the in-section set should survive")
	}
}

func TestBuildProgressEmptyMicrocycle(t *testing.T) {
	tree := BuildProgress([]events.Event{
		ev(events.KindMicrocycleStarted),
		ev(events.KindMicrocycleCompleted),
	})
	if len(tree.Microcycles) != 1 {
		t.Fatalf("got %d microcycles, want 1", len(tree.Microcycles))
	}
	if ws := tree.Microcycles[0].Workouts; ws == nil || len(ws) != 0 {
		t.Errorf("workouts = %v, want empty slice", ws)
	}
}

// TestBuildProgressMissingExerciseName documents the sentinel policy: a set
// logged without an exercise name groups under "".
func TestBuildProgressMissingExerciseName(t *testing.T) {
	tree := BuildProgress([]events.Event{
		ev(events.KindMicrocycleStarted),
		startWorkout("Upper", events.Monday),
		events.Event{Kind: events.KindSetLogged, Weight: floatPtr(60), Reps: intPtr(10)},
	})

	exercises := tree.Microcycles[0].Workouts[0].Exercises
	if len(exercises) != 1 {
		t.Fatalf("got %d exercises, want 1", len(exercises))
	}
	if exercises[0].Name != "" {
		t.Errorf("exercise name = %q, want empty-string sentinel", exercises[0].Name)
	}
	if len(exercises[0].Sets) != 1 {
		t.Error("the set must not be dropped")
	}
}

func TestSetComplete(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want bool
	}{
		{"both actuals", Set{ActualWeight: floatPtr(100), ActualReps: intPtr(8)}, true},
		{"weight only", Set{ActualWeight: floatPtr(100)}, false},
		{"reps only", Set{ActualReps: intPtr(8)}, false},
		{"prescribed only", Set{PrescribedWeight: floatPtr(100), PrescribedReps: intPtr(8)}, false},
		{"empty", Set{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
