package projection

import "github.com/claude/liftlog/internal/events"

// CurrentWorkout points at the single workout a trainee should be looking
// at: either the session they are in the middle of, or the next one with
// work left to do.
type CurrentWorkout struct {
	MicrocycleIndex int     `json:"microcycleIndex"`
	Workout         Workout `json:"workout"`
}

// FindCurrentWorkout locates the current workout in a merged tree.
//
// An active session always wins: when the log holds more workout-started
// than workout-completed events, the name on the most recent workout-started
// selects the workout, even if its sets are all individually complete. Name
// matching is exact and case-sensitive; duplicates resolve to the first in
// flattened order. Without an active session (or when the active name
// matches nothing in the tree) the first workout containing an incomplete
// set is current. The second return is false when every workout is complete
// or the tree has none.
func FindCurrentWorkout(tree TrainingTree, evs []events.Event) (CurrentWorkout, bool) {
	if name, ok := activeWorkoutName(evs); ok {
		for mi, mc := range tree.Microcycles {
			for _, w := range mc.Workouts {
				if w.Name == name {
					return CurrentWorkout{MicrocycleIndex: mi, Workout: w}, true
				}
			}
		}
	}
	for mi, mc := range tree.Microcycles {
		for _, w := range mc.Workouts {
			if w.incomplete() {
				return CurrentWorkout{MicrocycleIndex: mi, Workout: w}, true
			}
		}
	}
	return CurrentWorkout{}, false
}

// activeWorkoutName reports the name of the in-progress workout, if any.
func activeWorkoutName(evs []events.Event) (string, bool) {
	started, completed := 0, 0
	last := ""
	for _, ev := range evs {
		switch ev.Kind {
		case events.KindWorkoutStarted:
			started++
			last = ev.Name
		case events.KindWorkoutCompleted:
			completed++
		}
	}
	if started > completed {
		return last, true
	}
	return "", false
}
