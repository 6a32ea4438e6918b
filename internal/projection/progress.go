package projection

import "github.com/claude/liftlog/internal/events"

// BuildProgress projects the full event history into a progress tree.
// Microcycle and workout boundaries come from start/completed marker pairs;
// an unterminated pair yields an in-progress section. The engine never
// validates event legality — a set logged outside any workout is simply
// not part of any section.
func BuildProgress(evs []events.Event) TrainingTree {
	tree := TrainingTree{Microcycles: []Microcycle{}}
	for _, mcSection := range sectionsBetween(evs, events.KindMicrocycleStarted, events.KindMicrocycleCompleted) {
		mc := Microcycle{Workouts: []Workout{}}
		for _, wSection := range sectionsBetween(mcSection, events.KindWorkoutStarted, events.KindWorkoutCompleted) {
			mc.Workouts = append(mc.Workouts, buildWorkout(wSection))
		}
		tree.Microcycles = append(tree.Microcycles, mc)
	}
	return tree
}

// buildWorkout assembles a workout from its section. The leading
// workout-started marker supplies name and day; set-logged events group by
// exercise name, first-seen order, chronological within a group. A set
// logged without an exercise name groups under the empty string rather than
// being dropped.
func buildWorkout(section []events.Event) Workout {
	w := Workout{
		Name:      section[0].Name,
		Day:       section[0].Day,
		Exercises: []Exercise{},
	}

	index := map[string]int{} // exercise name -> position in w.Exercises
	for _, ev := range section[1:] {
		if ev.Kind != events.KindSetLogged {
			continue
		}
		set := Set{ActualWeight: ev.Weight, ActualReps: ev.Reps}
		pos, ok := index[ev.Exercise]
		if !ok {
			pos = len(w.Exercises)
			index[ev.Exercise] = pos
			w.Exercises = append(w.Exercises, Exercise{Name: ev.Exercise})
		}
		w.Exercises[pos].Sets = append(w.Exercises[pos].Sets, set)
	}
	return w
}
