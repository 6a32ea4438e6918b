package projection

// MergeProgress overlays derived progress onto a prescribed plan. The merge
// is positional at the microcycle and workout levels and by-name at the
// exercise level. Both inputs are read-only; the result shares no slices
// with either.
//
// Positional levels are a size-max union: a plan entry with no progress
// counterpart passes through unchanged (prescribed-only), and a progress
// entry beyond the plan's length passes through unmerged. Within a merged
// workout the plan is structurally authoritative — name and day always come
// from the plan side, and only planned exercises appear in the output.
// Extra sets inside a planned exercise are preserved; extra exercises
// performed outside the plan are not. That asymmetry matches the observed
// read-side behavior and is kept deliberately.
func MergeProgress(plan, progress TrainingTree) TrainingTree {
	n := max(len(plan.Microcycles), len(progress.Microcycles))
	out := TrainingTree{Microcycles: make([]Microcycle, 0, n)}
	for i := range n {
		switch {
		case i >= len(plan.Microcycles):
			out.Microcycles = append(out.Microcycles, cloneMicrocycle(progress.Microcycles[i]))
		case i >= len(progress.Microcycles):
			out.Microcycles = append(out.Microcycles, cloneMicrocycle(plan.Microcycles[i]))
		default:
			out.Microcycles = append(out.Microcycles, mergeMicrocycle(plan.Microcycles[i], progress.Microcycles[i]))
		}
	}
	return out
}

func mergeMicrocycle(plan, progress Microcycle) Microcycle {
	n := max(len(plan.Workouts), len(progress.Workouts))
	mc := Microcycle{Workouts: make([]Workout, 0, n)}
	for i := range n {
		switch {
		case i >= len(plan.Workouts):
			mc.Workouts = append(mc.Workouts, cloneWorkout(progress.Workouts[i]))
		case i >= len(progress.Workouts):
			mc.Workouts = append(mc.Workouts, cloneWorkout(plan.Workouts[i]))
		default:
			mc.Workouts = append(mc.Workouts, mergeWorkout(plan.Workouts[i], progress.Workouts[i]))
		}
	}
	return mc
}

func mergeWorkout(plan, progress Workout) Workout {
	w := Workout{
		Name:      plan.Name,
		Day:       plan.Day,
		Exercises: make([]Exercise, 0, len(plan.Exercises)),
	}
	for _, planned := range plan.Exercises {
		actual := findExercise(progress.Exercises, planned.Name)
		w.Exercises = append(w.Exercises, Exercise{
			Name: planned.Name,
			Sets: mergeSets(planned.Sets, actual.Sets),
		})
	}
	return w
}

func findExercise(exercises []Exercise, name string) Exercise {
	for _, ex := range exercises {
		if ex.Name == name {
			return ex
		}
	}
	return Exercise{}
}

// mergeSets pads both lists to the longer length and merges pairwise:
// prescribed fields from the planned side, actual fields from the performed
// side, absent where padded. More sets performed than planned show up as
// trailing actual-only entries; fewer show up as trailing prescribed-only
// entries still to do.
func mergeSets(planned, actual []Set) []Set {
	n := max(len(planned), len(actual))
	out := make([]Set, n)
	for i := range n {
		if i < len(planned) {
			out[i].PrescribedWeight = planned[i].PrescribedWeight
			out[i].PrescribedReps = planned[i].PrescribedReps
		}
		if i < len(actual) {
			out[i].ActualWeight = actual[i].ActualWeight
			out[i].ActualReps = actual[i].ActualReps
		}
	}
	return out
}

func cloneMicrocycle(mc Microcycle) Microcycle {
	out := Microcycle{Workouts: make([]Workout, 0, len(mc.Workouts))}
	for _, w := range mc.Workouts {
		out.Workouts = append(out.Workouts, cloneWorkout(w))
	}
	return out
}

func cloneWorkout(w Workout) Workout {
	out := Workout{Name: w.Name, Day: w.Day, Exercises: make([]Exercise, 0, len(w.Exercises))}
	for _, ex := range w.Exercises {
		sets := make([]Set, len(ex.Sets))
		copy(sets, ex.Sets)
		out.Exercises = append(out.Exercises, Exercise{Name: ex.Name, Sets: sets})
	}
	return out
}
