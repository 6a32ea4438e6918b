// Package projection turns the flat event log into nested training
// structures. It is pure: every function is a total computation over its
// inputs, recomputed fresh on each call, with no shared state. The same
// tree shape serves three roles — prescribed plan, derived progress, and
// the merged view of both.
package projection

import "github.com/claude/liftlog/internal/events"

// Set is one unit of an exercise. Prescribed fields come from a plan,
// actual fields from logged events; a merged set can carry both.
type Set struct {
	PrescribedWeight *float64 `json:"prescribedWeight,omitempty"`
	PrescribedReps   *int     `json:"prescribedReps,omitempty"`
	ActualWeight     *float64 `json:"actualWeight,omitempty"`
	ActualReps       *int     `json:"actualReps,omitempty"`
}

// Complete reports whether the set was actually performed. Prescribed
// values never affect completeness.
func (s Set) Complete() bool {
	return s.ActualWeight != nil && s.ActualReps != nil
}

// Exercise is a named group of sets, ordered by occurrence (progress) or
// prescription order (plan).
type Exercise struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// Workout is a single training session.
type Workout struct {
	Name      string     `json:"name"`
	Day       events.Day `json:"day,omitempty"`
	Exercises []Exercise `json:"exercises"`
}

// incomplete reports whether any set in the workout still lacks actuals.
func (w Workout) incomplete() bool {
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			if !s.Complete() {
				return true
			}
		}
	}
	return false
}

// Microcycle is a training block, typically one week.
type Microcycle struct {
	Workouts []Workout `json:"workouts"`
}

// TrainingTree is the root of a plan, progress, or merged structure.
type TrainingTree struct {
	Microcycles []Microcycle `json:"microcycles"`
}
