// Package plan loads prescribed training plans from YAML documents and
// converts them into the tree shape the projection engine merges against.
package plan

import (
	_ "embed"
	"fmt"

	"github.com/claude/liftlog/internal/events"
	"github.com/claude/liftlog/internal/projection"
	"gopkg.in/yaml.v3"
)

//go:embed starter.yaml
var starterYAML []byte

// Plan is a parsed prescribed training plan.
type Plan struct {
	Name string
	Tree projection.TrainingTree
}

// Document shapes match the YAML layout. Weight and reps stay pointers so
// an exercise can prescribe reps without a weight (bodyweight work) or
// vice versa.
type document struct {
	Name        string          `yaml:"name"`
	Microcycles []microcycleDoc `yaml:"microcycles"`
}

type microcycleDoc struct {
	Workouts []workoutDoc `yaml:"workouts"`
}

type workoutDoc struct {
	Name      string        `yaml:"name"`
	Day       string        `yaml:"day"`
	Exercises []exerciseDoc `yaml:"exercises"`
}

type exerciseDoc struct {
	Name string   `yaml:"name"`
	Sets []setDoc `yaml:"sets"`
}

type setDoc struct {
	Weight *float64 `yaml:"weight"`
	Reps   *int     `yaml:"reps"`
	Repeat int      `yaml:"repeat"` // expand to this many identical sets; 0/1 means one
}

// Parse reads a YAML plan document and validates its structure.
func Parse(data []byte) (*Plan, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing plan document: %w", err)
	}

	p := &Plan{
		Name: doc.Name,
		Tree: projection.TrainingTree{Microcycles: []projection.Microcycle{}},
	}

	for mi, mcDoc := range doc.Microcycles {
		mc := projection.Microcycle{Workouts: []projection.Workout{}}
		for wi, wDoc := range mcDoc.Workouts {
			w, err := buildWorkout(wDoc)
			if err != nil {
				return nil, fmt.Errorf("microcycle %d workout %d: %w", mi+1, wi+1, err)
			}
			mc.Workouts = append(mc.Workouts, w)
		}
		p.Tree.Microcycles = append(p.Tree.Microcycles, mc)
	}

	return p, nil
}

func buildWorkout(doc workoutDoc) (projection.Workout, error) {
	if doc.Name == "" {
		return projection.Workout{}, fmt.Errorf("workout name is required")
	}

	w := projection.Workout{Name: doc.Name, Exercises: []projection.Exercise{}}

	if doc.Day != "" {
		day, err := events.ParseDay(doc.Day)
		if err != nil {
			return projection.Workout{}, fmt.Errorf("workout %q: %w", doc.Name, err)
		}
		w.Day = day
	}

	for _, exDoc := range doc.Exercises {
		if exDoc.Name == "" {
			return projection.Workout{}, fmt.Errorf("workout %q: exercise name is required", doc.Name)
		}
		ex := projection.Exercise{Name: exDoc.Name, Sets: []projection.Set{}}
		for _, sDoc := range exDoc.Sets {
			n := sDoc.Repeat
			if n < 1 {
				n = 1
			}
			for range n {
				ex.Sets = append(ex.Sets, projection.Set{
					PrescribedWeight: copyFloat(sDoc.Weight),
					PrescribedReps:   copyInt(sDoc.Reps),
				})
			}
		}
		w.Exercises = append(w.Exercises, ex)
	}

	return w, nil
}

// Default returns the embedded starter plan. It parses at init-quality
// input, so a failure here is a programming error.
func Default() *Plan {
	p, err := Parse(starterYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded starter plan is invalid: %v", err))
	}
	return p
}

// StarterYAML returns the raw embedded starter plan document, for seeding
// a user's active plan.
func StarterYAML() []byte {
	out := make([]byte, len(starterYAML))
	copy(out, starterYAML)
	return out
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func copyInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
