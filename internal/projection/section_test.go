package projection

import (
	"testing"
	"time"

	"github.com/claude/liftlog/internal/events"
)

func ev(kind events.Kind) events.Event {
	return events.Event{Kind: kind, Timestamp: time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)}
}

func kinds(section []events.Event) []events.Kind {
	out := make([]events.Kind, len(section))
	for i, e := range section {
		out[i] = e.Kind
	}
	return out
}

func TestSectionsBetweenPairs(t *testing.T) {
	evs := []events.Event{
		ev(events.KindWorkoutStarted),
		ev(events.KindSetLogged),
		ev(events.KindWorkoutCompleted),
		ev(events.KindWorkoutStarted),
		ev(events.KindWorkoutCompleted),
	}

	sections := sectionsBetween(evs, events.KindWorkoutStarted, events.KindWorkoutCompleted)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if len(sections[0]) != 3 {
		t.Errorf("first section length = %d, want 3 (end marker included)", len(sections[0]))
	}
	if len(sections[1]) != 2 {
		t.Errorf("second section length = %d, want 2", len(sections[1]))
	}
}

// TestSectionsBetweenUnterminated verifies that a start marker with no
// matching end still produces a section running to end-of-stream — an
// in-progress workout must not vanish from the projection.
func TestSectionsBetweenUnterminated(t *testing.T) {
	evs := []events.Event{
		ev(events.KindWorkoutStarted),
		ev(events.KindSetLogged),
		ev(events.KindSetLogged),
	}

	sections := sectionsBetween(evs, events.KindWorkoutStarted, events.KindWorkoutCompleted)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if len(sections[0]) != 3 {
		t.Errorf("section length = %d, want 3", len(sections[0]))
	}
}

// TestSectionsBetweenOrphans verifies that events before the first start
// marker belong to no section.
func TestSectionsBetweenOrphans(t *testing.T) {
	evs := []events.Event{
		ev(events.KindSetLogged),
		ev(events.KindWorkoutCompleted),
		ev(events.KindWorkoutStarted),
		ev(events.KindWorkoutCompleted),
	}

	sections := sectionsBetween(evs, events.KindWorkoutStarted, events.KindWorkoutCompleted)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	got := kinds(sections[0])
	if got[0] != events.KindWorkoutStarted || got[1] != events.KindWorkoutCompleted {
		t.Errorf("section kinds = %v", got)
	}
}

func TestSectionsBetweenEmpty(t *testing.T) {
	if got := sectionsBetween(nil, events.KindWorkoutStarted, events.KindWorkoutCompleted); len(got) != 0 {
		t.Errorf("got %d sections from empty input, want 0", len(got))
	}
}

// TestSectionsBetweenSwallowsNestedStart pins down the take-to-end-or-eos
// semantics: a second start marker before the end marker is absorbed into
// the open section rather than beginning a new one.
func TestSectionsBetweenSwallowsNestedStart(t *testing.T) {
	evs := []events.Event{
		ev(events.KindWorkoutStarted),
		ev(events.KindWorkoutStarted),
		ev(events.KindWorkoutCompleted),
	}

	sections := sectionsBetween(evs, events.KindWorkoutStarted, events.KindWorkoutCompleted)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if len(sections[0]) != 3 {
		t.Errorf("section length = %d, want 3", len(sections[0]))
	}
}
