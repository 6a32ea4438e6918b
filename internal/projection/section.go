package projection

import "github.com/claude/liftlog/internal/events"

// sectionsBetween partitions an ordered event slice into contiguous
// sections. A section begins at an occurrence of start and runs through the
// next occurrence of end inclusive, or to the end of the slice when no end
// marker follows — an unterminated section is still a section, representing
// work in progress. Events before the first start marker belong to no
// section and are discarded. Single eager left-to-right scan; returned
// sections are subslices of the input and must be treated as read-only.
func sectionsBetween(evs []events.Event, start, end events.Kind) [][]events.Event {
	var sections [][]events.Event
	i := 0
	for i < len(evs) {
		if evs[i].Kind != start {
			i++
			continue
		}
		j := i + 1
		for j < len(evs) && evs[j].Kind != end {
			j++
		}
		if j < len(evs) {
			j++ // include the end marker
		}
		sections = append(sections, evs[i:j])
		i = j
	}
	return sections
}
