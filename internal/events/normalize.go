package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Normalization failure taxonomy. Anything else coming out of Normalize
// wraps one of these.
var (
	ErrUnknownKind = errors.New("unknown event kind")
	ErrBadDay      = errors.New("invalid day of week")
	ErrBadWeight   = errors.New("invalid weight")
	ErrBadReps     = errors.New("invalid reps")
)

// FlexNumber is a numeric field that may arrive as a JSON number or a JSON
// string. It keeps the original text; parsing happens in Normalize.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FlexNumber(s)
		return nil
	}
	*n = FlexNumber(data)
	return nil
}

// RawEvent is a persisted event record before normalization. Numeric fields
// arrive as text because the log stores them exactly as they were written;
// interpretation belongs to Normalize, not the store.
type RawEvent struct {
	Kind      string     `json:"kind"`
	Timestamp time.Time  `json:"timestamp"`
	Name      string     `json:"name,omitempty"`
	Day       string     `json:"day,omitempty"`
	Exercise  string     `json:"exercise,omitempty"`
	Weight    FlexNumber `json:"weight,omitempty"`
	Reps      FlexNumber `json:"reps,omitempty"`
}

// Normalize converts a raw record into a canonical Event. Absent or empty
// optional fields normalize to "not present" (nil pointer / zero value),
// never to zero quantities. Malformed fields are reported, not coerced.
func Normalize(raw RawEvent) (Event, error) {
	kind, err := ParseKind(raw.Kind)
	if err != nil {
		return Event{}, err
	}

	ev := Event{
		Kind:      kind,
		Timestamp: raw.Timestamp,
		Name:      raw.Name,
		Exercise:  raw.Exercise,
	}

	if s := strings.TrimSpace(raw.Day); s != "" {
		day, err := ParseDay(s)
		if err != nil {
			return Event{}, err
		}
		ev.Day = day
	}

	if s := strings.TrimSpace(string(raw.Weight)); s != "" {
		w, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: %q", ErrBadWeight, raw.Weight)
		}
		ev.Weight = &w
	}

	if s := strings.TrimSpace(string(raw.Reps)); s != "" {
		r, err := strconv.Atoi(s)
		if err != nil {
			return Event{}, fmt.Errorf("%w: %q", ErrBadReps, raw.Reps)
		}
		ev.Reps = &r
	}

	return ev, nil
}

// NormalizeAll converts a slice of raw records, skipping records whose kind
// is unknown. Historical logs may contain kinds written by newer or older
// versions; a read path should not crash on them. Malformed numeric fields
// still fail, since silently dropping a logged set would corrupt progress.
func NormalizeAll(raws []RawEvent) ([]Event, error) {
	out := make([]Event, 0, len(raws))
	for _, raw := range raws {
		ev, err := Normalize(raw)
		if errors.Is(err, ErrUnknownKind) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}
