// Package ingest parses liftlog event-export files: JSON Lines, one raw
// event per line, blank lines ignored.
package ingest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/claude/liftlog/internal/events"
)

// ParseExport reads a JSONL event export. Each record is checked against
// the normalizer so a malformed export fails as a whole instead of
// poisoning the log; unknown kinds pass through untouched, since an export
// may come from a newer version. Records keep file order.
func ParseExport(r io.Reader) ([]events.RawEvent, error) {
	scanner := bufio.NewScanner(r)
	var raws []events.RawEvent

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw events.RawEvent
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNo, err)
		}
		if raw.Kind == "" {
			return nil, fmt.Errorf("line %d: missing event kind", lineNo)
		}
		if raw.Timestamp.IsZero() {
			return nil, fmt.Errorf("line %d: missing timestamp", lineNo)
		}

		if _, err := events.Normalize(raw); err != nil && !errors.Is(err, events.ErrUnknownKind) {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		raws = append(raws, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	return raws, nil
}
