package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestHandleAppendEventRejectsMalformed verifies the validation boundary:
// malformed raw events are rejected with 400 before anything is stored.
func TestHandleAppendEventRejectsMalformed(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{"kind":`},
		{"unknown kind", `{"kind":"cardio-finished"}`},
		{"unparseable weight", `{"kind":"set-logged","exercise":"Squat","weight":"heavy","reps":"5"}`},
		{"unparseable reps", `{"kind":"set-logged","exercise":"Squat","weight":"140","reps":"five"}`},
		{"bad day", `{"kind":"workout-started","name":"Upper","day":"restday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			s.handleAppendEvent(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestHandleSetPlanRejectsInvalidDocument verifies plan uploads are parse
// validated before touching the store.
func TestHandleSetPlanRejectsInvalidDocument(t *testing.T) {
	s := &Server{}

	body := "microcycles:\n  - workouts:\n      - day: monday\n" // no workout name
	req := httptest.NewRequest(http.MethodPut, "/api/v1/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleSetPlan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleImportEventsRejectsBadExport verifies a malformed JSONL body
// fails the whole import rather than partially applying it.
func TestHandleImportEventsRejectsBadExport(t *testing.T) {
	s := &Server{}

	body := `{"kind":"microcycle-started","timestamp":"2026-03-02T18:00:00Z"}` + "\nnot json\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/import", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleImportEvents(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
