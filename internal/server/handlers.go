package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/events"
	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/plan"
	"github.com/claude/liftlog/internal/projection"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleAppendEvent normalizes and appends a single raw event. This is the
// validation boundary: a malformed record is rejected here with 400, never
// guessed at. Structural legality (a set before any workout, say) is not
// checked — the projection engine absorbs that by design.
func (s *Server) handleAppendEvent(w http.ResponseWriter, r *http.Request) {
	var raw events.RawEvent
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if raw.Timestamp.IsZero() {
		raw.Timestamp = time.Now().UTC()
	}

	canonical, err := events.Normalize(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	row := models.EventRow{
		ID:         uuid.New(),
		UserID:     defaultUserID,
		Kind:       raw.Kind,
		OccurredAt: raw.Timestamp,
		Name:       raw.Name,
		Day:        raw.Day,
		Exercise:   raw.Exercise,
		Weight:     string(raw.Weight),
		Reps:       string(raw.Reps),
	}
	if _, err := s.db.AppendEvent(r.Context(), row); err != nil {
		s.log.Error("append event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": row.ID, "event": canonical})
}

// handleImportEvents accepts a JSONL event export and appends all records.
func (s *Server) handleImportEvents(w http.ResponseWriter, r *http.Request) {
	raws, err := ingest.ParseExport(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows := make([]models.EventRow, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, models.EventRow{
			ID:         uuid.New(),
			UserID:     defaultUserID,
			Kind:       raw.Kind,
			OccurredAt: raw.Timestamp,
			Name:       raw.Name,
			Day:        raw.Day,
			Exercise:   raw.Exercise,
			Weight:     string(raw.Weight),
			Reps:       string(raw.Reps),
		})
	}

	inserted, err := s.db.AppendEvents(r.Context(), rows)
	if err != nil {
		s.log.Error("import events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"received": len(rows), "inserted": inserted})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.ListEvents(r.Context(), defaultUserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = []models.EventRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	evs, err := s.canonicalEvents(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, projection.BuildProgress(evs))
}

func (s *Server) handleMergedPlan(w http.ResponseWriter, r *http.Request) {
	evs, err := s.canonicalEvents(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	p, err := s.activePlan(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	merged := projection.MergeProgress(p.Tree, projection.BuildProgress(evs))
	writeJSON(w, http.StatusOK, map[string]any{"name": p.Name, "microcycles": merged.Microcycles})
}

func (s *Server) handleCurrentWorkout(w http.ResponseWriter, r *http.Request) {
	evs, err := s.canonicalEvents(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	p, err := s.activePlan(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	merged := projection.MergeProgress(p.Tree, projection.BuildProgress(evs))
	cur, ok := projection.FindCurrentWorkout(merged, evs)
	if !ok {
		// All workouts complete: a terminal state, not an error.
		writeJSON(w, http.StatusOK, map[string]any{"allComplete": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"allComplete": false, "current": cur})
}

// handleSetPlan replaces the active plan with the uploaded YAML document.
func (s *Server) handleSetPlan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := plan.Parse(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.db.SetActivePlan(r.Context(), defaultUserID, p.Name, string(body)); err != nil {
		s.log.Error("set plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"name": p.Name, "microcycles": len(p.Tree.Microcycles)})
}

// canonicalEvents loads and normalizes the full event log. The projection
// is recomputed from scratch on every read; there is no cached state.
func (s *Server) canonicalEvents(ctx context.Context) ([]events.Event, error) {
	rows, err := s.db.ListEvents(ctx, defaultUserID)
	if err != nil {
		return nil, err
	}
	return events.NormalizeAll(models.RawAll(rows))
}

// activePlan returns the user's stored plan, falling back to the embedded
// starter plan when none has been uploaded yet.
func (s *Server) activePlan(ctx context.Context) (*plan.Plan, error) {
	row, err := s.db.GetActivePlan(ctx, defaultUserID)
	if errors.Is(err, storage.ErrNoPlan) {
		return plan.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return plan.Parse([]byte(row.Document))
}
