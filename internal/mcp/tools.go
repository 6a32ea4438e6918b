package mcp

import (
	"context"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/events"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/projection"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseFlexTime accepts RFC 3339 or a bare date.
func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// eventTime resolves the optional "time" parameter, defaulting to now.
func eventTime(req mcp.CallToolRequest) (time.Time, error) {
	s := req.GetString("time", "")
	if s == "" {
		return time.Now().UTC(), nil
	}
	return parseFlexTime(s)
}

// --- Tool definitions ---

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Log one performed set of an exercise as a set-logged event. Use after start_workout so the set lands inside the open session."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. Bench Press)")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight used, in the trainee's unit")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions performed")),
	mcp.WithString("time", mcp.Description("Event time (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolStartWorkout = mcp.NewTool("start_workout",
	mcp.WithDescription("Append a workout-started event, opening a training session."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name, ideally matching a plan workout (e.g. Upper)")),
	mcp.WithString("day", mcp.Description("Day of week (monday..sunday)")),
	mcp.WithString("time", mcp.Description("Event time. Defaults to now.")),
)

var toolCompleteWorkout = mcp.NewTool("complete_workout",
	mcp.WithDescription("Append a workout-completed event, closing the open session."),
	mcp.WithString("time", mcp.Description("Event time. Defaults to now.")),
)

var toolStartMicrocycle = mcp.NewTool("start_microcycle",
	mcp.WithDescription("Append a microcycle-started event, opening a training block (typically one week)."),
	mcp.WithString("time", mcp.Description("Event time. Defaults to now.")),
)

var toolCompleteMicrocycle = mcp.NewTool("complete_microcycle",
	mcp.WithDescription("Append a microcycle-completed event, closing the open training block."),
	mcp.WithString("time", mcp.Description("Event time. Defaults to now.")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Project the full event log into the progress tree: microcycles, workouts, exercises, and performed sets."),
)

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Get the active training plan merged with actual progress: every set shows prescribed and performed values side by side."),
)

var toolGetCurrentWorkout = mcp.NewTool("get_current_workout",
	mcp.WithDescription("Find the current workout: the active session if one is open, otherwise the next workout with sets still to do. Reports all-complete when nothing remains."),
)

// --- Tool handlers ---

func (h *handlers) appendEvent(ctx context.Context, row models.EventRow) *mcp.CallToolResult {
	if _, err := h.ds.AppendEvent(ctx, row); err != nil {
		h.log.Error("mcp append event", "kind", row.Kind, "error", err)
		return mcp.NewToolResultError("append failed: " + err.Error())
	}
	return nil
}

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	ts, err := eventTime(req)
	if err != nil {
		return mcp.NewToolResultError("invalid time format: " + err.Error()), nil
	}

	row := models.EventRow{
		ID:         uuid.New(),
		UserID:     UserIDFromContext(ctx),
		Kind:       string(events.KindSetLogged),
		OccurredAt: ts,
		Exercise:   exercise,
		Weight:     strconv.FormatFloat(weight, 'f', -1, 64),
		Reps:       strconv.Itoa(reps),
	}
	if res := h.appendEvent(ctx, row); res != nil {
		return res, nil
	}
	return mcp.NewToolResultText("logged " + exercise + " " + row.Weight + " x " + row.Reps), nil
}

func (h *handlers) startWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	day := req.GetString("day", "")
	if day != "" {
		if _, err := events.ParseDay(day); err != nil {
			return mcp.NewToolResultError("invalid day: " + day), nil
		}
	}
	ts, err := eventTime(req)
	if err != nil {
		return mcp.NewToolResultError("invalid time format: " + err.Error()), nil
	}

	row := models.EventRow{
		ID:         uuid.New(),
		UserID:     UserIDFromContext(ctx),
		Kind:       string(events.KindWorkoutStarted),
		OccurredAt: ts,
		Name:       name,
		Day:        day,
	}
	if res := h.appendEvent(ctx, row); res != nil {
		return res, nil
	}
	return mcp.NewToolResultText("started workout " + name), nil
}

func (h *handlers) completeWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.marker(ctx, req, events.KindWorkoutCompleted, "completed workout")
}

func (h *handlers) startMicrocycle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.marker(ctx, req, events.KindMicrocycleStarted, "started microcycle")
}

func (h *handlers) completeMicrocycle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.marker(ctx, req, events.KindMicrocycleCompleted, "completed microcycle")
}

// marker appends a bare boundary event.
func (h *handlers) marker(ctx context.Context, req mcp.CallToolRequest, kind events.Kind, okText string) (*mcp.CallToolResult, error) {
	ts, err := eventTime(req)
	if err != nil {
		return mcp.NewToolResultError("invalid time format: " + err.Error()), nil
	}

	row := models.EventRow{
		ID:         uuid.New(),
		UserID:     UserIDFromContext(ctx),
		Kind:       string(kind),
		OccurredAt: ts,
	}
	if res := h.appendEvent(ctx, row); res != nil {
		return res, nil
	}
	return mcp.NewToolResultText(okText), nil
}

func (h *handlers) getProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	evs, err := h.canonicalEvents(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(projection.BuildProgress(evs))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPlan(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	merged, _, err := h.mergedView(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(merged)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentWorkout(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	merged, evs, err := h.mergedView(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_current_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	payload := map[string]any{"allComplete": true}
	if cur, ok := projection.FindCurrentWorkout(merged, evs); ok {
		payload = map[string]any{"allComplete": false, "current": cur}
	}

	result, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
