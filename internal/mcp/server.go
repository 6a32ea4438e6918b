package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/claude/liftlog/internal/events"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/plan"
	"github.com/claude/liftlog/internal/projection"
	"github.com/claude/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftlog training server. Log sets and workout/microcycle boundaries as events; query the projected progress tree, the merged training plan, and the current workout. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolLogSet, Handler: h.logSet},
		server.ServerTool{Tool: toolStartWorkout, Handler: h.startWorkout},
		server.ServerTool{Tool: toolCompleteWorkout, Handler: h.completeWorkout},
		server.ServerTool{Tool: toolStartMicrocycle, Handler: h.startMicrocycle},
		server.ServerTool{Tool: toolCompleteMicrocycle, Handler: h.completeMicrocycle},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetPlan, Handler: h.getPlan},
		server.ServerTool{Tool: toolGetCurrentWorkout, Handler: h.getCurrentWorkout},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentWorkout, Handler: h.currentWorkoutResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// canonicalEvents loads and normalizes a user's full event log.
func (h *handlers) canonicalEvents(ctx context.Context, userID int) ([]events.Event, error) {
	rows, err := h.ds.ListEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	return events.NormalizeAll(models.RawAll(rows))
}

// activePlan returns the user's stored plan or the embedded starter plan.
func (h *handlers) activePlan(ctx context.Context, userID int) (*plan.Plan, error) {
	row, err := h.ds.GetActivePlan(ctx, userID)
	if errors.Is(err, storage.ErrNoPlan) {
		return plan.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return plan.Parse([]byte(row.Document))
}

// mergedView computes the merged tree and the canonical events behind it.
func (h *handlers) mergedView(ctx context.Context, userID int) (projection.TrainingTree, []events.Event, error) {
	evs, err := h.canonicalEvents(ctx, userID)
	if err != nil {
		return projection.TrainingTree{}, nil, err
	}
	p, err := h.activePlan(ctx, userID)
	if err != nil {
		return projection.TrainingTree{}, nil, err
	}
	return projection.MergeProgress(p.Tree, projection.BuildProgress(evs)), evs, nil
}

// --- Resource definitions ---

var resCurrentWorkout = mcp.NewResource(
	"liftlog://current_workout",
	"Current Workout",
	mcp.WithResourceDescription("The workout the trainee is in the middle of, or the next one with sets still to do, with prescribed and actual values merged"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) currentWorkoutResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	merged, evs, err := h.mergedView(ctx, uid)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"allComplete": true}
	if cur, ok := projection.FindCurrentWorkout(merged, evs); ok {
		payload = map[string]any{"allComplete": false, "current": cur}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
