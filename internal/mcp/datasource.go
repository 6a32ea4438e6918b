package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools so a remote
// implementation could be swapped in. *storage.DB satisfies it.
type DataSource interface {
	AppendEvent(ctx context.Context, row models.EventRow) (bool, error)
	ListEvents(ctx context.Context, userID int) ([]models.EventRow, error)
	GetActivePlan(ctx context.Context, userID int) (models.PlanRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
