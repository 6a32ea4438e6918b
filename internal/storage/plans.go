package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrNoPlan is returned when a user has no active plan stored.
var ErrNoPlan = errors.New("no active plan")

// GetActivePlan retrieves a user's active plan document.
func (db *DB) GetActivePlan(ctx context.Context, userID int) (models.PlanRow, error) {
	var p models.PlanRow
	err := db.Pool.QueryRow(ctx,
		`SELECT user_id, name, document, updated_at FROM plans WHERE user_id = $1`,
		userID).Scan(&p.UserID, &p.Name, &p.Document, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PlanRow{}, ErrNoPlan
	}
	if err != nil {
		return models.PlanRow{}, fmt.Errorf("querying plan: %w", err)
	}
	return p, nil
}

// SetActivePlan stores (or replaces) a user's active plan document.
func (db *DB) SetActivePlan(ctx context.Context, userID int, name, document string) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO plans (user_id, name, document, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET name = EXCLUDED.name, document = EXCLUDED.document, updated_at = now()`,
		userID, name, document)
	if err != nil {
		return fmt.Errorf("storing plan: %w", err)
	}
	return nil
}
