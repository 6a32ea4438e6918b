package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// AppendEvent appends one event row to the log. Returns true if inserted,
// false if the id already exists (idempotent re-import).
func (db *DB) AppendEvent(ctx context.Context, row models.EventRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO events (id, user_id, kind, occurred_at, name, day, exercise, weight, reps)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.UserID, row.Kind, row.OccurredAt,
		row.Name, row.Day, row.Exercise, row.Weight, row.Reps)
	if err != nil {
		return false, fmt.Errorf("appending event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AppendEvents batch-inserts event rows. Returns count inserted.
func (db *DB) AppendEvents(ctx context.Context, rows []models.EventRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO events (id, user_id, kind, occurred_at, name, day, exercise, weight, reps) VALUES `
	args := make([]any, 0, len(rows)*9)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, r.ID, r.UserID, r.Kind, r.OccurredAt,
			r.Name, r.Day, r.Exercise, r.Weight, r.Reps)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("appending events: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListEvents retrieves a user's full event log in projection order:
// timestamp ascending, insertion order (seq) breaking ties. The projection
// engine depends on this ordering guarantee.
func (db *DB) ListEvents(ctx context.Context, userID int) ([]models.EventRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, seq, kind, occurred_at, name, day, exercise, weight, reps
		 FROM events
		 WHERE user_id = $1
		 ORDER BY occurred_at ASC, seq ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var result []models.EventRow
	for rows.Next() {
		var r models.EventRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Seq, &r.Kind, &r.OccurredAt,
			&r.Name, &r.Day, &r.Exercise, &r.Weight, &r.Reps); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// CountEvents returns the number of events in a user's log.
func (db *DB) CountEvents(ctx context.Context, userID int) (int64, error) {
	var count int64
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}
